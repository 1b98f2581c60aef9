// Package tags is the tag codec capability used by the metadata pipeline.
package tags

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupported = errors.New("filetype unsupported")
	ErrNoCodec     = errors.New("no tag codec available")
	ErrWrite       = errors.New("error writing tags")
)

// Keys derived from the library layout. Date and Year, and the three artist keys,
// carry the same value; tag readers disagree on which one they look at.
const (
	Album       = "album"
	Date        = "date"
	Year        = "year"
	TrackNumber = "tracknumber"
	Artist      = "artist"
	AlbumArtist = "albumartist"
	Author      = "author"
)

// Codec opens audio files for tag reading and writing. Open returns an error
// wrapping ErrUnsupported when the file isn't a container the codec handles.
type Codec interface {
	Open(path string) (File, error)
}

type File interface {
	Lookup(key string) ([]string, bool)
	Set(key string, values ...string)
	Save() error
	Close()
}

func IsAudio(path string) bool {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".aac", ".aiff", ".alac", ".ape", ".flac", ".m4a", ".mp3", ".mp4", ".ogg", ".oga", ".opus", ".wav", ".wma":
		return true
	}
	return false
}

// Current reads the values stored for keys, using the first value of each. Keys
// that are present but empty read as "". Keys that are absent are left out.
func Current(f File, keys []string) map[string]string {
	r := map[string]string{}
	for _, k := range keys {
		vs, ok := f.Lookup(k)
		if !ok {
			continue
		}
		r[k] = first(vs)
	}
	return r
}

func NormKey(k string) string {
	return strings.ToLower(k)
}

func first(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

//go:build cgo

package tags

import (
	"fmt"
	"os"

	"github.com/sentriz/audiotags"
)

// Default returns the codec compiled into this binary.
func Default() (Codec, error) {
	return TagLib{}, nil
}

type TagLib struct{}

func (TagLib) Open(path string) (File, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	f, err := audiotags.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}

	raw := map[string][]string{}
	for k, vs := range f.ReadTags() {
		raw[NormKey(k)] = vs
	}
	return &taglibFile{raw: raw, file: f}, nil
}

type taglibFile struct {
	raw  map[string][]string
	file *audiotags.File
}

func (f *taglibFile) Lookup(key string) ([]string, bool) {
	vs, ok := f.raw[NormKey(key)]
	return vs, ok
}

func (f *taglibFile) Set(key string, values ...string) {
	f.raw[NormKey(key)] = values
}

// Save writes the whole property map back, keys we never touched included.
func (f *taglibFile) Save() error {
	if !f.file.WriteTags(f.raw) {
		return ErrWrite
	}
	return nil
}

func (f *taglibFile) Close() {
	f.file.Close()
}

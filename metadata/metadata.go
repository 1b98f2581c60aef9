// Package metadata derives tags from a library laid out as
// Artist/Album (Year)/NN Title.ext and plans and applies the tag writes that
// bring each file in line.
package metadata

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"go.senan.xyz/preptag/fileutil"
	"go.senan.xyz/preptag/naming"
	"go.senan.xyz/preptag/tags"
)

// Action is a pending tag update for one file. Updates is never empty and holds
// only the keys whose value differs from Current.
type Action struct {
	Path    string // relative to the scan root
	Updates map[string]string
	Current map[string]string
}

// Derive reads the expected tags for an audio file from its own name and the names
// of its parent and grandparent directories.
func Derive(path string) (map[string]string, bool) {
	albumDir := filepath.Dir(path)
	artistDir := filepath.Dir(albumDir)

	album, year, ok := naming.AlbumYear(dirName(albumDir))
	if !ok {
		return nil, false
	}
	stem, _ := naming.SplitExt(filepath.Base(path))
	track, ok := naming.TrackNumber(stem)
	if !ok {
		return nil, false
	}
	artist := strings.TrimSpace(dirName(artistDir))
	if album == "" || artist == "" {
		return nil, false
	}

	album, artist = norm.NFC.String(album), norm.NFC.String(artist)
	return map[string]string{
		tags.Album:       album,
		tags.Date:        year,
		tags.Year:        year,
		tags.TrackNumber: track,
		tags.Artist:      artist,
		tags.AlbumArtist: artist,
		tags.Author:      artist,
	}, true
}

func dirName(dir string) string {
	if dir == "." || dir == filepath.Dir(dir) {
		return ""
	}
	return filepath.Base(dir)
}

// Diff keeps the derived values that differ from current. A missing current value
// counts as different.
func Diff(derived, current map[string]string) map[string]string {
	r := map[string]string{}
	for k, v := range derived {
		if cv, ok := current[k]; ok && cv == v {
			continue
		}
		r[k] = v
	}
	return r
}

// Plan walks root for audio files and returns the tag updates they need. A file
// the codec can't handle is planned as if it had no tags. Any other read error
// stops the scan.
func Plan(codec tags.Codec, root string) ([]Action, error) {
	if codec == nil {
		return nil, tags.ErrNoCodec
	}

	var actions []Action
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fileutil.WalkErr(path, d, err)
		}
		if !d.Type().IsRegular() || !tags.IsAudio(path) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("make rel: %w", err)
		}

		derived, ok := Derive(path)
		if !ok {
			slog.Debug("skipping file not in library layout", "path", rel)
			return nil
		}

		current, err := readCurrent(codec, path, slices.Sorted(maps.Keys(derived)))
		if err != nil {
			return fmt.Errorf("read %q: %w", rel, err)
		}

		updates := Diff(derived, current)
		if len(updates) == 0 {
			return nil
		}
		actions = append(actions, Action{Path: rel, Updates: updates, Current: current})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}
	return actions, nil
}

func readCurrent(codec tags.Codec, path string, keys []string) (map[string]string, error) {
	f, err := codec.Open(path)
	if errors.Is(err, tags.ErrUnsupported) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tags.Current(f, keys), nil
}

type Result struct {
	Action Action
	Err    error
}

func (r Result) Skipped() bool {
	return errors.Is(r.Err, tags.ErrUnsupported)
}

// Apply writes each action's updates in path order. Files the codec can't handle
// are skipped. Any other open or save error stops the run and is returned along
// with the results so far. Files already saved stay changed.
func Apply(ctx context.Context, codec tags.Codec, root string, actions []Action) ([]Result, error) {
	if codec == nil {
		return nil, tags.ErrNoCodec
	}

	actions = slices.Clone(actions)
	slices.SortStableFunc(actions, func(a, b Action) int {
		return cmp.Compare(a.Path, b.Path)
	})

	var results []Result
	for _, a := range actions {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		err := write(codec, filepath.Join(root, a.Path), a.Updates)
		if err != nil && !errors.Is(err, tags.ErrUnsupported) {
			return results, fmt.Errorf("write %q: %w", a.Path, err)
		}
		results = append(results, Result{Action: a, Err: err})
	}
	return results, nil
}

func write(codec tags.Codec, path string, updates map[string]string) error {
	f, err := codec.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	pathBase := filepath.Base(path)
	for _, k := range slices.Sorted(maps.Keys(updates)) {
		if l := slog.Default(); l.Enabled(context.Background(), slog.LevelDebug) {
			before, _ := f.Lookup(k)
			l.Debug("tag change", "file", pathBase, "key", k, "from", before, "to", updates[k])
		}
		f.Set(k, updates[k])
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

func Applied(results []Result) int {
	var n int
	for _, r := range results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

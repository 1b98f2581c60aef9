// Package rename plans and applies canonical renames of album directories and
// track files under a library root.
package rename

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"go.senan.xyz/preptag/fileutil"
	"go.senan.xyz/preptag/naming"
	"go.senan.xyz/preptag/pathformat"
)

var (
	ErrSourceMissing = errors.New("source missing")
	ErrTargetExists  = errors.New("target already exists")
)

type Kind uint8

const (
	File Kind = iota
	Dir
)

func (k Kind) String() string {
	switch k {
	case Dir:
		return "dir"
	default:
		return "file"
	}
}

// Action is a pending rename. Source and Target are relative to the scan root and
// never equal.
type Action struct {
	Kind           Kind
	Source, Target string
}

// Plan walks root and returns file renames, then directory renames. Nothing is
// touched on disk. Directories that can't be read are passed over.
func Plan(root string, albumFormat, trackFormat *pathformat.Format) ([]Action, error) {
	var files, dirs []Action
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fileutil.WalkErr(path, d, err)
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("make rel: %w", err)
		}

		switch {
		case d.IsDir():
			name, ok := naming.AlbumDir(d.Name(), albumFormat)
			if !ok {
				return nil
			}
			dirs = appendAction(dirs, Dir, rel, name)
		case d.Type().IsRegular():
			stem, ext := naming.SplitExt(d.Name())
			name, ok := naming.TrackFile(stem, trackFormat)
			if !ok {
				return nil
			}
			files = appendAction(files, File, rel, name+ext)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}
	return append(files, dirs...), nil
}

func appendAction(actions []Action, kind Kind, rel, name string) []Action {
	target := filepath.Join(filepath.Dir(rel), name)
	if target == rel {
		return actions
	}
	return append(actions, Action{Kind: kind, Source: rel, Target: target})
}

// Order sorts actions for applying. Files go first by source path, then directories
// deepest first so no directory is renamed out from under a pending action inside it.
func Order(actions []Action) []Action {
	var files, dirs []Action
	for _, a := range actions {
		switch a.Kind {
		case Dir:
			dirs = append(dirs, a)
		default:
			files = append(files, a)
		}
	}
	slices.SortStableFunc(files, func(a, b Action) int {
		return cmp.Compare(a.Source, b.Source)
	})
	slices.SortStableFunc(dirs, func(a, b Action) int {
		return cmp.Compare(fileutil.Depth(b.Source), fileutil.Depth(a.Source))
	})
	return append(files, dirs...)
}

type Result struct {
	Action Action
	Err    error
}

// Skipped is true for actions passed over because of a conflict on disk.
func (r Result) Skipped() bool {
	return errors.Is(r.Err, ErrSourceMissing) || errors.Is(r.Err, ErrTargetExists)
}

// Apply runs actions in Order against root, continuing past conflicts and failed
// renames. The returned error is only for ctx ending early.
func Apply(ctx context.Context, root string, actions []Action) ([]Result, error) {
	var results []Result
	for _, a := range Order(actions) {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, Result{Action: a, Err: apply(root, a)})
	}
	return results, nil
}

func apply(root string, a Action) error {
	src := filepath.Join(root, a.Source)
	dst := filepath.Join(root, a.Target)

	switch ok, err := fileutil.Exists(src); {
	case err != nil:
		return fmt.Errorf("stat source: %w", err)
	case !ok:
		return ErrSourceMissing
	}
	switch ok, err := fileutil.Exists(dst); {
	case err != nil:
		return fmt.Errorf("stat target: %w", err)
	case ok:
		return ErrTargetExists
	}

	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	slog.Debug("renamed", "kind", a.Kind, "from", a.Source, "to", a.Target)
	return nil
}

// Applied counts the results that renamed something.
func Applied(results []Result) int {
	var n int
	for _, r := range results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

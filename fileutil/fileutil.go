package fileutil

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Exists reports whether path exists without following a final symlink.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Depth counts the elements of a relative path, "a/b/c" is 3.
func Depth(rel string) int {
	rel = filepath.Clean(rel)
	if rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// IsDir stats path, following symlinks.
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// WalkErr is for the error case of a [fs.WalkDirFunc]. Directories that can't be read
// for lack of permission are skipped, anything else is returned.
func WalkErr(path string, d fs.DirEntry, err error) error {
	if d != nil && d.IsDir() && errors.Is(err, fs.ErrPermission) {
		slog.Debug("skipping unreadable dir", "path", path, "err", err)
		return fs.SkipDir
	}
	return err
}

package fileutil_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.senan.xyz/preptag/fileutil"
)

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, fileutil.Depth("."))
	assert.Equal(t, 1, fileutil.Depth("a"))
	assert.Equal(t, 2, fileutil.Depth(filepath.Join("a", "b")))
	assert.Equal(t, 3, fileutil.Depth(filepath.Join("a", "b", "c")))
	assert.Equal(t, 2, fileutil.Depth(filepath.Join("a", "b")+string(filepath.Separator)))
}

func TestExists(t *testing.T) {
	dir := t.TempDir()

	ok, err := fileutil.Exists(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.False(t, ok)

	path := filepath.Join(dir, "yep")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	ok, err = fileutil.Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	// dangling links still exist
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), link))
	ok, err = fileutil.Exists(link)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()

	ok, err := fileutil.IsDir(dir)
	require.NoError(t, err)
	assert.True(t, ok)

	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	ok, err = fileutil.IsDir(path)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = fileutil.IsDir(filepath.Join(dir, "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWalkErr(t *testing.T) {
	info, err := os.Stat(t.TempDir())
	require.NoError(t, err)
	dir := fs.FileInfoToDirEntry(info)

	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	info, err = os.Stat(path)
	require.NoError(t, err)
	file := fs.FileInfoToDirEntry(info)

	permErr := &fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}
	assert.Equal(t, fs.SkipDir, fileutil.WalkErr("x", dir, permErr))
	assert.ErrorIs(t, fileutil.WalkErr("x", nil, permErr), fs.ErrPermission)
	assert.ErrorIs(t, fileutil.WalkErr("x", file, permErr), fs.ErrPermission)

	notExist := &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}
	assert.ErrorIs(t, fileutil.WalkErr("x", dir, notExist), fs.ErrNotExist)
}

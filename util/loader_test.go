package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestListDirectoryImageFilesFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.jpg")
	touch(t, dir, "a.png")
	touch(t, dir, "c.webp")
	touch(t, dir, "d.bmp")
	touch(t, dir, "notes.txt")
	touch(t, dir, "archive.tar")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	files, err := ListDirectoryImageFiles(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a.png", "b.jpg", "c.webp", "d.bmp"}, names)
	for _, f := range files {
		assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
	}
}

func TestListDirectoryImageFilesEmptyDir(t *testing.T) {
	files, err := ListDirectoryImageFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestListDirectoryImageFilesMissingDir(t *testing.T) {
	_, err := ListDirectoryImageFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

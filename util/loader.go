package util

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pixelbench/go-filters/images"
)

// ImageFile identifies one image file in the input directory.
type ImageFile struct {
	// Path is the full path to the image file.
	Path string
	// Name is the bare filename, used for output naming.
	Name string
}

// ListDirectoryImageFiles returns the image files in a directory, sorted by
// name for a deterministic processing order.
//
// Arguments:
// - dir: Directory path containing image files.
//
// Returns:
// - []ImageFile: One entry per file with a decodable image extension.
// - error: Error if the directory cannot be read.
func ListDirectoryImageFiles(dir string) ([]ImageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []ImageFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := images.FormatForPath(entry.Name()); !ok {
			continue
		}
		files = append(files, ImageFile{
			Path: filepath.Join(dir, entry.Name()),
			Name: entry.Name(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

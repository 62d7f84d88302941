package cards

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// allowedExtensions is the raster formats accepted as card faces.
// Matching is case-insensitive.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Lister abstracts directory traversal so pairing logic can be tested
// against an in-memory implementation. Listings must be deterministic for
// a fixed directory state.
type Lister interface {
	// ListImages returns full paths of qualifying image files directly
	// under root, sorted by filename.
	ListImages(root string) ([]string, error)

	// ListSubdirs returns full paths of the immediate subdirectories of
	// root, sorted by name.
	ListSubdirs(root string) ([]string, error)

	// Exists reports whether path names an existing file.
	Exists(path string) bool
}

// DirLister is the filesystem-backed Lister.
type DirLister struct{}

func NewDirLister() DirLister {
	return DirLister{}
}

func (DirLister) ListImages(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsImageFile(entry.Name()) {
			images = append(images, filepath.Join(root, entry.Name()))
		}
	}

	// os.ReadDir is already sorted; keep the guarantee explicit for
	// other Lister implementations.
	sort.Strings(images)
	return images, nil
}

func (DirLister) ListSubdirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(root, entry.Name()))
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

func (DirLister) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsImageFile reports whether the filename has a qualifying raster image
// extension.
func IsImageFile(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

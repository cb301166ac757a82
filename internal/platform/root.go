package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrRootNotFound is returned by FindRoot when no notebook marker exists
// in the start directory or any of its parents.
var ErrRootNotFound = errors.New("notebook root not found")

// ConfigFiles are the recognised configuration file names, in lookup order.
var ConfigFiles = []string{"quire.yaml", "quire.yml", "quire.toml"}

// FindRoot walks up from startDir looking for a notebook: a .quire
// directory or a quire config file. It returns the absolute root path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for dir := abs; ; {
		if isMarked(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}

func isMarked(dir string) bool {
	if info, err := os.Stat(filepath.Join(dir, DefaultSystemDir)); err == nil && info.IsDir() {
		return true
	}
	_, ok := FindConfig(dir)
	return ok
}

// FindConfig returns the first config file present in dir.
func FindConfig(dir string) (string, bool) {
	for _, name := range ConfigFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

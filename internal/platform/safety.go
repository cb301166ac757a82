package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDevRun reports whether the process was started by `go run` or `go test`.
// Both build their binaries under the system temp directory.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	if strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe") {
		return true
	}
	return isUnder(os.TempDir(), exe)
}

// ResolvePath returns where a notebook should actually live.
// With sandbox set, paths outside the temp directory are re-rooted under
// <tmp>/quire-dev/<base name> so experiments never touch real notebooks.
func ResolvePath(userPath string, sandbox bool) string {
	if userPath == "" {
		userPath = "."
	}
	if !sandbox {
		return userPath
	}

	clean := filepath.Clean(userPath)
	if isUnder(os.TempDir(), clean) {
		return clean
	}

	name := filepath.Base(clean)
	if name == "." || name == ".." || name == string(os.PathSeparator) {
		name = "default"
	}
	return filepath.Join(os.TempDir(), "quire-dev", name)
}

func isUnder(root, path string) bool {
	if !filepath.IsAbs(path) {
		return false
	}
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

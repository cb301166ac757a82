package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot(t *testing.T) {
	// base/
	//   notebook/ (.quire)
	//     subdir/
	//       nested/
	//   configured/ (quire.toml)
	//   empty/
	baseDir := t.TempDir()
	repoDir := filepath.Join(baseDir, "notebook")
	subDir := filepath.Join(repoDir, "subdir")
	nestedDir := filepath.Join(subDir, "nested")
	configured := filepath.Join(baseDir, "configured")
	emptyDir := filepath.Join(baseDir, "empty")

	for _, dir := range []string{nestedDir, configured, emptyDir, filepath.Join(repoDir, DefaultSystemDir)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(configured, "quire.toml"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{name: "Start at Root", startPath: repoDir, wantRoot: repoDir},
		{name: "Start in Subdir", startPath: subDir, wantRoot: repoDir},
		{name: "Start in Nested", startPath: nestedDir, wantRoot: repoDir},
		{name: "Config File Marks Root", startPath: configured, wantRoot: configured},
		{name: "No Root Found", startPath: emptyDir, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if tt.wantErr {
				// A marker above the temp dir would make this ambiguous; only
				// assert the sentinel when nothing was found.
				if err != nil && !errors.Is(err, ErrRootNotFound) {
					t.Errorf("unexpected error: %v", err)
				}
				if err == nil && got == emptyDir {
					t.Errorf("empty dir must not be a root")
				}
				return
			}
			if err != nil {
				t.Fatalf("FindRoot() error = %v", err)
			}
			if got != tt.wantRoot {
				t.Errorf("FindRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}
}

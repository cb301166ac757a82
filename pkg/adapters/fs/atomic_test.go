package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "NOTES.json")

		if err := writeFileAtomic(filename, []byte("[]\n"), 0644); err != nil {
			t.Fatalf("writeFileAtomic failed: %v", err)
		}

		got, err := os.ReadFile(filename)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(got) != "[]\n" {
			t.Errorf("expected '[]\\n', got %q", string(got))
		}
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "TAGS.json")
		if err := os.WriteFile(filename, []byte(`[{"id":"old"}]`), 0644); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		if err := writeFileAtomic(filename, []byte("[]"), 0644); err != nil {
			t.Fatalf("writeFileAtomic failed: %v", err)
		}

		got, _ := os.ReadFile(filename)
		if string(got) != "[]" {
			t.Errorf("expected full overwrite, got %q", string(got))
		}
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		for i := 0; i < 3; i++ {
			if err := writeFileAtomic(filepath.Join(dir, "NOTES.json"), []byte("[]"), 0644); err != nil {
				t.Fatalf("write %d failed: %v", i, err)
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), TempFilePrefix) {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
		if len(entries) != 1 {
			t.Errorf("expected exactly one file, got %d", len(entries))
		}
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "missing", "NOTES.json")
		if err := writeFileAtomic(filename, []byte("[]"), 0644); err == nil {
			t.Error("expected error when directory is missing, got nil")
		}
	})
}

package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePath(t *testing.T) {
	t.Parallel()

	tempRoot := os.TempDir()
	devBase := filepath.Join(tempRoot, "quire-dev")

	tests := []struct {
		name     string
		userPath string
		sandbox  bool
		expected string
	}{
		{name: "Normal Mode - Current Dir", userPath: ".", expected: "."},
		{name: "Normal Mode - Empty", userPath: "", expected: "."},
		{name: "Normal Mode - Specific Path", userPath: "/some/path", expected: "/some/path"},
		{name: "Sandbox - Empty Path", userPath: "", sandbox: true, expected: filepath.Join(devBase, "default")},
		{name: "Sandbox - Current Dir", userPath: ".", sandbox: true, expected: filepath.Join(devBase, "default")},
		{name: "Sandbox - Relative Name", userPath: "journal", sandbox: true, expected: filepath.Join(devBase, "journal")},
		{name: "Sandbox - Traversal Is Flattened", userPath: "../bad/path", sandbox: true, expected: filepath.Join(devBase, "path")},
		{name: "Sandbox - Temp Dir Passes Through", userPath: filepath.Join(tempRoot, "my-test"), sandbox: true, expected: filepath.Join(tempRoot, "my-test")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePath(tt.userPath, tt.sandbox); got != tt.expected {
				t.Errorf("ResolvePath(%q, %v) = %q; want %q", tt.userPath, tt.sandbox, got, tt.expected)
			}
		})
	}
}

func TestIsDevRun(t *testing.T) {
	// This test runs inside "go test".
	if !IsDevRun() {
		t.Errorf("IsDevRun() = false; want true inside go test")
	}
}

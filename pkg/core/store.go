package core

import (
	"context"
	"fmt"
	"strings"
)

// Store defines the contract for the durable key-value service the notebook
// persists through. Values are opaque byte snapshots; every Set fully replaces
// what was stored under the key.
// Adhering to this interface keeps the domain independent of the storage
// mechanism (filesystem, SQLite, S3, memory).
type Store interface {
	// Get returns the value stored under key.
	// It returns an error wrapping ErrKeyNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// Initializer is implemented by stores that need setup before use
// (e.g., create directories, schema migration).
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Watchable is implemented by stores that can report external changes.
// The pattern is a doublestar glob matched against keys ("*" for all).
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// ValidateKey rejects keys that cannot be mapped safely onto a file name or object key.
func ValidateKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidKey, key)
	case key == "." || key == ".." || strings.Contains(key, ".."):
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

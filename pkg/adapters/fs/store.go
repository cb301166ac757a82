// Package fs stores each key as one file inside a notebook directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/quire/pkg/core"
)

// DefaultExt is the file extension used when Config.Ext is empty.
const DefaultExt = ".json"

// Store implements core.Store on a directory: key K lives in <Path>/K<Ext>.
type Store struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastEvent     *time.Time
	writes        int
}

// Config holds the configuration for the filesystem store.
type Config struct {
	Path      string
	Ext       string // e.g. ".json" or ".yaml"
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger

	// ErrorHandler receives watcher failures that have no caller to return to.
	ErrorHandler func(error)
}

// NewStore creates a new filesystem-backed store.
func NewStore(config Config) *Store {
	if config.Ext == "" {
		config.Ext = DefaultExt
	}
	if !strings.HasPrefix(config.Ext, ".") {
		config.Ext = "." + config.Ext
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{Path: config.Path, config: config}
}

// Initialize prepares the notebook directory.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("notebook path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat notebook path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("notebook path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create notebook directory: %w", err)
	}
	return nil
}

// FilePath returns the file that backs key.
func (s *Store) FilePath(key string) string {
	return filepath.Join(s.Path, key+s.config.Ext)
}

// Ext returns the file extension of stored keys.
func (s *Store) Ext() string {
	return s.config.Ext
}

// Get reads the file backing key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := core.ValidateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.FilePath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set atomically replaces the file backing key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return fmt.Errorf("%w: cannot write %s", core.ErrReadOnly, key)
	}
	if err := core.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create notebook directory: %w", err)
	}
	if err := writeFileAtomic(s.FilePath(key), value, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	s.mu.Lock()
	s.writes++
	s.mu.Unlock()

	s.config.Logger.Debug("stored key", "key", key, "bytes", len(value))
	return nil
}

// keyFor maps a file path back to its key.
// ok is false for files that do not belong to the store (other extensions, temp files).
func (s *Store) keyFor(path string) (key string, ok bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, TempFilePrefix) {
		return "", false
	}
	if filepath.Ext(base) != s.config.Ext {
		return "", false
	}
	key = strings.TrimSuffix(base, s.config.Ext)
	if core.ValidateKey(key) != nil {
		return "", false
	}
	return key, true
}

// Package sqlite keeps every key as one row of a single key-value table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aretw0/introspection"

	"github.com/aretw0/quire/pkg/core"
)

// DefaultFile is the database file name used inside a notebook directory.
const DefaultFile = "quire.db"

// Config holds the configuration for the SQLite store.
type Config struct {
	// Path is the database file.
	Path     string
	ReadOnly bool
	Logger   *slog.Logger
}

// Store implements core.Store on a SQLite database.
type Store struct {
	config Config
	db     *sql.DB

	mu     sync.RWMutex
	writes int
}

// NewStore creates a store for the database at config.Path.
// The database is opened by Initialize.
func NewStore(config Config) *Store {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{config: config}
}

// Initialize opens the database and creates the schema if needed.
func (s *Store) Initialize(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	dsn := s.config.Path
	if s.config.ReadOnly {
		if _, err := os.Stat(s.config.Path); err != nil {
			return fmt.Errorf("opening read-only database: %w", err)
		}
		dsn = "file:" + s.config.Path + "?mode=ro"
	} else if err := os.MkdirAll(filepath.Dir(s.config.Path), 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps PRAGMAs and the write order simple.
	db.SetMaxOpenConns(1)

	if !s.config.ReadOnly {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return fmt.Errorf("enabling WAL mode: %w", err)
		}
		if err := createSchema(ctx, db); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	s.db = db
	s.config.Logger.Debug("sqlite store initialized", "path", s.config.Path, "read_only", s.config.ReadOnly)
	return nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME NOT NULL
		)`)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := core.ValidateKey(key); err != nil {
		return nil, err
	}
	if s.db == nil {
		return nil, errors.New("sqlite store not initialized")
	}

	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
		}
		// A read-only database written by nobody yet has no table.
		if s.config.ReadOnly && isMissingTable(err) {
			return nil, fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
		}
		return nil, fmt.Errorf("querying %s: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

// Set upserts the value stored under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return fmt.Errorf("%w: cannot write %s", core.ErrReadOnly, key)
	}
	if err := core.ValidateKey(key); err != nil {
		return err
	}
	if s.db == nil {
		return errors.New("sqlite store not initialized")
	}
	if value == nil {
		value = []byte{}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}

	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
	return nil
}

func isMissingTable(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "no such table")
}

// StoreState exposes internal state for observability.
type StoreState struct {
	Path     string `json:"path"`
	ReadOnly bool   `json:"read_only"`
	Open     bool   `json:"open"`
	Writes   int    `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StoreState{
		Path:     s.config.Path,
		ReadOnly: s.config.ReadOnly,
		Open:     s.db != nil,
		Writes:   s.writes,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

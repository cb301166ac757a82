package quire

import (
	"context"
	"log/slog"

	"github.com/aretw0/quire/internal/platform"
	"github.com/aretw0/quire/pkg/core"
	"github.com/aretw0/quire/pkg/notebook"
)

// --- Errors ---

var (
	ErrKeyNotFound  = core.ErrKeyNotFound
	ErrReadOnly     = core.ErrReadOnly
	ErrPersistence  = core.ErrPersistence
	ErrMalformed    = core.ErrMalformed
	ErrNotFound     = notebook.ErrNotFound
	ErrAmbiguous    = notebook.ErrAmbiguous
	ErrRootNotFound = platform.ErrRootNotFound
)

// --- Types ---

type (
	Tag       = core.Tag
	Note      = core.Note
	RawNote   = core.RawNote
	NoteData  = core.NoteData
	Event     = core.Event
	Filter    = core.Filter
	Store     = core.Store
	Watchable = core.Watchable

	// Notebook is an open notebook.
	Notebook = notebook.Service
	// Batch stages several mutations; see Notebook.Batch.
	Batch    = notebook.Batch
)

// --- Configuration ---

// Option defines a functional option for opening a notebook.
type Option = platform.Option

// S3Options configures the "s3" adapter.
type S3Options = platform.S3Options

// Config is the quire.yaml / quire.toml file format.
type Config = platform.Config

// WithLogger sets the logger for the store and the notebook.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore injects a custom store. Adapter selection is skipped.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "s3", "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithFormat selects the record encoding ("json" or "yaml").
func WithFormat(name string) Option {
	return platform.WithFormat(name)
}

// WithSystemDir sets the hidden directory name (default ".quire").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithReadOnly opens the notebook without ever writing to it.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist fails instead of creating a missing notebook directory.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the temp-dir sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithWatcherErrorHandler receives runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithIDGenerator replaces the identifier source for new notes and tags.
func WithIDGenerator(fn func() string) Option {
	return platform.WithIDGenerator(fn)
}

// WithS3 configures the "s3" adapter.
func WithS3(cfg S3Options) Option {
	return platform.WithS3(cfg)
}

// --- Factory ---

// New opens the notebook at path and also returns the store behind it, for
// callers that watch it or must close it.
func New(ctx context.Context, path string, opts ...Option) (*Notebook, Store, error) {
	return platform.New(ctx, path, opts...)
}

// Open opens (creating if needed) the notebook at path.
func Open(ctx context.Context, path string, opts ...Option) (*Notebook, error) {
	nb, _, err := platform.New(ctx, path, opts...)
	return nb, err
}

// Init builds and initializes the store a notebook at path would use.
func Init(ctx context.Context, path string, opts ...Option) (core.Store, error) {
	return platform.Init(ctx, path, opts...)
}

// LoadConfig reads quire.yaml or quire.toml, expanding ${VAR} references.
func LoadConfig(path string) (*Config, error) {
	return platform.LoadConfig(path)
}

// FindConfig returns the config file present in dir, if any.
func FindConfig(dir string) (string, bool) {
	return platform.FindConfig(dir)
}

// WriteDefaultConfig writes a starter quire.yaml into dir unless a config
// file already exists there. It returns the config path.
func WriteDefaultConfig(dir string, cfg Config) (string, error) {
	return platform.WriteDefaultConfig(dir, cfg)
}

// --- Pure queries ---

// DeriveNotes joins raw notes with the tags they reference.
func DeriveNotes(raw []RawNote, tags []Tag) []Note {
	return core.DeriveNotes(raw, tags)
}

// FilterNotes keeps notes whose title contains titleQuery (case-insensitive)
// and which carry every selected tag.
func FilterNotes(notes []Note, titleQuery string, selected []Tag) []Note {
	return core.FilterNotes(notes, titleQuery, selected)
}

// --- Safety & Utils ---

// ResolvePath reports where a notebook path resolves under the dev sandbox rules.
func ResolvePath(userPath string, sandbox bool) string {
	return platform.ResolvePath(userPath, sandbox)
}

// IsDevRun reports whether the process runs under `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot walks up from startDir to the nearest notebook root.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

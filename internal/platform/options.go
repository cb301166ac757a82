package platform

import (
	"log/slog"

	"github.com/aretw0/quire/pkg/core"
)

// DefaultSystemDir is the hidden directory holding a notebook's records.
const DefaultSystemDir = ".quire"

// S3Options configures the "s3" adapter.
type S3Options struct {
	Endpoint        string
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// options holds the internal configuration for opening a notebook.
type options struct {
	store        core.Store
	logger       *slog.Logger
	adapter      string
	format       string
	systemDir    string
	readOnly     bool
	mustExist    bool
	forceTemp    bool
	devSafety    bool
	errorHandler func(error)
	newID        core.IDFunc
	s3           S3Options
}

// Option defines a functional option for configuring a notebook.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:   "fs",
		format:    "json",
		systemDir: DefaultSystemDir,
		devSafety: true,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for the store and the notebook.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore injects a ready store (e.g. a mock). Adapter selection is skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAdapter selects the storage adapter by name: "fs" (default), "sqlite", "s3" or "memory".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithFormat selects the record encoding: "json" (default) or "yaml".
func WithFormat(name string) Option {
	return func(o *options) {
		o.format = name
	}
}

// WithSystemDir sets the hidden directory name (default ".quire").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Every write returns core.ErrReadOnly.
// 2. Initialization (mkdir, schema) is skipped; the notebook must exist.
// 3. The dev sandbox is bypassed (uses the real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithMustExist ensures the notebook directory already exists.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true) the notebook is re-rooted into a temporary directory.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithWatcherErrorHandler receives runtime watcher failures (e.g. permission denied)
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithIDGenerator replaces the identifier source for new notes and tags.
func WithIDGenerator(fn core.IDFunc) Option {
	return func(o *options) {
		o.newID = fn
	}
}

// WithS3 configures the "s3" adapter.
func WithS3(cfg S3Options) Option {
	return func(o *options) {
		o.s3 = cfg
	}
}

package notebook

import (
	"io"
	"log/slog"

	"github.com/aretw0/quire/pkg/core"
	"github.com/aretw0/quire/pkg/typed"
)

// Default record keys.
const (
	DefaultNotesKey = "NOTES"
	DefaultTagsKey  = "TAGS"
)

type options struct {
	logger   *slog.Logger
	newID    core.IDFunc
	notesKey string
	tagsKey  string
	codec    typed.Codec
}

// Option configures a Service.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:    core.NewID,
		notesKey: DefaultNotesKey,
		tagsKey:  DefaultTagsKey,
		codec:    typed.NewJSONCodec(false),
	}
}

// WithLogger sets the logger. Load problems are reported at WARN,
// failed saves at ERROR.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithIDGenerator replaces the identifier source for new notes and tags.
func WithIDGenerator(fn core.IDFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithKeys sets the store keys holding the note and tag records.
func WithKeys(notes, tags string) Option {
	return func(o *options) {
		o.notesKey = notes
		o.tagsKey = tags
	}
}

// WithCodec sets the encoding of both records.
func WithCodec(c typed.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

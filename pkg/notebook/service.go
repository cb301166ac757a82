// Package notebook is the boundary the presentation layer talks to: it owns
// the tag and note collections, keeps them persisted write-through, and
// serves the derived and filtered views.
package notebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/aretw0/quire/pkg/core"
	"github.com/aretw0/quire/pkg/typed"
)

var (
	// ErrNotFound is returned by lookups (FindNote, FindTag, ResolveTags).
	// Mutations never return it; unknown IDs are no-ops there.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a reference matches more than one item.
	ErrAmbiguous = errors.New("ambiguous reference")
)

// Service is a loaded notebook.
//
// Every mutation is applied in memory first and then the touched collection
// is written in full, synchronously. A failed write is returned (wrapping
// core.ErrPersistence) but the in-memory change stands.
type Service struct {
	mu     sync.Mutex
	logger *slog.Logger
	store  core.Store
	newID  core.IDFunc

	notesRec *typed.Record[[]core.RawNote]
	tagsRec  *typed.Record[[]core.Tag]

	notes   *core.NoteStore
	tags    *core.TagStore
	deriver core.Deriver

	loadErrs    []error
	saves       int
	failedSaves int
}

// Open loads a notebook from store.
// Missing records start empty. Malformed or unreadable records also start
// empty; the problem is logged and kept in LoadErrors, and Open succeeds.
func Open(ctx context.Context, store core.Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("notebook: store is required")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := core.ValidateKey(o.notesKey); err != nil {
		return nil, fmt.Errorf("notebook: notes key: %w", err)
	}
	if err := core.ValidateKey(o.tagsKey); err != nil {
		return nil, fmt.Errorf("notebook: tags key: %w", err)
	}
	if o.notesKey == o.tagsKey {
		return nil, fmt.Errorf("notebook: notes and tags share the key %q", o.notesKey)
	}

	s := &Service{
		logger:   o.logger,
		store:    store,
		newID:    o.newID,
		notesRec: typed.NewRecord[[]core.RawNote](store, o.notesKey, o.codec),
		tagsRec:  typed.NewRecord[[]core.Tag](store, o.tagsKey, o.codec),
	}

	notes, notesErr := s.notesRec.Load(ctx, nil)
	tags, tagsErr := s.tagsRec.Load(ctx, nil)
	for _, err := range []error{notesErr, tagsErr} {
		if err != nil {
			s.logger.Warn("starting with an empty collection", "error", err)
			s.loadErrs = append(s.loadErrs, err)
		}
	}
	s.notes = core.NewNoteStore(notes, s.newID)
	s.tags = core.NewTagStore(tags, s.newID)

	s.logger.Debug("notebook opened", "notes", s.notes.Len(), "tags", s.tags.Len())
	return s, nil
}

// LoadErrors returns the problems met while loading. The affected
// collections started empty.
func (s *Service) LoadErrors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.loadErrs...)
}

// --- Notes ---

// CreateNote appends a note whose tag references are taken from data.Tags.
func (s *Service) CreateNote(ctx context.Context, data core.NoteData) (core.RawNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note := s.notes.Create(data)
	s.logger.Debug("note created", "id", note.ID, "tags", len(note.TagIDs))
	return note, s.saveNotes(ctx)
}

// UpdateNote overwrites title, markdown and tag set of a note.
// It reports false, and writes nothing, if id is unknown.
func (s *Service) UpdateNote(ctx context.Context, id string, data core.NoteData) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.notes.Update(id, data) {
		return false, nil
	}
	s.logger.Debug("note updated", "id", id)
	return true, s.saveNotes(ctx)
}

// DeleteNote removes a note. Unknown ids are ignored.
func (s *Service) DeleteNote(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.notes.Delete(id) {
		return false, nil
	}
	s.logger.Debug("note deleted", "id", id)
	return true, s.saveNotes(ctx)
}

// --- Tags ---

// AddTag creates a tag with a fresh id. Any label, including "", is accepted.
func (s *Service) AddTag(ctx context.Context, label string) (core.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag := s.tags.Add(label)
	s.logger.Debug("tag added", "id", tag.ID, "label", label)
	return tag, s.saveTags(ctx)
}

// InsertTag appends a tag created elsewhere, e.g. inline while authoring a
// note. A tag whose id already exists is ignored.
func (s *Service) InsertTag(ctx context.Context, tag core.Tag) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tags.Insert(tag) {
		return false, nil
	}
	return true, s.saveTags(ctx)
}

// UpdateTag renames a tag. Unknown ids are ignored.
func (s *Service) UpdateTag(ctx context.Context, id, label string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tags.Update(id, label) {
		return false, nil
	}
	s.logger.Debug("tag renamed", "id", id, "label", label)
	return true, s.saveTags(ctx)
}

// DeleteTag removes a tag. Notes keep referencing its id in storage; the
// derived view simply stops showing it. Unknown ids are ignored.
func (s *Service) DeleteTag(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tags.Delete(id) {
		return false, nil
	}
	s.logger.Debug("tag deleted", "id", id)
	return true, s.saveTags(ctx)
}

// --- Queries ---

// Notes returns the derived view: every note with its tags resolved.
// The view is recomputed only after notes or tags changed.
func (s *Service) Notes() []core.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deriver.Derive(s.notes, s.tags)
}

// RawNotes returns the notes as stored, with unresolved tag ids included.
func (s *Service) RawNotes() []core.RawNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.All()
}

// Tags returns all tags in insertion order.
func (s *Service) Tags() []core.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tags.All()
}

// Filter returns the derived notes matching title and carrying every tag in selected.
func (s *Service) Filter(title string, selected []core.Tag) []core.Note {
	return core.FilterNotes(s.Notes(), title, selected)
}

// Note returns the derived note with the given id.
func (s *Service) Note(id string) (core.Note, bool) {
	for _, n := range s.Notes() {
		if n.ID == id {
			return n, true
		}
	}
	return core.Note{}, false
}

// FindNote resolves ref as an exact id, then as a unique id prefix.
func (s *Service) FindNote(ref string) (core.Note, error) {
	if ref == "" {
		return core.Note{}, fmt.Errorf("note %w: empty reference", ErrNotFound)
	}
	notes := s.Notes()

	var matches []core.Note
	for _, n := range notes {
		if n.ID == ref {
			return n, nil
		}
		if strings.HasPrefix(n.ID, ref) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 0:
		return core.Note{}, fmt.Errorf("note %q: %w", ref, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return core.Note{}, fmt.Errorf("note %q matches %d notes: %w", ref, len(matches), ErrAmbiguous)
	}
}

// FindTag resolves ref as an exact id, then a unique label, then a unique
// case-insensitive label, then a unique id prefix.
func (s *Service) FindTag(ref string) (core.Tag, error) {
	return findTag(s.Tags(), ref)
}

func findTag(tags []core.Tag, ref string) (core.Tag, error) {
	for _, t := range tags {
		if t.ID == ref {
			return t, nil
		}
	}

	lookups := []func(core.Tag) bool{
		func(t core.Tag) bool { return t.Label == ref },
		func(t core.Tag) bool { return strings.EqualFold(t.Label, ref) },
		func(t core.Tag) bool { return ref != "" && strings.HasPrefix(t.ID, ref) },
	}
	for _, match := range lookups {
		var found []core.Tag
		for _, t := range tags {
			if match(t) {
				found = append(found, t)
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			return found[0], nil
		default:
			return core.Tag{}, fmt.Errorf("tag %q matches %d tags: %w", ref, len(found), ErrAmbiguous)
		}
	}
	return core.Tag{}, fmt.Errorf("tag %q: %w", ref, ErrNotFound)
}

// ResolveTags maps references (ids or labels) to tags, deduplicated and in
// input order. With create, unknown labels become new tags and the tag
// collection is written once. New tags are staged until every reference
// resolved; on error nothing changes.
func (s *Service) ResolveTags(ctx context.Context, refs []string, create bool) ([]core.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.tags.Clone()
	var (
		out     []core.Tag
		created int
	)
	for _, ref := range refs {
		tag, err := findTag(staged.All(), ref)
		switch {
		case err == nil:
		case errors.Is(err, ErrNotFound) && create:
			tag = staged.Add(ref)
			created++
		default:
			return nil, err
		}
		if !containsTag(out, tag.ID) {
			out = append(out, tag)
		}
	}

	if created > 0 {
		s.tags = staged
		s.deriver.Invalidate()
		s.logger.Debug("tags created inline", "count", created)
		return out, s.saveTags(ctx)
	}
	return out, nil
}

func containsTag(tags []core.Tag, id string) bool {
	for _, t := range tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

// --- Persistence ---

// Reload re-reads both records. A record that fails to load keeps its
// current in-memory collection; the problems are returned joined.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	notes, err := s.notesRec.Load(ctx, nil)
	if err != nil {
		errs = append(errs, err)
	} else {
		s.notes = core.NewNoteStore(notes, s.newID)
	}
	tags, err := s.tagsRec.Load(ctx, nil)
	if err != nil {
		errs = append(errs, err)
	} else {
		s.tags = core.NewTagStore(tags, s.newID)
	}
	s.deriver.Invalidate()

	if len(errs) > 0 {
		err := errors.Join(errs...)
		s.logger.Warn("reload kept previous state", "error", err)
		return err
	}
	s.logger.Debug("notebook reloaded", "notes", s.notes.Len(), "tags", s.tags.Len())
	return nil
}

// Flush rewrites both collections. It is the retry path after a failed save.
func (s *Service) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Join(s.saveTags(ctx), s.saveNotes(ctx))
}

func (s *Service) saveNotes(ctx context.Context) error {
	return s.record(s.notesRec.Key(), s.notesRec.Save(ctx, s.notes.All()))
}

func (s *Service) saveTags(ctx context.Context) error {
	return s.record(s.tagsRec.Key(), s.tagsRec.Save(ctx, s.tags.All()))
}

func (s *Service) record(key string, err error) error {
	if err != nil {
		s.failedSaves++
		s.logger.Error("failed to persist collection, keeping in-memory state", "key", key, "error", err)
		return err
	}
	s.saves++
	return nil
}

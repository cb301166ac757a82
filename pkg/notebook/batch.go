package notebook

import (
	"context"
	"errors"

	"github.com/aretw0/quire/pkg/core"
)

// Batch stages several mutations against copies of the collections.
// It is only valid inside the function passed to Service.Batch.
type Batch struct {
	notes      *core.NoteStore
	tags       *core.TagStore
	notesDirty bool
	tagsDirty  bool
}

// CreateNote stages a new note.
func (b *Batch) CreateNote(data core.NoteData) core.RawNote {
	b.notesDirty = true
	return b.notes.Create(data)
}

// UpdateNote stages a full overwrite of a note. Unknown ids report false.
func (b *Batch) UpdateNote(id string, data core.NoteData) bool {
	ok := b.notes.Update(id, data)
	b.notesDirty = b.notesDirty || ok
	return ok
}

// DeleteNote stages the removal of a note.
func (b *Batch) DeleteNote(id string) bool {
	ok := b.notes.Delete(id)
	b.notesDirty = b.notesDirty || ok
	return ok
}

// AddTag stages a new tag with a fresh id.
func (b *Batch) AddTag(label string) core.Tag {
	b.tagsDirty = true
	return b.tags.Add(label)
}

// InsertTag stages a tag created elsewhere. Known ids report false.
func (b *Batch) InsertTag(tag core.Tag) bool {
	ok := b.tags.Insert(tag)
	b.tagsDirty = b.tagsDirty || ok
	return ok
}

// UpdateTag stages a rename.
func (b *Batch) UpdateTag(id, label string) bool {
	ok := b.tags.Update(id, label)
	b.tagsDirty = b.tagsDirty || ok
	return ok
}

// DeleteTag stages the removal of a tag; notes keep their references.
func (b *Batch) DeleteTag(id string) bool {
	ok := b.tags.Delete(id)
	b.tagsDirty = b.tagsDirty || ok
	return ok
}

// FindTag resolves a reference against the staged tags.
func (b *Batch) FindTag(ref string) (core.Tag, error) {
	return findTag(b.tags.All(), ref)
}

// Tags returns the staged tags.
func (b *Batch) Tags() []core.Tag {
	return b.tags.All()
}

// Notes returns the derived view of the staged collections.
func (b *Batch) Notes() []core.Note {
	return core.DeriveNotes(b.notes.All(), b.tags.All())
}

// Batch runs fn against staged copies of both collections. If fn returns an
// error nothing changes. Otherwise the copies replace the live collections and
// each collection fn touched is written exactly once.
//
// The end state on storage equals applying the same mutations one by one.
func (s *Service) Batch(ctx context.Context, fn func(*Batch) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := &Batch{notes: s.notes.Clone(), tags: s.tags.Clone()}
	if err := fn(b); err != nil {
		s.logger.Debug("batch discarded", "error", err)
		return err
	}

	s.notes, s.tags = b.notes, b.tags
	s.deriver.Invalidate()

	var errs []error
	if b.tagsDirty {
		errs = append(errs, s.saveTags(ctx))
	}
	if b.notesDirty {
		errs = append(errs, s.saveNotes(ctx))
	}
	return errors.Join(errs...)
}

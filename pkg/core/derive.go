package core

import "sync"

// DeriveNotes joins every raw note with the tags it references.
// Tag IDs that no longer resolve are dropped from the derived note only;
// the raw note keeps them. Resolved tags follow the order of tags.
// DeriveNotes has no side effects and returns fresh slices.
func DeriveNotes(raw []RawNote, tags []Tag) []Note {
	notes := make([]Note, 0, len(raw))
	for _, r := range raw {
		wanted := make(map[string]struct{}, len(r.TagIDs))
		for _, id := range r.TagIDs {
			wanted[id] = struct{}{}
		}

		resolved := make([]Tag, 0, len(r.TagIDs))
		for _, t := range tags {
			if _, ok := wanted[t.ID]; ok {
				resolved = append(resolved, t)
			}
		}

		notes = append(notes, Note{
			ID:       r.ID,
			Title:    r.Title,
			Markdown: r.Markdown,
			Tags:     resolved,
		})
	}
	return notes
}

// Deriver memoizes DeriveNotes for a pair of stores.
// The cached view is keyed on the identity and revision of both stores and
// recomputed only when either of them was replaced or moved.
type Deriver struct {
	mu       sync.Mutex
	notes    *NoteStore
	tags     *TagStore
	notesRev uint64
	tagsRev  uint64
	valid    bool
	view     []Note
	computed int
}

// Derive returns the joined view of notes and tags, recomputing only if
// either store is a different one or changed since the last call.
func (d *Deriver) Derive(notes *NoteStore, tags *TagStore) []Note {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.valid || d.notes != notes || d.tags != tags ||
		d.notesRev != notes.Revision() || d.tagsRev != tags.Revision() {
		d.view = DeriveNotes(notes.notes, tags.tags)
		d.notes, d.tags = notes, tags
		d.notesRev = notes.Revision()
		d.tagsRev = tags.Revision()
		d.valid = true
		d.computed++
	}
	return cloneNotes(d.view)
}

// Invalidate drops the cached view.
func (d *Deriver) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.valid = false
	d.view = nil
	d.notes, d.tags = nil, nil
}

// Computations returns how many times the view was actually recomputed.
func (d *Deriver) Computations() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.computed
}

func cloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		tags := make([]Tag, len(n.Tags))
		copy(tags, n.Tags)
		n.Tags = tags
		out[i] = n
	}
	return out
}

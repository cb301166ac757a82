package core

import "slices"

// NoteStore is the ordered in-memory collection of raw notes.
// It is not safe for concurrent use; the notebook service serializes access.
type NoteStore struct {
	notes []RawNote
	rev   uint64
	newID IDFunc
}

// NewNoteStore creates a store seeded with notes (deep copied).
// A nil newID falls back to NewID.
func NewNoteStore(notes []RawNote, newID IDFunc) *NoteStore {
	if newID == nil {
		newID = NewID
	}
	return &NoteStore{notes: cloneRawNotes(notes), newID: newID}
}

// Create appends a note with a fresh ID. Its tag IDs are taken from data.Tags.
func (s *NoteStore) Create(data NoteData) RawNote {
	note := RawNote{
		ID:       s.newID(),
		Title:    data.Title,
		Markdown: data.Markdown,
		TagIDs:   TagIDs(data.Tags),
	}
	s.notes = append(s.notes, note)
	s.rev++
	return cloneRawNote(note)
}

// Update overwrites title, markdown and tag IDs of the note with the given ID.
// The tag set is replaced, not merged. Unknown IDs are ignored.
func (s *NoteStore) Update(id string, data NoteData) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.notes[i] = RawNote{
		ID:       id,
		Title:    data.Title,
		Markdown: data.Markdown,
		TagIDs:   TagIDs(data.Tags),
	}
	s.rev++
	return true
}

// Delete removes the note with the given ID. Unknown IDs are ignored.
func (s *NoteStore) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.notes = slices.Delete(s.notes, i, i+1)
	s.rev++
	return true
}

// Get returns a copy of the note with the given ID.
func (s *NoteStore) Get(id string) (RawNote, bool) {
	i := s.index(id)
	if i < 0 {
		return RawNote{}, false
	}
	return cloneRawNote(s.notes[i]), true
}

// All returns a deep copy of the notes in insertion order.
func (s *NoteStore) All() []RawNote {
	return cloneRawNotes(s.notes)
}

// Len returns the number of notes.
func (s *NoteStore) Len() int {
	return len(s.notes)
}

// Revision changes every time the collection changes.
func (s *NoteStore) Revision() uint64 {
	return s.rev
}

// Clone returns an independent copy sharing the ID generator.
func (s *NoteStore) Clone() *NoteStore {
	return &NoteStore{notes: s.All(), rev: s.rev, newID: s.newID}
}

func (s *NoteStore) index(id string) int {
	return slices.IndexFunc(s.notes, func(n RawNote) bool { return n.ID == id })
}

// TagIDs extracts the IDs of tags, dropping duplicates and keeping first-seen order.
// It never returns nil so an untagged note serializes as an empty list.
func TagIDs(tags []Tag) []string {
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		if !slices.Contains(ids, t.ID) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func cloneRawNote(n RawNote) RawNote {
	n.TagIDs = slices.Clone(n.TagIDs)
	if n.TagIDs == nil {
		n.TagIDs = []string{}
	}
	return n
}

func cloneRawNotes(notes []RawNote) []RawNote {
	out := make([]RawNote, len(notes))
	for i, n := range notes {
		out[i] = cloneRawNote(n)
	}
	return out
}

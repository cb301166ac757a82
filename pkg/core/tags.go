package core

import (
	"slices"

	"github.com/google/uuid"
)

// IDFunc generates a fresh, non-sequential identifier.
type IDFunc func() string

// NewID is the default IDFunc: a random UUIDv4.
func NewID() string {
	return uuid.NewString()
}

// TagStore is the ordered in-memory collection of tags.
// It is not safe for concurrent use; the notebook service serializes access.
type TagStore struct {
	tags  []Tag
	rev   uint64
	newID IDFunc
}

// NewTagStore creates a store seeded with tags (copied).
// A nil newID falls back to NewID.
func NewTagStore(tags []Tag, newID IDFunc) *TagStore {
	if newID == nil {
		newID = NewID
	}
	return &TagStore{tags: slices.Clone(tags), newID: newID}
}

// Add creates a tag with a fresh ID and appends it. Any label is accepted.
func (s *TagStore) Add(label string) Tag {
	tag := Tag{ID: s.newID(), Label: label}
	s.tags = append(s.tags, tag)
	s.rev++
	return tag
}

// Insert appends a tag whose ID was generated by the caller.
// It is a no-op if a tag with the same ID already exists.
func (s *TagStore) Insert(tag Tag) bool {
	if s.index(tag.ID) >= 0 {
		return false
	}
	s.tags = append(s.tags, tag)
	s.rev++
	return true
}

// Update replaces the label of the tag with the given ID.
// Unknown IDs are ignored.
func (s *TagStore) Update(id, label string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tags[i].Label = label
	s.rev++
	return true
}

// Delete removes the tag with the given ID. Unknown IDs are ignored.
// Notes referencing the tag are left untouched.
func (s *TagStore) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tags = slices.Delete(s.tags, i, i+1)
	s.rev++
	return true
}

// Get returns the tag with the given ID.
func (s *TagStore) Get(id string) (Tag, bool) {
	i := s.index(id)
	if i < 0 {
		return Tag{}, false
	}
	return s.tags[i], true
}

// All returns a copy of the tags in insertion order.
func (s *TagStore) All() []Tag {
	out := make([]Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// Len returns the number of tags.
func (s *TagStore) Len() int {
	return len(s.tags)
}

// Revision changes every time the collection changes.
func (s *TagStore) Revision() uint64 {
	return s.rev
}

// Clone returns an independent copy sharing the ID generator.
func (s *TagStore) Clone() *TagStore {
	return &TagStore{tags: s.All(), rev: s.rev, newID: s.newID}
}

func (s *TagStore) index(id string) int {
	return slices.IndexFunc(s.tags, func(t Tag) bool { return t.ID == id })
}

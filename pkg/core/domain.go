// Package core holds the notebook domain: tags, notes, the derived join view,
// the filter, and the key-value contract the persistence layer writes through.
package core

import "fmt"

// Tag is a label that can be attached to notes.
// ID never changes once created; Label may be renamed and is not unique.
type Tag struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// RawNote is the persisted form of a note.
// It references tags by ID only, never by value.
type RawNote struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Markdown string   `json:"markdown" yaml:"markdown"`
	TagIDs   []string `json:"tagIds" yaml:"tagIds"`
}

// NoteData is the user supplied content of a note, with tags attached as objects.
type NoteData struct {
	Title    string `json:"title" yaml:"title"`
	Markdown string `json:"markdown" yaml:"markdown"`
	Tags     []Tag  `json:"tags" yaml:"tags"`
}

// Note is a RawNote whose tag IDs were resolved against the current tags.
// It is recomputed on demand and never persisted.
type Note struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Markdown string `json:"markdown" yaml:"markdown"`
	Tags     []Tag  `json:"tags" yaml:"tags"`
}

// HasTag reports whether the note carries a tag with the given ID.
func (n Note) HasTag(id string) bool {
	for _, t := range n.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

// EventType represents the type of change observed in a store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a key in a store.
type Event struct {
	Type      EventType `json:"type" yaml:"type"`
	Key       string    `json:"key" yaml:"key"`
	Timestamp int64     `json:"timestamp" yaml:"timestamp"` // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Key)
}

package core

import "strings"

// FilterNotes returns the notes whose title contains titleQuery
// (case-insensitive, empty matches all) and which carry every tag in selected
// (matched by ID). The input order is preserved and the result is never nil.
func FilterNotes(notes []Note, titleQuery string, selected []Tag) []Note {
	return Filter{Title: titleQuery, Tags: selected}.Apply(notes)
}

// Filter holds a title query and a tag selection.
type Filter struct {
	Title string
	Tags  []Tag
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Title == "" && len(f.Tags) == 0
}

// Match reports whether a single note passes both predicates.
func (f Filter) Match(n Note) bool {
	return f.matchTitle(strings.ToLower(f.Title), n) && f.matchTags(n)
}

// Apply filters notes, keeping their order.
func (f Filter) Apply(notes []Note) []Note {
	query := strings.ToLower(f.Title)
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if f.matchTitle(query, n) && f.matchTags(n) {
			out = append(out, n)
		}
	}
	return out
}

func (f Filter) matchTitle(query string, n Note) bool {
	return query == "" || strings.Contains(strings.ToLower(n.Title), query)
}

// every selected tag must be present: intersection, not union
func (f Filter) matchTags(n Note) bool {
	for _, t := range f.Tags {
		if !n.HasTag(t.ID) {
			return false
		}
	}
	return true
}

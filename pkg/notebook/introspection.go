package notebook

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Notes       int    `json:"notes"`
	Tags        int    `json:"tags"`
	NotesKey    string `json:"notes_key"`
	TagsKey     string `json:"tags_key"`
	Codec       string `json:"codec"`
	StoreType   string `json:"store_type"`
	Saves       int    `json:"saves"`
	FailedSaves int    `json:"failed_saves"`
	LoadErrors  int    `json:"load_errors"`
	Derivations int    `json:"derivations"`
	Store       any    `json:"store,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := ServiceState{
		Notes:       s.notes.Len(),
		Tags:        s.tags.Len(),
		NotesKey:    s.notesRec.Key(),
		TagsKey:     s.tagsRec.Key(),
		Codec:       s.notesRec.Codec().Name(),
		StoreType:   "store",
		Saves:       s.saves,
		FailedSaves: s.failedSaves,
		LoadErrors:  len(s.loadErrs),
		Derivations: s.deriver.Computations(),
	}
	if comp, ok := s.store.(introspection.Component); ok {
		state.StoreType = comp.ComponentType()
	}
	if in, ok := s.store.(introspection.Introspectable); ok {
		state.Store = in.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "notebook"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)

package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path          string     `json:"path"`
	Ext           string     `json:"ext"`
	ReadOnly      bool       `json:"read_only"`
	Writes        int        `json:"writes"`
	WatcherActive bool       `json:"watcher_active"`
	LastEvent     *time.Time `json:"last_event,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Path:          s.Path,
		Ext:           s.config.Ext,
		ReadOnly:      s.config.ReadOnly,
		Writes:        s.writes,
		WatcherActive: s.watcherActive,
		LastEvent:     s.lastEvent,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

func (s *Store) recordEvent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastEvent = &now
}

// Package memory provides a map-backed core.Store.
// Nothing survives the process; it backs tests and the "memory" adapter.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/quire/pkg/core"
)

// Store implements core.Store in memory.
type Store struct {
	mu     sync.RWMutex
	data   map[string][]byte
	writes int
	fail   error
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := core.ValidateKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
	}
	return slices.Clone(v), nil
}

// Set stores a copy of value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := core.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail != nil {
		return s.fail
	}
	s.data[key] = slices.Clone(value)
	s.writes++
	return nil
}

// Writes returns the number of successful Set calls.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// SetFailure makes subsequent writes fail with err (nil restores normal behaviour).
func (s *Store) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

// Package lifecycle exposes store change feeds as lifecycle sources.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/quire/pkg/core"
)

type storeSource struct {
	store   core.Watchable
	pattern string
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits the change events of a
// watchable store. Nothing is watched until Start.
func NewSource(store core.Watchable, pattern string) lifecycle.Source {
	return &storeSource{
		store:   store,
		pattern: pattern,
		out:     make(chan lifecycle.Event),
	}
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start begins watching. The Events channel is closed when ctx ends or the
// store stops reporting.
func (s *storeSource) Start(ctx context.Context) error {
	events, err := s.store.Watch(ctx, s.pattern)
	if err != nil {
		close(s.out)
		return fmt.Errorf("failed to watch store: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				// core.Event satisfies lifecycle.Event.
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

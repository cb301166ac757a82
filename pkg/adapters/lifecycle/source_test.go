package lifecycle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire/pkg/adapters/lifecycle"
	"github.com/aretw0/quire/pkg/core"
)

type fakeWatchable struct {
	ch  chan core.Event
	err error
}

func (f *fakeWatchable) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ch, nil
}

func TestSource_Bridges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &fakeWatchable{ch: make(chan core.Event, 1)}
	src := lifecycle.NewSource(store, "*")
	require.NoError(t, src.Start(ctx))

	store.ch <- core.Event{Type: core.EventModify, Key: "NOTES"}

	select {
	case e := <-src.Events():
		assert.Equal(t, "MODIFY NOTES", e.String())
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for bridged event")
	}

	close(store.ch)
	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("source did not close after store channel closed")
	}
}

func TestSource_WatchFailure(t *testing.T) {
	boom := errors.New("no watcher")
	src := lifecycle.NewSource(&fakeWatchable{err: boom}, "*")

	err := src.Start(context.Background())
	assert.ErrorIs(t, err, boom)

	_, ok := <-src.Events()
	assert.False(t, ok)
}

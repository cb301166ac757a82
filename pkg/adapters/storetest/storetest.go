// Package storetest is a conformance suite for core.Store implementations.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire/pkg/core"
	"github.com/aretw0/quire/pkg/typed"
)

// Factory returns a fresh, initialized, empty store.
type Factory func(t *testing.T) core.Store

// Run exercises the behaviour every backend must share.
func Run(t *testing.T, newStore Factory) {
	t.Helper()
	ctx := context.Background()

	t.Run("Absent Key", func(t *testing.T) {
		_, err := newStore(t).Get(ctx, "NOTES")
		assert.ErrorIs(t, err, core.ErrKeyNotFound)
	})

	t.Run("Set Then Get", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, "TAGS", []byte(`[{"id":"a","label":"x"}]`)))

		got, err := store.Get(ctx, "TAGS")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"a","label":"x"}]`, string(got))
	})

	t.Run("Full Overwrite", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, "NOTES", []byte("a much longer first snapshot")))
		require.NoError(t, store.Set(ctx, "NOTES", []byte("[]")))

		got, err := store.Get(ctx, "NOTES")
		require.NoError(t, err)
		assert.Equal(t, "[]", string(got))
	})

	t.Run("Keys Are Independent", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, "NOTES", []byte("notes")))
		require.NoError(t, store.Set(ctx, "TAGS", []byte("tags")))

		notes, _ := store.Get(ctx, "NOTES")
		tags, _ := store.Get(ctx, "TAGS")
		assert.Equal(t, "notes", string(notes))
		assert.Equal(t, "tags", string(tags))
	})

	t.Run("Invalid Keys", func(t *testing.T) {
		store := newStore(t)
		for _, key := range []string{"", "a/b", `a\b`, "..", "x..y"} {
			assert.ErrorIs(t, store.Set(ctx, key, []byte("x")), core.ErrInvalidKey, key)
			_, err := store.Get(ctx, key)
			assert.ErrorIs(t, err, core.ErrInvalidKey, key)
		}
	})

	t.Run("Typed Record Round Trip", func(t *testing.T) {
		store := newStore(t)
		rec := typed.NewRecord[[]core.RawNote](store, "NOTES", nil)
		notes := []core.RawNote{{ID: "n1", Title: "Ideas", Markdown: "# h", TagIDs: []string{"t1"}}}

		require.NoError(t, rec.Save(ctx, notes))
		got, err := rec.Load(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, notes, got)
	})

	t.Run("Concurrent Writers", func(t *testing.T) {
		store := newStore(t)
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, store.Set(ctx, "NOTES", []byte(fmt.Sprintf("v%d", i))))
			}(i)
		}
		wg.Wait()

		got, err := store.Get(ctx, "NOTES")
		require.NoError(t, err)
		assert.Regexp(t, `^v[0-7]$`, string(got))
	})
}

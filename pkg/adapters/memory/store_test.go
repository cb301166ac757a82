package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire/pkg/adapters/memory"
	"github.com/aretw0/quire/pkg/adapters/storetest"
	"github.com/aretw0/quire/pkg/core"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Key", func(t *testing.T) {
		_, err := memory.NewStore().Get(ctx, "NOTES")
		assert.ErrorIs(t, err, core.ErrKeyNotFound)
	})

	t.Run("Set Then Get Copies", func(t *testing.T) {
		s := memory.NewStore()
		in := []byte("[1]")
		require.NoError(t, s.Set(ctx, "NOTES", in))
		in[0] = 'X'

		out, err := s.Get(ctx, "NOTES")
		require.NoError(t, err)
		assert.Equal(t, "[1]", string(out))
		assert.Equal(t, 1, s.Writes())
	})

	t.Run("Injected Failure", func(t *testing.T) {
		s := memory.NewStore()
		boom := errors.New("quota exceeded")
		s.SetFailure(boom)
		assert.ErrorIs(t, s.Set(ctx, "TAGS", []byte("[]")), boom)
		assert.Equal(t, 0, s.Writes())

		s.SetFailure(nil)
		assert.NoError(t, s.Set(ctx, "TAGS", []byte("[]")))
	})

	t.Run("Rejects Invalid Keys", func(t *testing.T) {
		s := memory.NewStore()
		assert.ErrorIs(t, s.Set(ctx, "../x", nil), core.ErrInvalidKey)
	})
}

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) core.Store { return memory.NewStore() })
}

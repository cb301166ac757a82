package typed_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire/pkg/adapters/memory"
	"github.com/aretw0/quire/pkg/core"
	"github.com/aretw0/quire/pkg/typed"
)

// flakyStore fails every Get with err.
type flakyStore struct {
	*memory.Store
	err error
}

func (f flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, f.err
}

func TestRecord_Load(t *testing.T) {
	ctx := context.Background()
	def := []core.Tag{}

	t.Run("Absent Key Returns Default", func(t *testing.T) {
		rec := typed.NewRecord[[]core.Tag](memory.NewStore(), "TAGS", nil)
		got, err := rec.Load(ctx, def)
		require.NoError(t, err)
		assert.Equal(t, def, got)
	})

	t.Run("Malformed Content Falls Back", func(t *testing.T) {
		store := memory.NewStore()
		require.NoError(t, store.Set(ctx, "TAGS", []byte("{not json")))

		rec := typed.NewRecord[[]core.Tag](store, "TAGS", nil)
		got, err := rec.Load(ctx, def)
		assert.ErrorIs(t, err, core.ErrMalformed)
		assert.Equal(t, def, got)
	})

	t.Run("Wrong Shape Falls Back", func(t *testing.T) {
		store := memory.NewStore()
		require.NoError(t, store.Set(ctx, "TAGS", []byte(`{"id":"x"}`)))

		rec := typed.NewRecord[[]core.Tag](store, "TAGS", nil)
		got, err := rec.Load(ctx, def)
		assert.ErrorIs(t, err, core.ErrMalformed)
		assert.Equal(t, def, got)
	})

	t.Run("Store Failure Falls Back", func(t *testing.T) {
		boom := errors.New("disk on fire")
		rec := typed.NewRecord[[]core.Tag](flakyStore{memory.NewStore(), boom}, "TAGS", nil)
		got, err := rec.Load(ctx, def)
		assert.ErrorIs(t, err, core.ErrPersistence)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, def, got)
	})
}

func TestRecord_Save(t *testing.T) {
	ctx := context.Background()
	notes := []core.RawNote{
		{ID: "n1", Title: "Shopping", Markdown: "- milk", TagIDs: []string{"a", "b"}},
		{ID: "n2", Title: "Recipes", TagIDs: []string{}},
	}

	for _, codec := range []typed.Codec{typed.NewJSONCodec(false), typed.NewYAMLCodec(false)} {
		t.Run(codec.Name()+" Round Trip Keeps Order And Content", func(t *testing.T) {
			store := memory.NewStore()
			rec := typed.NewRecord[[]core.RawNote](store, "NOTES", codec)

			require.NoError(t, rec.Save(ctx, notes))
			got, err := rec.Load(ctx, nil)
			require.NoError(t, err)
			assert.Equal(t, notes, got)
		})

		t.Run(codec.Name()+" Idempotent Bytes", func(t *testing.T) {
			store := memory.NewStore()
			rec := typed.NewRecord[[]core.RawNote](store, "NOTES", codec)

			require.NoError(t, rec.Save(ctx, notes))
			first, _ := store.Get(ctx, "NOTES")
			require.NoError(t, rec.Save(ctx, notes))
			second, _ := store.Get(ctx, "NOTES")
			assert.Equal(t, first, second)
		})
	}

	t.Run("Write Failure Is Wrapped", func(t *testing.T) {
		store := memory.NewStore()
		quota := errors.New("quota exceeded")
		store.SetFailure(quota)

		rec := typed.NewRecord[[]core.RawNote](store, "NOTES", nil)
		err := rec.Save(ctx, notes)
		assert.ErrorIs(t, err, core.ErrPersistence)
		assert.ErrorIs(t, err, quota)
	})

	t.Run("Encode Failure Is Wrapped", func(t *testing.T) {
		rec := typed.NewRecord[chan int](memory.NewStore(), "BAD", nil)
		err := rec.Save(ctx, make(chan int))
		assert.ErrorIs(t, err, core.ErrPersistence)
	})
}

func TestRecord_PersistedLayout(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	rec := typed.NewRecord[[]core.RawNote](store, "NOTES", nil)

	require.NoError(t, rec.Save(ctx, []core.RawNote{{ID: "n1", Title: "t", Markdown: "m", TagIDs: []string{"a"}}}))

	data, err := store.Get(ctx, "NOTES")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"n1","title":"t","markdown":"m","tagIds":["a"]}]`, string(data))
	assert.Equal(t, "NOTES", rec.Key())
	assert.Equal(t, "json", rec.Codec().Name())
}

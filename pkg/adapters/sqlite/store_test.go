package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quire/pkg/adapters/sqlite"
	"github.com/aretw0/quire/pkg/adapters/storetest"
	"github.com/aretw0/quire/pkg/core"
)

func newStore(t *testing.T, path string, readOnly bool) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(sqlite.Config{Path: path, ReadOnly: readOnly})
	require.NoError(t, store.Initialize(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) core.Store {
		return newStore(t, filepath.Join(t.TempDir(), sqlite.DefaultFile), false)
	})
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", sqlite.DefaultFile)

	first := sqlite.NewStore(sqlite.Config{Path: path})
	require.NoError(t, first.Initialize(ctx))
	require.NoError(t, first.Set(ctx, "TAGS", []byte("[]")))
	require.NoError(t, first.Close())

	second := newStore(t, path, false)
	got, err := second.Get(ctx, "TAGS")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestReadOnly(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), sqlite.DefaultFile)

	writer := sqlite.NewStore(sqlite.Config{Path: path})
	require.NoError(t, writer.Initialize(ctx))
	require.NoError(t, writer.Set(ctx, "NOTES", []byte("[]")))
	require.NoError(t, writer.Close())

	reader := newStore(t, path, true)
	got, err := reader.Get(ctx, "NOTES")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	assert.ErrorIs(t, reader.Set(ctx, "NOTES", []byte("x")), core.ErrReadOnly)

	state := reader.State().(sqlite.StoreState)
	assert.True(t, state.ReadOnly)
	assert.True(t, state.Open)
}

func TestReadOnly_MissingDatabase(t *testing.T) {
	store := sqlite.NewStore(sqlite.Config{Path: filepath.Join(t.TempDir(), "absent.db"), ReadOnly: true})
	assert.Error(t, store.Initialize(context.Background()))
}

// Package typed is the persistence adapter: a generic, type-safe view over a
// single key of a core.Store.
package typed

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/quire/pkg/core"
)

// Record binds a value of type T to one key of a store.
// The whole value is read once with Load and fully overwritten on every Save;
// there are no partial or delta writes.
type Record[T any] struct {
	store core.Store
	key   string
	codec Codec
}

// NewRecord creates a typed record over store[key].
// A nil codec selects indented JSON.
func NewRecord[T any](store core.Store, key string, codec Codec) *Record[T] {
	if codec == nil {
		codec = NewJSONCodec(false)
	}
	return &Record[T]{store: store, key: key, codec: codec}
}

// Key returns the store key this record reads and writes.
func (r *Record[T]) Key() string {
	return r.key
}

// Codec returns the codec used to encode the value.
func (r *Record[T]) Codec() Codec {
	return r.codec
}

// Load reads and decodes the stored value.
//
// The returned value is always usable:
//   - absent key: def, nil
//   - unreadable store: def, error wrapping core.ErrPersistence
//   - undecodable content: def, error wrapping core.ErrMalformed
func (r *Record[T]) Load(ctx context.Context, def T) (T, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return def, nil
		}
		return def, fmt.Errorf("%w: load %s: %w", core.ErrPersistence, r.key, err)
	}

	var value T
	if err := r.codec.Unmarshal(data, &value); err != nil {
		return def, fmt.Errorf("%w: %s: %w", core.ErrMalformed, r.key, err)
	}
	return value, nil
}

// Save encodes value and replaces whatever is stored under the key.
// Saving an equal value twice writes identical bytes.
func (r *Record[T]) Save(ctx context.Context, value T) error {
	data, err := r.codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", core.ErrPersistence, r.key, err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("%w: save %s: %w", core.ErrPersistence, r.key, err)
	}
	return nil
}

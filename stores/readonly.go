package stores

import (
	"context"

	"github.com/mwantia/depot"
)

// ReadOnlyStore wraps any Store implementation to make it read-only.
// All read operations are passed through to the underlying store.
// All write operations return ErrReadOnly.
type ReadOnlyStore struct {
	store depot.Store
}

// NewReadOnly creates a new read-only wrapper around the given store.
func NewReadOnly(store depot.Store) *ReadOnlyStore {
	return &ReadOnlyStore{
		store: store,
	}
}

func (ros *ReadOnlyStore) Set(ctx context.Context, key string, value []byte) error {
	return depot.ErrReadOnly
}

func (ros *ReadOnlyStore) Get(ctx context.Context, key string) ([]byte, error) {
	return ros.store.Get(ctx, key)
}

func (ros *ReadOnlyStore) Delete(ctx context.Context, key string) error {
	return depot.ErrReadOnly
}

func (ros *ReadOnlyStore) Clear(ctx context.Context) error {
	return depot.ErrReadOnly
}

func (ros *ReadOnlyStore) Count(ctx context.Context) (int, error) {
	return ros.store.Count(ctx)
}

func (ros *ReadOnlyStore) Iterate(ctx context.Context) (depot.Iterator, error) {
	return ros.store.Iterate(ctx)
}

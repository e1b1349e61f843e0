package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/tidwall/btree"

	"github.com/mwantia/depot"
)

// MemoryStore is a thread-safe in-memory backend. Entries live in a
// B-tree keyed lexicographically, so iteration is ordered. Everything is
// lost when the store is closed or the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	entries *btree.Map[string, []byte]
	closed  bool
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		entries: btree.NewMap[string, []byte](0),
	}
}

// Name returns the identifier name defined for this backend
func (*MemoryStore) Name() string {
	return "memory"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
// A closed store can be reopened; it starts out empty again.
func (ms *MemoryStore) Open(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.closed = false
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
// Entries are discarded; further operations fail with ErrClosed.
func (ms *MemoryStore) Close(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.closed {
		return depot.ErrClosed
	}

	ms.closed = true
	ms.entries.Clear()
	return nil
}

// Capabilities returns the set of capabilities supported by this backend.
func (ms *MemoryStore) Capabilities() depot.Capabilities {
	return depot.Capabilities{
		Capabilities: []depot.Capability{
			depot.CapabilityOrdered,
		},
	}
}

func (ms *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.closed {
		return depot.ErrClosed
	}

	ms.entries.Set(key, clone(value))
	return nil
}

func (ms *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if ms.closed {
		return nil, depot.ErrClosed
	}

	value, exists := ms.entries.Get(key)
	if !exists {
		return nil, fmt.Errorf("%w: %s", depot.ErrNotExist, key)
	}

	return clone(value), nil
}

func (ms *MemoryStore) Delete(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.closed {
		return depot.ErrClosed
	}

	ms.entries.Delete(key)
	return nil
}

func (ms *MemoryStore) Clear(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.closed {
		return depot.ErrClosed
	}

	ms.entries.Clear()
	return nil
}

func (ms *MemoryStore) Count(ctx context.Context) (int, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if ms.closed {
		return 0, depot.ErrClosed
	}

	return ms.entries.Len(), nil
}

// Iterate walks a copy-on-write snapshot of the tree, so mutations made
// while iterating never show up mid-sequence.
func (ms *MemoryStore) Iterate(ctx context.Context) (depot.Iterator, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if ms.closed {
		return nil, depot.ErrClosed
	}

	return &memoryIterator{
		iter: ms.entries.Copy().Iter(),
	}, nil
}

type memoryIterator struct {
	iter    btree.MapIter[string, []byte]
	started bool
	done    bool
}

func (it *memoryIterator) Next(ctx context.Context) (depot.Entry, error) {
	if it.done {
		return depot.Entry{}, depot.Done
	}

	var ok bool
	if !it.started {
		it.started = true
		ok = it.iter.First()
	} else {
		ok = it.iter.Next()
	}

	if !ok {
		it.done = true
		return depot.Entry{}, depot.Done
	}

	return depot.Entry{
		Key:   it.iter.Key(),
		Value: clone(it.iter.Value()),
	}, nil
}

func (it *memoryIterator) Close() error {
	it.done = true
	return nil
}

// clone returns a defensive copy so callers can't mutate stored values.
func clone(value []byte) []byte {
	if value == nil {
		return nil
	}

	dst := make([]byte, len(value))
	copy(dst, value)
	return dst
}

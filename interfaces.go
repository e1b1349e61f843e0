package depot

import "context"

// Store is the key-value contract shared by every backend and wrapper.
// Values are opaque bytes and pass through unchanged: Get returns exactly
// the bytes a previous Set stored for the same key. Implementations must
// be safe for concurrent use.
type Store interface {
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Get returns the value stored under key.
	// Returns ErrNotExist if the key is not present.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the value stored under key.
	// Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry reachable through this store.
	Clear(ctx context.Context) error

	// Count returns the number of entries reachable through this store.
	Count(ctx context.Context) (int, error)

	// Iterate returns a lazy sequence over all entries. Each call starts
	// a fresh iteration. The iterator holds no lock on the store and must
	// be closed by the caller.
	Iterate(ctx context.Context) (Iterator, error)
}

// Backend is a Store with a lifecycle. Backends own the underlying
// storage medium; wrappers such as Namespace borrow a Store and have no
// lifecycle of their own.
type Backend interface {
	Store

	// Name returns the identifier name defined for this backend
	Name() string

	// Open is part of the lifecycle behaviour and gets called when opening this backend.
	Open(ctx context.Context) error

	// Close is part of the lifecycle behaviour and gets called when closing this backend.
	Close(ctx context.Context) error

	// Capabilities returns the set of capabilities supported by this backend.
	Capabilities() Capabilities
}

// Iterator walks a finite sequence of entries.
// Next returns Done once the sequence is exhausted; any other error
// aborts the iteration. Iterators are not safe for concurrent use.
type Iterator interface {
	Next(ctx context.Context) (Entry, error)
	Close() error
}

// Entry is one key-value pair yielded during iteration.
type Entry struct {
	Key   string
	Value []byte
}

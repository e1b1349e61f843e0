package stores_test

import (
	"errors"
	"testing"

	"github.com/mwantia/depot"
	"github.com/mwantia/depot/stores"
)

// TestReadOnlyStore verifies reads pass through and every mutator fails
// with ErrReadOnly.
func TestReadOnlyStore(t *testing.T) {
	ctx := t.Context()

	mem := stores.NewMemory()
	mem.Set(ctx, "key", []byte("value"))

	ros := stores.NewReadOnly(mem)

	got, err := ros.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Expected 'value', got %q", got)
	}

	count, err := ros.Count(ctx)
	if err != nil || count != 1 {
		t.Errorf("Expected count 1, got %d (%v)", count, err)
	}

	it, err := ros.Iterate(ctx)
	if err != nil {
		t.Fatalf("Iterate failed: %v", err)
	}
	if _, err := it.Next(ctx); err != nil {
		t.Errorf("Next failed: %v", err)
	}
	it.Close()

	if err := ros.Set(ctx, "key", []byte("new")); !errors.Is(err, depot.ErrReadOnly) {
		t.Errorf("Expected ErrReadOnly from Set, got %v", err)
	}
	if err := ros.Delete(ctx, "key"); !errors.Is(err, depot.ErrReadOnly) {
		t.Errorf("Expected ErrReadOnly from Delete, got %v", err)
	}
	if err := ros.Clear(ctx); !errors.Is(err, depot.ErrReadOnly) {
		t.Errorf("Expected ErrReadOnly from Clear, got %v", err)
	}

	// The underlying store is untouched
	if got, _ := mem.Get(ctx, "key"); string(got) != "value" {
		t.Errorf("Underlying value changed: %q", got)
	}
}

// TestReadOnlyStore_OverNamespace verifies the decorator wraps any Store,
// including a namespace view.
func TestReadOnlyStore_OverNamespace(t *testing.T) {
	ctx := t.Context()

	mem := stores.NewMemory()
	ns := depot.NewNamespace(mem, "cache")
	ns.Set(ctx, "key", []byte("value"))

	ros := stores.NewReadOnly(ns)

	if _, err := ros.Get(ctx, "key"); err != nil {
		t.Errorf("Get through namespace failed: %v", err)
	}
	if err := ros.Set(ctx, "other", []byte("x")); !errors.Is(err, depot.ErrReadOnly) {
		t.Errorf("Expected ErrReadOnly, got %v", err)
	}
}

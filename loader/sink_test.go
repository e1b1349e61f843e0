package loader

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/mwantia/depot"
	"github.com/mwantia/depot/stores"
)

// TestStoreSink_Bridge verifies loaded payloads land in a namespace and
// cleanup removes them again.
func TestStoreSink_Bridge(t *testing.T) {
	ctx := t.Context()

	backend := stores.NewMemory()
	ns := depot.NewNamespace(backend, "assets")

	q := NewQueue(
		WithFetcher("test", fetcherFunc(func(ctx context.Context, uri string) ([]byte, error) {
			return []byte("resource body"), nil
		})),
		WithSink(NewStoreSink(ns)),
	)

	handle := q.Load(ctx, "test://logo.svg", nil)
	if _, err := handle.Wait(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got, err := ns.Get(ctx, "test://logo.svg")
	if err != nil {
		t.Fatalf("Expected payload in namespace: %v", err)
	}
	if !bytes.Equal(got, []byte("resource body")) {
		t.Errorf("Expected 'resource body', got %q", got)
	}

	// The entry sits under the namespaced key in the backend
	if _, err := backend.Get(ctx, "assets::test://logo.svg"); err != nil {
		t.Errorf("Expected namespaced key in backend: %v", err)
	}

	handle = q.Load(ctx, "test://tmp.bin", &Options{CleanupWhenDone: true})
	if _, err := handle.Wait(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if _, err := ns.Get(ctx, "test://tmp.bin"); !errors.Is(err, depot.ErrNotExist) {
		t.Errorf("Expected cleaned-up entry to be gone, got %v", err)
	}
}

// TestStoreSink_ReadOnly verifies a sink over a read-only store surfaces
// the write failure as a load failure.
func TestStoreSink_ReadOnly(t *testing.T) {
	ctx := t.Context()

	q := NewQueue(
		WithFetcher("test", fetcherFunc(func(ctx context.Context, uri string) ([]byte, error) {
			return []byte("body"), nil
		})),
		WithSink(NewStoreSink(stores.NewReadOnly(stores.NewMemory()))),
	)

	handle := q.Load(ctx, "test://blocked", nil)
	if _, err := handle.Wait(ctx); !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("Expected ErrLoadFailed, got %v", err)
	}
}

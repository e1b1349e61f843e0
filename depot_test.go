package depot_test

import (
	"testing"

	"github.com/mwantia/depot"
	"github.com/mwantia/depot/log"
	"github.com/mwantia/depot/stores"
)

func TestDepot_Lifecycle(t *testing.T) {
	ctx := t.Context()

	d, err := depot.New(stores.NewMemory(), depot.WithLogLevel(log.Error), depot.WithoutTerminalLog())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := d.Open(ctx); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	ns := d.Namespace("cache")
	if err := ns.Set(ctx, "key", []byte("value")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestDepot_NilBackend(t *testing.T) {
	if _, err := depot.New(nil); err == nil {
		t.Error("Expected error for nil backend")
	}
}

// TestDepot_NamespaceMemoized verifies asking for the same namespace
// twice returns the same wrapper.
func TestDepot_NamespaceMemoized(t *testing.T) {
	d, err := depot.New(stores.NewMemory(), depot.WithoutTerminalLog())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first := d.Namespace("cache")
	second := d.Namespace("cache")
	if first != second {
		t.Error("Expected memoized namespace instance")
	}

	other := d.Namespace("sessions")
	if first == other {
		t.Error("Expected distinct wrapper for distinct name")
	}
}

// TestDepot_StoreSelection verifies the empty name selects the backend.
func TestDepot_StoreSelection(t *testing.T) {
	backend := stores.NewMemory()
	d, err := depot.New(backend, depot.WithoutTerminalLog())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if d.Store("") != depot.Store(backend) {
		t.Error("Expected raw backend for empty namespace name")
	}

	if d.Store("cache") != depot.Store(d.Namespace("cache")) {
		t.Error("Expected namespace wrapper for named store")
	}
}

func TestJoinTrimKey(t *testing.T) {
	if got := depot.JoinKey("ns", "key"); got != "ns::key" {
		t.Errorf("Expected 'ns::key', got %q", got)
	}

	key, ok := depot.TrimKey("ns::key", "ns")
	if !ok || key != "key" {
		t.Errorf("Expected ('key', true), got (%q, %v)", key, ok)
	}

	if _, ok := depot.TrimKey("other::key", "ns"); ok {
		t.Error("Expected foreign key to not match")
	}

	// A namespace that happens to prefix another must not match
	if _, ok := depot.TrimKey("nsx::key", "ns"); ok {
		t.Error("Expected 'nsx' to not match namespace 'ns'")
	}
}

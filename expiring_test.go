package depot_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/mwantia/depot"
	"github.com/mwantia/depot/stores"
)

// TestExpiring_TTL verifies entries are readable before their TTL and
// behave as absent afterwards.
func TestExpiring_TTL(t *testing.T) {
	ctx := t.Context()
	exp := depot.NewExpiring(stores.NewMemory(), 50*time.Millisecond)

	if err := exp.Set(ctx, "short", []byte("lived")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := exp.Get(ctx, "short")
	if err != nil {
		t.Fatalf("Get before expiry failed: %v", err)
	}
	if !bytes.Equal(got, []byte("lived")) {
		t.Errorf("Expected 'lived', got %q", got)
	}

	time.Sleep(80 * time.Millisecond)

	if _, err := exp.Get(ctx, "short"); !errors.Is(err, depot.ErrNotExist) {
		t.Errorf("Expected ErrNotExist after expiry, got %v", err)
	}
}

// TestExpiring_NeverExpires verifies a ttl <= 0 disables expiry.
func TestExpiring_NeverExpires(t *testing.T) {
	ctx := t.Context()
	exp := depot.NewExpiring(stores.NewMemory(), 0)

	if err := exp.Set(ctx, "forever", []byte("kept")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, err := exp.Get(ctx, "forever"); err != nil {
		t.Errorf("Get failed: %v", err)
	}
}

// TestExpiring_Collect verifies the sweep removes only expired entries.
func TestExpiring_Collect(t *testing.T) {
	ctx := t.Context()
	parent := stores.NewMemory()
	exp := depot.NewExpiring(parent, 0)

	exp.SetTTL(ctx, "stale", []byte("1"), 10*time.Millisecond)
	exp.SetTTL(ctx, "fresh", []byte("2"), time.Hour)
	exp.Set(ctx, "forever", []byte("3"))

	time.Sleep(30 * time.Millisecond)

	swept, err := exp.Collect(ctx)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if swept != 1 {
		t.Errorf("Expected 1 swept entry, got %d", swept)
	}

	count, _ := parent.Count(ctx)
	if count != 2 {
		t.Errorf("Expected 2 remaining entries, got %d", count)
	}

	if _, err := exp.Get(ctx, "fresh"); err != nil {
		t.Errorf("Fresh entry swept: %v", err)
	}
}

// TestExpiring_IterateSkipsExpired verifies iteration strips envelopes
// and skips dead entries without removing them.
func TestExpiring_IterateSkipsExpired(t *testing.T) {
	ctx := t.Context()
	parent := stores.NewMemory()
	exp := depot.NewExpiring(parent, 0)

	exp.SetTTL(ctx, "dead", []byte("old"), 10*time.Millisecond)
	exp.Set(ctx, "alive", []byte("new"))

	time.Sleep(30 * time.Millisecond)

	entries := collect(t, exp)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d: %v", len(entries), entries)
	}
	if !bytes.Equal(entries["alive"], []byte("new")) {
		t.Errorf("Expected raw value 'new', got %q", entries["alive"])
	}

	count, _ := exp.Count(ctx)
	if count != 1 {
		t.Errorf("Expected count 1, got %d", count)
	}

	// The dead entry is still in the parent until Collect runs
	parentCount, _ := parent.Count(ctx)
	if parentCount != 2 {
		t.Errorf("Expected 2 parent entries, got %d", parentCount)
	}
}

// TestExpiring_OverNamespace verifies the wrappers compose.
func TestExpiring_OverNamespace(t *testing.T) {
	ctx := t.Context()
	parent := stores.NewMemory()

	ns := depot.NewNamespace(parent, "sessions")
	exp := depot.NewExpiring(ns, time.Hour)

	if err := exp.Set(ctx, "token", []byte("abc")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, err := parent.Get(ctx, "sessions::token"); err != nil {
		t.Errorf("Expected namespaced envelope in parent: %v", err)
	}

	got, err := exp.Get(ctx, "token")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, []byte("abc")) {
		t.Errorf("Expected 'abc', got %q", got)
	}
}

// TestExpiring_SkipsForeignEntries verifies entries written past the
// wrapper, which carry no envelope, are invisible to iteration and
// survive a Collect sweep.
func TestExpiring_SkipsForeignEntries(t *testing.T) {
	ctx := t.Context()
	parent := stores.NewMemory()
	exp := depot.NewExpiring(parent, 0)

	if err := parent.Set(ctx, "raw", []byte("not an envelope")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := exp.Set(ctx, "wrapped", []byte("payload")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	it, err := exp.Iterate(ctx)
	if err != nil {
		t.Fatalf("Iterate failed: %v", err)
	}
	defer it.Close()

	seen := 0
	for {
		entry, err := it.Next(ctx)
		if err != nil {
			if err == depot.Done {
				break
			}
			t.Fatalf("Next failed: %v", err)
		}
		if entry.Key != "wrapped" {
			t.Errorf("Unexpected entry %q", entry.Key)
		}
		seen++
	}
	if seen != 1 {
		t.Errorf("Expected 1 entry, got %d", seen)
	}

	count, err := exp.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected count 1, got %d", count)
	}

	if swept, err := exp.Collect(ctx); err != nil || swept != 0 {
		t.Errorf("Expected no sweep, got swept=%d err=%v", swept, err)
	}
	if _, err := parent.Get(ctx, "raw"); err != nil {
		t.Errorf("Foreign entry must survive Collect: %v", err)
	}
}

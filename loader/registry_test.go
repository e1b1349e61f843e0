package loader

import (
	"errors"
	"testing"
)

func TestRegistry_ReserveAndClaim(t *testing.T) {
	r := NewRegistry()

	if err := r.Reserve("slot"); err != nil {
		t.Fatalf("Reserve failed: %v", err)
	}

	if err := r.Reserve("slot"); !errors.Is(err, ErrVerifyExists) {
		t.Errorf("Expected ErrVerifyExists on double reserve, got %v", err)
	}

	// Reserved but unfilled
	if value, filled := r.Claim("slot"); filled || value != nil {
		t.Errorf("Expected unfilled claim, got (%v, %v)", value, filled)
	}

	// Claim removed the slot
	if r.Occupied("slot") {
		t.Error("Expected slot to be gone after claim")
	}
}

func TestRegistry_RegisterThenClaim(t *testing.T) {
	r := NewRegistry()

	r.Reserve("slot")
	r.Register("slot", 42)

	value, filled := r.Claim("slot")
	if !filled || value != 42 {
		t.Errorf("Expected (42, true), got (%v, %v)", value, filled)
	}

	// Register without a prior reservation also works; resources do not
	// know whether anyone is verifying them
	r.Register("spontaneous", "here")
	if value, filled := r.Claim("spontaneous"); !filled || value != "here" {
		t.Errorf("Expected ('here', true), got (%v, %v)", value, filled)
	}
}

func TestRegistry_Release(t *testing.T) {
	r := NewRegistry()

	r.Reserve("slot")
	r.Release("slot")

	if r.Occupied("slot") {
		t.Error("Expected released slot to be free")
	}
	if err := r.Reserve("slot"); err != nil {
		t.Errorf("Expected re-reservation to succeed, got %v", err)
	}
}

func TestHandle_SettleOnce(t *testing.T) {
	h := newHandle()

	h.resolve("first")
	h.fail(errors.New("late"))
	h.resolve("later")

	if h.Err() != nil {
		t.Errorf("Expected nil error after resolve, got %v", h.Err())
	}
	if h.Value() != "first" {
		t.Errorf("Expected 'first', got %v", h.Value())
	}
}

func TestHandle_CancelBlocksSettling(t *testing.T) {
	h := newHandle()

	released := false
	h.setCancel(func() { released = true })

	h.Cancel()
	if !released {
		t.Error("Expected cancel hook to run")
	}

	h.resolve("too late")
	select {
	case <-h.Done():
		t.Error("Cancelled handle settled")
	default:
	}

	// A second cancel is a no-op
	h.Cancel()
}

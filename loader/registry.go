package loader

import (
	"fmt"
	"sync"
)

// Registry holds named verification slots. A verifying load reserves its
// slot up front, the loaded resource fills it via Register, and the queue
// claims it once the load settles. Slot names are process-wide within one
// registry, so two verifying loads cannot share a name concurrently.
type Registry struct {
	mu    sync.Mutex
	slots map[string]*registrySlot
}

type registrySlot struct {
	value  any
	filled bool
}

// NewRegistry creates an empty verification registry.
func NewRegistry() *Registry {
	return &Registry{
		slots: make(map[string]*registrySlot),
	}
}

// Reserve marks name as in use by a pending verification.
// Returns ErrVerifyExists if the slot is already reserved or filled.
func (r *Registry) Reserve(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.slots[name]; exists {
		return fmt.Errorf("%w: %s", ErrVerifyExists, name)
	}

	r.slots[name] = &registrySlot{}
	return nil
}

// Register fills the named slot with value. Resources loaded through
// LoadAndVerify call this to prove they executed.
func (r *Registry) Register(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, exists := r.slots[name]
	if !exists {
		slot = &registrySlot{}
		r.slots[name] = slot
	}

	slot.value = value
	slot.filled = true
}

// Claim removes the named slot and returns its value.
// The boolean reports whether the slot was actually filled.
func (r *Registry) Claim(name string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, exists := r.slots[name]
	if !exists {
		return nil, false
	}

	delete(r.slots, name)
	return slot.value, slot.filled
}

// Release drops a reservation without claiming it.
func (r *Registry) Release(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.slots, name)
}

// Occupied reports whether the named slot is reserved or filled.
func (r *Registry) Occupied(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.slots[name]
	return exists
}

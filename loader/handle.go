package loader

import (
	"context"
	"sync"
)

// Handle represents one pending asynchronous load result.
//
// A handle settles at most once, either with a value or with an error,
// and Done is closed when it does. Cancel is different from settling: it
// releases the load's resources (timer, fetch, sink node) and closes the
// Cancelled channel, but the handle never carries a result afterwards.
type Handle struct {
	mu        sync.Mutex
	done      chan struct{}
	cancelled chan struct{}
	value     any
	err       error
	settled   bool
	stopped   bool
	onCancel  func()
}

func newHandle() *Handle {
	return &Handle{
		done:      make(chan struct{}),
		cancelled: make(chan struct{}),
	}
}

// resolved returns an already-settled handle carrying value.
func resolved(value any) *Handle {
	h := newHandle()
	h.resolve(value)
	return h
}

// failed returns an already-settled handle carrying err.
func failed(err error) *Handle {
	h := newHandle()
	h.fail(err)
	return h
}

// Done is closed once the handle settles with a value or an error.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Cancelled is closed once Cancel is called. A cancelled handle never
// settles.
func (h *Handle) Cancelled() <-chan struct{} {
	return h.cancelled
}

// Err returns the failure the handle settled with, or nil.
// Only meaningful once Done is closed.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.err
}

// Value returns the result the handle settled with, or nil.
// Only meaningful once Done is closed.
func (h *Handle) Value() any {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.value
}

// Wait blocks until the handle settles, is cancelled, or ctx expires.
func (h *Handle) Wait(ctx context.Context) (any, error) {
	select {
	case <-h.done:
		return h.Value(), h.Err()
	case <-h.cancelled:
		return nil, ErrCancelled
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel abandons the load: resources are released but the handle does
// not settle with a value or error. Cancelling a settled or already
// cancelled handle is a no-op.
func (h *Handle) Cancel() {
	h.mu.Lock()
	if h.settled || h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	onCancel := h.onCancel
	close(h.cancelled)
	h.mu.Unlock()

	if onCancel != nil {
		onCancel()
	}
}

func (h *Handle) resolve(value any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.settled || h.stopped {
		return
	}

	h.settled = true
	h.value = value
	close(h.done)
}

func (h *Handle) fail(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.settled || h.stopped {
		return
	}

	h.settled = true
	h.err = err
	close(h.done)
}

// setCancel installs the resource-release hook invoked by Cancel.
func (h *Handle) setCancel(onCancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.onCancel = onCancel
}

package depot

import (
	"errors"
	"sync"
)

// Standard depot errors that Store implementations should use.
var (
	// Key lookup errors
	ErrNotExist = errors.New("depot: key does not exist")

	// Write errors
	ErrReadOnly      = errors.New("depot: store is read-only")
	ErrInvalidValue  = errors.New("depot: invalid value")
	ErrQuotaExceeded = errors.New("depot: storage quota exceeded")

	// Lifecycle errors
	ErrClosed = errors.New("depot: store already closed")
)

// Done is returned by Iterator.Next once the sequence is exhausted.
// It marks the end of iteration, not a failure.
var Done = errors.New("depot: iteration done")

type Errors struct {
	mu     sync.Mutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}

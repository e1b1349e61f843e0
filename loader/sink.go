package loader

import (
	"context"
	"fmt"

	"github.com/mwantia/depot"
)

// Sink is the host a loaded resource lands in. Attach hands a node with
// its final payload to the host, Detach removes it again. Detaching a
// node the sink never saw is not an error.
type Sink interface {
	Attach(ctx context.Context, node *Node) error
	Detach(ctx context.Context, node *Node) error
}

// StoreSink persists loaded payloads into a depot.Store, keyed by the
// node URI. It bridges the loader to the storage half of the library:
// point it at a Namespace and every successful load lands there.
type StoreSink struct {
	store depot.Store
}

// NewStoreSink creates a sink writing into the given store.
func NewStoreSink(store depot.Store) *StoreSink {
	return &StoreSink{
		store: store,
	}
}

func (s *StoreSink) Attach(ctx context.Context, node *Node) error {
	if err := s.store.Set(ctx, node.URI, node.Payload); err != nil {
		return fmt.Errorf("%w: %s", ErrLoadFailed, err)
	}

	return nil
}

func (s *StoreSink) Detach(ctx context.Context, node *Node) error {
	return s.store.Delete(ctx, node.URI)
}

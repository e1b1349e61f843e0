package loader

import (
	"time"

	"github.com/google/uuid"
)

// Node is one loaded resource as it appears inside a Sink: the target
// URI, the caller-supplied attributes and the fetched payload.
type Node struct {
	// ID uniquely identifies this node within its sink.
	ID string

	// URI is the resource location the node was loaded from.
	URI string

	// Attributes carries caller-supplied metadata for the sink.
	Attributes map[string]string

	// Payload holds the fetched bytes once the load succeeded.
	Payload []byte

	// LoadedAt is set when the payload arrived.
	LoadedAt time.Time
}

func newNode(uri string, attributes map[string]string) *Node {
	return &Node{
		ID:         uuid.NewString(),
		URI:        uri,
		Attributes: attributes,
	}
}

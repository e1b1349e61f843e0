package depot

import "slices"

type Capabilities struct {
	Capabilities []Capability `json:"capabilities"`

	// MaxValueSize is the largest value in bytes a single Set accepts.
	// Zero means the backend imposes no limit of its own.
	MaxValueSize int64 `json:"max_value_size,omitempty"`
}

type Capability string

const (
	// CapabilityPersistent marks backends whose entries survive a restart.
	CapabilityPersistent Capability = "Persistent"
	// CapabilityShared marks backends visible to other processes or hosts.
	CapabilityShared Capability = "Shared"
	// CapabilityOrdered marks backends that iterate in lexicographic key order.
	CapabilityOrdered Capability = "Ordered"
)

func (c Capabilities) Contains(cap Capability) bool {
	return slices.Contains(c.Capabilities, cap)
}

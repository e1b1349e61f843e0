package loader

import "time"

// DefaultTimeout bounds a single load when the caller does not choose one.
const DefaultTimeout = 5 * time.Second

// Options configures one load request.
type Options struct {
	// Timeout bounds the load; when it fires first the load fails with
	// ErrLoadTimeout. Zero means DefaultTimeout, negative disables the
	// timer entirely.
	Timeout time.Duration

	// Sink overrides the queue's default sink for this load.
	Sink Sink

	// CleanupWhenDone detaches the node from the sink once the load
	// settled, instead of leaving it attached.
	CleanupWhenDone bool

	// Attributes is extra metadata attached to the node.
	Attributes map[string]string
}

// normalized resolves defaults against the queue the load runs on.
func (o *Options) normalized(q *Queue) Options {
	opts := Options{}
	if o != nil {
		opts = *o
	}

	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Sink == nil {
		opts.Sink = q.sink
	}

	return opts
}

package loader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mwantia/depot/log"
)

// Queue serializes resource loads: no matter how many batches are
// submitted, only one load is in flight at a time and loads start in
// submission order.
//
// Batches submitted while a drain is running join the existing queue and
// share its completion handle, so late joiners observe the whole combined
// queue finishing, not just their own items. That is a deliberate
// simplification: callers who need isolated completion should use their
// own Queue instance.
type Queue struct {
	mu       sync.Mutex
	pending  []pendingLoad
	draining bool
	shared   *Handle
	current  *Handle

	fetchers map[string]Fetcher
	sink     Sink
	registry *Registry
	logger   *log.Logger
}

type pendingLoad struct {
	uri  string
	opts *Options
}

type QueueOption func(*Queue)

// WithFetcher routes URIs of the given scheme to f.
func WithFetcher(scheme string, f Fetcher) QueueOption {
	return func(q *Queue) {
		q.fetchers[scheme] = f
	}
}

// WithSink sets the default sink loaded nodes are attached to.
func WithSink(sink Sink) QueueOption {
	return func(q *Queue) {
		q.sink = sink
	}
}

// WithRegistry replaces the queue's verification registry.
func WithRegistry(registry *Registry) QueueOption {
	return func(q *Queue) {
		q.registry = registry
	}
}

// WithLogger sets the logger the queue reports drain progress through.
func WithLogger(logger *log.Logger) QueueOption {
	return func(q *Queue) {
		q.logger = logger
	}
}

// NewQueue creates a loader queue. Without options it fetches http, https
// and file URIs, has no sink and drops all log output.
func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{
		fetchers: map[string]Fetcher{
			"http":  &HTTPFetcher{},
			"https": &HTTPFetcher{},
			"file":  &FileFetcher{},
		},
		registry: NewRegistry(),
		logger:   log.Discard(),
	}

	for _, opt := range opts {
		opt(q)
	}

	return q
}

var (
	defaultQueue *Queue
	defaultOnce  sync.Once
)

// Default returns the process-wide queue, created on first use and never
// reset.
func Default() *Queue {
	defaultOnce.Do(func() {
		defaultQueue = NewQueue()
	})

	return defaultQueue
}

// LoadBatch submits uris to the shared queue and returns the handle that
// settles once the queue is empty. An empty batch returns an
// already-resolved handle without touching anything. If a drain is
// already running the batch joins it and the existing handle is returned.
//
// The handle carries the outcome of the final item; earlier failures are
// logged and otherwise swallowed so one bad resource does not stop the
// rest of the queue.
func (q *Queue) LoadBatch(ctx context.Context, uris []string, opts *Options) *Handle {
	if len(uris) == 0 {
		return resolved(nil)
	}

	q.mu.Lock()
	for _, uri := range uris {
		q.pending = append(q.pending, pendingLoad{uri: uri, opts: opts})
	}

	if q.draining {
		handle := q.shared
		q.mu.Unlock()

		q.logger.Debug("Joined running drain with %d item(s)", len(uris))
		return handle
	}

	q.draining = true
	q.shared = newHandle()
	handle := q.shared
	q.mu.Unlock()

	q.logger.Debug("Starting drain with %d item(s)", len(uris))
	go q.drain(ctx)

	return handle
}

// drain pops and loads one item at a time until the queue empties, then
// settles the shared handle. Only one drain runs per queue.
func (q *Queue) drain(ctx context.Context) {
	var last error

	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			handle := q.shared
			q.shared = nil
			q.current = nil
			q.draining = false
			q.mu.Unlock()

			if last != nil {
				handle.fail(last)
			} else {
				handle.resolve(nil)
			}
			return
		}

		next := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		item := q.Load(ctx, next.uri, next.opts)

		q.mu.Lock()
		q.current = item
		q.mu.Unlock()

		select {
		case <-item.Done():
			last = item.Err()
			if last != nil {
				q.logger.Warn("Load of '%s' failed: %v", next.uri, last)
			}
		case <-item.Cancelled():
			// An abandoned item never settles; move on without one
			q.logger.Debug("Load of '%s' cancelled", next.uri)
		}
	}
}

// Load fetches a single resource and attaches it to the sink, racing the
// fetch against the per-request timer. The returned handle settles with
// the loaded *Node on success, ErrLoadFailed on a transport error or
// ErrLoadTimeout when the timer fires first. Cancel abandons the load
// without settling the handle.
func (q *Queue) Load(ctx context.Context, uri string, opts *Options) *Handle {
	o := opts.normalized(q)
	handle := newHandle()

	fetcher := q.fetcherFor(uri)
	if fetcher == nil {
		handle.fail(fmt.Errorf("%w: no fetcher for scheme %q in %s", ErrLoadFailed, scheme(uri), uri))
		return handle
	}

	node := newNode(uri, o.Attributes)
	fetchCtx, stopFetch := context.WithCancel(ctx)

	detach := func() {
		if o.Sink == nil {
			return
		}
		if err := o.Sink.Detach(context.WithoutCancel(ctx), node); err != nil {
			q.logger.Warn("Failed to detach node '%s': %v", node.ID, err)
		}
	}

	var timer *time.Timer
	if o.Timeout > 0 {
		timer = time.AfterFunc(o.Timeout, func() {
			stopFetch()
			detach()
			handle.fail(fmt.Errorf("%w: %s after %s", ErrLoadTimeout, uri, o.Timeout))
		})
	}

	handle.setCancel(func() {
		if timer != nil {
			timer.Stop()
		}
		stopFetch()
		detach()
	})

	go func() {
		defer stopFetch()

		payload, err := fetcher.Fetch(fetchCtx, uri)
		if timer != nil && !timer.Stop() {
			// The timer fired first and owns the outcome
			return
		}

		if err != nil {
			select {
			case <-handle.cancelled:
				// Abandoned; cleanup already happened
				return
			default:
			}

			handle.fail(fmt.Errorf("%w: %s: %s", ErrLoadFailed, uri, err))
			return
		}

		select {
		case <-handle.cancelled:
			return
		default:
		}

		node.Payload = payload
		node.LoadedAt = time.Now()

		if o.Sink != nil {
			if err := o.Sink.Attach(fetchCtx, node); err != nil {
				handle.fail(fmt.Errorf("%w: attach %s: %s", ErrLoadFailed, uri, err))
				return
			}

			if o.CleanupWhenDone {
				detach()
			}
		}

		q.logger.Debug("Loaded '%s' (%d bytes)", uri, len(payload))
		handle.resolve(node)
	}()

	return handle
}

// LoadAndVerify loads a resource that is expected to prove its execution
// by filling the named registry slot. The slot is reserved before the
// load starts; a second verifying load with the same name fails
// immediately with ErrVerifyExists and performs no load. After a
// successful load the slot is claimed: the handle resolves with the
// registered value, or fails with ErrVerifyMissing when the resource
// never registered.
func (q *Queue) LoadAndVerify(ctx context.Context, uri, name string, opts *Options) *Handle {
	if err := q.registry.Reserve(name); err != nil {
		return failed(err)
	}

	handle := newHandle()
	inner := q.Load(ctx, uri, opts)

	handle.setCancel(func() {
		inner.Cancel()
		q.registry.Release(name)
	})

	go func() {
		select {
		case <-inner.Done():
			if err := inner.Err(); err != nil {
				q.registry.Release(name)
				handle.fail(err)
				return
			}

			value, filled := q.registry.Claim(name)
			if !filled {
				handle.fail(fmt.Errorf("%w: %s did not register %q", ErrVerifyMissing, uri, name))
				return
			}

			handle.resolve(value)
		case <-inner.Cancelled():
			// Reservation released through the cancel hook
		}
	}()

	return handle
}

// Registry returns the verification registry loaded resources report to.
func (q *Queue) Registry() *Registry {
	return q.registry
}

func (q *Queue) fetcherFor(uri string) Fetcher {
	return q.fetchers[scheme(uri)]
}

// LoadBatch submits uris to the process-wide default queue.
func LoadBatch(ctx context.Context, uris []string, opts *Options) *Handle {
	return Default().LoadBatch(ctx, uris, opts)
}

// Load fetches a single resource through the process-wide default queue.
func Load(ctx context.Context, uri string, opts *Options) *Handle {
	return Default().Load(ctx, uri, opts)
}

// LoadAndVerify runs a verifying load through the process-wide default queue.
func LoadAndVerify(ctx context.Context, uri, name string, opts *Options) *Handle {
	return Default().LoadAndVerify(ctx, uri, name, opts)
}

package depot

import (
	"context"
	"fmt"
	"sync"

	"github.com/mwantia/depot/log"
)

// Depot owns a shared Backend and hands out namespaced views of it.
// Namespaces are memoized: asking for the same name twice returns the
// same wrapper instance.
type Depot struct {
	mu         sync.RWMutex
	backend    Backend
	namespaces map[string]*Namespace
	logger     *log.Logger
}

func New(backend Backend, opts ...DepotOption) (*Depot, error) {
	if backend == nil {
		return nil, fmt.Errorf("depot: backend cannot be nil")
	}

	options := newDefaultDepotOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	var logOpts []log.Option
	if options.LogFile != "" {
		logOpts = append(logOpts, log.WithFile(options.LogFile))
	}
	if options.NoTerminalLog {
		logOpts = append(logOpts, log.WithoutTerminal())
	}
	if options.JSONLog {
		logOpts = append(logOpts, log.WithJSON())
	}

	return &Depot{
		backend:    backend,
		namespaces: make(map[string]*Namespace),
		logger:     log.New("depot", options.LogLevel, logOpts...),
	}, nil
}

// Open opens the underlying backend.
func (d *Depot) Open(ctx context.Context) error {
	if err := d.backend.Open(ctx); err != nil {
		return fmt.Errorf("depot: failed to open '%s' backend: %w", d.backend.Name(), err)
	}

	d.logger.Info("Opened '%s' backend", d.backend.Name())
	return nil
}

// Close closes the underlying backend.
// Namespace wrappers handed out before Close become unusable.
func (d *Depot) Close(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	clear(d.namespaces)

	if err := d.backend.Close(ctx); err != nil {
		return fmt.Errorf("depot: failed to close '%s' backend: %w", d.backend.Name(), err)
	}

	d.logger.Info("Closed '%s' backend", d.backend.Name())
	return nil
}

// Namespace returns the namespaced view for the given name.
func (d *Depot) Namespace(name string) *Namespace {
	d.mu.RLock()
	if ns, exists := d.namespaces[name]; exists {
		d.mu.RUnlock()
		return ns
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	// Re-check under the write lock
	if ns, exists := d.namespaces[name]; exists {
		return ns
	}

	ns := NewNamespace(d.backend, name)
	d.namespaces[name] = ns

	d.logger.Debug("Created namespace '%s'", name)
	return ns
}

// Store returns the store for the given namespace name.
// An empty name returns the raw backend.
func (d *Depot) Store(namespace string) Store {
	if namespace == "" {
		return d.backend
	}
	return d.Namespace(namespace)
}

// Backend returns the shared backend this depot was created with.
func (d *Depot) Backend() Backend {
	return d.backend
}

// Logger returns the depot's logger for callers that want to share it.
func (d *Depot) Logger() *log.Logger {
	return d.logger
}

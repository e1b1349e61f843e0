package depot

import "context"

// Namespace is a prefixed view over a parent Store. Every key passing
// through is rewritten to "name::key" before it reaches the parent, and
// iteration only yields entries stored below that prefix, with the prefix
// stripped from the keys. Values pass through untouched.
//
// The parent is borrowed, never owned: a Namespace has no lifecycle of its
// own and never closes the parent. Namespaces nest; wrapping a Namespace
// compounds the prefixes. This layer adds no error conditions of its own,
// parent errors propagate unchanged.
type Namespace struct {
	parent Store
	name   string
}

// NewNamespace creates a namespaced view of parent under the given name.
func NewNamespace(parent Store, name string) *Namespace {
	return &Namespace{
		parent: parent,
		name:   name,
	}
}

// Name returns the namespace name without the separator.
func (n *Namespace) Name() string {
	return n.name
}

func (n *Namespace) Set(ctx context.Context, key string, value []byte) error {
	return n.parent.Set(ctx, JoinKey(n.name, key), value)
}

func (n *Namespace) Get(ctx context.Context, key string) ([]byte, error) {
	return n.parent.Get(ctx, JoinKey(n.name, key))
}

func (n *Namespace) Delete(ctx context.Context, key string) error {
	return n.parent.Delete(ctx, JoinKey(n.name, key))
}

// Clear removes every entry below this namespace and nothing else.
// Entries the parent holds outside the namespace are left alone.
func (n *Namespace) Clear(ctx context.Context) error {
	keys, err := n.collectKeys(ctx)
	if err != nil {
		return err
	}

	errs := &Errors{}
	for _, key := range keys {
		errs.Add(n.parent.Delete(ctx, JoinKey(n.name, key)))
	}

	return errs.Err()
}

// Count returns the number of entries below this namespace.
func (n *Namespace) Count(ctx context.Context) (int, error) {
	it, err := n.Iterate(ctx)
	if err != nil {
		return 0, err
	}
	defer it.Close()

	count := 0
	for {
		if _, err := it.Next(ctx); err != nil {
			if err == Done {
				return count, nil
			}
			return 0, err
		}
		count++
	}
}

// Iterate returns a lazy sequence over the entries below this namespace.
// Parent entries outside the namespace are skipped silently.
func (n *Namespace) Iterate(ctx context.Context) (Iterator, error) {
	inner, err := n.parent.Iterate(ctx)
	if err != nil {
		return nil, err
	}

	return &namespaceIterator{
		inner: inner,
		name:  n.name,
	}, nil
}

func (n *Namespace) collectKeys(ctx context.Context) ([]string, error) {
	it, err := n.Iterate(ctx)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var keys []string
	for {
		entry, err := it.Next(ctx)
		if err != nil {
			if err == Done {
				return keys, nil
			}
			return nil, err
		}
		keys = append(keys, entry.Key)
	}
}

// namespaceIterator filters a parent iterator down to one namespace,
// de-prefixing the keys it yields.
type namespaceIterator struct {
	inner Iterator
	name  string
}

func (it *namespaceIterator) Next(ctx context.Context) (Entry, error) {
	for {
		entry, err := it.inner.Next(ctx)
		if err != nil {
			return Entry{}, err
		}

		key, ok := TrimKey(entry.Key, it.name)
		if !ok {
			continue
		}

		return Entry{Key: key, Value: entry.Value}, nil
	}
}

func (it *namespaceIterator) Close() error {
	return it.inner.Close()
}

package depot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Expiring wraps a Store with per-entry time-to-live semantics. Values
// are stored inside a small JSON envelope carrying the expiry timestamp;
// expired entries behave as absent on Get, Count and Iterate and are
// removed lazily when touched. Collect sweeps them out eagerly.
//
// Like Namespace, the parent is borrowed and this layer has no lifecycle.
type Expiring struct {
	parent Store
	ttl    time.Duration

	// now is swappable for tests
	now func() time.Time
}

type expiringEnvelope struct {
	Value   []byte    `json:"value"`
	Expires time.Time `json:"expires,omitzero"`
}

// NewExpiring wraps parent so that entries written through the wrapper
// expire ttl after their Set. A ttl <= 0 means entries never expire.
func NewExpiring(parent Store, ttl time.Duration) *Expiring {
	return &Expiring{
		parent: parent,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (e *Expiring) Set(ctx context.Context, key string, value []byte) error {
	return e.SetTTL(ctx, key, value, e.ttl)
}

// SetTTL stores value under key with an explicit time-to-live,
// overriding the wrapper default. A ttl <= 0 means never expire.
func (e *Expiring) SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	envelope := expiringEnvelope{
		Value: value,
	}
	if ttl > 0 {
		envelope.Expires = e.now().Add(ttl)
	}

	raw, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidValue, err)
	}

	return e.parent.Set(ctx, key, raw)
}

func (e *Expiring) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := e.parent.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	envelope, err := e.decode(raw)
	if err != nil {
		return nil, err
	}

	if e.expired(envelope) {
		// Lazy removal; the delete error is secondary to the miss
		_ = e.parent.Delete(ctx, key)
		return nil, fmt.Errorf("%w: %s", ErrNotExist, key)
	}

	return envelope.Value, nil
}

func (e *Expiring) Delete(ctx context.Context, key string) error {
	return e.parent.Delete(ctx, key)
}

func (e *Expiring) Clear(ctx context.Context) error {
	return e.parent.Clear(ctx)
}

// Count returns the number of entries that have not yet expired.
func (e *Expiring) Count(ctx context.Context) (int, error) {
	it, err := e.Iterate(ctx)
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

// Iterate yields live entries with their envelopes stripped. Expired
// entries are skipped but not removed; use Collect for that. Entries
// that do not decode as envelopes are treated as foreign and skipped,
// matching Collect.
func (e *Expiring) Iterate(ctx context.Context) (Iterator, error) {
	inner, err := e.parent.Iterate(ctx)
	if err != nil {
		return nil, err
	}

	return &expiringIterator{
		inner:   inner,
		wrapper: e,
	}, nil
}

// Collect removes every expired entry and reports how many were swept.
func (e *Expiring) Collect(ctx context.Context) (int, error) {
	it, err := e.parent.Iterate(ctx)
	if err != nil {
		return 0, err
	}

	var expired []string
	for {
		entry, err := it.Next(ctx)
		if err != nil {
			if err == Done {
				break
			}
			it.Close()
			return 0, err
		}

		envelope, err := e.decode(entry.Value)
		if err != nil {
			continue // foreign entry, not ours to sweep
		}

		if e.expired(envelope) {
			expired = append(expired, entry.Key)
		}
	}
	it.Close()

	errs := &Errors{}
	for _, key := range expired {
		errs.Add(e.parent.Delete(ctx, key))
	}

	return len(expired), errs.Err()
}

func (e *Expiring) decode(raw []byte) (expiringEnvelope, error) {
	var envelope expiringEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return envelope, fmt.Errorf("%w: %s", ErrInvalidValue, err)
	}

	return envelope, nil
}

func (e *Expiring) expired(envelope expiringEnvelope) bool {
	return !envelope.Expires.IsZero() && !e.now().Before(envelope.Expires)
}

type expiringIterator struct {
	inner   Iterator
	wrapper *Expiring
}

func (it *expiringIterator) Next(ctx context.Context) (Entry, error) {
	for {
		entry, err := it.inner.Next(ctx)
		if err != nil {
			return Entry{}, err
		}

		envelope, err := it.wrapper.decode(entry.Value)
		if err != nil {
			continue // foreign entry, same as Collect
		}

		if it.wrapper.expired(envelope) {
			continue
		}

		return Entry{Key: entry.Key, Value: envelope.Value}, nil
	}
}

func (it *expiringIterator) Close() error {
	return it.inner.Close()
}

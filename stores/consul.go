package stores

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/consul/api"

	"github.com/mwantia/depot"
)

// ConsulStore is a backend over the HashiCorp Consul KV store.
//
// Entries are stored as plain KV pairs below a configurable prefix, so
// several depots (or other tools) can share one Consul cluster without
// stepping on each other. Consul limits values to 512KB; writes beyond
// the limit fail with ErrQuotaExceeded before they reach the server.
//
// Best suited for configuration data, small assets and coordination
// state shared across hosts.
type ConsulStore struct {
	mu     sync.RWMutex
	client *api.Client
	kv     *api.KV

	config *ConsulStoreConfig
}

// ConsulStoreConfig contains configuration options for the Consul backend
type ConsulStoreConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Namespace for Consul Enterprise (optional)
	Namespace string

	// Prefix for all keys in Consul KV (default: "depot/")
	Prefix string
}

// Consul KV rejects values above 512KB; stay slightly below to leave
// headroom for transaction overhead.
const consulMaxValueSize = 500 * 1024

// NewConsul creates a Consul-backed store.
func NewConsul(config *ConsulStoreConfig) (*ConsulStore, error) {
	if config == nil {
		config = &ConsulStoreConfig{}
	}

	// Set defaults
	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}

	if config.Prefix == "" {
		config.Prefix = "depot/"
	}
	if !strings.HasSuffix(config.Prefix, "/") {
		config.Prefix += "/"
	}

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}
	if config.Namespace != "" {
		clientConfig.Namespace = config.Namespace
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulStore{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Name returns the identifier name defined for this backend
func (*ConsulStore) Name() string {
	return "consul"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (cs *ConsulStore) Open(ctx context.Context) error {
	// Nothing to initialize - Consul handles connections
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (cs *ConsulStore) Close(ctx context.Context) error {
	// Nothing to clean up - Consul client is stateless
	return nil
}

// Capabilities returns the set of capabilities supported by this backend.
func (cs *ConsulStore) Capabilities() depot.Capabilities {
	return depot.Capabilities{
		Capabilities: []depot.Capability{
			depot.CapabilityPersistent,
			depot.CapabilityShared,
		},
		MaxValueSize: consulMaxValueSize,
	}
}

// buildKey constructs the full Consul KV key from the entry key
func (cs *ConsulStore) buildKey(key string) string {
	// Consul keys must not start with /
	key = strings.TrimPrefix(key, "/")
	return cs.config.Prefix + key
}

func (cs *ConsulStore) Set(ctx context.Context, key string, value []byte) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if len(value) > consulMaxValueSize {
		return fmt.Errorf("%w: value is %d bytes, consul limit is %d",
			depot.ErrQuotaExceeded, len(value), consulMaxValueSize)
	}

	pair := &api.KVPair{
		Key:   cs.buildKey(key),
		Value: value,
	}

	_, err := cs.kv.Put(pair, (&api.WriteOptions{}).WithContext(ctx))
	return err
}

func (cs *ConsulStore) Get(ctx context.Context, key string) ([]byte, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	pair, _, err := cs.kv.Get(cs.buildKey(key), (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, fmt.Errorf("%w: %s", depot.ErrNotExist, key)
	}

	return pair.Value, nil
}

func (cs *ConsulStore) Delete(ctx context.Context, key string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	_, err := cs.kv.Delete(cs.buildKey(key), (&api.WriteOptions{}).WithContext(ctx))
	return err
}

func (cs *ConsulStore) Clear(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	_, err := cs.kv.DeleteTree(cs.config.Prefix, (&api.WriteOptions{}).WithContext(ctx))
	return err
}

func (cs *ConsulStore) Count(ctx context.Context) (int, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	keys, _, err := cs.kv.Keys(cs.config.Prefix, "", (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return 0, err
	}

	return len(keys), nil
}

// Iterate lists the whole prefix in one round trip and walks the result,
// so the sequence is a point-in-time snapshot of the cluster state.
func (cs *ConsulStore) Iterate(ctx context.Context) (depot.Iterator, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	pairs, _, err := cs.kv.List(cs.config.Prefix, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}

	return &consulIterator{
		pairs:  pairs,
		prefix: cs.config.Prefix,
	}, nil
}

type consulIterator struct {
	pairs  api.KVPairs
	prefix string
	index  int
}

func (it *consulIterator) Next(ctx context.Context) (depot.Entry, error) {
	for it.index < len(it.pairs) {
		pair := it.pairs[it.index]
		it.index++

		// A directory placeholder for the prefix itself trims to an
		// empty key and is not an entry.
		key := strings.TrimPrefix(pair.Key, it.prefix)
		if key == "" {
			continue
		}

		return depot.Entry{
			Key:   key,
			Value: pair.Value,
		}, nil
	}

	return depot.Entry{}, depot.Done
}

func (it *consulIterator) Close() error {
	it.index = len(it.pairs)
	return nil
}

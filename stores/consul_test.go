package stores

import (
	"testing"

	"github.com/hashicorp/consul/api"

	"github.com/mwantia/depot"
)

// TestConsulIterator_SkipsPrefixPlaceholder verifies a directory
// placeholder equal to the prefix itself never surfaces as an entry.
func TestConsulIterator_SkipsPrefixPlaceholder(t *testing.T) {
	ctx := t.Context()
	it := &consulIterator{
		prefix: "depot/",
		pairs: api.KVPairs{
			{Key: "depot/", Value: nil},
			{Key: "depot/alpha", Value: []byte("1")},
			{Key: "depot/bravo", Value: []byte("2")},
		},
	}

	var keys []string
	for {
		entry, err := it.Next(ctx)
		if err != nil {
			if err == depot.Done {
				break
			}
			t.Fatalf("Next failed: %v", err)
		}
		keys = append(keys, entry.Key)
	}

	if len(keys) != 2 || keys[0] != "alpha" || keys[1] != "bravo" {
		t.Errorf("Expected [alpha bravo], got %v", keys)
	}
}

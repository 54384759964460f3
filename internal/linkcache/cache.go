// Package linkcache memoizes rewritten HTML per (content fingerprint, corpus
// version, excluded entity). Corpus rebuilds never walk the cache: stale
// versions simply stop being requested and age out of the LRU.
package linkcache

import (
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity bounds the cache when the host does not configure one.
const DefaultCapacity = 512

// Key identifies one rewritten render. Embedding the corpus version makes
// invalidation implicit; embedding the excluded entity keeps a keyword's own
// page from reusing a render that linked its title elsewhere.
type Key struct {
	ContentHash uint64
	Version     uint64
	Exclude     uuid.UUID
}

// Cache is a bounded, concurrency-safe LRU of rewritten HTML. A nil or
// disabled cache degrades to direct computation.
type Cache struct {
	entries *lru.Cache[Key, string]
}

// New creates a cache with the given capacity. Capacity zero or below
// disables caching entirely; every lookup computes.
func New(capacity int) (*Cache, error) {
	if capacity <= 0 {
		return &Cache{}, nil
	}
	entries, err := lru.New[Key, string](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// GetOrCompute returns the cached value for key, computing and storing it on
// a miss. Two goroutines missing the same key may both compute; the result is
// identical and the last insert wins, which is cheaper than serializing
// misses behind a lock.
func (c *Cache) GetOrCompute(key Key, compute func() string) string {
	if c == nil || c.entries == nil {
		return compute()
	}
	if value, ok := c.entries.Get(key); ok {
		return value
	}
	value := compute()
	c.entries.Add(key, value)
	return value
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	if c == nil || c.entries == nil {
		return 0
	}
	return c.entries.Len()
}

// Purge drops every entry. Only tests and administrative resets need this;
// normal invalidation happens through version-keyed unreachability.
func (c *Cache) Purge() {
	if c == nil || c.entries == nil {
		return
	}
	c.entries.Purge()
}

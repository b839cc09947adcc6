// Package cache is the client's in-memory TTL cache. The client only ever
// holds cached copies of server state, so entries expire quickly and the
// cache is capped to keep a long session from growing without bound.
package cache

import (
	"sync"
	"time"
)

const (
	// DefaultTTL is how long a cached copy is trusted before the next
	// screen load goes back to the network.
	DefaultTTL = 5 * time.Minute

	// DefaultCap is the maximum number of cached entries.
	DefaultCap = 100
)

// Cache is a keyed TTL cache. Using an interface keeps services testable
// and leaves room for another backend later.
type Cache[V any] interface {
	// Get returns the cached value for key if it is present and fresh.
	Get(key string) (V, bool)

	// Put stores value under key, evicting the oldest entry at capacity.
	Put(key string, value V)

	// Invalidate drops the entry for key, if any. Mutations call this so
	// the next load sees server truth.
	Invalidate(key string)

	// Clear drops everything (logout, full refresh).
	Clear()
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

type memoryCache[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	ttl     time.Duration
	cap     int
	now     func() time.Time
}

// New returns a map-backed cache with the given TTL and capacity. Zero
// values select the defaults.
func New[V any](ttl time.Duration, capacity int) Cache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &memoryCache[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		cap:     capacity,
		now:     time.Now,
	}
}

func (c *memoryCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *memoryCache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.cap {
		c.evictOldest()
	}
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
}

func (c *memoryCache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *memoryCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// evictOldest removes the stalest entry. Caller holds the lock.
func (c *memoryCache[V]) evictOldest() {
	var oldestKey string
	var oldest time.Time
	first := true
	for key, e := range c.entries {
		if first || e.storedAt.Before(oldest) {
			oldestKey = key
			oldest = e.storedAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}

package approx

import (
	"sync"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Cache shares computed edge tessellations across one traversal. It is
// keyed by the content of the underlying bounded global curve, so any two
// faces that border the same curve reuse one tessellation.
//
// A cache lives exactly as long as the top-level call that created it; it
// is never persisted across traversals and has no eviction. Under a
// sequential traversal the locking is idle overhead; under a parallel
// traversal it guarantees at-most-one computation per key: the first caller
// to miss computes, and concurrent missers on the same key wait for that
// result instead of recomputing.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	once   sync.Once
	points []v3.Vec
}

// NewCache returns an empty cache for one traversal.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// points returns the tessellation stored under key, running compute at most
// once per key across all callers. The mutex only guards the entry map;
// computation runs outside it, so concurrent work on distinct keys
// proceeds in parallel.
func (c *Cache) points(key string, compute func() []v3.Vec) []v3.Vec {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok {
		entry = &cacheEntry{}
		c.entries[key] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		entry.points = compute()
	})
	return entry.points
}

// Len returns the number of cached tessellations.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

package readability

import "sync"

// DefaultCacheSize is the default capacity of the syllable cache.
const DefaultCacheSize = 2000

// syllableKey identifies a memoized syllable count. The word is stored
// lowercased so case variants of the same word share one entry.
type syllableKey struct {
	word     string
	language string
}

// syllableCache is a bounded, thread-safe memoization cache for per-word
// syllable counts. Entries are created on first computation and never
// mutated, only hit or evicted.
//
// The bound exists to cap memory use across long-lived processes that audit
// many pages; precise eviction order is irrelevant to correctness because a
// re-computed entry always carries the same value. At capacity the cache
// evicts one arbitrary entry (map iteration order) before inserting.
type syllableCache struct {
	mu       sync.RWMutex
	entries  map[syllableKey]int
	capacity int
	metrics  MetricsCollector
}

// newSyllableCache creates a cache with the given capacity. Non-positive
// capacities fall back to DefaultCacheSize.
func newSyllableCache(capacity int, metrics MetricsCollector) *syllableCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &syllableCache{
		entries:  make(map[syllableKey]int, capacity),
		capacity: capacity,
		metrics:  metrics,
	}
}

// get returns the memoized count for key, if present.
func (c *syllableCache) get(key syllableKey) (int, bool) {
	c.mu.RLock()
	count, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		c.metrics.RecordCacheHit()
	} else {
		c.metrics.RecordCacheMiss()
	}
	return count, ok
}

// put stores a computed count, evicting one arbitrary entry first when the
// cache is at capacity. Overwriting an existing key does not evict.
func (c *syllableCache) put(key syllableKey, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		for victim := range c.entries {
			delete(c.entries, victim)
			c.metrics.RecordCacheEviction()
			break
		}
	}
	c.entries[key] = count
}

// len reports the current number of entries.
func (c *syllableCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// reset removes all entries. It exists for tests only.
func (c *syllableCache) reset() {
	c.mu.Lock()
	c.entries = make(map[syllableKey]int, c.capacity)
	c.mu.Unlock()
}

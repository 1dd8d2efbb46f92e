// Package stringcache implements the TTL-bounded LRU string cache: an
// O(1) key/value store where every entry has a hard expiry, eviction
// is strict least-recently-used, and a single background sweeper per
// instance purges expired entries independently of reads.
//
// It keeps the two-data-structure shape of the cache this package was
// generalized from — a map for O(1) lookup plus a container/list for
// recency ordering — and adds the pieces that shape needed to satisfy
// a length-prefixed wire protocol: byte-string values instead of
// interface{}, a mandatory (never-optional) expiry on every Set, and
// a joinable sweeper instead of a detached goroutine.
package stringcache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a thread-safe key/value store combining:
//
//  1. A hash map (map[string]*list.Element) for O(1) lookup.
//  2. A doubly linked list (*list.List) for LRU ordering — front is
//     most recently used, back is least recently used.
//
// Every mutation — Set, Get (which updates recency), Delete, and the
// sweeper's deleteExpired — runs under the same exclusive mutex, so
// the map and the list never drift out of sync with each other.
type Cache struct {
	data       map[string]*list.Element
	lru        *list.List // element.Value is always *entry
	mu         sync.Mutex
	maxEntries int
	interval   time.Duration
	stopChan   chan struct{}
	doneChan   chan struct{}
	stats      Stats
	metrics    Recorder
}

// New builds a Cache and, unless the cleanup interval is left at
// zero, starts its background sweeper.
func New(opts ...Option) *Cache {
	c := &Cache{
		data:     make(map[string]*list.Element),
		lru:      list.New(),
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
		metrics:  noopRecorder{},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.startJanitor()
	return c
}

// WithRecorder wires a metrics sink into the cache; internal/metrics'
// Registry.StringCache() supplies the concrete Recorder. A nil r keeps
// the no-op recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Cache) {
		if r != nil {
			c.metrics = r
		}
	}
}

// Set inserts or overwrites key with value and a TTL.
//
// If key already exists, its value and expiry are overwritten and it
// moves to the front of the recency order. Otherwise, if the cache is
// at maxEntries capacity, the least-recently-used key is evicted
// first, then the new key is inserted at the front.
//
// ttl == 0 is not "no expiry" — expiresAt is computed as now+0, so the
// entry is already expired by the time any subsequent Get observes it.
// This mirrors the reference cache's literal `expiresAt = now + ttl`
// with no zero-TTL special case.
func (c *Cache) Set(key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(ttl).UnixNano()

	if elem, found := c.data[key]; found {
		it := elem.Value.(*entry)
		it.value = value
		it.expiresAt = expiresAt
		c.lru.MoveToFront(elem)
		return
	}

	if c.maxEntries > 0 && c.lru.Len() >= c.maxEntries {
		c.evictOldest()
	}

	it := &entry{key: key, value: value, expiresAt: expiresAt}
	elem := c.lru.PushFront(it)
	c.data[key] = elem
}

// Get returns the value for key and whether it was found and live.
//
//   - Present and unexpired: value is moved to the front of the
//     recency order and returned with found=true.
//   - Present but expired: the entry is removed from both the map and
//     the recency order, and found=false.
//   - Absent: found=false.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, found := c.data[key]
	if !found {
		c.stats.Misses++
		c.metrics.CacheMiss()
		return nil, false
	}

	it := elem.Value.(*entry)
	if it.expired() {
		c.removeElement(elem)
		c.stats.Misses++
		c.metrics.CacheMiss()
		return nil, false
	}

	c.lru.MoveToFront(elem)
	c.stats.Hits++
	c.metrics.CacheHit()
	return it.value, true
}

// Delete removes key from both the map and the recency order, if
// present. It is idempotent: deleting an absent key is a no-op.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.data[key]; found {
		c.removeElement(elem)
	}
}

// Stats returns a snapshot of the cache's hit/miss/eviction counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Len reports the current number of stored entries, including expired
// ones that no Get or sweep has removed yet; mostly useful in tests
// asserting eviction behavior.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// deleteExpired performs one active-expiration sweep: a full O(n) scan
// from the back of the recency list (oldest first) removing every
// entry whose expiry has passed. It is invoked by the janitor at
// the configured interval, never directly by callers.
func (c *Cache) deleteExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for elem := c.lru.Back(); elem != nil; {
		prev := elem.Prev()
		it := elem.Value.(*entry)
		if it.expired() {
			c.removeElement(elem)
		}
		elem = prev
	}
}

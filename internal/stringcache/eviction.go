package stringcache

import "container/list"

// evictOldest removes the least-recently-used entry — the back of the
// LRU list — to make room for a new key on a full cache. It is a
// no-op on an empty cache; Set only calls it when maxEntries > 0 and
// the cache already holds that many entries, so it never is empty then.
//
// Callers must already hold c.mu.
func (c *Cache) evictOldest() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}
	c.removeElement(elem)
	c.stats.Evictions++
	c.metrics.CacheEviction()
}

// removeElement drops a list element from both the LRU list and the
// backing map, keeping the two structures in lockstep — the invariant
// every exported method relies on. Callers must already hold c.mu.
func (c *Cache) removeElement(e *list.Element) {
	c.lru.Remove(e)
	it := e.Value.(*entry)
	delete(c.data, it.key)
}

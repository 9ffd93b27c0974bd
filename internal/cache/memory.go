package cache

import (
	"container/list"
	"sync"
)

// LRU is an in-memory cache holding a fixed number of entries, evicting
// the least recently used.
type LRU struct {
	capacity int

	items    map[string]*list.Element
	eviction *list.List

	mu    sync.Mutex
	stats Stats
}

type entry struct {
	key     string
	text    string
	missing bool // the source has no text for this key
}

// NewLRU creates a cache holding up to capacity entries. A capacity below
// one selects DefaultCapacity.
func NewLRU(capacity int) *LRU {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &LRU{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}
}

// Get returns the cached text and whether the source had none. ok is false
// on a miss.
func (c *LRU) Get(key string) (text string, missing, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, found := c.items[key]
	if !found {
		c.stats.Misses++
		return "", false, false
	}

	c.eviction.MoveToFront(elem)
	e := elem.Value.(*entry)
	c.stats.Hits++
	return e.text, e.missing, true
}

// Put stores text for key.
func (c *LRU) Put(key, text string) {
	c.put(&entry{key: key, text: text})
}

// PutMissing records that key has no text.
func (c *LRU) PutMissing(key string) {
	c.put(&entry{key: key, missing: true})
}

func (c *LRU) put(e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[e.key]; ok {
		c.eviction.MoveToFront(elem)
		elem.Value = e
		return
	}

	for c.eviction.Len() >= c.capacity {
		c.evictOldest()
	}
	c.items[e.key] = c.eviction.PushFront(e)
}

// Delete removes an entry.
func (c *LRU) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
	}
}

// Clear removes all entries.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.eviction.Init()
}

// Len returns the number of cached entries.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}

// Contains checks if a key exists without updating recency.
func (c *LRU) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// Stats returns cache statistics.
func (c *LRU) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Capacity = c.capacity
	stats.ItemCount = len(c.items)
	if stats.Hits+stats.Misses > 0 {
		stats.HitRate = float64(stats.Hits) / float64(stats.Hits+stats.Misses)
	}
	return stats
}

// evictOldest removes the least recently used item (must be called with lock held).
func (c *LRU) evictOldest() {
	if elem := c.eviction.Back(); elem != nil {
		c.removeElement(elem)
		c.stats.Evictions++
	}
}

// removeElement removes an element from the cache (must be called with lock held).
func (c *LRU) removeElement(elem *list.Element) {
	c.eviction.Remove(elem)
	delete(c.items, elem.Value.(*entry).key)
}

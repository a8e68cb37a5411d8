package memstore

import (
	"sync"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
)

// lruCache is a simple thread-safe LRU cache of assessments keyed by zone.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.Assessment
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.Assessment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.Assessment{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

// put stores value under key and returns the key it evicted, if any.
func (c *lruCache) put(key string, value domain.Assessment) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return "", false
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		return c.evictTail()
	}
	return "", false
}

// values returns every cached assessment, most recently used first,
// without changing recency.
func (c *lruCache) values() []domain.Assessment {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Assessment, 0, len(c.entries))
	for e := c.head; e != nil; e = e.next {
		out = append(out, e.value)
	}
	return out
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() (string, bool) {
	if c.tail == nil {
		return "", false
	}
	key := c.tail.key
	delete(c.entries, key)
	c.remove(c.tail)
	return key, true
}

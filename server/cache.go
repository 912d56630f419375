package server

import (
	"container/list"
	"sync"
)

type stillKey struct {
	w, h int
	t    float32
}

type stillEntry struct {
	key  stillKey
	data []byte
}

// stillCache is a small LRU of encoded PNGs.
type stillCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[stillKey]*list.Element
}

func newStillCache(capacity int) *stillCache {
	return &stillCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[stillKey]*list.Element),
	}
}

func (c *stillCache) get(k stillKey) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[k]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*stillEntry).data, true
}

func (c *stillCache) put(k stillKey, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[k]; ok {
		el.Value.(*stillEntry).data = data
		c.order.MoveToFront(el)
		return
	}
	c.items[k] = c.order.PushFront(&stillEntry{key: k, data: data})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*stillEntry).key)
	}
}

func (c *stillCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

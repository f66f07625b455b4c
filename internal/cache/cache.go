package cache

import (
	"container/list"
	"errors"
)

const entryOverhead = 64

// Cache is a byte-bounded LRU of rendered strings. It is not safe for
// concurrent use.
type Cache[K comparable] struct {
	maxBytes  int64
	size      int64
	evictList *list.List
	items     map[K]*list.Element
}

type entry[K comparable] struct {
	key   K
	value string
	size  int64
}

func New[K comparable](maxSizeMB int64) (*Cache[K], error) {
	if maxSizeMB <= 0 {
		return nil, errors.New("cache size must be positive")
	}
	return &Cache[K]{
		maxBytes:  maxSizeMB * 1024 * 1024,
		evictList: list.New(),
		items:     make(map[K]*list.Element),
	}, nil
}

func (c *Cache[K]) Get(key K) (string, bool) {
	if c == nil {
		return "", false
	}
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		return ele.Value.(*entry[K]).value, true
	}
	return "", false
}

func (c *Cache[K]) Put(key K, value string) {
	if c == nil {
		return
	}

	size := int64(len(value)) + entryOverhead
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		e := ele.Value.(*entry[K])
		c.size += size - e.size
		e.value = value
		e.size = size
	} else {
		ele := c.evictList.PushFront(&entry[K]{key: key, value: value, size: size})
		c.items[key] = ele
		c.size += size
	}

	for c.size > c.maxBytes && c.evictList.Len() > 1 {
		c.removeOldest()
	}
}

func (c *Cache[K]) Len() int {
	if c == nil {
		return 0
	}
	return c.evictList.Len()
}

func (c *Cache[K]) SizeOf() int64 {
	if c == nil {
		return 0
	}
	return c.size
}

func (c *Cache[K]) Purge() {
	if c == nil {
		return
	}
	c.evictList.Init()
	c.items = make(map[K]*list.Element)
	c.size = 0
}

func (c *Cache[K]) removeOldest() {
	ele := c.evictList.Back()
	if ele != nil {
		c.removeElement(ele)
	}
}

func (c *Cache[K]) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*entry[K])
	delete(c.items, kv.key)
	c.size -= kv.size
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lru

import (
	"container/list"
	"sync"
)

type sizedEntry[K comparable, V any] struct {
	key   K
	value V
	size  int
}

// SizedCache is an LRU cache bounded by total weighed size rather than
// entry count. Size is computed once per Put via sizeFn.
type SizedCache[K comparable, V any] struct {
	lock        sync.Mutex
	maxSize     int
	currentSize int
	sizeFn      func(K, V) int
	onEvict     func(K, V)
	elements    map[K]*list.Element
	order       *list.List // Front = most recently used
}

// NewSized creates a size-bounded LRU cache. A nil sizeFn weighs every
// entry as 1, making the cache count-bounded. maxSize zero (or negative)
// yields a degenerate cache that stores nothing.
func NewSized[K comparable, V any](maxSize int, sizeFn func(K, V) int) *SizedCache[K, V] {
	return NewSizedWithOnEvict[K, V](maxSize, sizeFn, nil)
}

// NewSizedWithOnEvict creates a size-bounded LRU cache that calls onEvict
// for every entry removed by capacity eviction, Evict, or Flush.
func NewSizedWithOnEvict[K comparable, V any](maxSize int, sizeFn func(K, V) int, onEvict func(K, V)) *SizedCache[K, V] {
	if maxSize < 0 {
		maxSize = 0
	}
	if sizeFn == nil {
		sizeFn = func(K, V) int { return 1 }
	}
	return &SizedCache[K, V]{
		maxSize:  maxSize,
		sizeFn:   sizeFn,
		onEvict:  onEvict,
		elements: make(map[K]*list.Element),
		order:    list.New(),
	}
}

// Put inserts or replaces a value, evicting least recently used entries
// until the new entry fits. Replacing an existing key mutates the entry in
// place and does not count as an eviction. An entry larger than the whole
// budget is rejected without disturbing current contents.
func (c *SizedCache[K, V]) Put(key K, value V) {
	c.lock.Lock()
	defer c.lock.Unlock()

	entrySize := c.sizeFn(key, value)
	if entrySize < 1 {
		entrySize = 1
	}
	if entrySize > c.maxSize {
		return
	}

	if elem, ok := c.elements[key]; ok {
		e := elem.Value.(*sizedEntry[K, V])
		c.currentSize += entrySize - e.size
		e.value = value
		e.size = entrySize
		c.order.MoveToFront(elem)
	} else {
		e := &sizedEntry[K, V]{key: key, value: value, size: entrySize}
		c.elements[key] = c.order.PushFront(e)
		c.currentSize += entrySize
	}

	// The updated or inserted entry sits at the front and fits the budget
	// on its own, so it is never the one evicted here.
	for c.currentSize > c.maxSize {
		c.removeElement(c.order.Back())
	}
}

// Get returns the entry with the key, if it exists, marking it most
// recently used.
func (c *SizedCache[K, V]) Get(key K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if elem, ok := c.elements[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*sizedEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Evict removes the specified entry from the cache.
func (c *SizedCache[K, V]) Evict(key K) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if elem, ok := c.elements[key]; ok {
		c.removeElement(elem)
	}
}

// Flush removes all entries from the cache.
func (c *SizedCache[K, V]) Flush() {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.onEvict != nil {
		for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
			e := elem.Value.(*sizedEntry[K, V])
			c.onEvict(e.key, e.value)
		}
	}
	c.elements = make(map[K]*list.Element)
	c.order.Init()
	c.currentSize = 0
}

// Len returns the number of entries in the cache.
func (c *SizedCache[K, V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.elements)
}

// Cap returns the size budget of the cache.
func (c *SizedCache[K, V]) Cap() int {
	return c.maxSize
}

// PortionFilled returns the ratio of weighed size used to the budget.
func (c *SizedCache[K, V]) PortionFilled() float64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.maxSize == 0 {
		return 0
	}
	return float64(c.currentSize) / float64(c.maxSize)
}

func (c *SizedCache[K, V]) removeElement(elem *list.Element) {
	e := elem.Value.(*sizedEntry[K, V])
	delete(c.elements, e.key)
	c.order.Remove(elem)
	c.currentSize -= e.size
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lru provides a thread-safe least-recently-used cache.
package lru

import (
	"container/list"
	"sync"
)

// entry is a cache entry.
type entry[K comparable, V any] struct {
	key   K
	value V
}

// Cache is a thread-safe LRU cache. The recency list and the key map are
// only ever mutated together under the lock, so every key in the map has
// exactly one element in the list and vice versa.
type Cache[K comparable, V any] struct {
	lock     sync.Mutex
	capacity int
	onEvict  func(K, V)
	elements map[K]*list.Element
	order    *list.List // Front = most recently used
}

// New creates an LRU cache with the given capacity. Capacity zero (or
// negative) yields a degenerate cache that stores nothing.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return NewWithOnEvict[K, V](capacity, nil)
}

// NewWithOnEvict creates an LRU cache that calls onEvict for every entry
// removed by capacity eviction, Evict, or Flush.
func NewWithOnEvict[K comparable, V any](capacity int, onEvict func(K, V)) *Cache[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	return &Cache[K, V]{
		capacity: capacity,
		onEvict:  onEvict,
		elements: make(map[K]*list.Element),
		order:    list.New(),
	}
}

// Put inserts an element into the cache, evicting the least recently used
// entry if the cache is full.
func (c *Cache[K, V]) Put(key K, value V) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.capacity == 0 {
		return
	}

	if elem, ok := c.elements[key]; ok {
		// Update existing entry and mark it most recently used.
		elem.Value.(*entry[K, V]).value = value
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		c.removeElement(c.order.Back())
	}

	e := &entry[K, V]{key: key, value: value}
	c.elements[key] = c.order.PushFront(e)
}

// Get returns the entry with the key, if it exists, marking it most
// recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if elem, ok := c.elements[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Evict removes the specified entry from the cache.
func (c *Cache[K, V]) Evict(key K) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if elem, ok := c.elements[key]; ok {
		c.removeElement(elem)
	}
}

// Flush removes all entries from the cache.
func (c *Cache[K, V]) Flush() {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.onEvict != nil {
		for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
			e := elem.Value.(*entry[K, V])
			c.onEvict(e.key, e.value)
		}
	}
	c.elements = make(map[K]*list.Element)
	c.order.Init()
}

// Len returns the number of elements in the cache.
func (c *Cache[K, V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.order.Len()
}

// Cap returns the capacity of the cache.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// PortionFilled returns fraction of cache currently filled.
func (c *Cache[K, V]) PortionFilled() float64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.capacity == 0 {
		return 0
	}
	return float64(c.order.Len()) / float64(c.capacity)
}

func (c *Cache[K, V]) removeElement(elem *list.Element) {
	e := elem.Value.(*entry[K, V])
	delete(c.elements, e.key)
	c.order.Remove(elem)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}

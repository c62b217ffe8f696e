// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lfu provides a thread-safe least-frequently-used cache with O(1)
// operations, using per-frequency recency lists and a tracked minimum
// frequency. Eviction removes the least frequently used entry; entries tied
// at the minimum frequency are evicted least-recently-used first.
package lfu

import (
	"container/list"
	"sync"
)

// entry is a cache entry. freq starts at 1 on insertion and is bumped by
// one on every Get and on every Put of an existing key.
type entry[K comparable, V any] struct {
	key   K
	value V
	freq  int
}

// Cache is a thread-safe LFU cache. The frequency buckets and the key map
// are only ever mutated together under the lock, so every key in the map
// has exactly one element in exactly one bucket, and minFreq is the
// smallest frequency with a non-empty bucket whenever the cache is
// non-empty.
type Cache[K comparable, V any] struct {
	lock     sync.Mutex
	capacity int
	onEvict  func(K, V)
	elements map[K]*list.Element
	buckets  map[int]*list.List // frequency -> entries, Front = most recently touched
	minFreq  int
}

// New creates an LFU cache with the given capacity. Capacity zero (or
// negative) yields a degenerate cache that stores nothing.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return NewWithOnEvict[K, V](capacity, nil)
}

// NewWithOnEvict creates an LFU cache that calls onEvict for every entry
// removed by capacity eviction, Evict, or Flush.
func NewWithOnEvict[K comparable, V any](capacity int, onEvict func(K, V)) *Cache[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	return &Cache[K, V]{
		capacity: capacity,
		onEvict:  onEvict,
		elements: make(map[K]*list.Element),
		buckets:  make(map[int]*list.List),
	}
}

// Put inserts an element into the cache, evicting the least frequently
// used entry if the cache is full. Putting an existing key overwrites its
// value and counts as an access.
func (c *Cache[K, V]) Put(key K, value V) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.capacity == 0 {
		return
	}

	if elem, ok := c.elements[key]; ok {
		elem.Value.(*entry[K, V]).value = value
		c.promote(elem)
		return
	}

	if len(c.elements) >= c.capacity {
		c.evictLFU()
	}

	// A fresh entry is always a minimum-frequency candidate.
	e := &entry[K, V]{key: key, value: value, freq: 1}
	c.elements[key] = c.pushBucket(1, e)
	c.minFreq = 1
}

// Get returns the entry with the key, if it exists, bumping its frequency.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if elem, ok := c.elements[key]; ok {
		value := elem.Value.(*entry[K, V]).value
		c.promote(elem)
		return value, true
	}
	var zero V
	return zero, false
}

// Evict removes the specified entry from the cache.
func (c *Cache[K, V]) Evict(key K) {
	c.lock.Lock()
	defer c.lock.Unlock()

	elem, ok := c.elements[key]
	if !ok {
		return
	}
	e := elem.Value.(*entry[K, V])
	delete(c.elements, key)
	c.unlink(e.freq, elem)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}

// Flush removes all entries from the cache.
func (c *Cache[K, V]) Flush() {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.onEvict != nil {
		for _, elem := range c.elements {
			e := elem.Value.(*entry[K, V])
			c.onEvict(e.key, e.value)
		}
	}
	c.elements = make(map[K]*list.Element)
	c.buckets = make(map[int]*list.List)
	c.minFreq = 0
}

// Len returns the number of elements in the cache.
func (c *Cache[K, V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.elements)
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
	return float64(len(c.elements)) / float64(c.capacity)
}

// promote moves an entry from its current frequency bucket to the next
// one, advancing minFreq past the old bucket if it drained.
func (c *Cache[K, V]) promote(elem *list.Element) {
	e := elem.Value.(*entry[K, V])
	f := e.freq
	c.unlink(f, elem)
	if _, ok := c.buckets[f]; !ok && c.minFreq == f {
		c.minFreq = f + 1
	}
	e.freq = f + 1
	c.elements[e.key] = c.pushBucket(f+1, e)
}

// evictLFU removes the least recently touched entry of the minimum
// frequency bucket. Callers only invoke it on a non-empty cache.
func (c *Cache[K, V]) evictLFU() {
	bucket, ok := c.buckets[c.minFreq]
	if !ok {
		panic("lfu: minimum frequency bucket missing")
	}
	elem := bucket.Back()
	e := elem.Value.(*entry[K, V])
	delete(c.elements, e.key)
	c.unlink(e.freq, elem)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}

// unlink removes an element from the bucket for frequency f, deleting the
// bucket once empty.
func (c *Cache[K, V]) unlink(f int, elem *list.Element) {
	bucket := c.buckets[f]
	bucket.Remove(elem)
	if bucket.Len() == 0 {
		delete(c.buckets, f)
	}
}

// pushBucket inserts an entry at the front of the bucket for frequency f,
// creating the bucket if absent.
func (c *Cache[K, V]) pushBucket(f int, e *entry[K, V]) *list.Element {
	bucket, ok := c.buckets[f]
	if !ok {
		bucket = list.New()
		c.buckets[f] = bucket
	}
	return bucket.PushFront(e)
}

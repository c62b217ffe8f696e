// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sharded spreads a string-keyed cache across independently locked
// sub-caches to reduce lock contention. Keys are routed by murmur3 hash;
// capacity is divided evenly across shards, so eviction accounting is
// per-shard.
package sharded

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/spaolacci/murmur3"

	cache "github.com/luxfi/evictcache"
)

var _ cache.Cacher[string, struct{}] = (*Cache[struct{}])(nil)

// ErrShardCount is returned by New when the shard count is not a positive
// power of two.
var ErrShardCount = errors.New("sharded: shard count must be a positive power of two")

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	GetCalls uint64
	Misses   uint64
	PutCalls uint64
}

// Cache implements cache.Cacher[string, V] over a set of sub-caches.
type Cache[V any] struct {
	shards    []cache.Cacher[string, V]
	shardMask uint32

	getCalls uint64
	misses   uint64
	putCalls uint64
}

// New creates a sharded cache. shardCount must be a positive power of two.
// capacity is the total entry budget, split evenly across shards. Each
// shard holds at least one entry when capacity > 0, so Cap reports
// shardCount rather than capacity when capacity < shardCount. newShard
// builds one sub-cache of the given capacity, so either eviction policy
// serves.
func New[V any](
	shardCount int,
	capacity int,
	newShard func(capacity int) cache.Cacher[string, V],
) (*Cache[V], error) {
	if shardCount < 1 || shardCount&(shardCount-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrShardCount, shardCount)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", cache.ErrNegativeCapacity, capacity)
	}

	perShard := capacity / shardCount
	if perShard < 1 && capacity > 0 {
		perShard = 1
	}

	c := &Cache[V]{
		shards:    make([]cache.Cacher[string, V], shardCount),
		shardMask: uint32(shardCount - 1),
	}
	for i := range c.shards {
		c.shards[i] = newShard(perShard)
	}
	return c, nil
}

func (c *Cache[V]) shard(key string) cache.Cacher[string, V] {
	h := murmur3.Sum32([]byte(key))
	return c.shards[h&c.shardMask]
}

// Put inserts an element into the shard owning the key.
func (c *Cache[V]) Put(key string, value V) {
	atomic.AddUint64(&c.putCalls, 1)
	c.shard(key).Put(key, value)
}

// Get returns the entry with the key, if it exists.
func (c *Cache[V]) Get(key string) (V, bool) {
	atomic.AddUint64(&c.getCalls, 1)
	value, ok := c.shard(key).Get(key)
	if !ok {
		atomic.AddUint64(&c.misses, 1)
	}
	return value, ok
}

// Evict removes the specified entry from the cache.
func (c *Cache[V]) Evict(key string) {
	c.shard(key).Evict(key)
}

// Flush removes all entries from every shard.
func (c *Cache[V]) Flush() {
	for _, s := range c.shards {
		s.Flush()
	}
}

// Len returns the number of elements across all shards.
func (c *Cache[V]) Len() int {
	n := 0
	for _, s := range c.shards {
		n += s.Len()
	}
	return n
}

// Cap returns the total capacity across all shards.
func (c *Cache[V]) Cap() int {
	n := 0
	for _, s := range c.shards {
		n += s.Cap()
	}
	return n
}

// PortionFilled returns fraction of total capacity currently filled.
func (c *Cache[V]) PortionFilled() float64 {
	capacity := c.Cap()
	if capacity == 0 {
		return 0
	}
	return float64(c.Len()) / float64(capacity)
}

// Stats returns a snapshot of call counters.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		GetCalls: atomic.LoadUint64(&c.getCalls),
		Misses:   atomic.LoadUint64(&c.misses),
		PutCalls: atomic.LoadUint64(&c.putCalls),
	}
}

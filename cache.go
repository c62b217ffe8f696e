// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cache provides fixed-capacity key/value caches with pluggable
// eviction policies.
package cache

import (
	"errors"
	"fmt"

	"github.com/luxfi/evictcache/lfu"
	"github.com/luxfi/evictcache/lru"
)

// Policy selects the eviction strategy used by a cache.
type Policy int

const (
	// LRU discards the least recently used entry first.
	LRU Policy = iota
	// LFU discards the least frequently used entry first,
	// breaking ties by recency.
	LFU
)

// String returns the canonical name of the policy.
func (p Policy) String() string {
	switch p {
	case LRU:
		return "lru"
	case LFU:
		return "lfu"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

var (
	// ErrNegativeCapacity is returned by New when capacity < 0.
	// Zero capacity is valid and yields a cache that stores nothing.
	ErrNegativeCapacity = errors.New("cache: negative capacity")

	// ErrUnknownPolicy is returned by New for an unrecognized Policy value.
	ErrUnknownPolicy = errors.New("cache: unknown eviction policy")
)

// Cacher acts as a best effort key value store with a bounded entry count.
type Cacher[K comparable, V any] interface {
	// Put inserts an element into the cache, evicting per policy when full.
	Put(key K, value V)

	// Get returns the entry with the key, if it exists.
	Get(key K) (V, bool)

	// Evict removes the specified entry from the cache.
	// Evicting an absent key is a no-op.
	Evict(key K)

	// Flush removes all entries from the cache.
	Flush()

	// Len returns the number of elements in the cache.
	Len() int

	// Cap returns the maximum number of elements the cache holds.
	Cap() int

	// PortionFilled returns fraction of cache currently filled (0 --> 1).
	PortionFilled() float64
}

// New creates a cache with the given eviction policy and capacity.
func New[K comparable, V any](policy Policy, capacity int) (Cacher[K, V], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCapacity, capacity)
	}
	switch policy {
	case LRU:
		return lru.New[K, V](capacity), nil
	case LFU:
		return lfu.New[K, V](capacity), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPolicy, policy)
	}
}

// Interface compliance
var (
	_ Cacher[struct{}, struct{}] = (*lru.Cache[struct{}, struct{}])(nil)
	_ Cacher[struct{}, struct{}] = (*lru.SizedCache[struct{}, struct{}])(nil)
	_ Cacher[struct{}, struct{}] = (*lfu.Cache[struct{}, struct{}])(nil)
)

package lru

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheEvictionOrder(t *testing.T) {
	require := require.New(t)

	cache := New[string, int](2)

	cache.Put("a", 1)
	cache.Put("b", 2)

	// Touching "a" makes "b" the eviction candidate.
	_, ok := cache.Get("a")
	require.True(ok)

	cache.Put("c", 3)

	_, ok = cache.Get("b")
	require.False(ok)

	val, ok := cache.Get("a")
	require.True(ok)
	require.Equal(1, val)

	val, ok = cache.Get("c")
	require.True(ok)
	require.Equal(3, val)
}

func TestCacheUpdateExisting(t *testing.T) {
	require := require.New(t)

	cache := New[string, int](2)

	cache.Put("a", 1)
	cache.Put("a", 2)

	require.Equal(1, cache.Len())

	val, ok := cache.Get("a")
	require.True(ok)
	require.Equal(2, val)
}

func TestCacheUpdateRefreshesRecency(t *testing.T) {
	require := require.New(t)

	cache := New[string, int](2)

	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Put("a", 10) // "b" is now least recently used
	cache.Put("c", 3)

	_, ok := cache.Get("b")
	require.False(ok)

	val, ok := cache.Get("a")
	require.True(ok)
	require.Equal(10, val)
}

func TestCacheEvictAbsentKey(t *testing.T) {
	require := require.New(t)

	cache := New[string, int](2)
	cache.Put("a", 1)

	cache.Evict("missing")
	cache.Evict("missing")

	require.Equal(1, cache.Len())

	val, ok := cache.Get("a")
	require.True(ok)
	require.Equal(1, val)
}

func TestCacheZeroCapacity(t *testing.T) {
	require := require.New(t)

	cache := New[string, int](0)

	cache.Put("a", 1)

	require.Zero(cache.Len())
	require.Zero(cache.Cap())
	require.Zero(cache.PortionFilled())

	_, ok := cache.Get("a")
	require.False(ok)
}

func TestCacheCapacityInvariant(t *testing.T) {
	require := require.New(t)

	cache := New[int, int](3)
	for i := 0; i < 100; i++ {
		cache.Put(i, i)
		require.LessOrEqual(cache.Len(), cache.Cap())
	}
	require.Equal(3, cache.Len())
}

func TestCacheFlush(t *testing.T) {
	require := require.New(t)

	cache := New[string, string](3)
	cache.Put("a", "apple")
	cache.Put("b", "banana")
	cache.Put("c", "cherry")

	require.Equal(3, cache.Len())
	require.Equal(1.0, cache.PortionFilled())

	cache.Flush()

	require.Zero(cache.Len())
	require.Zero(cache.PortionFilled())

	_, ok := cache.Get("a")
	require.False(ok)
}

func TestCacheOnEvict(t *testing.T) {
	require := require.New(t)

	evicted := make([]string, 0)
	cache := NewWithOnEvict(2, func(k string, _ string) {
		evicted = append(evicted, k)
	})

	cache.Put("x", "value-x")
	cache.Put("y", "value-y")
	cache.Put("z", "value-z") // evicts "x"

	require.Equal([]string{"x"}, evicted)

	cache.Evict("y")
	require.Equal([]string{"x", "y"}, evicted)
}

func TestCacheConcurrentDisjointKeys(t *testing.T) {
	require := require.New(t)

	const workers = 16
	cache := New[string, int](workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i)
			cache.Put(key, i)
			for j := 0; j < 100; j++ {
				cache.Get(key)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(workers, cache.Len())
	for i := 0; i < workers; i++ {
		val, ok := cache.Get(fmt.Sprintf("key-%d", i))
		require.True(ok)
		require.Equal(i, val)
	}
}

package cache_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/cache"
)

func TestLRUCache_Basic(t *testing.T) {
	t.Parallel()

	t.Run("put and get", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)
		c.Put("a", 1)
		c.Put("b", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)
		assert.Equal(t, 2, c.Len())

		_, ok = c.Get("missing")
		assert.False(t, ok)
	})

	t.Run("put returns the replaced value", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)
		c.Put("a", 1)

		old, existed := c.Put("a", 2)
		assert.True(t, existed)
		assert.Equal(t, 1, old)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("remove", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)
		c.Put("a", 1)

		val, ok := c.Remove("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)

		_, ok = c.Remove("a")
		assert.False(t, ok)
		assert.Zero(t, c.Len())
	})

	t.Run("panics on non positive capacity", func(t *testing.T) {
		assert.Panics(t, func() { cache.NewLRUCache[string, int](0) })
		assert.Panics(t, func() { cache.NewLRUCache[string, int](-1) })
	})
}

func TestLRUCache_Eviction(t *testing.T) {
	t.Parallel()

	t.Run("evicts the least recently used entry", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](2)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Get("a")
		c.Put("c", 3)

		_, ok := c.Get("b")
		assert.False(t, ok, "b was least recently used")
		_, ok = c.Get("a")
		assert.True(t, ok)
	})

	t.Run("reports evictions", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](2)
		var evicted []string
		c.OnEvict(func(key string, _ int) { evicted = append(evicted, key) })

		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("c", 3)
		c.Remove("b")
		c.Put("d", 4)
		c.Clear()

		assert.Equal(t, []string{"a", "b", "c", "d"}, evicted)
		assert.Zero(t, c.Len())
	})
}

func TestLRUCache_Load(t *testing.T) {
	t.Parallel()

	t.Run("computes once and caches", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](2)
		calls := 0
		load := func() (int, error) { calls++; return 42, nil }

		v, err := c.Load("answer", load)
		require.NoError(t, err)
		assert.Equal(t, 42, v)

		v, err = c.Load("answer", load)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.Equal(t, 1, calls)
	})

	t.Run("does not cache errors", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](2)
		boom := errors.New("boom")

		_, err := c.Load("k", func() (int, error) { return 0, boom })
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, c.Len())

		v, err := c.Load("k", func() (int, error) { return 7, nil })
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})

	t.Run("concurrent misses agree on one value", func(t *testing.T) {
		c := cache.NewLRUCache[string, *int](4)

		var wg sync.WaitGroup
		results := make([]*int, 32)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				v, err := c.Load("k", func() (*int, error) { n := i; return &n, nil })
				assert.NoError(t, err)
				results[i] = v
			}(i)
		}
		wg.Wait()

		stored, ok := c.Get("k")
		require.True(t, ok)
		for _, r := range results {
			assert.Same(t, stored, r)
		}
	})
}

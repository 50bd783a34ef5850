package cache_test

import (
	"testing"

	"github.com/juan-009/authguard/core/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUCache_PutGet(t *testing.T) {
	c := cache.NewLRUCache[string, int](2)

	old, existed := c.Put("a", 1)
	assert.False(t, existed)
	assert.Equal(t, 0, old)

	v, found := c.Get("a")
	require.True(t, found)
	assert.Equal(t, 1, v)

	old, existed = c.Put("a", 2)
	assert.True(t, existed)
	assert.Equal(t, 1, old)
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := cache.NewLRUCache[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)

	// touch "a" so "b" becomes the least recently used
	_, _ = c.Get("a")

	c.Put("c", 3)

	_, found := c.Get("b")
	assert.False(t, found, "b should have been evicted")

	_, found = c.Get("a")
	assert.True(t, found)

	_, found = c.Get("c")
	assert.True(t, found)

	assert.Equal(t, 2, c.Len())
}

func TestLRUCache_EvictCallback(t *testing.T) {
	c := cache.NewLRUCache[string, int](1)

	var evictedKey string
	var evictedVal int
	c.SetEvictCallback(func(key string, value int) {
		evictedKey = key
		evictedVal = value
	})

	c.Put("a", 1)
	c.Put("b", 2)

	assert.Equal(t, "a", evictedKey)
	assert.Equal(t, 1, evictedVal)
}

func TestLRUCache_RemoveAndClear(t *testing.T) {
	c := cache.NewLRUCache[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)

	var evicted []string
	c.SetEvictCallback(func(key string, value int) {
		evicted = append(evicted, key)
	})

	v, removed := c.Remove("a")
	require.True(t, removed)
	assert.Equal(t, 1, v)
	assert.Equal(t, []string{"a"}, evicted)

	_, removed = c.Remove("missing")
	assert.False(t, removed)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Contains(t, evicted, "b")
}

func TestLRUCache_MinimumCapacity(t *testing.T) {
	c := cache.NewLRUCache[string, int](0)
	c.Put("a", 1)
	c.Put("b", 2)

	assert.Equal(t, 1, c.Len())
	_, found := c.Get("b")
	assert.True(t, found)
}

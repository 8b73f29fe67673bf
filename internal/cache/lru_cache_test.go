package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUCache_Basic(t *testing.T) {
	cache := NewLRUCache[int, []int64](2)

	cache.Set(1, []int64{10, 20})
	value, exists := cache.Get(1)
	assert.True(t, exists)
	assert.Equal(t, []int64{10, 20}, value)

	_, exists = cache.Get(99)
	assert.False(t, exists)
	assert.Equal(t, 1, cache.Len())
}

func TestLRUCache_Capacity(t *testing.T) {
	cache := NewLRUCache[string, string](2)

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")

	// Add one more item, should evict key1
	cache.Set("key3", "value3")

	_, exists := cache.Get("key1")
	assert.False(t, exists)

	value, exists := cache.Get("key2")
	assert.True(t, exists)
	assert.Equal(t, "value2", value)

	value, exists = cache.Get("key3")
	assert.True(t, exists)
	assert.Equal(t, "value3", value)
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	cache := NewLRUCache[string, string](2)

	cache.Set("key1", "value1")
	cache.Set("key1", "newvalue1")

	value, exists := cache.Get("key1")
	assert.True(t, exists)
	assert.Equal(t, "newvalue1", value)
	assert.Equal(t, 1, cache.Len())
}

func TestLRUCache_LRUOrder(t *testing.T) {
	cache := NewLRUCache[string, string](2)

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")

	// Access key1, making it most recently used
	cache.Get("key1")

	// Add new item, should evict key2 instead of key1
	cache.Set("key3", "value3")

	value, exists := cache.Get("key1")
	assert.True(t, exists)
	assert.Equal(t, "value1", value)

	_, exists = cache.Get("key2")
	assert.False(t, exists)

	value, exists = cache.Get("key3")
	assert.True(t, exists)
	assert.Equal(t, "value3", value)
}

func TestLRUCache_Remove(t *testing.T) {
	cache := NewLRUCache[int, int](4)
	cache.Set(1, 1)
	cache.Set(2, 2)

	cache.Remove(1)
	cache.Remove(42)

	_, exists := cache.Get(1)
	assert.False(t, exists)
	assert.Equal(t, 1, cache.Len())
}

func TestLRUCache_Disabled(t *testing.T) {
	cache := NewLRUCache[int, int](0)
	cache.Set(1, 1)

	_, exists := cache.Get(1)
	assert.False(t, exists)
	assert.Equal(t, 0, cache.Len())
}

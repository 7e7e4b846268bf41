package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a fixed-size LRU safe for concurrent use.
type Cache[K comparable, V any] struct {
	cache *lru.Cache[K, V]
}

func New[K comparable, V any](maxSize int) *Cache[K, V] {
	c, err := lru.New[K, V](maxSize)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize LRU cache: %s", err.Error()))
	}
	return &Cache[K, V]{cache: c}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.cache.Get(key)
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.cache.Add(key, value)
}

func (c *Cache[K, V]) Len() int {
	return c.cache.Len()
}

// Resize changes the capacity, evicting the oldest entries if it shrinks.
// Non-positive sizes are ignored.
func (c *Cache[K, V]) Resize(size int) int {
	if size <= 0 {
		return 0
	}
	return c.cache.Resize(size)
}

package cache

import "container/list"

// entry represents a key-value pair in the cache
type entry[K comparable, V any] struct {
	key   K
	value V
}

// LRUCache implements a Least Recently Used cache. A maxSize of zero or less
// disables caching: Set is a no-op and Get always misses.
type LRUCache[K comparable, V any] struct {
	maxSize    int
	cache      map[K]*list.Element
	doubleList *list.List
}

// NewLRUCache creates a new LRU cache with the given maximum size
func NewLRUCache[K comparable, V any](maxSize int) *LRUCache[K, V] {
	return &LRUCache[K, V]{
		maxSize:    maxSize,
		cache:      make(map[K]*list.Element),
		doubleList: list.New(),
	}
}

// Set adds or updates a key-value pair in the cache
func (l *LRUCache[K, V]) Set(key K, value V) {
	if l.maxSize <= 0 {
		return
	}

	// If key exists, update its value and move to front
	if element, exists := l.cache[key]; exists {
		l.doubleList.MoveToFront(element)
		element.Value.(*entry[K, V]).value = value
		return
	}

	ele := l.doubleList.PushFront(&entry[K, V]{key: key, value: value})
	l.cache[key] = ele

	// Remove oldest if cache is full
	if l.doubleList.Len() > l.maxSize {
		if oldest := l.doubleList.Back(); oldest != nil {
			l.removeElement(oldest)
		}
	}
}

// Get retrieves a value from the cache by key
func (l *LRUCache[K, V]) Get(key K) (V, bool) {
	element, exists := l.cache[key]
	if !exists {
		var zero V
		return zero, false
	}

	l.doubleList.MoveToFront(element)
	return element.Value.(*entry[K, V]).value, true
}

// Remove drops key if present
func (l *LRUCache[K, V]) Remove(key K) {
	if element, exists := l.cache[key]; exists {
		l.removeElement(element)
	}
}

func (l *LRUCache[K, V]) Len() int {
	return l.doubleList.Len()
}

// removeElement removes an element from the cache
func (l *LRUCache[K, V]) removeElement(element *list.Element) {
	l.doubleList.Remove(element)
	e := element.Value.(*entry[K, V])
	delete(l.cache, e.key)
}

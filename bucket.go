package exthash

import "sync"

// bucket is a bounded container of key/value entries that share the same
// low-order hash bits up to localDepth. It is a passive record: routing
// and split policy live in Index, which manipulates buckets only while
// holding their lock (and, for structural fields, the directory lock).
type bucket[K comparable, V any] struct {
	mu sync.Mutex

	// localDepth is the number of hash bits that discriminate this
	// bucket's entries from its siblings. Written only under the
	// exclusive structural lock.
	localDepth int

	entries map[K]V
}

func newBucket[K comparable, V any](depth, capacity int) *bucket[K, V] {
	return &bucket[K, V]{
		localDepth: depth,
		entries:    make(map[K]V, capacity),
	}
}

// The accessors below require b.mu to be held.

func (b *bucket[K, V]) get(key K) (V, bool) {
	v, ok := b.entries[key]
	return v, ok
}

func (b *bucket[K, V]) put(key K, value V) {
	b.entries[key] = value
}

// remove deletes key if present and reports whether a deletion occurred.
func (b *bucket[K, V]) remove(key K) bool {
	if _, ok := b.entries[key]; !ok {
		return false
	}
	delete(b.entries, key)
	return true
}

// full reports whether the bucket has reached capacity. A full bucket can
// still absorb overwrites of existing keys; only new keys force a split.
func (b *bucket[K, V]) full(capacity int) bool {
	return len(b.entries) >= capacity
}

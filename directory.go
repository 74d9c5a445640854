package exthash

import (
	"sync"

	"github.com/tamirms/exthash/internal/bits"
)

// directory is the resizable slot array of the index. Slots store handles
// into an append-only bucket arena rather than bucket pointers: handles
// stay valid across splits, many slots may alias one bucket, and counting
// distinct buckets is a deduplication over small ints.
//
// mu is the structural lock. Resolving a slot to a bucket takes it shared;
// growing the directory or repointing slots takes it exclusive. It is
// always acquired before any bucket lock, never after.
type directory[K comparable, V any] struct {
	mu          sync.RWMutex
	globalDepth int
	slots       []int
	arena       []*bucket[K, V]
}

// init sets up the initial state: depth 0, a single slot, a single bucket.
func (d *directory[K, V]) init(bucketCapacity int) {
	d.globalDepth = 0
	d.arena = []*bucket[K, V]{newBucket[K, V](0, bucketCapacity)}
	d.slots = []int{0}
}

// The methods below require d.mu to be held (shared is enough unless
// noted otherwise).

// slotFor masks the low globalDepth bits of hash into a slot index.
func (d *directory[K, V]) slotFor(hash uint64) int {
	return int(hash & bits.DepthMask(d.globalDepth))
}

// lookup resolves a hash to its bucket and the bucket's arena handle.
func (d *directory[K, V]) lookup(hash uint64) (*bucket[K, V], int) {
	handle := d.slots[d.slotFor(hash)]
	return d.arena[handle], handle
}

// grow doubles the directory: slot i+2^globalDepth starts out aliasing
// slot i, then globalDepth increases by one. Requires d.mu exclusive.
func (d *directory[K, V]) grow() {
	d.slots = append(d.slots, d.slots...)
	d.globalDepth++
}

// addBucket appends a bucket to the arena and returns its handle.
// Requires d.mu exclusive.
func (d *directory[K, V]) addBucket(b *bucket[K, V]) int {
	d.arena = append(d.arena, b)
	return len(d.arena) - 1
}

// repoint redirects every slot that aliases oldHandle and has the newly
// significant depthBit set to newHandle. Slots with depthBit clear keep
// aliasing the original bucket. Requires d.mu exclusive.
func (d *directory[K, V]) repoint(oldHandle, newHandle, depthBit int) {
	for i, h := range d.slots {
		if h == oldHandle && bits.HasBit(uint64(i), depthBit) {
			d.slots[i] = newHandle
		}
	}
}

// distinctBuckets counts the distinct buckets currently referenced by the
// directory, deduplicating aliased slots by handle.
func (d *directory[K, V]) distinctBuckets() int {
	seen := make(map[int]struct{}, len(d.arena))
	for _, h := range d.slots {
		seen[h] = struct{}{}
	}
	return len(seen)
}

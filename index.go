package exthash

import (
	"sync/atomic"

	extherrors "github.com/tamirms/exthash/errors"
	"github.com/tamirms/exthash/internal/bits"
)

// Index is a concurrent extendible hash index mapping keys to values.
//
// Thread Safety:
//   - All methods are safe for concurrent use from any goroutine
//   - Find, Remove, and non-splitting Inserts on different buckets run in
//     parallel; they take the structural lock shared and one bucket lock
//   - A split takes the structural lock exclusively for its full duration,
//     so no reader can observe a half-repointed directory
//
// Lock ordering is always structural lock first, bucket lock second, and
// a bucket lock is never held while requesting the structural lock.
type Index[K comparable, V any] struct {
	capacity   int // max entries per bucket
	depthLimit int
	seed       uint64
	hash       Hasher[K]

	dir directory[K, V]

	count atomic.Int64 // total entries, for Len
}

// New creates an index with the given per-bucket capacity. The initial
// state is a directory of depth 0 referencing a single empty bucket.
// Returns ErrInvalidCapacity if bucketCapacity < 1 and ErrInvalidDepthLimit
// if a WithDepthLimit option is out of range.
func New[K comparable, V any](bucketCapacity int, opts ...Option[K]) (*Index[K, V], error) {
	if bucketCapacity < 1 {
		return nil, extherrors.ErrInvalidCapacity
	}
	cfg := defaultConfig[K]()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.depthLimit < 1 || cfg.depthLimit > bits.MaxDepth {
		return nil, extherrors.ErrInvalidDepthLimit
	}
	hasher := cfg.hasher
	if hasher == nil {
		hasher = defaultHasher[K]()
	}

	idx := &Index[K, V]{
		capacity:   bucketCapacity,
		depthLimit: cfg.depthLimit,
		seed:       cfg.seed,
		hash:       hasher,
	}
	idx.dir.init(bucketCapacity)
	return idx, nil
}

// Find returns the value stored for key. The second return is false if the
// key is absent. No structural state is mutated.
func (idx *Index[K, V]) Find(key K) (V, bool) {
	hash := idx.hash(key, idx.seed)

	idx.dir.mu.RLock()
	b, _ := idx.dir.lookup(hash)
	b.mu.Lock()
	v, ok := b.get(key)
	b.mu.Unlock()
	idx.dir.mu.RUnlock()

	return v, ok
}

// Insert stores value under key, overwriting any existing value. A full
// bucket is split, doubling the directory when the split needs one more
// discriminating bit than the directory has. Returns nil on success, or
// ErrCapacityExhausted if the colliding keys cannot be separated within
// the configured depth limit; in that case the key is not stored but the
// index remains consistent (splits already performed are kept, since
// growth is monotonic).
func (idx *Index[K, V]) Insert(key K, value V) error {
	hash := idx.hash(key, idx.seed)

	// Fast path: overwrite or spare capacity, under the shared lock.
	idx.dir.mu.RLock()
	b, _ := idx.dir.lookup(hash)
	b.mu.Lock()
	if _, exists := b.get(key); exists {
		b.put(key, value)
		b.mu.Unlock()
		idx.dir.mu.RUnlock()
		return nil
	}
	if !b.full(idx.capacity) {
		b.put(key, value)
		b.mu.Unlock()
		idx.dir.mu.RUnlock()
		idx.count.Add(1)
		return nil
	}
	b.mu.Unlock()
	idx.dir.mu.RUnlock()

	// The bucket was full and the key is new: take the structural lock
	// exclusively and split. State may have changed between the lock
	// handoff, so re-run the full protocol from routing.
	return idx.insertSlow(hash, key, value)
}

// insertSlow is the split path of Insert. It re-routes on every iteration
// because a split changes the routing: a single insert may cascade through
// several splits when all colliding entries keep landing in one bucket.
func (idx *Index[K, V]) insertSlow(hash uint64, key K, value V) error {
	idx.dir.mu.Lock()
	defer idx.dir.mu.Unlock()

	for {
		b, handle := idx.dir.lookup(hash)
		b.mu.Lock()
		if _, exists := b.get(key); exists {
			b.put(key, value)
			b.mu.Unlock()
			return nil
		}
		if !b.full(idx.capacity) {
			b.put(key, value)
			b.mu.Unlock()
			idx.count.Add(1)
			return nil
		}
		if b.localDepth >= idx.depthLimit {
			// Splitting cannot discriminate past the depth limit. Give up
			// rather than doubling the directory forever on keys whose
			// hashes agree on all usable low bits.
			b.mu.Unlock()
			return extherrors.ErrCapacityExhausted
		}

		// Each iteration raises the routed bucket's local depth by one,
		// so the loop terminates within depthLimit iterations.
		idx.split(b, handle)
		b.mu.Unlock()
	}
}

// split divides an over-full bucket by one additional hash bit. The caller
// holds the structural lock exclusively and b's lock; redistribution and
// slot repointing both complete before either lock is released, so no
// reader can follow a stale slot to a bucket that already lost entries.
func (idx *Index[K, V]) split(b *bucket[K, V], handle int) {
	depthBit := b.localDepth
	b.localDepth++

	if b.localDepth > idx.dir.globalDepth {
		idx.dir.grow()
	}

	sibling := newBucket[K, V](b.localDepth, idx.capacity)
	for key, value := range b.entries {
		if bits.HasBit(idx.hash(key, idx.seed), depthBit) {
			sibling.entries[key] = value
			delete(b.entries, key)
		}
	}

	siblingHandle := idx.dir.addBucket(sibling)
	idx.dir.repoint(handle, siblingHandle, depthBit)
}

// Remove deletes the entry for key and reports whether a deletion
// occurred. Buckets and the directory never shrink: capacity is monotonic
// by design, so Remove touches no structural state.
func (idx *Index[K, V]) Remove(key K) bool {
	hash := idx.hash(key, idx.seed)

	idx.dir.mu.RLock()
	b, _ := idx.dir.lookup(hash)
	b.mu.Lock()
	removed := b.remove(key)
	b.mu.Unlock()
	idx.dir.mu.RUnlock()

	if removed {
		idx.count.Add(-1)
	}
	return removed
}

// GlobalDepth returns the number of low-order hash bits the directory
// currently uses to route keys.
func (idx *Index[K, V]) GlobalDepth() int {
	idx.dir.mu.RLock()
	defer idx.dir.mu.RUnlock()
	return idx.dir.globalDepth
}

// LocalDepth returns the local depth of the bucket referenced by the given
// directory slot. Returns ErrInvalidSlot if slot is outside
// [0, DirectorySize()). Local depths change only under the exclusive
// structural lock, so the shared lock is enough here.
func (idx *Index[K, V]) LocalDepth(slot int) (int, error) {
	idx.dir.mu.RLock()
	defer idx.dir.mu.RUnlock()
	if slot < 0 || slot >= len(idx.dir.slots) {
		return 0, extherrors.ErrInvalidSlot
	}
	return idx.dir.arena[idx.dir.slots[slot]].localDepth, nil
}

// NumBuckets returns the number of distinct buckets referenced by the
// directory. Aliased slots count once.
func (idx *Index[K, V]) NumBuckets() int {
	idx.dir.mu.RLock()
	defer idx.dir.mu.RUnlock()
	return idx.dir.distinctBuckets()
}

// DirectorySize returns the number of directory slots, always
// 2^GlobalDepth().
func (idx *Index[K, V]) DirectorySize() int {
	idx.dir.mu.RLock()
	defer idx.dir.mu.RUnlock()
	return len(idx.dir.slots)
}

// Len returns the total number of entries in the index.
func (idx *Index[K, V]) Len() int {
	return int(idx.count.Load())
}

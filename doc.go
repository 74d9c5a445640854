// Package exthash implements a concurrent, in-memory extendible hash index.
//
// The index maps arbitrary comparable keys to values with average O(1)
// lookup and grows incrementally: when a bucket overflows, it is split by
// examining one additional hash bit, and the directory doubles only when
// the split needs more discriminating bits than the directory currently
// uses. No operation ever rehashes the whole table, which makes the index
// suitable as a page table inside a buffer or cache manager where latency
// spikes from full rehashes are unacceptable.
//
// # Basic Usage
//
// Creating and using an index:
//
//	idx, err := exthash.New[uint64, *Frame](64)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := idx.Insert(pageID, frame); err != nil {
//	    log.Fatal(err)
//	}
//	frame, ok := idx.Find(pageID)
//	removed := idx.Remove(pageID)
//
// Bulk loading with parallel workers:
//
//	err := idx.Load(ctx, entries, exthash.WithWorkers(8))
//
// # Concurrency
//
// All methods are safe for concurrent use. Lookups against different
// buckets proceed in parallel; only a split serializes against the whole
// directory. See Index for the locking discipline.
//
// # Package Structure
//
//   - Public API: index.go (New, Find, Insert, Remove, introspection)
//   - Configuration: options.go (Option, With* functions)
//   - Hashing: hash.go (Hasher, default and ready-made hashers)
//   - Structure: bucket.go, directory.go
//   - Bulk loading: load.go (Load, LoadOption)
//   - Bit primitives: internal/bits
package exthash

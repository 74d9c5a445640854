package exthash

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// loadCancelCheckInterval is how many inserts a load worker performs
// between context checks. Checking per entry would cost more than the
// insert itself on small values.
const loadCancelCheckInterval = 1024

// Entry is a key/value pair for bulk loading.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// LoadOption is a functional option for configuring bulk loads.
type LoadOption func(*loadConfig)

type loadConfig struct {
	workers int
}

// WithWorkers sets the number of parallel load workers. Defaults to
// GOMAXPROCS.
func WithWorkers(n int) LoadOption {
	return func(c *loadConfig) {
		c.workers = n
	}
}

// Load inserts entries concurrently across worker goroutines. Entries are
// partitioned into contiguous chunks, one per worker; duplicate keys across
// chunks resolve to one of the supplied values, last writer wins. Load
// returns the first error encountered (ErrCapacityExhausted from an insert,
// or the context error if ctx is canceled mid-load) and stops dispatching
// further work; entries already inserted remain in the index.
func (idx *Index[K, V]) Load(ctx context.Context, entries []Entry[K, V], opts ...LoadOption) error {
	cfg := &loadConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	workers := cfg.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(entries) {
		workers = len(entries)
	}
	if len(entries) == 0 {
		return ctx.Err()
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(entries) + workers - 1) / workers
	for start := 0; start < len(entries); start += chunk {
		part := entries[start:min(start+chunk, len(entries))]
		g.Go(func() error {
			for i, e := range part {
				if i%loadCancelCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if err := idx.Insert(e.Key, e.Value); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

package exthash

import "github.com/tamirms/exthash/internal/bits"

// Option is a functional option for configuring an Index at construction.
type Option[K comparable] func(*config[K])

type config[K comparable] struct {
	seed       uint64
	depthLimit int // max local/global depth before Insert gives up
	hasher     Hasher[K]
}

func defaultConfig[K comparable]() *config[K] {
	return &config[K]{
		seed:       0x1234567890abcdef, // Arbitrary default; overridden via WithSeed
		depthLimit: bits.MaxDepth,
	}
}

// WithSeed sets the global hash seed. All hashes computed by the index use
// this seed, so it must not change once keys have been inserted.
func WithSeed[K comparable](seed uint64) Option[K] {
	return func(c *config[K]) {
		c.seed = seed
	}
}

// WithHasher sets a caller-supplied routing hash, overriding the default
// per-type hasher.
func WithHasher[K comparable](h Hasher[K]) Option[K] {
	return func(c *config[K]) {
		c.hasher = h
	}
}

// WithDepthLimit caps how many hash bits the directory may consume before
// an Insert that cannot separate colliding keys fails with
// ErrCapacityExhausted. Defaults to the full hash width (64). Lower limits
// bound worst-case directory memory when key hashes may collide on many
// low-order bits.
func WithDepthLimit[K comparable](limit int) Option[K] {
	return func(c *config[K]) {
		c.depthLimit = limit
	}
}

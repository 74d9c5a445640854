// Package bits provides low-level bit manipulation primitives for
// directory addressing.
package bits

// MaxDepth is the number of usable hash bits. A directory can never
// discriminate keys beyond this depth.
const MaxDepth = 64

// DepthMask returns a mask selecting the low depth bits of a hash.
// depth must be in [0, MaxDepth].
func DepthMask(depth int) uint64 {
	if depth >= MaxDepth {
		return ^uint64(0)
	}
	return (uint64(1) << depth) - 1
}

// HasBit reports whether bit i of hash is set. Bits at or beyond
// MaxDepth are always clear.
func HasBit(hash uint64, i int) bool {
	if i >= MaxDepth {
		return false
	}
	return hash&(uint64(1)<<i) != 0
}

// SlotCount returns the directory size for a given depth, 2^depth.
func SlotCount(depth int) int {
	return 1 << depth
}

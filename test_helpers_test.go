package exthash

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"testing"

	intbits "github.com/tamirms/exthash/internal/bits"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// identityHasher routes uint64 keys by their own bits, ignoring the seed.
// Tests use it to place keys in chosen directory slots deterministically.
func identityHasher(key uint64, _ uint64) uint64 {
	return key
}

// constantHasher collides every key onto a single hash value.
func constantHasher(_ uint64, _ uint64) uint64 {
	return 0
}

// newTestIndex creates an index and fails the test on construction errors.
func newTestIndex[K comparable, V any](t testing.TB, capacity int, opts ...Option[K]) *Index[K, V] {
	t.Helper()
	idx, err := New[K, V](capacity, opts...)
	if err != nil {
		t.Fatalf("New(%d) failed: %v", capacity, err)
	}
	return idx
}

// checkInvariants verifies the structural invariants of an index with
// uint64 keys:
//
//  1. directory size is 2^globalDepth
//  2. localDepth <= globalDepth for every referenced bucket
//  3. every bucket with localDepth d is referenced by exactly
//     2^(globalDepth-d) slots, and those slots agree on their low d bits
//  4. every entry's hash agrees with its bucket's slot pattern on the low
//     localDepth bits
//  5. no bucket exceeds capacity
//  6. the per-bucket entry counts sum to Len
func checkInvariants[V any](t *testing.T, idx *Index[uint64, V]) {
	t.Helper()
	idx.dir.mu.Lock()
	defer idx.dir.mu.Unlock()

	d := &idx.dir
	if got, want := len(d.slots), intbits.SlotCount(d.globalDepth); got != want {
		t.Fatalf("directory size = %d, want 2^%d = %d", got, d.globalDepth, want)
	}

	slotsByHandle := make(map[int][]int)
	for i, h := range d.slots {
		slotsByHandle[h] = append(slotsByHandle[h], i)
	}

	total := 0
	for handle, slots := range slotsByHandle {
		b := d.arena[handle]
		if b.localDepth > d.globalDepth {
			t.Fatalf("bucket %d: localDepth %d > globalDepth %d", handle, b.localDepth, d.globalDepth)
		}
		if want := intbits.SlotCount(d.globalDepth - b.localDepth); len(slots) != want {
			t.Fatalf("bucket %d (localDepth %d): referenced by %d slots, want %d",
				handle, b.localDepth, len(slots), want)
		}
		mask := intbits.DepthMask(b.localDepth)
		pattern := uint64(slots[0]) & mask
		for _, slot := range slots {
			if uint64(slot)&mask != pattern {
				t.Fatalf("bucket %d: slot %d disagrees with pattern %b on low %d bits",
					handle, slot, pattern, b.localDepth)
			}
		}
		for key := range b.entries {
			if h := idx.hash(key, idx.seed); h&mask != pattern {
				t.Fatalf("bucket %d: entry %d (hash %x) does not match pattern %b/%d",
					handle, key, h, pattern, b.localDepth)
			}
		}
		if len(b.entries) > idx.capacity {
			t.Fatalf("bucket %d: %d entries exceeds capacity %d", handle, len(b.entries), idx.capacity)
		}
		total += len(b.entries)
	}

	if total != idx.Len() {
		t.Fatalf("entry count = %d across buckets, Len() = %d", total, idx.Len())
	}
}

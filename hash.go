package exthash

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// Hasher maps a key and a seed to a 64-bit routing hash. The directory
// consumes the low-order bits of the result, so a Hasher must distribute
// keys uniformly across its low bits. Two calls with the same key and seed
// must return the same hash for the lifetime of an Index.
type Hasher[K comparable] func(key K, seed uint64) uint64

// XXH3String hashes string keys with xxHash3. This is the default hasher
// for string keys.
func XXH3String(key string, seed uint64) uint64 {
	return xxh3.HashStringSeed(key, seed)
}

// XXHashString hashes string keys with xxHash64. xxHash64 has no native
// seed parameter in this implementation, so the seed is folded in as an
// 8-byte prefix; a zero seed takes the allocation-free fast path.
func XXHashString(key string, seed uint64) uint64 {
	if seed == 0 {
		return xxhash.Sum64String(key)
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	d := xxhash.New()
	d.Write(buf[:])
	d.WriteString(key)
	return d.Sum64()
}

// Murmur3String hashes string keys with Murmur3. Only the low 32 bits of
// the seed participate, since Murmur3 takes a 32-bit seed.
func Murmur3String(key string, seed uint64) uint64 {
	return murmur3.Sum64WithSeed([]byte(key), uint32(seed))
}

// defaultHasher picks a routing hash for the key type. Strings and integer
// kinds go through xxHash3; every other comparable type falls back to
// hash/maphash, re-mixed through xxHash3 so the caller's seed still
// participates.
func defaultHasher[K comparable]() Hasher[K] {
	var zero K
	switch any(zero).(type) {
	case string:
		return func(key K, seed uint64) uint64 {
			return xxh3.HashStringSeed(any(key).(string), seed)
		}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr:
		return func(key K, seed uint64) uint64 {
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], intBits(any(key)))
			return xxh3.HashSeed(buf[:], seed)
		}
	default:
		mseed := maphash.MakeSeed()
		return func(key K, seed uint64) uint64 {
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], maphash.Comparable(mseed, key))
			return xxh3.HashSeed(buf[:], seed)
		}
	}
}

// intBits widens any integer kind to uint64. Callers guarantee v is one of
// the integer kinds matched in defaultHasher.
func intBits(v any) uint64 {
	switch x := v.(type) {
	case int:
		return uint64(x)
	case int8:
		return uint64(x)
	case int16:
		return uint64(x)
	case int32:
		return uint64(x)
	case int64:
		return uint64(x)
	case uint:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	case uintptr:
		return uint64(x)
	}
	return 0
}

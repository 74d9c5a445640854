// Bench is a benchmarking tool for measuring exthash insert and lookup
// throughput, directory growth, and memory usage.
//
// Usage:
//
//	go run ./cmd/bench -keys 10000000 -capacity 64 -workers 8 -hash xxh3
//
// Flags:
//
//	-keys      Number of keys to insert (default: 10,000,000)
//	-capacity  Bucket capacity (default: 64)
//	-workers   Number of parallel load workers (default: 1)
//	-hash      Hash function: xxh3, xxhash, or murmur3 (default: xxh3)
//	-reads     Number of random lookups after the load phase (default: keys)
package main

import (
	"context"
	"flag"
	"fmt"
	mrand "math/rand/v2"
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/tamirms/exthash"
)

// getMaxRSS returns the maximum resident set size in bytes.
// Uses getrusage(RUSAGE_SELF) which tracks peak RSS since process start.
func getMaxRSS() uint64 {
	var rusage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}
	// On macOS, MaxRss is in bytes. On Linux, it's in kilobytes.
	maxRSS := uint64(rusage.Maxrss)
	if runtime.GOOS == "linux" {
		maxRSS *= 1024 // Convert KB to bytes on Linux
	}
	return maxRSS
}

func main() {
	keysFlag := flag.Int("keys", 10_000_000, "number of keys")
	capacityFlag := flag.Int("capacity", 64, "bucket capacity")
	workersFlag := flag.Int("workers", 1, "number of parallel load workers")
	hashFlag := flag.String("hash", "xxh3", "hash function: xxh3, xxhash, or murmur3")
	readsFlag := flag.Int("reads", 0, "number of random lookups (default: same as -keys)")
	flag.Parse()

	numKeys := *keysFlag
	numReads := *readsFlag
	if numReads == 0 {
		numReads = numKeys
	}

	var hasher exthash.Hasher[string]
	switch *hashFlag {
	case "xxh3":
		hasher = exthash.XXH3String
	case "xxhash":
		hasher = exthash.XXHashString
	case "murmur3":
		hasher = exthash.Murmur3String
	default:
		fmt.Fprintf(os.Stderr, "unknown hash function %q\n", *hashFlag)
		os.Exit(1)
	}

	idx, err := exthash.New[string, uint64](*capacityFlag, exthash.WithHasher[string](hasher))
	if err != nil {
		fmt.Fprintf(os.Stderr, "create index: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("exthash bench: %d keys, capacity %d, %d workers, %s\n",
		numKeys, *capacityFlag, *workersFlag, *hashFlag)

	entries := make([]exthash.Entry[string, uint64], numKeys)
	for i := range entries {
		entries[i] = exthash.Entry[string, uint64]{
			Key:   fmt.Sprintf("page/%016x", i),
			Value: uint64(i),
		}
	}

	loadStart := time.Now()
	if err := idx.Load(context.Background(), entries, exthash.WithWorkers(*workersFlag)); err != nil {
		fmt.Fprintf(os.Stderr, "load: %v\n", err)
		os.Exit(1)
	}
	loadElapsed := time.Since(loadStart)
	fmt.Printf("load:    %v (%.0f keys/sec)\n", loadElapsed,
		float64(numKeys)/loadElapsed.Seconds())

	rng := mrand.New(mrand.NewPCG(1, 2))
	findStart := time.Now()
	misses := 0
	for range numReads {
		key := fmt.Sprintf("page/%016x", rng.IntN(numKeys))
		if _, ok := idx.Find(key); !ok {
			misses++
		}
	}
	findElapsed := time.Since(findStart)
	fmt.Printf("find:    %v (%.0f lookups/sec)\n", findElapsed,
		float64(numReads)/findElapsed.Seconds())
	if misses > 0 {
		fmt.Fprintf(os.Stderr, "BUG: %d lookups missed\n", misses)
		os.Exit(1)
	}

	fmt.Printf("entries:       %d\n", idx.Len())
	fmt.Printf("global depth:  %d\n", idx.GlobalDepth())
	fmt.Printf("directory:     %d slots\n", idx.DirectorySize())
	fmt.Printf("buckets:       %d\n", idx.NumBuckets())
	fmt.Printf("max RSS:       %.1f MiB\n", float64(getMaxRSS())/(1<<20))
}

package bench

import (
	"encoding/binary"
	mathRand "math/rand"

	"github.com/cespare/xxhash/v2"
)

// Keys returns n distinct keys in the order the workload inserts them.
func Keys(w Workload, n int, seed int64) []uint64 {
	keys := make([]uint64, n)
	switch w {
	case REVERSE:
		for i := range keys {
			keys[i] = uint64(n - 1 - i)
		}
	case RANDOM:
		for i := range keys {
			keys[i] = uint64(i)
		}
		mathRand.New(mathRand.NewSource(seed)).Shuffle(n, func(i, j int) {
			keys[i], keys[j] = keys[j], keys[i]
		})
	case HASHED:
		hashedKeys(keys, seed)
	default:
		for i := range keys {
			keys[i] = uint64(i)
		}
	}

	return keys
}

// hashedKeys fills keys with xxhash digests of seed and a counter, skipping
// the rare collision so every key stays distinct.
func hashedKeys(keys []uint64, seed int64) {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(seed))

	seen := make(map[uint64]struct{}, len(keys))
	for i, counter := 0, uint64(0); i < len(keys); counter++ {
		binary.BigEndian.PutUint64(buf[8:], counter)
		key := xxhash.Sum64(buf[:])
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		keys[i] = key
		i++
	}
}

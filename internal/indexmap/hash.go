package indexmap

import (
	"hash/maphash"
	"unsafe"
)

// seed is shared by every Map instance. hash/maphash seeds are randomized
// per-process at startup, which is enough to protect against hash-flooding
// without paying for one maphash.Seed per shard.
var seed = maphash.MakeSeed()

// HashKey exposes the bucket hash function for callers outside this package
// that need a cheap, stable fingerprint of a key, e.g. the singleflight
// dedup key in pkg/sievecache/loader.go. Never used for equality: a
// collision only costs a missed dedup opportunity or bucket fan-in, not
// correctness of Map itself.
func HashKey[K comparable](k K) uint64 { return hashKey(k) }

// hashKey mirrors the teacher's shard.hash: strings and byte slices are
// written directly, everything else falls back to hashing the key's raw
// bytes. Only used to pick a bucket, never to compare keys for equality.
func hashKey[K comparable](k K) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	switch v := any(k).(type) {
	case string:
		h.WriteString(v)
	case []byte:
		h.Write(v)
	default:
		// Scalars and small structs: hash the raw bytes behind the key. Safe
		// because the resulting slice is only read, never retained past this
		// call, matching the teacher's shard.hash fallback.
		ptr := unsafe.Pointer(&k)
		h.Write(unsafe.Slice((*byte)(ptr), unsafe.Sizeof(k)))
	}
	return h.Sum64()
}

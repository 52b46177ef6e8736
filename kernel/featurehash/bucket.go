package featurehash

import (
	"math/bits"

	"github.com/twmb/murmur3"
)

// NullBucket is the bucket id assigned to null input.
const NullBucket uint64 = 0

// Sum128 returns the MurmurHash3 x64 128-bit hash of s with seed 0 as its
// high and low 64-bit halves.
func Sum128(s string) (hi, lo uint64) {
	h1, h2 := murmur3.StringSum128(s)
	return h2, h1
}

// Bucket maps s to a bucket id in [1, numBuckets-1].
//
// numBuckets must be at least 2. Bucket panics when numBuckets is 1 and
// returns an unspecified id when it is 0; validate untrusted counts with
// Params.Validate first.
func Bucket(s string, numBuckets uint64) uint64 {
	hi, lo := Sum128(s)
	return bits.Rem64(hi, lo, numBuckets-1) + 1
}

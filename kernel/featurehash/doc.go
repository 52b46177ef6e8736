// Package featurehash implements the feature hashing kernel, registered as
// "feature_hasher".
//
// Each present string is hashed with MurmurHash3 x64 128-bit, seed 0, over
// its UTF-8 bytes, and the 128-bit hash is reduced to a bucket id:
//
//	bucket = (hash mod (num_buckets - 1)) + 1
//
// Bucket 0 is reserved for null input, so present values always land in
// [1, num_buckets-1]. The hash uses no per-process state: a string maps to the
// same bucket in every process on every machine, which lets training and
// serving pipelines share bucket assignments. Collisions between distinct
// strings are expected.
//
// The kernel is elementwise. Hasher splits large columns into contiguous
// partitions hashed concurrently; the output does not depend on the
// partitioning.
package featurehash

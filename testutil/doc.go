// Package testutil provides testing utilities for colkit.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG that generates random nullable
// columns, and helpers for splitting columns into chunks.
//
// # Random Columns
//
//	rng := testutil.NewRNG(seed)
//	f := rng.Float64Column("x", 1000, -1, 1, 0.1) // 10% nulls
//	s := rng.StringColumn("tok", 1000, 8, 0.05)
//
// # Chunking
//
//	chunks := testutil.Chunk(f, 64)
package testutil

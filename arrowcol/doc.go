// Package arrowcol adapts colkit kernels to Apache Arrow arrays.
//
// FromArrow copies an arrow.Array into a column; ToArrow builds an
// arrow.Array from a column with a caller-supplied allocator. Adapter wires
// both around a colkit.Engine so hosts can pass arrays, chunked arrays and
// records straight through a kernel.
//
// Supported Arrow types: int8..int64, uint8..uint64, float16, float32,
// float64, boolean, string and large_string. Float16 values are widened to
// float32. Any other type fails with a type mismatch.
//
// Arrays returned by this package are owned by the caller, who must Release
// them.
package arrowcol

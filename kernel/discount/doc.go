// Package discount implements the discounted cumulative sum kernel,
// registered as "discounted_cum_sum".
//
// For an ordered numeric column x and a decay factor gamma in [0, 1], the
// kernel keeps one accumulator, initially zero, and walks the column left to
// right:
//
//	present x[i]: acc = acc*gamma + x[i]; out[i] = acc
//	null x[i]:    out[i] = null; acc unchanged
//
// Nulls are gaps in the output, not in the state: the accumulator carries
// through them unchanged. gamma = 1 is a plain cumulative sum; gamma = 0
// returns the present inputs unchanged.
//
// Non-float64 numeric input (and booleans) is widened to float64 before the
// scan. The kernel is order dependent, so chunked input must be scanned in
// order; ScanCarry and Scanner expose the carry so chunk k+1 starts from chunk
// k's final accumulator, which gives bit-identical results to a single scan.
package discount

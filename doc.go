// Package colkit provides vectorized column kernels for columnar compute
// engines.
//
// Two kernels are registered by default:
//
//   - discounted_cum_sum: an exponentially decayed running total over an
//     ordered numeric column. Nulls produce nulls and leave the running
//     total unchanged.
//   - feature_hasher: the hashing trick. Strings map deterministically to
//     bucket ids in [1, num_buckets-1]; nulls map to bucket 0.
//
// # Quick Start
//
//	e, _ := colkit.New()
//	in := column.FromOptional("reward", []*float64{ptr(1), nil, ptr(2)})
//	out, err := e.Call(ctx, "discounted_cum_sum", in, discount.Params{Gamma: 0.5})
//
// Parameters can also arrive as encoded records in the host's native
// configuration format:
//
//	out, err := e.CallEncoded(ctx, "feature_hasher", tokens, []byte(`{"num_buckets": 1024}`))
//
// # Chunked Input
//
// Hosts that split a column into chunks call CallChunks. Vector kernels
// (discounted_cum_sum) thread their running state through the chunks in
// order, so the result is bit-identical to a call over the concatenated
// column.
//
// # Errors
//
// Failures match one of ErrInvalidParameter, ErrTypeMismatch, ErrCompute or
// ErrKernelNotFound via errors.Is. No call returns partial output.
//
// # Host Adapters
//
// Package arrowcol converts Apache Arrow arrays to and from columns.
// Package parquetcol reads and writes Parquet columns. Package metrics/prom
// exports call metrics to Prometheus.
package colkit

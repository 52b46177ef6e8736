package arrowcol

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colkit"
	"github.com/hupe1980/colkit/kernel"
	"github.com/hupe1980/colkit/kernel/discount"
	"github.com/hupe1980/colkit/kernel/featurehash"
)

func newAdapter(t *testing.T, mem memory.Allocator) *Adapter {
	t.Helper()
	e, err := colkit.New()
	require.NoError(t, err)
	return NewAdapter(e, mem)
}

func float64Array(mem memory.Allocator, values []float64, valid []bool) *array.Float64 {
	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	return b.NewFloat64Array()
}

func stringArray(mem memory.Allocator, values []string, valid []bool) *array.String {
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	return b.NewStringArray()
}

func TestAdapterCall(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ctx := context.Background()
	a := newAdapter(t, mem)

	t.Run("discounted cum sum", func(t *testing.T) {
		in := float64Array(mem, []float64{1, 0, 2}, []bool{true, false, true})
		defer in.Release()

		out, err := a.Call(ctx, discount.Name, "reward", in, discount.Params{Gamma: 0.5})
		require.NoError(t, err)
		defer out.Release()

		f := out.(*array.Float64)
		assert.Equal(t, 1.0, f.Value(0))
		assert.True(t, f.IsNull(1))
		assert.Equal(t, 2.5, f.Value(2))
	})

	t.Run("feature hasher", func(t *testing.T) {
		in := stringArray(mem, []string{"a", "", "a"}, []bool{true, false, true})
		defer in.Release()

		out, err := a.Call(ctx, featurehash.Name, "tok", in, featurehash.Params{NumBuckets: 10})
		require.NoError(t, err)
		defer out.Release()

		assert.Equal(t, 0, out.NullN())
		assert.Equal(t, []uint64{3, 0, 3}, out.(*array.Uint64).Uint64Values())
	})

	t.Run("kernel error", func(t *testing.T) {
		in := float64Array(mem, []float64{1}, nil)
		defer in.Release()

		out, err := a.Call(ctx, discount.Name, "reward", in, discount.Params{Gamma: 2})
		assert.ErrorIs(t, err, kernel.ErrInvalidParameter)
		assert.Nil(t, out)
	})
}

func TestAdapterCallChunked(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ctx := context.Background()
	a := newAdapter(t, mem)

	c1 := float64Array(mem, []float64{1, 0}, []bool{true, false})
	c2 := float64Array(mem, []float64{2, 4}, nil)
	chunked := arrow.NewChunked(arrow.PrimitiveTypes.Float64, []arrow.Array{c1, c2})
	c1.Release()
	c2.Release()
	defer chunked.Release()

	out, err := a.CallChunked(ctx, discount.Name, "reward", chunked, discount.Params{Gamma: 0.5})
	require.NoError(t, err)
	defer out.Release()

	require.Len(t, out.Chunks(), 2)
	assert.Equal(t, 4, out.Len())
	assert.Equal(t, 1, out.NullN())

	first := out.Chunks()[0].(*array.Float64)
	second := out.Chunks()[1].(*array.Float64)
	assert.Equal(t, 1.0, first.Value(0))
	assert.True(t, first.IsNull(1))
	assert.Equal(t, []float64{2.5, 5.25}, second.Float64Values())

	t.Run("unknown kernel", func(t *testing.T) {
		_, err := a.CallChunked(ctx, "nope", "reward", chunked, nil)
		assert.ErrorIs(t, err, colkit.ErrKernelNotFound)
	})
}

func TestAdapterCallRecord(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ctx := context.Background()
	a := newAdapter(t, mem)

	tok := stringArray(mem, []string{"a", "hello"}, nil)
	reward := float64Array(mem, []float64{1, 2}, nil)
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "tok", Type: arrow.BinaryTypes.String},
		{Name: "reward", Type: arrow.PrimitiveTypes.Float64},
	}, nil)
	rec := array.NewRecord(schema, []arrow.Array{tok, reward}, 2)
	tok.Release()
	reward.Release()
	defer rec.Release()

	t.Run("alias appends", func(t *testing.T) {
		out, err := a.CallRecord(ctx, featurehash.Name, rec, "tok", "tok_bucket", featurehash.Params{NumBuckets: 1000})
		require.NoError(t, err)
		defer out.Release()

		assert.Equal(t, int64(3), out.NumCols())
		assert.Equal(t, "tok_bucket", out.ColumnName(2))
		assert.Equal(t, []uint64{930, 669}, out.Column(2).(*array.Uint64).Uint64Values())
	})

	t.Run("empty alias replaces", func(t *testing.T) {
		out, err := a.CallRecord(ctx, discount.Name, rec, "reward", "", discount.Params{Gamma: 1})
		require.NoError(t, err)
		defer out.Release()

		assert.Equal(t, int64(2), out.NumCols())
		assert.Equal(t, "reward", out.ColumnName(1))
		assert.Equal(t, []float64{1, 3}, out.Column(1).(*array.Float64).Float64Values())
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := a.CallRecord(ctx, discount.Name, rec, "nope", "", discount.Params{Gamma: 1})
		assert.Error(t, err)
	})
}

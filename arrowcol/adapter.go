package arrowcol

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hupe1980/colkit"
	"github.com/hupe1980/colkit/column"
	"github.com/hupe1980/colkit/kernel"
)

// Adapter runs engine kernels over Arrow data.
type Adapter struct {
	engine *colkit.Engine
	mem    memory.Allocator
}

// NewAdapter returns an Adapter that allocates output arrays from mem.
// A nil mem selects memory.DefaultAllocator.
func NewAdapter(e *colkit.Engine, mem memory.Allocator) *Adapter {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	return &Adapter{engine: e, mem: mem}
}

// Call runs the named kernel over arr, treated as a column called name.
func (a *Adapter) Call(ctx context.Context, kernelName, name string, arr arrow.Array, p kernel.Params) (arrow.Array, error) {
	in, err := FromArrow(name, arr)
	if err != nil {
		return nil, err
	}
	out, err := a.engine.Call(ctx, kernelName, in, p)
	if err != nil {
		return nil, err
	}
	return ToArrow(a.mem, out)
}

// CallChunked runs the named kernel over every chunk of chunked in order.
// Vector kernels carry their state across chunk boundaries.
func (a *Adapter) CallChunked(ctx context.Context, kernelName, name string, chunked *arrow.Chunked, p kernel.Params) (*arrow.Chunked, error) {
	k, ok := a.engine.Lookup(kernelName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", colkit.ErrKernelNotFound, kernelName)
	}
	dtype, err := DataType(k.Doc().Output)
	if err != nil {
		return nil, err
	}

	in := make([]column.Column, 0, len(chunked.Chunks()))
	for _, chunk := range chunked.Chunks() {
		c, err := FromArrow(name, chunk)
		if err != nil {
			return nil, err
		}
		in = append(in, c)
	}

	out, err := a.engine.CallChunks(ctx, kernelName, in, p)
	if err != nil {
		return nil, err
	}

	arrs := make([]arrow.Array, 0, len(out))
	defer func() {
		for _, arr := range arrs {
			arr.Release()
		}
	}()
	for _, c := range out {
		arr, err := ToArrow(a.mem, c)
		if err != nil {
			return nil, err
		}
		arrs = append(arrs, arr)
	}

	return arrow.NewChunked(dtype, arrs), nil
}

// CallRecord runs the named kernel over the column called col of rec and
// returns a new record with the output appended as a nullable field called
// alias. An empty alias replaces col in place.
func (a *Adapter) CallRecord(ctx context.Context, kernelName string, rec arrow.Record, col, alias string, p kernel.Params) (arrow.Record, error) {
	schema := rec.Schema()
	idx := schema.FieldIndices(col)
	if len(idx) == 0 {
		return nil, fmt.Errorf("arrowcol: record has no column %q", col)
	}

	outName := alias
	if outName == "" {
		outName = col
	}

	out, err := a.Call(ctx, kernelName, outName, rec.Column(idx[0]), p)
	if err != nil {
		return nil, err
	}
	defer out.Release()

	fields := append([]arrow.Field(nil), schema.Fields()...)
	cols := append([]arrow.Array(nil), rec.Columns()...)
	field := arrow.Field{Name: outName, Type: out.DataType(), Nullable: true}

	if alias == "" {
		fields[idx[0]] = field
		cols[idx[0]] = out
	} else {
		fields = append(fields, field)
		cols = append(cols, out)
	}

	md := schema.Metadata()
	return array.NewRecord(arrow.NewSchema(fields, &md), cols, rec.NumRows()), nil
}

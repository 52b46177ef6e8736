package discount

import (
	"context"

	"github.com/hupe1980/colkit/codec"
	"github.com/hupe1980/colkit/column"
	"github.com/hupe1980/colkit/kernel"
)

// Name is the registered expression name.
const Name = "discounted_cum_sum"

// Kernel adapts Scan to the kernel.Kernel interface.
type Kernel struct{}

var _ kernel.Kernel = (*Kernel)(nil)

// New returns the discounted cumulative sum kernel.
func New() *Kernel { return &Kernel{} }

// Name implements kernel.Kernel.
func (*Kernel) Name() string { return Name }

// Doc implements kernel.Kernel.
func (*Kernel) Doc() kernel.Doc {
	return kernel.Doc{
		Name:    Name,
		Kind:    kernel.Vector,
		Summary: "Exponentially decayed running sum over an ordered numeric column",
		Description: "Each present value is added to the previous total multiplied by gamma.\n" +
			"Null inputs yield null outputs and leave the running total unchanged.",
		Params: []string{"gamma: float64 in [0, 1]"},
		Output: column.TypeFloat64,
	}
}

// DecodeParams implements kernel.Kernel.
func (*Kernel) DecodeParams(c codec.Codec, data []byte) (kernel.Params, error) {
	p, err := DecodeParams(c, data)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Execute implements kernel.Kernel.
func (*Kernel) Execute(_ context.Context, in column.Column, p kernel.Params) (column.Column, error) {
	params, err := kernel.ParamsAs[Params](Name, p)
	if err != nil {
		return nil, err
	}
	out, err := Scan(in, params)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExecuteChunks implements kernel.Kernel. Chunks are scanned in order with
// the accumulator carried across chunk boundaries.
func (*Kernel) ExecuteChunks(_ context.Context, chunks []column.Column, p kernel.Params) ([]column.Column, error) {
	params, err := kernel.ParamsAs[Params](Name, p)
	if err != nil {
		return nil, err
	}
	scanned, err := ScanChunks(chunks, params)
	if err != nil {
		return nil, err
	}
	out := make([]column.Column, len(scanned))
	for i, c := range scanned {
		out[i] = c
	}
	return out, nil
}

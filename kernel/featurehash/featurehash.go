package featurehash

import (
	"context"

	"github.com/hupe1980/colkit/codec"
	"github.com/hupe1980/colkit/column"
	"github.com/hupe1980/colkit/kernel"
)

// Name is the registered expression name.
const Name = "feature_hasher"

// Kernel adapts a Hasher to the kernel.Kernel interface.
type Kernel struct {
	hasher *Hasher
}

var _ kernel.Kernel = (*Kernel)(nil)

// New returns the feature hashing kernel.
func New(opts ...Option) *Kernel {
	return &Kernel{hasher: NewHasher(opts...)}
}

// Name implements kernel.Kernel.
func (*Kernel) Name() string { return Name }

// Doc implements kernel.Kernel.
func (*Kernel) Doc() kernel.Doc {
	return kernel.Doc{
		Name:    Name,
		Kind:    kernel.Scalar,
		Summary: "Deterministic hashing of strings into a bounded set of bucket ids",
		Description: "Present strings map to (murmur3_x64_128(s) mod (num_buckets-1)) + 1.\n" +
			"Null inputs map to bucket 0.",
		Params: []string{"num_buckets: int64 >= 2"},
		Output: column.TypeUint64,
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
func (k *Kernel) Execute(_ context.Context, in column.Column, p kernel.Params) (column.Column, error) {
	params, err := kernel.ParamsAs[Params](Name, p)
	if err != nil {
		return nil, err
	}
	out, err := k.hasher.Hash(in, params)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExecuteChunks implements kernel.Kernel.
func (k *Kernel) ExecuteChunks(_ context.Context, chunks []column.Column, p kernel.Params) ([]column.Column, error) {
	params, err := kernel.ParamsAs[Params](Name, p)
	if err != nil {
		return nil, err
	}
	hashed, err := k.hasher.HashChunks(chunks, params)
	if err != nil {
		return nil, err
	}
	out := make([]column.Column, len(hashed))
	for i, c := range hashed {
		out[i] = c
	}
	return out, nil
}

package featurehash

import (
	"fmt"

	"github.com/hupe1980/colkit/codec"
	"github.com/hupe1980/colkit/kernel"
)

// Params holds the kernel parameters.
type Params struct {
	// NumBuckets is the size of the output id space, bucket 0 included.
	// It must be at least 2.
	NumBuckets int64 `json:"num_buckets" yaml:"num_buckets"`
}

// Validate implements kernel.Params.
func (p Params) Validate() error {
	if p.NumBuckets <= 1 {
		return kernel.NewInvalidParameter(Name, "num_buckets", p.NumBuckets, "num_buckets must be at least 2")
	}
	return nil
}

type rawParams struct {
	NumBuckets *int64 `json:"num_buckets" yaml:"num_buckets"`
}

// DecodeParams decodes and validates a parameter record such as
// {"num_buckets": 1048576}.
func DecodeParams(c codec.Codec, data []byte) (Params, error) {
	if c == nil {
		c = codec.Default
	}

	var raw rawParams
	if err := c.Unmarshal(data, &raw); err != nil {
		return Params{}, kernel.DecodeError(Name, fmt.Errorf("%s: %w", c.Name(), err))
	}
	if raw.NumBuckets == nil {
		return Params{}, kernel.NewInvalidParameter(Name, "num_buckets", nil, "missing required parameter")
	}

	p := Params{NumBuckets: *raw.NumBuckets}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

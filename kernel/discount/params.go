package discount

import (
	"fmt"

	"github.com/hupe1980/colkit/codec"
	"github.com/hupe1980/colkit/kernel"
)

// Params holds the kernel parameters.
type Params struct {
	// Gamma is the decay factor applied to the accumulator before each
	// present value is added. It must be in [0, 1].
	Gamma float64 `json:"gamma" yaml:"gamma"`
}

// Validate implements kernel.Params.
func (p Params) Validate() error {
	// Written as a negated range check so NaN is rejected too.
	if !(p.Gamma >= 0 && p.Gamma <= 1) {
		return kernel.NewInvalidParameter(Name, "gamma", p.Gamma, "gamma must be in [0, 1]")
	}
	return nil
}

type rawParams struct {
	Gamma *float64 `json:"gamma" yaml:"gamma"`
}

// DecodeParams decodes and validates a parameter record such as
// {"gamma": 0.99}.
func DecodeParams(c codec.Codec, data []byte) (Params, error) {
	if c == nil {
		c = codec.Default
	}

	var raw rawParams
	if err := c.Unmarshal(data, &raw); err != nil {
		return Params{}, kernel.DecodeError(Name, fmt.Errorf("%s: %w", c.Name(), err))
	}
	if raw.Gamma == nil {
		return Params{}, kernel.NewInvalidParameter(Name, "gamma", nil, "missing required parameter")
	}

	p := Params{Gamma: *raw.Gamma}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

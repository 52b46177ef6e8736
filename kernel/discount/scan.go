package discount

import (
	"github.com/hupe1980/colkit/column"
	"github.com/hupe1980/colkit/kernel"
)

// Scan computes the discounted cumulative sum of in.
//
// Parameters are validated before any element is read. Non-float64 input is
// widened first; input that cannot be widened fails with a
// *kernel.TypeMismatchError. The output has the same name, length and null
// positions as in.
func Scan(in column.Column, p Params) (*column.Float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	f, err := toFloat64(in)
	if err != nil {
		return nil, err
	}

	out, _ := ScanCarry(f, p.Gamma, 0)
	return out, nil
}

// ScanCarry scans in starting from the accumulator value carry and returns
// the output together with the final accumulator.
//
// It is the carry-combine primitive for chunked input: feeding chunk k's
// final accumulator into chunk k+1 reproduces a single scan exactly.
// gamma is not validated here.
func ScanCarry(in *column.Float64, gamma, carry float64) (*column.Float64, float64) {
	out := make([]float64, in.Len())
	carry = accumulate(in.Values(), in.Nulls(), gamma, carry, out)
	return column.NewNumeric(in.Name(), out, in.Nulls().Clone()), carry
}

// ScanChunks scans an ordered sequence of chunks as one logical column.
//
// Every chunk is type-checked before the first one is scanned, so a bad chunk
// never leaves earlier chunks computed.
func ScanChunks(chunks []column.Column, p Params) ([]*column.Float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	widened := make([]*column.Float64, len(chunks))
	for i, c := range chunks {
		f, err := toFloat64(c)
		if err != nil {
			return nil, err
		}
		widened[i] = f
	}

	s := &Scanner{gamma: p.Gamma}
	out := make([]*column.Float64, len(widened))
	for i, f := range widened {
		out[i] = s.scan(f)
	}
	return out, nil
}

// Scanner scans a column delivered as a stream of chunks, carrying the
// accumulator from one chunk to the next.
//
// A Scanner is not safe for concurrent use.
type Scanner struct {
	gamma float64
	carry float64
}

// NewScanner validates p and returns a Scanner with a zero accumulator.
func NewScanner(p Params) (*Scanner, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Scanner{gamma: p.Gamma}, nil
}

// Scan scans the next chunk.
func (s *Scanner) Scan(chunk column.Column) (*column.Float64, error) {
	f, err := toFloat64(chunk)
	if err != nil {
		return nil, err
	}
	return s.scan(f), nil
}

// Carry returns the current accumulator.
func (s *Scanner) Carry() float64 { return s.carry }

func (s *Scanner) scan(f *column.Float64) *column.Float64 {
	out, carry := ScanCarry(f, s.gamma, s.carry)
	s.carry = carry
	return out
}

// accumulate writes the scan of values into out and returns the final
// accumulator. out[i] is left untouched at null positions.
func accumulate(values []float64, nulls *column.Nulls, gamma, acc float64, out []float64) float64 {
	// float64(acc*gamma) forces the product to be rounded; the compiler must
	// not fuse it into an FMA or results differ across architectures.
	if !nulls.Any() {
		for i, x := range values {
			acc = float64(acc*gamma) + x
			out[i] = acc
		}
		return acc
	}

	for i, x := range values {
		if nulls.Contains(i) {
			continue
		}
		acc = float64(acc*gamma) + x
		out[i] = acc
	}
	return acc
}

func toFloat64(in column.Column) (*column.Float64, error) {
	f, err := column.ToFloat64(in)
	if err != nil {
		return nil, kernel.NewTypeMismatch(Name, in, column.TypeFloat64.String()+"-coercible numeric", err)
	}
	return f, nil
}

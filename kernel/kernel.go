// Package kernel defines the contract shared by colkit's column kernels.
//
// A kernel is a named, stateless function from one input column plus a
// parameter record to one freshly allocated output column. Kernels validate
// their parameters before touching any element and never return partial
// output alongside an error.
package kernel

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/colkit/codec"
	"github.com/hupe1980/colkit/column"
)

// Kind describes how a kernel relates output positions to input positions.
type Kind int8

const (
	// Scalar kernels are elementwise: output[i] depends only on input[i].
	// Hosts may split the input into arbitrary chunks.
	Scalar Kind = iota
	// Vector kernels are order dependent: output[i] may depend on every
	// input[j] with j <= i. Chunks must be processed in order.
	Vector
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Vector:
		return "vector"
	default:
		return fmt.Sprintf("kind(%d)", int8(k))
	}
}

// Doc describes a kernel for registries and the CLI.
type Doc struct {
	Name        string
	Kind        Kind
	Summary     string
	Description string
	Params      []string
	Output      column.DataType
}

// Validate checks the formatting rules for a Doc: a non-empty name, a
// single-line summary without a trailing period, and description lines of
// at most 78 characters.
func (d Doc) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("kernel doc: empty name")
	}
	if d.Summary == "" {
		return fmt.Errorf("kernel doc %s: empty summary", d.Name)
	}
	if strings.Contains(d.Summary, "\n") {
		return fmt.Errorf("kernel doc %s: summary contains a newline", d.Name)
	}
	if strings.HasSuffix(d.Summary, ".") {
		return fmt.Errorf("kernel doc %s: summary ends with a period", d.Name)
	}

	const maxLineSize = 78
	for _, ln := range strings.Split(d.Description, "\n") {
		if len(ln) > maxLineSize {
			return fmt.Errorf("kernel doc %s: description line length exceeds %d characters", d.Name, maxLineSize)
		}
	}
	return nil
}

// Params is a kernel parameter record.
type Params interface {
	// Validate reports an *InvalidParameterError if the record violates the
	// kernel's constraints.
	Validate() error
}

// Kernel is a named column transformation.
//
// Implementations must be safe for concurrent use.
type Kernel interface {
	// Name returns the registered expression name.
	Name() string

	// Doc returns the kernel's documentation.
	Doc() Doc

	// DecodeParams decodes a parameter record with the given codec.
	// Decode failures and missing required fields are InvalidParameter errors.
	DecodeParams(c codec.Codec, data []byte) (Params, error)

	// Execute runs the kernel over a single column.
	Execute(ctx context.Context, in column.Column, p Params) (column.Column, error)

	// ExecuteChunks runs the kernel over a column split into ordered chunks.
	// The result has one output chunk per input chunk and is identical to
	// executing over the concatenated input.
	ExecuteChunks(ctx context.Context, chunks []column.Column, p Params) ([]column.Column, error)
}

// ParamsAs asserts p to the kernel's concrete parameter type. Both P and *P
// are accepted.
func ParamsAs[P Params](kernel string, p Params) (P, error) {
	switch v := any(p).(type) {
	case P:
		return v, nil
	case *P:
		if v != nil {
			return *v, nil
		}
	}
	var zero P
	return zero, &InvalidParameterError{
		Kernel: kernel,
		Reason: fmt.Sprintf("expected parameters of type %T, got %T", zero, p),
	}
}

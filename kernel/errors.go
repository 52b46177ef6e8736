package kernel

import (
	"errors"
	"fmt"

	"github.com/hupe1980/colkit/column"
)

var (
	// ErrInvalidParameter is matched by every *InvalidParameterError.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrTypeMismatch is matched by every *TypeMismatchError.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrCompute is matched by every *ComputeError.
	ErrCompute = errors.New("compute error")
)

// InvalidParameterError indicates a parameter record that violates a
// kernel's constraints or could not be decoded.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type InvalidParameterError struct {
	Kernel string
	Param  string
	Value  any
	Reason string
	cause  error
}

// NewInvalidParameter returns an *InvalidParameterError for param=value.
func NewInvalidParameter(kernel, param string, value any, reason string) *InvalidParameterError {
	return &InvalidParameterError{Kernel: kernel, Param: param, Value: value, Reason: reason}
}

// DecodeError wraps a parameter decoding failure.
func DecodeError(kernel string, cause error) *InvalidParameterError {
	return &InvalidParameterError{Kernel: kernel, Reason: "cannot decode parameters", cause: cause}
}

func (e *InvalidParameterError) Error() string {
	msg := e.Kernel + ": invalid parameter"
	if e.Param != "" {
		msg += fmt.Sprintf(" %s=%v", e.Param, e.Value)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

func (e *InvalidParameterError) Unwrap() error { return e.cause }

// TypeMismatchError indicates an input column whose type the kernel cannot
// process or coerce.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type TypeMismatchError struct {
	Kernel string
	Column string
	Got    column.DataType
	Want   string
	cause  error
}

// NewTypeMismatch returns a *TypeMismatchError for the given column.
func NewTypeMismatch(kernel string, c column.Column, want string, cause error) *TypeMismatchError {
	e := &TypeMismatchError{Kernel: kernel, Want: want, cause: cause}
	if !column.IsNil(c) {
		e.Column = c.Name()
		e.Got = c.DataType()
	}
	return e
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: type mismatch: column %q has type %s, want %s", e.Kernel, e.Column, e.Got, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

func (e *TypeMismatchError) Unwrap() error { return e.cause }

// ComputeError is the catch-all for any other kernel failure.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ComputeError struct {
	Kernel string
	cause  error
}

// NewComputeError wraps cause as a *ComputeError.
func NewComputeError(kernel string, cause error) *ComputeError {
	return &ComputeError{Kernel: kernel, cause: cause}
}

func (e *ComputeError) Error() string {
	if e.cause == nil {
		return e.Kernel + ": compute error"
	}
	return fmt.Sprintf("%s: compute error: %v", e.Kernel, e.cause)
}

func (e *ComputeError) Is(target error) bool { return target == ErrCompute }

func (e *ComputeError) Unwrap() error { return e.cause }

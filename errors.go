package colkit

import (
	"errors"
	"fmt"

	"github.com/hupe1980/colkit/kernel"
)

var (
	// ErrKernelNotFound is returned when no kernel is registered under a name.
	ErrKernelNotFound = errors.New("kernel not found")

	// ErrDuplicateKernel is returned when registering a name twice.
	ErrDuplicateKernel = errors.New("kernel already registered")

	// ErrNilKernel is returned when registering a nil kernel.
	ErrNilKernel = errors.New("kernel is nil")
)

// Kernel error taxonomy, re-exported so callers can match with errors.Is
// without importing package kernel.
var (
	ErrInvalidParameter = kernel.ErrInvalidParameter
	ErrTypeMismatch     = kernel.ErrTypeMismatch
	ErrCompute          = kernel.ErrCompute
)

type (
	// InvalidParameterError is an alias of kernel.InvalidParameterError.
	InvalidParameterError = kernel.InvalidParameterError
	// TypeMismatchError is an alias of kernel.TypeMismatchError.
	TypeMismatchError = kernel.TypeMismatchError
	// ComputeError is an alias of kernel.ComputeError.
	ComputeError = kernel.ComputeError
)

// translateError normalizes a kernel failure into the taxonomy. Errors that
// already belong to it pass through; anything else becomes a *ComputeError.
func translateError(name string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, kernel.ErrInvalidParameter),
		errors.Is(err, kernel.ErrTypeMismatch),
		errors.Is(err, kernel.ErrCompute):
		return err
	case errors.Is(err, ErrKernelNotFound),
		errors.Is(err, ErrDuplicateKernel):
		return err
	}

	return kernel.NewComputeError(name, err)
}

func notFound(name string) error {
	return fmt.Errorf("%w: %q", ErrKernelNotFound, name)
}

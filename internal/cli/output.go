package cli

import (
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/hupe1980/colkit"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Kernel failure (invalid parameter, type mismatch, compute error)
	ExitCommandError = 2 // Command error (bad flags, unreadable files, unknown kernel)
)

// Error codes reported in JSON output.
const (
	ErrCodeGeneric          = "E001"
	ErrCodeInvalidParameter = "E002"
	ErrCodeTypeMismatch     = "E003"
	ErrCodeKernelNotFound   = "E004"
	ErrCodeIO               = "E005"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success outputs data. In text mode text is called to render it.
func (f *OutputFormatter) Success(data any, text func(w io.Writer) error) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	return text(f.Writer)
}

// Fail reports err in the configured format and returns it wrapped in an
// ExitError carrying the matching exit code.
func (f *OutputFormatter) Fail(message string, err error) error {
	code, exit := classify(err)

	if f.Format == "json" {
		_ = json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: fmt.Sprintf("%s: %v", message, err)},
		})
	} else {
		fmt.Fprintf(f.GetErrWriter(), "Error [%s]: %s: %v\n", code, message, err)
	}
	return WrapExitError(exit, message, err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

func classify(err error) (string, int) {
	switch {
	case errors.Is(err, colkit.ErrInvalidParameter):
		return ErrCodeInvalidParameter, ExitFailure
	case errors.Is(err, colkit.ErrTypeMismatch):
		return ErrCodeTypeMismatch, ExitFailure
	case errors.Is(err, colkit.ErrCompute):
		return ErrCodeGeneric, ExitFailure
	case errors.Is(err, colkit.ErrKernelNotFound):
		return ErrCodeKernelNotFound, ExitCommandError
	default:
		return ErrCodeIO, ExitCommandError
	}
}

package colkit

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with colkit-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithKernel adds a kernel name field to the logger.
func (l *Logger) WithKernel(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("kernel", name),
	}
}

// WithColumn adds a column name field to the logger.
func (l *Logger) WithColumn(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("column", name),
	}
}

// LogCall logs a kernel invocation.
func (l *Logger) LogCall(ctx context.Context, kernel, column string, rows, nulls int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "kernel call failed",
			"kernel", kernel,
			"column", column,
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "kernel call completed",
			"kernel", kernel,
			"column", column,
			"rows", rows,
			"nulls", nulls,
			"duration", duration,
		)
	}
}

// LogChunkedCall logs a kernel invocation over a chunked column.
func (l *Logger) LogChunkedCall(ctx context.Context, kernel string, chunks, rows int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "chunked kernel call failed",
			"kernel", kernel,
			"chunks", chunks,
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "chunked kernel call completed",
			"kernel", kernel,
			"chunks", chunks,
			"rows", rows,
			"duration", duration,
		)
	}
}

// LogRegister logs a kernel registration.
func (l *Logger) LogRegister(ctx context.Context, kernel, kind string, err error) {
	if err != nil {
		l.WarnContext(ctx, "kernel registration rejected",
			"kernel", kernel,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "kernel registered",
			"kernel", kernel,
			"kind", kind,
		)
	}
}

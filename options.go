package colkit

import (
	"log/slog"

	"github.com/hupe1980/colkit/codec"
)

type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	parallelism      int
	minPartitionSize int
	defaultKernels   bool
}

// Option configures an Engine.
type Option func(*options)

// WithCodec configures the codec used by CallEncoded to decode parameter
// records.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithParallelism sets how many goroutines the default feature_hasher kernel
// may use per call. Values <= 0 select GOMAXPROCS. The default is 1.
//
// The discounted_cum_sum kernel is order dependent and always runs on a
// single goroutine.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithMinPartitionSize sets the smallest number of rows the default
// feature_hasher kernel hands to one goroutine.
func WithMinPartitionSize(n int) Option {
	return func(o *options) {
		o.minPartitionSize = n
	}
}

// WithoutDefaultKernels creates an Engine with an empty registry.
func WithoutDefaultKernels() Option {
	return func(o *options) {
		o.defaultKernels = false
	}
}

// WithMetricsCollector configures a metrics collector for monitoring calls.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &colkit.BasicMetricsCollector{}
//	e, _ := colkit.New(colkit.WithMetricsCollector(metrics))
//	// ... use e ...
//	stats := metrics.GetStats()
//	fmt.Printf("Calls: %d, Avg latency: %dns\n", stats.CallCount, stats.CallAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for calls.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := colkit.NewJSONLogger(slog.LevelInfo)
//	e, _ := colkit.New(colkit.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		parallelism:      1,
		defaultKernels:   true,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

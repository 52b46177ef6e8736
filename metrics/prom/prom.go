// Package prom exports colkit call metrics to Prometheus.
//
//	c := prom.New()
//	prometheus.MustRegister(c)
//	e, _ := colkit.New(colkit.WithMetricsCollector(c))
package prom

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/colkit"
)

// Collector implements colkit.MetricsCollector and prometheus.Collector.
type Collector struct {
	calls   *prometheus.CounterVec
	rows    *prometheus.CounterVec
	nulls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

var (
	_ colkit.MetricsCollector = (*Collector)(nil)
	_ prometheus.Collector    = (*Collector)(nil)
)

// Option configures a Collector.
type Option func(*options)

type options struct {
	namespace string
	buckets   []float64
}

// WithNamespace sets the metric namespace. The default is "colkit".
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// WithBuckets sets the latency histogram buckets in seconds.
func WithBuckets(buckets []float64) Option {
	return func(o *options) {
		o.buckets = buckets
	}
}

// New creates an unregistered Collector.
func New(optFns ...Option) *Collector {
	o := options{
		namespace: "colkit",
		buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	return &Collector{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "kernel_calls_total",
			Help:      "Total kernel calls by outcome",
		}, []string{"kernel", "status"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "kernel_rows_total",
			Help:      "Total input rows processed by successful kernel calls",
		}, []string{"kernel"}),
		nulls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "kernel_null_rows_total",
			Help:      "Total null input rows processed by successful kernel calls",
		}, []string{"kernel"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "kernel_call_duration_seconds",
			Help:      "Latency of kernel calls",
			Buckets:   o.buckets,
		}, []string{"kernel"}),
	}
}

// RecordCall implements colkit.MetricsCollector.
func (c *Collector) RecordCall(kernel string, rows, nulls int, duration time.Duration, err error) {
	c.calls.WithLabelValues(kernel, status(err)).Inc()
	c.latency.WithLabelValues(kernel).Observe(duration.Seconds())
	if err != nil {
		return
	}
	c.rows.WithLabelValues(kernel).Add(float64(rows))
	c.nulls.WithLabelValues(kernel).Add(float64(nulls))
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.calls.Describe(ch)
	c.rows.Describe(ch)
	c.nulls.Describe(ch)
	c.latency.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.calls.Collect(ch)
	c.rows.Collect(ch)
	c.nulls.Collect(ch)
	c.latency.Collect(ch)
}

func status(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, colkit.ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, colkit.ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, colkit.ErrKernelNotFound):
		return "not_found"
	default:
		return "error"
	}
}

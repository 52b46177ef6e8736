package colkit

import (
	"sync"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see package metrics/prom).
type MetricsCollector interface {
	// RecordCall is called after each kernel invocation, chunked or not.
	// rows is the total number of input positions, nulls the number of null
	// input positions, duration the time taken; err is nil if successful.
	RecordCall(kernel string, rows, nulls int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCall(string, int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CallCount      atomic.Int64
	CallErrors     atomic.Int64
	CallTotalNanos atomic.Int64
	RowsProcessed  atomic.Int64
	NullsProcessed atomic.Int64

	mu       sync.Mutex
	byKernel map[string]int64
}

// RecordCall implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCall(kernel string, rows, nulls int, duration time.Duration, err error) {
	b.CallCount.Add(1)
	b.CallTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CallErrors.Add(1)
	} else {
		b.RowsProcessed.Add(int64(rows))
		b.NullsProcessed.Add(int64(nulls))
	}

	b.mu.Lock()
	if b.byKernel == nil {
		b.byKernel = make(map[string]int64)
	}
	b.byKernel[kernel]++
	b.mu.Unlock()
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	b.mu.Lock()
	byKernel := make(map[string]int64, len(b.byKernel))
	for k, v := range b.byKernel {
		byKernel[k] = v
	}
	b.mu.Unlock()

	return BasicMetricsStats{
		CallCount:      b.CallCount.Load(),
		CallErrors:     b.CallErrors.Load(),
		CallAvgNanos:   b.getAvgCallNanos(),
		RowsProcessed:  b.RowsProcessed.Load(),
		NullsProcessed: b.NullsProcessed.Load(),
		CallsByKernel:  byKernel,
	}
}

func (b *BasicMetricsCollector) getAvgCallNanos() int64 {
	count := b.CallCount.Load()
	if count == 0 {
		return 0
	}
	return b.CallTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector metrics.
type BasicMetricsStats struct {
	CallCount      int64
	CallErrors     int64
	CallAvgNanos   int64
	RowsProcessed  int64
	NullsProcessed int64
	CallsByKernel  map[string]int64
}

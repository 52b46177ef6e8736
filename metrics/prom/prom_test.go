package prom

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colkit"
	"github.com/hupe1980/colkit/column"
	"github.com/hupe1980/colkit/kernel"
	"github.com/hupe1980/colkit/kernel/discount"
	"github.com/hupe1980/colkit/kernel/featurehash"
)

func TestCollectorRecordCall(t *testing.T) {
	c := New()

	c.RecordCall("k", 10, 2, time.Millisecond, nil)
	c.RecordCall("k", 5, 1, time.Millisecond, nil)
	c.RecordCall("k", 7, 0, time.Millisecond, kernel.NewInvalidParameter("k", "gamma", 2.0, "out of range"))
	c.RecordCall("k", 7, 0, time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.calls.WithLabelValues("k", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.calls.WithLabelValues("k", "invalid_parameter")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.calls.WithLabelValues("k", "error")))
	assert.Equal(t, 15.0, testutil.ToFloat64(c.rows.WithLabelValues("k")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.nulls.WithLabelValues("k")))
	assert.Equal(t, 1, testutil.CollectAndCount(c, "colkit_kernel_call_duration_seconds"))
}

func TestCollectorWithEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(WithNamespace("test"))
	require.NoError(t, reg.Register(c))

	e, err := colkit.New(colkit.WithMetricsCollector(c))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = e.Call(ctx, discount.Name, column.NewNumeric("x", []float64{1, 2}, nil), discount.Params{Gamma: 0.5})
	require.NoError(t, err)
	_, err = e.Call(ctx, featurehash.Name, column.NewNumeric("x", []float64{1}, nil), featurehash.Params{NumBuckets: 10})
	require.Error(t, err)
	_, err = e.Call(ctx, "nope", nil, nil)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.calls.WithLabelValues(discount.Name, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.calls.WithLabelValues(featurehash.Name, "type_mismatch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.calls.WithLabelValues("nope", "not_found")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.rows.WithLabelValues(discount.Name)))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "test_kernel_calls_total")
	assert.Contains(t, names, "test_kernel_call_duration_seconds")
}

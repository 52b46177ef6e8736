package colkit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/colkit/codec"
	"github.com/hupe1980/colkit/column"
	"github.com/hupe1980/colkit/kernel"
	"github.com/hupe1980/colkit/kernel/discount"
	"github.com/hupe1980/colkit/kernel/featurehash"
)

// Engine is a registry of named column kernels.
//
// An Engine is safe for concurrent use. Kernels hold no mutable state, so
// concurrent calls never observe each other.
type Engine struct {
	mu      sync.RWMutex
	kernels map[string]kernel.Kernel

	codec   codec.Codec
	metrics MetricsCollector
	logger  *Logger
}

// New creates an Engine. Unless WithoutDefaultKernels is given, the
// discounted_cum_sum and feature_hasher kernels are registered.
func New(optFns ...Option) (*Engine, error) {
	opts := applyOptions(optFns)

	e := &Engine{
		kernels: make(map[string]kernel.Kernel),
		codec:   opts.codec,
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}

	if opts.defaultKernels {
		defaults := []kernel.Kernel{
			discount.New(),
			featurehash.New(
				featurehash.WithParallelism(opts.parallelism),
				featurehash.WithMinPartitionSize(opts.minPartitionSize),
			),
		}
		for _, k := range defaults {
			if err := e.Register(k); err != nil {
				return nil, err
			}
		}
	}

	return e, nil
}

// Register adds k under k.Name(). Registering a name twice fails with
// ErrDuplicateKernel.
func (e *Engine) Register(k kernel.Kernel) error {
	ctx := context.Background()
	if k == nil {
		e.logger.LogRegister(ctx, "", "", ErrNilKernel)
		return ErrNilKernel
	}

	doc := k.Doc()
	if err := doc.Validate(); err != nil {
		e.logger.LogRegister(ctx, k.Name(), doc.Kind.String(), err)
		return err
	}

	name := k.Name()

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.kernels[name]; ok {
		err := &duplicateError{name: name}
		e.logger.LogRegister(ctx, name, doc.Kind.String(), err)
		return err
	}
	e.kernels[name] = k
	e.logger.LogRegister(ctx, name, doc.Kind.String(), nil)
	return nil
}

type duplicateError struct {
	name string
}

func (e *duplicateError) Error() string {
	return "kernel already registered: " + e.name
}

func (e *duplicateError) Is(target error) bool { return target == ErrDuplicateKernel }

// Lookup returns the kernel registered under name.
func (e *Engine) Lookup(name string) (kernel.Kernel, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	k, ok := e.kernels[name]
	return k, ok
}

// Kernels returns the docs of all registered kernels sorted by name.
func (e *Engine) Kernels() []kernel.Doc {
	e.mu.RLock()
	docs := make([]kernel.Doc, 0, len(e.kernels))
	for _, k := range e.kernels {
		docs = append(docs, k.Doc())
	}
	e.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs
}

// Codec returns the codec used by CallEncoded.
func (e *Engine) Codec() codec.Codec { return e.codec }

// Call runs the kernel registered under name over in.
func (e *Engine) Call(ctx context.Context, name string, in column.Column, p kernel.Params) (column.Column, error) {
	start := time.Now()

	out, err := e.call(ctx, name, in, p)

	duration := time.Since(start)
	rows, nulls, colName := columnStats(in)
	e.metrics.RecordCall(name, rows, nulls, duration, err)
	e.logger.LogCall(ctx, name, colName, rows, nulls, duration, err)

	return out, err
}

func (e *Engine) call(ctx context.Context, name string, in column.Column, p kernel.Params) (column.Column, error) {
	k, ok := e.Lookup(name)
	if !ok {
		return nil, notFound(name)
	}
	if err := ctx.Err(); err != nil {
		return nil, kernel.NewComputeError(name, err)
	}

	out, err := k.Execute(ctx, in, p)
	if err != nil {
		return nil, translateError(name, err)
	}
	return out, nil
}

// CallEncoded decodes raw with the engine codec and runs the kernel
// registered under name over in.
func (e *Engine) CallEncoded(ctx context.Context, name string, in column.Column, raw []byte) (column.Column, error) {
	k, ok := e.Lookup(name)
	if !ok {
		err := notFound(name)
		rows, nulls, colName := columnStats(in)
		e.metrics.RecordCall(name, rows, nulls, 0, err)
		e.logger.LogCall(ctx, name, colName, rows, nulls, 0, err)
		return nil, err
	}

	p, err := k.DecodeParams(e.codec, raw)
	if err != nil {
		err = translateError(name, err)
		rows, nulls, colName := columnStats(in)
		e.metrics.RecordCall(name, rows, nulls, 0, err)
		e.logger.LogCall(ctx, name, colName, rows, nulls, 0, err)
		return nil, err
	}

	return e.Call(ctx, name, in, p)
}

// CallChunks runs the kernel registered under name over a column split
// into ordered chunks. The result holds one output chunk per input chunk.
func (e *Engine) CallChunks(ctx context.Context, name string, chunks []column.Column, p kernel.Params) ([]column.Column, error) {
	start := time.Now()

	out, err := e.callChunks(ctx, name, chunks, p)

	duration := time.Since(start)
	var rows, nulls int
	for _, c := range chunks {
		r, n, _ := columnStats(c)
		rows += r
		nulls += n
	}
	e.metrics.RecordCall(name, rows, nulls, duration, err)
	e.logger.LogChunkedCall(ctx, name, len(chunks), rows, duration, err)

	return out, err
}

func (e *Engine) callChunks(ctx context.Context, name string, chunks []column.Column, p kernel.Params) ([]column.Column, error) {
	k, ok := e.Lookup(name)
	if !ok {
		return nil, notFound(name)
	}
	if err := ctx.Err(); err != nil {
		return nil, kernel.NewComputeError(name, err)
	}

	out, err := k.ExecuteChunks(ctx, chunks, p)
	if err != nil {
		return nil, translateError(name, err)
	}
	return out, nil
}

func columnStats(c column.Column) (rows, nulls int, name string) {
	if column.IsNil(c) {
		return 0, 0, ""
	}
	return c.Len(), c.NullCount(), c.Name()
}

package featurehash

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/colkit/column"
	"github.com/hupe1980/colkit/internal/conv"
	"github.com/hupe1980/colkit/kernel"
)

// DefaultMinPartitionSize is the smallest number of rows handed to one
// goroutine.
const DefaultMinPartitionSize = 8192

// Hasher hashes string columns to bucket ids, optionally across several
// goroutines.
//
// A Hasher is immutable and safe for concurrent use.
type Hasher struct {
	parallelism      int
	minPartitionSize int
}

// Option configures a Hasher.
type Option func(*Hasher)

// WithParallelism sets the maximum number of goroutines used per call.
// Values <= 0 select runtime.GOMAXPROCS(0). The default is 1.
func WithParallelism(n int) Option {
	return func(h *Hasher) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		h.parallelism = n
	}
}

// WithMinPartitionSize sets the smallest partition handed to a goroutine.
// Values <= 0 are ignored.
func WithMinPartitionSize(n int) Option {
	return func(h *Hasher) {
		if n > 0 {
			h.minPartitionSize = n
		}
	}
}

// NewHasher returns a Hasher configured by opts.
func NewHasher(opts ...Option) *Hasher {
	h := &Hasher{
		parallelism:      1,
		minPartitionSize: DefaultMinPartitionSize,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(h)
		}
	}
	return h
}

var defaultHasher = NewHasher()

// Hash maps every position of in to a bucket id using a single goroutine.
// See Hasher.Hash.
func Hash(in column.Column, p Params) (*column.Uint64, error) {
	return defaultHasher.Hash(in, p)
}

// Hash maps every position of in to a bucket id.
//
// Parameters are validated before any element is hashed. in must be a
// *column.String. The output has the same name and length as in and no
// nulls; null input positions map to NullBucket.
func (h *Hasher) Hash(in column.Column, p Params) (*column.Uint64, error) {
	n, err := bucketCount(p)
	if err != nil {
		return nil, err
	}

	s, err := asString(in)
	if err != nil {
		return nil, err
	}

	out := make([]uint64, s.Len())
	h.fill(s, n, out)
	return column.NewNumeric(s.Name(), out, nil), nil
}

// HashChunks hashes each chunk independently and returns the results in
// chunk order. Chunks are processed concurrently up to the configured
// parallelism.
func (h *Hasher) HashChunks(chunks []column.Column, p Params) ([]*column.Uint64, error) {
	n, err := bucketCount(p)
	if err != nil {
		return nil, err
	}

	strs := make([]*column.String, len(chunks))
	for i, c := range chunks {
		s, err := asString(c)
		if err != nil {
			return nil, err
		}
		strs[i] = s
	}

	out := make([]*column.Uint64, len(strs))

	var g errgroup.Group
	g.SetLimit(h.parallelism)
	for i, s := range strs {
		g.Go(func() error {
			buf := make([]uint64, s.Len())
			h.fill(s, n, buf)
			out[i] = column.NewNumeric(s.Name(), buf, nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, kernel.NewComputeError(Name, err)
	}
	return out, nil
}

// fill writes the bucket of every position of s into out. Partitions cover
// disjoint ranges of out, so goroutines never share a slot.
func (h *Hasher) fill(s *column.String, n uint64, out []uint64) {
	values := s.Values()
	valid := s.Nulls().Validity(len(values))

	parts := h.partitions(len(values))
	if parts <= 1 {
		hashRange(values, valid, n, out)
		return
	}

	size := (len(values) + parts - 1) / parts

	var g errgroup.Group
	g.SetLimit(h.parallelism)
	for start := 0; start < len(values); start += size {
		end := min(start+size, len(values))
		var v []bool
		if valid != nil {
			v = valid[start:end]
		}
		g.Go(func() error {
			hashRange(values[start:end], v, n, out[start:end])
			return nil
		})
	}
	_ = g.Wait()
}

func (h *Hasher) partitions(rows int) int {
	if h.parallelism <= 1 || rows < 2*h.minPartitionSize {
		return 1
	}
	return min(h.parallelism, rows/h.minPartitionSize)
}

// hashRange hashes values into out. valid is nil when there are no nulls.
func hashRange(values []string, valid []bool, n uint64, out []uint64) {
	if valid == nil {
		for i, v := range values {
			out[i] = Bucket(v, n)
		}
		return
	}

	for i, v := range values {
		if !valid[i] {
			out[i] = NullBucket
			continue
		}
		out[i] = Bucket(v, n)
	}
}

func bucketCount(p Params) (uint64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	n, err := conv.Int64ToUint64(p.NumBuckets)
	if err != nil {
		return 0, kernel.NewComputeError(Name, fmt.Errorf("num_buckets: %w", err))
	}
	return n, nil
}

func asString(in column.Column) (*column.String, error) {
	s, ok := in.(*column.String)
	if !ok || column.IsNil(in) {
		return nil, kernel.NewTypeMismatch(Name, in, column.TypeString.String(), nil)
	}
	return s, nil
}

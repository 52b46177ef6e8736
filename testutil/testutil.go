package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/colkit/column"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Nulls returns a null set over n positions where each position is null with
// probability nullRate. Returns nil if no position was drawn as null.
func (r *RNG) Nulls(n int, nullRate float64) *column.Nulls {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nullsLocked(n, nullRate)
}

func (r *RNG) nullsLocked(n int, nullRate float64) *column.Nulls {
	var nulls *column.Nulls
	for i := 0; i < n; i++ {
		if r.rand.Float64() >= nullRate {
			continue
		}
		if nulls == nil {
			nulls = column.NewNulls()
		}
		nulls.Add(i)
	}
	return nulls
}

// Float64Column generates a float64 column of n values drawn uniformly from
// [minVal, maxVal), with positions null at rate nullRate.
func (r *RNG) Float64Column(name string, n int, minVal, maxVal, nullRate float64) *column.Float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	values := make([]float64, n)
	span := maxVal - minVal
	for i := range values {
		values[i] = minVal + r.rand.Float64()*span
	}
	return column.NewNumeric(name, values, r.nullsLocked(n, nullRate))
}

// Int64Column generates an int64 column of values in [0, maxVal).
func (r *RNG) Int64Column(name string, n int, maxVal int64, nullRate float64) *column.Int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	values := make([]int64, n)
	for i := range values {
		values[i] = r.rand.Int63n(maxVal)
	}
	return column.NewNumeric(name, values, r.nullsLocked(n, nullRate))
}

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789_-äöü€"

// String returns a random string of up to maxLen runes, including multi-byte
// UTF-8 characters.
func (r *RNG) String(maxLen int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stringLocked(maxLen)
}

func (r *RNG) stringLocked(maxLen int) string {
	runes := []rune(alphabet)
	n := r.rand.Intn(maxLen + 1)
	out := make([]rune, n)
	for i := range out {
		out[i] = runes[r.rand.Intn(len(runes))]
	}
	return string(out)
}

// StringColumn generates a string column of n random strings of up to
// maxLen runes, with positions null at rate nullRate.
func (r *RNG) StringColumn(name string, n, maxLen int, nullRate float64) *column.String {
	r.mu.Lock()
	defer r.mu.Unlock()

	values := make([]string, n)
	for i := range values {
		values[i] = r.stringLocked(maxLen)
	}
	nulls := r.nullsLocked(n, nullRate)
	for _, p := range nulls.Positions() {
		values[p] = ""
	}
	return column.NewString(name, values, nulls)
}

// Chunk splits c into consecutive chunks of at most size positions.
// Supported column types are Float64, Int64 and String.
func Chunk(c column.Column, size int) []column.Column {
	var chunks []column.Column
	for start := 0; start < c.Len(); start += size {
		end := min(start+size, c.Len())
		chunks = append(chunks, slice(c, start, end))
	}
	return chunks
}

func slice(c column.Column, start, end int) column.Column {
	var nulls *column.Nulls
	for i := start; i < end; i++ {
		if !c.IsNull(i) {
			continue
		}
		if nulls == nil {
			nulls = column.NewNulls()
		}
		nulls.Add(i - start)
	}

	switch col := c.(type) {
	case *column.Float64:
		return column.NewNumeric(col.Name(), col.Values()[start:end], nulls)
	case *column.Int64:
		return column.NewNumeric(col.Name(), col.Values()[start:end], nulls)
	case *column.String:
		return column.NewString(col.Name(), col.Values()[start:end], nulls)
	default:
		panic("testutil: unsupported column type " + c.DataType().String())
	}
}

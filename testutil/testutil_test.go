package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colkit/column"
)

func TestFloat64Column(t *testing.T) {
	rng := NewRNG(4711)

	c := rng.Float64Column("x", 1000, -1, 1, 0.2)

	assert.Equal(t, "x", c.Name())
	assert.Equal(t, 1000, c.Len())
	assert.Greater(t, c.NullCount(), 0)
	assert.Less(t, c.NullCount(), 1000)
	for _, v := range c.Values() {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)
	}
}

func TestNoNulls(t *testing.T) {
	rng := NewRNG(4711)

	assert.Nil(t, rng.Nulls(100, 0))
	assert.Equal(t, 100, rng.Nulls(100, 1).Count())
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := rng.StringColumn("s", 50, 6, 0.1)
	rng.Reset()
	b := rng.StringColumn("s", 50, 6, 0.1)

	assert.Equal(t, a.Values(), b.Values())
	assert.True(t, a.Nulls().Equal(b.Nulls()))
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestStringColumnNullsAreEmpty(t *testing.T) {
	rng := NewRNG(1)
	c := rng.StringColumn("s", 200, 4, 0.5)

	for _, p := range c.Nulls().Positions() {
		assert.Equal(t, "", c.Values()[p])
	}
}

func TestChunk(t *testing.T) {
	rng := NewRNG(7)
	c := rng.Int64Column("n", 10, 100, 0.3)

	chunks := Chunk(c, 4)
	require.Len(t, chunks, 3)
	assert.Equal(t, 4, chunks[0].Len())
	assert.Equal(t, 2, chunks[2].Len())

	pos := 0
	for _, ch := range chunks {
		ic := ch.(*column.Int64)
		for i := 0; i < ic.Len(); i++ {
			assert.Equal(t, c.IsNull(pos), ic.IsNull(i))
			assert.Equal(t, c.Values()[pos], ic.Values()[i])
			pos++
		}
	}
	assert.Equal(t, 10, pos)
}

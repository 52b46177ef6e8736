package featurehash

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colkit/testutil"
)

func TestSum128ReferenceVectors(t *testing.T) {
	tests := []struct {
		in     string
		hi, lo uint64
	}{
		{"", 0, 0},
		{"hello", 0x5b1e906a48ae1d19, 0xcbd8a7b341bd9b02},
		{"foo", 0x7eaf87e42bba7d87, 0xe271865701f54561},
		{"The quick brown fox jumps over the lazy dog", 0x7a433ca9c49a9347, 0xe34bbc7bbc071b6c},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			hi, lo := Sum128(tt.in)
			assert.Equal(t, tt.hi, hi)
			assert.Equal(t, tt.lo, lo)
		})
	}
}

func TestBucket(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		assert.Equal(t, uint64(3), Bucket("a", 10))
		assert.Equal(t, uint64(3), Bucket("hello", 10))
		assert.Equal(t, uint64(5), Bucket("foo", 10))
		assert.Equal(t, uint64(930), Bucket("a", 1000))
		assert.Equal(t, uint64(669), Bucket("hello", 1000))
	})

	t.Run("empty string is not the null bucket", func(t *testing.T) {
		assert.Equal(t, uint64(1), Bucket("", 10))
	})

	t.Run("two buckets always yield one", func(t *testing.T) {
		rng := testutil.NewRNG(4711)
		for i := 0; i < 200; i++ {
			assert.Equal(t, uint64(1), Bucket(rng.String(16), 2))
		}
	})

	t.Run("range", func(t *testing.T) {
		rng := testutil.NewRNG(1)
		for _, n := range []uint64{3, 10, 97, 1 << 20, 1<<63 + 5, ^uint64(0)} {
			for i := 0; i < 200; i++ {
				b := Bucket(rng.String(12), n)
				require.GreaterOrEqual(t, b, uint64(1))
				require.LessOrEqual(t, b, n-1)
			}
		}
	})

	t.Run("one bucket panics", func(t *testing.T) {
		assert.Panics(t, func() { Bucket("a", 1) })
	})
}

// TestBucketGolden pins bucket assignments across runs, processes and
// library upgrades.
func TestBucketGolden(t *testing.T) {
	values := []string{
		"", "a", "b", "hello", "foo", "user:42", "user:43",
		"The quick brown fox jumps over the lazy dog",
		"0123456789abcdef", "0123456789abcdefg",
		"héllo wörld", "日本語", "€",
	}

	var buf bytes.Buffer
	for _, n := range []uint64{2, 10, 1000, 1 << 20} {
		for _, v := range values {
			fmt.Fprintf(&buf, "%d\t%s\t%d\n", n, v, Bucket(v, n))
		}
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "buckets", buf.Bytes())
}

func BenchmarkBucket(b *testing.B) {
	s := "user:1234567890:session:abcdef"
	b.ReportAllocs()
	for b.Loop() {
		_ = Bucket(s, 1<<20)
	}
}

package column

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/colkit/internal/conv"
)

// Nulls is the set of null positions of a column.
//
// A nil *Nulls is valid and represents "no nulls"; all read methods are
// nil-safe. Nulls is not safe for concurrent mutation, but columns never
// mutate it after construction.
type Nulls struct {
	bm *roaring.Bitmap
}

// NewNulls returns a null set containing the given positions.
func NewNulls(positions ...int) *Nulls {
	n := &Nulls{bm: roaring.New()}
	for _, p := range positions {
		n.Add(p)
	}
	return n
}

// NullsFromValidity builds a null set from a validity slice where
// valid[i] == false marks position i as null. It returns nil when every
// position is valid.
func NullsFromValidity(valid []bool) *Nulls {
	var n *Nulls
	for i, ok := range valid {
		if ok {
			continue
		}
		if n == nil {
			n = &Nulls{bm: roaring.New()}
		}
		n.Add(i)
	}
	return n
}

// Add marks position i as null.
// It panics if i cannot be represented as a row index.
func (n *Nulls) Add(i int) {
	pos, err := conv.IntToUint32(i)
	if err != nil {
		panic(fmt.Errorf("column: invalid null position: %w", err))
	}
	n.bm.Add(pos)
}

// Contains reports whether position i is null.
func (n *Nulls) Contains(i int) bool {
	if n == nil || i < 0 {
		return false
	}
	pos, err := conv.IntToUint32(i)
	if err != nil {
		return false
	}
	return n.bm.Contains(pos)
}

// Count returns the number of null positions.
func (n *Nulls) Count() int {
	if n == nil {
		return 0
	}
	return int(n.bm.GetCardinality())
}

// Any reports whether at least one position is null.
func (n *Nulls) Any() bool {
	return n != nil && !n.bm.IsEmpty()
}

// Clone returns an independent copy. Cloning nil returns nil.
func (n *Nulls) Clone() *Nulls {
	if n == nil {
		return nil
	}
	return &Nulls{bm: n.bm.Clone()}
}

// Positions returns the null positions in ascending order.
func (n *Nulls) Positions() []int {
	if n == nil {
		return nil
	}
	out := make([]int, 0, n.Count())
	it := n.bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// Max returns the largest null position, or -1 if there are none.
func (n *Nulls) Max() int {
	if !n.Any() {
		return -1
	}
	return int(n.bm.Maximum())
}

// clip drops positions at or beyond length in place and returns the set,
// or nil when nothing remains.
func (n *Nulls) clip(length int) *Nulls {
	if !n.Any() {
		return nil
	}
	if last := n.Max(); last >= length {
		n.bm.RemoveRange(uint64(max(length, 0)), uint64(last)+1)
	}
	if n.bm.IsEmpty() {
		return nil
	}
	return n
}

// Equal reports whether both sets hold the same positions. A nil set equals
// an empty one.
func (n *Nulls) Equal(o *Nulls) bool {
	if !n.Any() || !o.Any() {
		return n.Any() == o.Any()
	}
	return n.bm.Equals(o.bm)
}

// Validity expands the set into a validity slice of the given length, as
// expected by Arrow builders. It returns nil when there are no nulls.
func (n *Nulls) Validity(length int) []bool {
	if !n.Any() {
		return nil
	}
	valid := make([]bool, length)
	for i := range valid {
		valid[i] = true
	}
	it := n.bm.Iterator()
	for it.HasNext() {
		p := int(it.Next())
		if p < length {
			valid[p] = false
		}
	}
	return valid
}

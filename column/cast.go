package column

import (
	"errors"
	"fmt"
)

// ErrUnsupportedCast is returned when a column cannot be widened to float64.
var ErrUnsupportedCast = errors.New("unsupported cast")

// ToFloat64 widens c to a float64 column.
//
// Float64 columns are returned unchanged. Integer and float32 columns are
// converted element-wise; booleans become 0 or 1. The null set is cloned so
// the result never aliases the input's.
func ToFloat64(c Column) (*Float64, error) {
	if IsNil(c) {
		return nil, fmt.Errorf("%w: nil column", ErrUnsupportedCast)
	}
	switch col := c.(type) {
	case *Float64:
		return col, nil
	case *Float32:
		return widen(col), nil
	case *Int64:
		return widen(col), nil
	case *Int32:
		return widen(col), nil
	case *Int16:
		return widen(col), nil
	case *Int8:
		return widen(col), nil
	case *Uint64:
		return widen(col), nil
	case *Uint32:
		return widen(col), nil
	case *Uint16:
		return widen(col), nil
	case *Uint8:
		return widen(col), nil
	case *Bool:
		out := make([]float64, len(col.values))
		for i, v := range col.values {
			if v {
				out[i] = 1
			}
		}
		return NewNumeric(col.name, out, col.nulls.Clone()), nil
	default:
		return nil, fmt.Errorf("%w: %s to %s", ErrUnsupportedCast, c.DataType(), TypeFloat64)
	}
}

func widen[T Number](c *Numeric[T]) *Float64 {
	out := make([]float64, len(c.values))
	for i, v := range c.values {
		out[i] = float64(v)
	}
	return NewNumeric(c.name, out, c.nulls.Clone())
}

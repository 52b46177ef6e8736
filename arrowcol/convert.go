package arrowcol

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hupe1980/colkit/column"
	"github.com/hupe1980/colkit/kernel"
)

// FromArrow copies arr into a column named name. The result does not
// reference arr's buffers, so arr may be released afterwards.
func FromArrow(name string, arr arrow.Array) (column.Column, error) {
	if arr == nil {
		return nil, fmt.Errorf("arrowcol: nil array for column %q", name)
	}

	nulls := nullsOf(arr)

	switch a := arr.(type) {
	case *array.Int8:
		return fromNumeric(name, a.Int8Values(), nulls), nil
	case *array.Int16:
		return fromNumeric(name, a.Int16Values(), nulls), nil
	case *array.Int32:
		return fromNumeric(name, a.Int32Values(), nulls), nil
	case *array.Int64:
		return fromNumeric(name, a.Int64Values(), nulls), nil
	case *array.Uint8:
		return fromNumeric(name, a.Uint8Values(), nulls), nil
	case *array.Uint16:
		return fromNumeric(name, a.Uint16Values(), nulls), nil
	case *array.Uint32:
		return fromNumeric(name, a.Uint32Values(), nulls), nil
	case *array.Uint64:
		return fromNumeric(name, a.Uint64Values(), nulls), nil
	case *array.Float16:
		raw := a.Values()
		values := make([]float32, len(raw))
		for i, v := range raw {
			values[i] = v.Float32()
		}
		return column.NewNumeric(name, values, nulls), nil
	case *array.Float32:
		return fromNumeric(name, a.Float32Values(), nulls), nil
	case *array.Float64:
		return fromNumeric(name, a.Float64Values(), nulls), nil
	case *array.Boolean:
		values := make([]bool, a.Len())
		for i := range values {
			values[i] = a.Value(i)
		}
		return column.NewBool(name, values, nulls), nil
	case *array.String:
		values := make([]string, a.Len())
		for i := range values {
			if !a.IsNull(i) {
				values[i] = strings.Clone(a.Value(i))
			}
		}
		return column.NewString(name, values, nulls), nil
	case *array.LargeString:
		values := make([]string, a.Len())
		for i := range values {
			if !a.IsNull(i) {
				values[i] = strings.Clone(a.Value(i))
			}
		}
		return column.NewString(name, values, nulls), nil
	}

	return nil, &UnsupportedTypeError{Column: name, Type: arr.DataType()}
}

// UnsupportedTypeError reports an Arrow type that has no column
// representation. It matches kernel.ErrTypeMismatch.
type UnsupportedTypeError struct {
	Column string
	Type   arrow.DataType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("arrowcol: type mismatch: column %q has unsupported arrow type %s", e.Column, e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool { return target == kernel.ErrTypeMismatch }

func fromNumeric[T column.Number](name string, values []T, nulls *column.Nulls) *column.Numeric[T] {
	return column.NewNumeric(name, append([]T(nil), values...), nulls)
}

func nullsOf(arr arrow.Array) *column.Nulls {
	if arr.NullN() == 0 {
		return nil
	}
	nulls := column.NewNulls()
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			nulls.Add(i)
		}
	}
	return nulls
}

type builder[T any] interface {
	AppendValues(v []T, valid []bool)
	NewArray() arrow.Array
	Release()
}

func build[T any](b builder[T], values []T, nulls *column.Nulls) arrow.Array {
	defer b.Release()
	b.AppendValues(values, nulls.Validity(len(values)))
	return b.NewArray()
}

// ToArrow builds an Arrow array holding c. A nil mem selects
// memory.DefaultAllocator.
func ToArrow(mem memory.Allocator, c column.Column) (arrow.Array, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	switch col := c.(type) {
	case *column.Int8:
		return build[int8](array.NewInt8Builder(mem), col.Values(), col.Nulls()), nil
	case *column.Int16:
		return build[int16](array.NewInt16Builder(mem), col.Values(), col.Nulls()), nil
	case *column.Int32:
		return build[int32](array.NewInt32Builder(mem), col.Values(), col.Nulls()), nil
	case *column.Int64:
		return build[int64](array.NewInt64Builder(mem), col.Values(), col.Nulls()), nil
	case *column.Uint8:
		return build[uint8](array.NewUint8Builder(mem), col.Values(), col.Nulls()), nil
	case *column.Uint16:
		return build[uint16](array.NewUint16Builder(mem), col.Values(), col.Nulls()), nil
	case *column.Uint32:
		return build[uint32](array.NewUint32Builder(mem), col.Values(), col.Nulls()), nil
	case *column.Uint64:
		return build[uint64](array.NewUint64Builder(mem), col.Values(), col.Nulls()), nil
	case *column.Float32:
		return build[float32](array.NewFloat32Builder(mem), col.Values(), col.Nulls()), nil
	case *column.Float64:
		return build[float64](array.NewFloat64Builder(mem), col.Values(), col.Nulls()), nil
	case *column.Bool:
		return build[bool](array.NewBooleanBuilder(mem), col.Values(), col.Nulls()), nil
	case *column.String:
		return build[string](array.NewStringBuilder(mem), col.Values(), col.Nulls()), nil
	case nil:
		return nil, fmt.Errorf("arrowcol: nil column")
	}

	return nil, fmt.Errorf("arrowcol: unsupported column type %T", c)
}

// DataType returns the Arrow type ToArrow produces for columns of type t.
func DataType(t column.DataType) (arrow.DataType, error) {
	switch t {
	case column.TypeBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case column.TypeInt8:
		return arrow.PrimitiveTypes.Int8, nil
	case column.TypeInt16:
		return arrow.PrimitiveTypes.Int16, nil
	case column.TypeInt32:
		return arrow.PrimitiveTypes.Int32, nil
	case column.TypeInt64:
		return arrow.PrimitiveTypes.Int64, nil
	case column.TypeUint8:
		return arrow.PrimitiveTypes.Uint8, nil
	case column.TypeUint16:
		return arrow.PrimitiveTypes.Uint16, nil
	case column.TypeUint32:
		return arrow.PrimitiveTypes.Uint32, nil
	case column.TypeUint64:
		return arrow.PrimitiveTypes.Uint64, nil
	case column.TypeFloat32:
		return arrow.PrimitiveTypes.Float32, nil
	case column.TypeFloat64:
		return arrow.PrimitiveTypes.Float64, nil
	case column.TypeString:
		return arrow.BinaryTypes.String, nil
	}
	return nil, fmt.Errorf("arrowcol: no arrow type for %s", t)
}

package column

import "reflect"

// Column is a named, ordered, nullable sequence of values.
type Column interface {
	// Name returns the column name.
	Name() string
	// Len returns the number of positions, nulls included.
	Len() int
	// DataType returns the logical element type.
	DataType() DataType
	// IsNull reports whether position i is null.
	IsNull(i int) bool
	// NullCount returns the number of null positions.
	NullCount() int
	// Nulls returns the null set. It may be nil.
	Nulls() *Nulls
}

// IsNil reports whether c is nil, including a nil pointer of a concrete
// column type stored in the interface.
func IsNil(c Column) bool {
	switch col := c.(type) {
	case nil:
		return true
	case *String:
		return col == nil
	case *Bool:
		return col == nil
	case *Float64:
		return col == nil
	case *Float32:
		return col == nil
	case *Int64:
		return col == nil
	case *Int32:
		return col == nil
	case *Int16:
		return col == nil
	case *Int8:
		return col == nil
	case *Uint64:
		return col == nil
	case *Uint32:
		return col == nil
	case *Uint16:
		return col == nil
	case *Uint8:
		return col == nil
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Numeric is a column of fixed-width numbers.
type Numeric[T Number] struct {
	name   string
	values []T
	nulls  *Nulls
}

// Aliases for the instantiations used throughout colkit.
type (
	Int8    = Numeric[int8]
	Int16   = Numeric[int16]
	Int32   = Numeric[int32]
	Int64   = Numeric[int64]
	Uint8   = Numeric[uint8]
	Uint16  = Numeric[uint16]
	Uint32  = Numeric[uint32]
	Uint64  = Numeric[uint64]
	Float32 = Numeric[float32]
	Float64 = Numeric[float64]
)

// NewNumeric creates a numeric column. The column takes ownership of values
// and nulls; callers must not modify them afterwards.
//
// Null positions at or beyond len(values) are dropped.
func NewNumeric[T Number](name string, values []T, nulls *Nulls) *Numeric[T] {
	return &Numeric[T]{name: name, values: values, nulls: nulls.clip(len(values))}
}

// FromOptional creates a numeric column where nil entries are null.
func FromOptional[T Number](name string, values []*T) *Numeric[T] {
	out := make([]T, len(values))
	var nulls *Nulls
	for i, v := range values {
		if v == nil {
			if nulls == nil {
				nulls = NewNulls()
			}
			nulls.Add(i)
			continue
		}
		out[i] = *v
	}
	return &Numeric[T]{name: name, values: out, nulls: nulls}
}

func (c *Numeric[T]) Name() string       { return c.name }
func (c *Numeric[T]) Len() int           { return len(c.values) }
func (c *Numeric[T]) DataType() DataType { return dataTypeOf[T]() }
func (c *Numeric[T]) IsNull(i int) bool  { return c.nulls.Contains(i) }
func (c *Numeric[T]) NullCount() int     { return c.nulls.Count() }
func (c *Numeric[T]) Nulls() *Nulls      { return c.nulls }

// Values returns the backing values. Entries at null positions are
// unspecified. The slice must not be modified.
func (c *Numeric[T]) Values() []T { return c.values }

// Value returns the value at i and whether it is present.
func (c *Numeric[T]) Value(i int) (T, bool) {
	if c.nulls.Contains(i) {
		var zero T
		return zero, false
	}
	return c.values[i], true
}

// Optional returns the column as a slice of pointers with nil for nulls.
func (c *Numeric[T]) Optional() []*T {
	out := make([]*T, len(c.values))
	for i := range c.values {
		if c.nulls.Contains(i) {
			continue
		}
		v := c.values[i]
		out[i] = &v
	}
	return out
}

// Bool is a column of booleans.
type Bool struct {
	name   string
	values []bool
	nulls  *Nulls
}

// NewBool creates a boolean column. Null positions at or beyond len(values)
// are dropped.
func NewBool(name string, values []bool, nulls *Nulls) *Bool {
	return &Bool{name: name, values: values, nulls: nulls.clip(len(values))}
}

func (c *Bool) Name() string       { return c.name }
func (c *Bool) Len() int           { return len(c.values) }
func (c *Bool) DataType() DataType { return TypeBool }
func (c *Bool) IsNull(i int) bool  { return c.nulls.Contains(i) }
func (c *Bool) NullCount() int     { return c.nulls.Count() }
func (c *Bool) Nulls() *Nulls      { return c.nulls }

// Values returns the backing values.
func (c *Bool) Values() []bool { return c.values }

// String is a column of UTF-8 strings.
type String struct {
	name   string
	values []string
	nulls  *Nulls
}

// NewString creates a string column. Null positions at or beyond
// len(values) are dropped.
func NewString(name string, values []string, nulls *Nulls) *String {
	return &String{name: name, values: values, nulls: nulls.clip(len(values))}
}

// StringsFromOptional creates a string column where nil entries are null.
func StringsFromOptional(name string, values []*string) *String {
	out := make([]string, len(values))
	var nulls *Nulls
	for i, v := range values {
		if v == nil {
			if nulls == nil {
				nulls = NewNulls()
			}
			nulls.Add(i)
			continue
		}
		out[i] = *v
	}
	return &String{name: name, values: out, nulls: nulls}
}

func (c *String) Name() string       { return c.name }
func (c *String) Len() int           { return len(c.values) }
func (c *String) DataType() DataType { return TypeString }
func (c *String) IsNull(i int) bool  { return c.nulls.Contains(i) }
func (c *String) NullCount() int     { return c.nulls.Count() }
func (c *String) Nulls() *Nulls      { return c.nulls }

// Values returns the backing values. Entries at null positions are empty.
func (c *String) Values() []string { return c.values }

// Value returns the string at i and whether it is present.
func (c *String) Value(i int) (string, bool) {
	if c.nulls.Contains(i) {
		return "", false
	}
	return c.values[i], true
}

// Rename returns a shallow copy of c with a new name.
func Rename(c Column, name string) Column {
	switch col := c.(type) {
	case *String:
		return &String{name: name, values: col.values, nulls: col.nulls}
	case *Bool:
		return &Bool{name: name, values: col.values, nulls: col.nulls}
	case *Float64:
		return renameNumeric(col, name)
	case *Float32:
		return renameNumeric(col, name)
	case *Int64:
		return renameNumeric(col, name)
	case *Int32:
		return renameNumeric(col, name)
	case *Int16:
		return renameNumeric(col, name)
	case *Int8:
		return renameNumeric(col, name)
	case *Uint64:
		return renameNumeric(col, name)
	case *Uint32:
		return renameNumeric(col, name)
	case *Uint16:
		return renameNumeric(col, name)
	case *Uint8:
		return renameNumeric(col, name)
	default:
		return c
	}
}

func renameNumeric[T Number](c *Numeric[T], name string) *Numeric[T] {
	return &Numeric[T]{name: name, values: c.values, nulls: c.nulls}
}

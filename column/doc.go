// Package column provides the immutable, nullable, typed columns that kernels
// consume and produce.
//
// A column is an ordered sequence of values plus a parallel null indicator.
// Null positions are stored as a roaring bitmap (see Nulls); a nil *Nulls
// means the column has no nulls. Values at null positions are unspecified and
// must not be read.
//
// # Types
//
//	Numeric[T]  int8..int64, uint8..uint64, float32, float64
//	Bool        boolean values
//	String      UTF-8 strings
//
// Float64, Uint64 and friends are aliases for the Numeric instantiations.
//
// # Construction
//
//	c := column.NewNumeric("reward", []float64{1, 0, 2}, column.NewNulls(1))
//	c := column.FromOptional("reward", []*float64{ptr(1), nil, ptr(2)})
//	s := column.StringsFromOptional("token", []*string{ptr("a"), nil})
//
// # Casting
//
// ToFloat64 widens any numeric or boolean column to float64 using a standard Go
// conversion. Columns that are already float64 are returned as-is.
package column

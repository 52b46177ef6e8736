package parquetcol

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/hupe1980/colkit/column"
	"github.com/hupe1980/colkit/kernel"
)

// ErrColumnNotFound is returned when a file has no column with the
// requested name.
var ErrColumnNotFound = errors.New("parquet column not found")

// UnsupportedColumnError reports a Parquet column that has no column
// representation. It matches kernel.ErrTypeMismatch.
type UnsupportedColumnError struct {
	Column string
	Reason string
}

func (e *UnsupportedColumnError) Error() string {
	return fmt.Sprintf("parquetcol: type mismatch: column %q: %s", e.Column, e.Reason)
}

func (e *UnsupportedColumnError) Is(target error) bool { return target == kernel.ErrTypeMismatch }

// File is an open Parquet file.
type File struct {
	*parquet.File
	closer io.Closer
}

// Open opens the Parquet file at path.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to get file stats: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &File{File: pf, closer: f}, nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

// ColumnNames returns the names of the top-level columns in schema order.
func (f *File) ColumnNames() []string {
	cols := f.Root().Columns()
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.Name())
	}
	return names
}

// ReadColumn reads the column called name.
func (f *File) ReadColumn(name string) (column.Column, error) {
	return ReadColumn(f.File, name)
}

// ReadAll reads every top-level column in schema order.
func (f *File) ReadAll() ([]column.Column, error) {
	names := f.ColumnNames()
	cols := make([]column.Column, 0, len(names))
	for _, name := range names {
		c, err := f.ReadColumn(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// ReadColumn reads the top-level leaf column called name from f across all
// row groups.
func ReadColumn(f *parquet.File, name string) (column.Column, error) {
	col := f.Root().Column(name)
	if col == nil {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	if !col.Leaf() {
		return nil, &UnsupportedColumnError{Column: name, Reason: "not a leaf column"}
	}
	if col.MaxRepetitionLevel() > 0 {
		return nil, &UnsupportedColumnError{Column: name, Reason: "repeated column"}
	}

	dec, err := decoderFor(name, col.Type())
	if err != nil {
		return nil, err
	}

	pages := col.Pages()
	defer pages.Close()

	nulls := column.NewNulls()
	values := make([]parquet.Value, 1024)
	row := 0

	for {
		page, err := pages.ReadPage()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parquetcol: read page of column %q: %w", name, err)
		}

		reader := page.Values()
		for {
			n, err := reader.ReadValues(values)
			for _, v := range values[:n] {
				if v.IsNull() {
					nulls.Add(row)
					dec.appendNull()
				} else {
					dec.append(v)
				}
				row++
			}
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				parquet.Release(page)
				return nil, fmt.Errorf("parquetcol: read values of column %q: %w", name, err)
			}
			if n == 0 {
				break
			}
		}
		parquet.Release(page)
	}

	if !nulls.Any() {
		nulls = nil
	}
	return dec.build(name, nulls), nil
}

type decoder interface {
	append(v parquet.Value)
	appendNull()
	build(name string, nulls *column.Nulls) column.Column
}

type numericDecoder[T column.Number] struct {
	values []T
	conv   func(parquet.Value) T
}

func (d *numericDecoder[T]) append(v parquet.Value) { d.values = append(d.values, d.conv(v)) }

func (d *numericDecoder[T]) appendNull() {
	var zero T
	d.values = append(d.values, zero)
}

func (d *numericDecoder[T]) build(name string, nulls *column.Nulls) column.Column {
	return column.NewNumeric(name, d.values, nulls)
}

func numeric[T column.Number](conv func(parquet.Value) T) decoder {
	return &numericDecoder[T]{conv: conv}
}

type boolDecoder struct {
	values []bool
}

func (d *boolDecoder) append(v parquet.Value) { d.values = append(d.values, v.Boolean()) }
func (d *boolDecoder) appendNull()            { d.values = append(d.values, false) }
func (d *boolDecoder) build(name string, nulls *column.Nulls) column.Column {
	return column.NewBool(name, d.values, nulls)
}

type stringDecoder struct {
	values []string
}

func (d *stringDecoder) append(v parquet.Value) { d.values = append(d.values, string(v.ByteArray())) }
func (d *stringDecoder) appendNull()            { d.values = append(d.values, "") }
func (d *stringDecoder) build(name string, nulls *column.Nulls) column.Column {
	return column.NewString(name, d.values, nulls)
}

func decoderFor(name string, t parquet.Type) (decoder, error) {
	var (
		bitWidth int8
		signed   = true
	)
	if lt := t.LogicalType(); lt != nil && lt.Integer != nil {
		bitWidth = lt.Integer.BitWidth
		signed = lt.Integer.IsSigned
	}

	switch t.Kind() {
	case parquet.Boolean:
		return &boolDecoder{}, nil
	case parquet.Int32:
		switch {
		case bitWidth == 8 && signed:
			return numeric(func(v parquet.Value) int8 { return int8(v.Int32()) }), nil
		case bitWidth == 16 && signed:
			return numeric(func(v parquet.Value) int16 { return int16(v.Int32()) }), nil
		case bitWidth == 8:
			return numeric(func(v parquet.Value) uint8 { return uint8(v.Int32()) }), nil
		case bitWidth == 16:
			return numeric(func(v parquet.Value) uint16 { return uint16(v.Int32()) }), nil
		case !signed:
			return numeric(func(v parquet.Value) uint32 { return uint32(v.Int32()) }), nil
		default:
			return numeric(func(v parquet.Value) int32 { return v.Int32() }), nil
		}
	case parquet.Int64:
		if !signed {
			return numeric(func(v parquet.Value) uint64 { return uint64(v.Int64()) }), nil
		}
		return numeric(func(v parquet.Value) int64 { return v.Int64() }), nil
	case parquet.Float:
		return numeric(func(v parquet.Value) float32 { return v.Float() }), nil
	case parquet.Double:
		return numeric(func(v parquet.Value) float64 { return v.Double() }), nil
	case parquet.ByteArray:
		return &stringDecoder{}, nil
	}

	return nil, &UnsupportedColumnError{Column: name, Reason: fmt.Sprintf("unsupported parquet type %s", t)}
}

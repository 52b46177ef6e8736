package parquetcol

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/hupe1980/colkit/column"
)

// ErrNoColumns is returned when writing without any column.
var ErrNoColumns = errors.New("no columns to write")

// WriteColumns writes cols to w as a single Parquet file. All columns must
// have the same length and distinct names.
func WriteColumns(w io.Writer, cols ...column.Column) error {
	if len(cols) == 0 {
		return ErrNoColumns
	}

	rows := cols[0].Len()
	group := make(parquet.Group, len(cols))
	for _, c := range cols {
		if c.Len() != rows {
			return fmt.Errorf("parquetcol: column %q has %d rows, want %d", c.Name(), c.Len(), rows)
		}
		if _, ok := group[c.Name()]; ok {
			return fmt.Errorf("parquetcol: duplicate column %q", c.Name())
		}
		node, err := nodeFor(c)
		if err != nil {
			return err
		}
		group[c.Name()] = parquet.Optional(node)
	}

	schema := parquet.NewSchema("colkit", group)

	encoders := make([]encoder, len(cols))
	for i, c := range cols {
		leaf, ok := schema.Lookup(c.Name())
		if !ok {
			return fmt.Errorf("parquetcol: column %q missing from schema", c.Name())
		}
		enc, err := encoderFor(c)
		if err != nil {
			return err
		}
		enc.index = leaf.ColumnIndex
		encoders[i] = enc
	}

	out := make([]parquet.Row, rows)
	for r := range out {
		row := make(parquet.Row, len(cols))
		for i, c := range cols {
			enc := encoders[i]
			if c.IsNull(r) {
				row[enc.index] = parquet.NullValue().Level(0, 0, enc.index)
				continue
			}
			row[enc.index] = enc.value(r).Level(0, 1, enc.index)
		}
		out[r] = row
	}

	writer := parquet.NewWriter(w, schema, parquet.Compression(&parquet.Zstd))
	if _, err := writer.WriteRows(out); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// WriteFile creates path and writes cols to it.
func WriteFile(path string, cols ...column.Column) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteColumns(f, cols...); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func nodeFor(c column.Column) (parquet.Node, error) {
	switch c.DataType() {
	case column.TypeBool:
		return parquet.Leaf(parquet.BooleanType), nil
	case column.TypeInt8:
		return parquet.Int(8), nil
	case column.TypeInt16:
		return parquet.Int(16), nil
	case column.TypeInt32:
		return parquet.Int(32), nil
	case column.TypeInt64:
		return parquet.Int(64), nil
	case column.TypeUint8:
		return parquet.Uint(8), nil
	case column.TypeUint16:
		return parquet.Uint(16), nil
	case column.TypeUint32:
		return parquet.Uint(32), nil
	case column.TypeUint64:
		return parquet.Uint(64), nil
	case column.TypeFloat32:
		return parquet.Leaf(parquet.FloatType), nil
	case column.TypeFloat64:
		return parquet.Leaf(parquet.DoubleType), nil
	case column.TypeString:
		return parquet.String(), nil
	}
	return nil, fmt.Errorf("parquetcol: unsupported column type %s for %q", c.DataType(), c.Name())
}

type encoder struct {
	index int
	value func(row int) parquet.Value
}

func encoderFor(c column.Column) (encoder, error) {
	switch col := c.(type) {
	case *column.Bool:
		v := col.Values()
		return encoder{value: func(r int) parquet.Value { return parquet.BooleanValue(v[r]) }}, nil
	case *column.Int8:
		v := col.Values()
		return encoder{value: func(r int) parquet.Value { return parquet.Int32Value(int32(v[r])) }}, nil
	case *column.Int16:
		v := col.Values()
		return encoder{value: func(r int) parquet.Value { return parquet.Int32Value(int32(v[r])) }}, nil
	case *column.Int32:
		v := col.Values()
		return encoder{value: func(r int) parquet.Value { return parquet.Int32Value(v[r]) }}, nil
	case *column.Int64:
		v := col.Values()
		return encoder{value: func(r int) parquet.Value { return parquet.Int64Value(v[r]) }}, nil
	case *column.Uint8:
		v := col.Values()
		return encoder{value: func(r int) parquet.Value { return parquet.Int32Value(int32(v[r])) }}, nil
	case *column.Uint16:
		v := col.Values()
		return encoder{value: func(r int) parquet.Value { return parquet.Int32Value(int32(v[r])) }}, nil
	case *column.Uint32:
		v := col.Values()
		return encoder{value: func(r int) parquet.Value { return parquet.Int32Value(int32(v[r])) }}, nil
	case *column.Uint64:
		v := col.Values()
		return encoder{value: func(r int) parquet.Value { return parquet.Int64Value(int64(v[r])) }}, nil
	case *column.Float32:
		v := col.Values()
		return encoder{value: func(r int) parquet.Value { return parquet.FloatValue(v[r]) }}, nil
	case *column.Float64:
		v := col.Values()
		return encoder{value: func(r int) parquet.Value { return parquet.DoubleValue(v[r]) }}, nil
	case *column.String:
		v := col.Values()
		return encoder{value: func(r int) parquet.Value { return parquet.ByteArrayValue([]byte(v[r])) }}, nil
	}
	return encoder{}, fmt.Errorf("parquetcol: unsupported column %T", c)
}

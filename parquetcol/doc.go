// Package parquetcol reads and writes colkit columns as Parquet files.
//
// Only flat, non-repeated leaf columns are supported. Every column written
// by this package is optional so that null positions survive a round trip.
package parquetcol

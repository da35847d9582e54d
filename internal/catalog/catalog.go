// Package catalog imports menu items from gzip-compressed CSV files stored
// locally or in S3.
package catalog

import (
	"context"
	"io"

	"cafe-pos/internal/model"
)

// Source opens a catalogue file for reading.
type Source interface {
	// Open returns a reader over the raw (possibly gzipped) file at location.
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// MenuWriter stores imported menu items.
type MenuWriter interface {
	// Upsert inserts a menu item or replaces the one with the same name.
	Upsert(ctx context.Context, item *model.MenuItem) error
}

// Result summarises a completed import.
type Result struct {
	Rows     int
	Imported int
}

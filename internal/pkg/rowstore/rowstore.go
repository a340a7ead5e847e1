// Package rowstore defines the row-oriented persistence collaborator. Data
// lives in named partitions ("sheets") holding ordered rows of string cells;
// rows are addressed by zero-based index with the header excluded. Deleting
// a row shifts the indexes of every row after it, like removing a sheet row.
package rowstore

import (
	"context"
	"errors"
)

var (
	ErrPartitionNotFound = errors.New("partition not found")
	ErrRowOutOfRange     = errors.New("row index out of range")
)

// Row is one record's cells in header order.
type Row []string

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	c := make(Row, len(r))
	copy(c, r)
	return c
}

// Cell returns the cell at i, or "" when the row is short.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

type Store interface {
	// EnsurePartition creates the named partition with the given header if
	// it does not already exist.
	EnsurePartition(ctx context.Context, name string, header []string) error

	// ScanRows returns all data rows of a partition in order. Fails with
	// ErrPartitionNotFound when the partition does not exist.
	ScanRows(ctx context.Context, name string) ([]Row, error)

	AppendRow(ctx context.Context, name string, row Row) error
	UpdateRow(ctx context.Context, name string, index int, row Row) error
	DeleteRow(ctx context.Context, name string, index int) error

	// ListPartitions returns the names of all partitions starting with
	// prefix, in ascending name order.
	ListPartitions(ctx context.Context, prefix string) ([]string, error)
}

package executor

import (
	"btreedb/btree"
)

// Executor owns the one open table for the session and dispatches parsed
// Operation values against it.
type Executor struct {
	table *btree.Table
}

// New wraps an already-open table.
func New(table *btree.Table) *Executor {
	return &Executor{table: table}
}

// Close flushes and releases the underlying table.
func (e *Executor) Close() error {
	return e.table.Close()
}

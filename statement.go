package main

import "btreedb/executor"

// StatementType tags which Operation a parsed line produced.
type StatementType int

const (
	StatementInsert StatementType = iota
	StatementUpdate
	StatementDelete
	StatementSelect
)

// Statement is the parser's output: a typed Operation ready for the
// executor. Only one of the Insert/Update/Delete fields is populated,
// matching Type.
type Statement struct {
	Type   StatementType
	Insert executor.Insert
	Update executor.Update
	Delete executor.Delete
}

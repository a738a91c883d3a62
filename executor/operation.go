// Package executor translates parsed Operation values into pager+tree+
// cursor calls against the btree core, enforcing the duplicate-key and
// not-found semantics spec.md §4.8 assigns to this layer rather than the
// core. The REPL and its parser are the executor's only caller; they are
// external collaborators that reduce text to these typed values.
package executor

// Insert adds a new row. Returns ErrDuplicateKey if id is already present,
// or a TableFull error (from the pager) if the tree cannot grow further.
type Insert struct {
	ID       uint32
	Username string
	Email    string
}

// Update overwrites username/email on the row matching ID. Returns
// ErrNotFound if no row has that id (spec.md §9: the source skips this
// check and silently corrupts an unrelated row; this implementation does
// not).
type Update struct {
	ID       uint32
	Username string
	Email    string
}

// Delete removes the row matching ID. Returns ErrNotFound if absent.
type Delete struct {
	ID uint32
}

// Select streams every row in ascending id order. It carries no fields.
type Select struct{}

package executor

import (
	"btreedb/row"
)

// Insert implements spec.md §4.8's insert(id, username, email): search by
// id; a cursor landing on a cell that already holds id is a duplicate.
func (e *Executor) Insert(op Insert) error {
	r, err := row.New(op.ID, op.Username, op.Email)
	if err != nil {
		return err
	}

	c, err := e.table.Find(op.ID)
	if err != nil {
		return err
	}
	n, err := e.table.LeafNumCells(c)
	if err != nil {
		return err
	}
	if c.Cell < n {
		key, err := e.table.CellKey(c)
		if err != nil {
			return err
		}
		if key == op.ID {
			return ErrDuplicateKey
		}
	}

	buf := make([]byte, row.Size)
	if err := row.Serialize(r, buf); err != nil {
		return err
	}
	return e.table.InsertAt(c, op.ID, buf)
}

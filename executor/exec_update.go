package executor

import (
	"btreedb/row"
)

// Update implements spec.md §4.8's update_by_id, including the §9 fix:
// the source writes without checking the located cell actually holds id,
// silently corrupting an unrelated row when it doesn't. This checks first.
func (e *Executor) Update(op Update) error {
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
	if c.Cell >= n {
		return ErrNotFound
	}
	key, err := e.table.CellKey(c)
	if err != nil {
		return err
	}
	if key != op.ID {
		return ErrNotFound
	}

	buf := make([]byte, row.Size)
	if err := row.Serialize(r, buf); err != nil {
		return err
	}
	return e.table.WriteRowAt(c, buf)
}

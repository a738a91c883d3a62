package executor

// Delete implements spec.md §4.8's delete_by_id: search by id; NotFound if
// the cursor lands past the end of the leaf's cells or on a different key.
func (e *Executor) Delete(op Delete) error {
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
	return e.table.DeleteAt(c)
}

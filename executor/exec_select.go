package executor

import (
	"btreedb/row"
)

// Select implements spec.md §4.8's select: walk the cursor from
// start-of-table to end_of_table, yielding each row in ascending id order.
// yield's error (if any) stops the scan and is returned to the caller.
func (e *Executor) Select(yield func(row.Row) error) error {
	c, err := e.table.StartCursor()
	if err != nil {
		return err
	}
	for !c.EndOfTable {
		buf, err := e.table.RowAt(c)
		if err != nil {
			return err
		}
		r, err := row.Deserialize(buf)
		if err != nil {
			return err
		}
		if err := yield(r); err != nil {
			return err
		}
		if err := c.Advance(); err != nil {
			return err
		}
	}
	return nil
}

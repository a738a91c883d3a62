package btree

// Cursor is an ephemeral position in the tree: a (page, cell) pair plus an
// end-of-table flag. It is invalidated by any mutation; callers must not
// hold one across a write (spec.md §4.7).
type Cursor struct {
	table      *Table
	Page       uint32
	Cell       uint32
	EndOfTable bool
}

// StartCursor positions a cursor at the first row in ascending key order.
func (t *Table) StartCursor() (*Cursor, error) {
	c, err := t.Find(0)
	if err != nil {
		return nil, err
	}
	n, err := t.LeafNumCells(c)
	if err != nil {
		return nil, err
	}
	c.EndOfTable = n == 0
	return c, nil
}

// Advance moves the cursor to the next cell in ascending key order,
// hopping across the next_leaf sibling link when the current leaf is
// exhausted (spec.md §4.7).
func (c *Cursor) Advance() error {
	if c.EndOfTable {
		return nil
	}
	page, err := c.table.pager.GetPage(c.Page)
	if err != nil {
		return err
	}
	buf := page.Data[:]
	c.Cell++
	if c.Cell < leafNumCells(buf) {
		return nil
	}

	next := leafNextLeaf(buf)
	if next == 0 {
		c.EndOfTable = true
		return nil
	}
	c.Page = next
	c.Cell = 0
	return nil
}

package btree

import (
	"encoding/binary"

	"btreedb/row"
)

func leafNumCells(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[leafNumCellsOffset : leafNumCellsOffset+leafNumCellsSize])
}

func setLeafNumCells(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf[leafNumCellsOffset:leafNumCellsOffset+leafNumCellsSize], v)
}

func leafNextLeaf(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[leafNextOffset : leafNextOffset+leafNextSize])
}

func setLeafNextLeaf(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf[leafNextOffset:leafNextOffset+leafNextSize], v)
}

func leafCellOffset(i uint32) int {
	return leafHeaderSize + int(i)*LeafCellSize
}

func leafKey(buf []byte, i uint32) uint32 {
	off := leafCellOffset(i)
	return binary.LittleEndian.Uint32(buf[off : off+leafKeySize])
}

func setLeafKey(buf []byte, i uint32, key uint32) {
	off := leafCellOffset(i)
	binary.LittleEndian.PutUint32(buf[off:off+leafKeySize], key)
}

func leafValue(buf []byte, i uint32) []byte {
	off := leafCellOffset(i) + leafKeySize
	return buf[off : off+row.Size]
}

func leafCell(buf []byte, i uint32) []byte {
	off := leafCellOffset(i)
	return buf[off : off+LeafCellSize]
}

func initializeLeaf(buf []byte) {
	setNodeType(buf, NodeLeaf)
	setRoot(buf, false)
	setParent(buf, 0)
	setLeafNumCells(buf, 0)
	setLeafNextLeaf(buf, 0)
}

// findLeaf binary-searches the leaf at pageNum for key, returning a cursor
// at the matching cell or at the slot the key would be inserted into
// (spec.md §4.3).
func findLeaf(t *Table, pageNum uint32, key uint32) (*Cursor, error) {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	buf := page.Data[:]
	numCells := leafNumCells(buf)

	lo, hi := uint32(0), numCells
	for lo != hi {
		mid := lo + (hi-lo)/2
		midKey := leafKey(buf, mid)
		if key == midKey {
			return &Cursor{table: t, Page: pageNum, Cell: mid}, nil
		}
		if key < midKey {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return &Cursor{table: t, Page: pageNum, Cell: lo}, nil
}

// leafInsert writes (key, rowBytes) at cursor's slot, shifting later cells
// right, or delegates to leafSplitInsert if the leaf is full (spec.md §4.4).
func leafInsert(cursor *Cursor, key uint32, rowBytes []byte) error {
	page, err := cursor.table.pager.GetPage(cursor.Page)
	if err != nil {
		return err
	}
	buf := page.Data[:]
	numCells := leafNumCells(buf)

	if numCells >= LeafMaxCells {
		return leafSplitInsert(cursor, key, rowBytes)
	}

	for i := numCells; i > cursor.Cell; i-- {
		copy(leafCell(buf, i), leafCell(buf, i-1))
	}
	setLeafKey(buf, cursor.Cell, key)
	copy(leafValue(buf, cursor.Cell), rowBytes)
	setLeafNumCells(buf, numCells+1)
	return nil
}

// leafSplitInsert resolves a full-leaf overflow: allocate a right sibling,
// distribute LeafMaxCells+1 logical slots between old (lower LeftSplitCount)
// and new (upper RightSplitCount), re-link next_leaf, and update or create
// the parent (spec.md §4.4).
func leafSplitInsert(cursor *Cursor, key uint32, rowBytes []byte) error {
	t := cursor.table
	oldPage, err := t.pager.GetPage(cursor.Page)
	if err != nil {
		return err
	}
	oldBuf := oldPage.Data[:]

	oldMax, err := nodeMaxKey(t, cursor.Page)
	if err != nil {
		return err
	}

	newPageNum, err := t.pager.AllocatePage()
	if err != nil {
		return err
	}
	newPage, err := t.pager.GetPage(newPageNum)
	if err != nil {
		return err
	}
	newBuf := newPage.Data[:]
	initializeLeaf(newBuf)
	setParent(newBuf, getParent(oldBuf))
	setLeafNextLeaf(newBuf, leafNextLeaf(oldBuf))
	setLeafNextLeaf(oldBuf, newPageNum)

	// Distribute LeafMaxCells+1 logical slots (existing cells plus the
	// incoming one at cursor.Cell) from the highest index down so shifts
	// never overwrite a not-yet-read source cell.
	for i := int32(LeafMaxCells); i >= 0; i-- {
		idx := uint32(i)
		var dest []byte
		var destIdx uint32
		if idx >= LeafLeftSplitCount {
			dest = newBuf
			destIdx = idx - LeafLeftSplitCount
		} else {
			dest = oldBuf
			destIdx = idx
		}

		switch {
		case idx == cursor.Cell:
			setLeafKey(dest, destIdx, key)
			copy(leafValue(dest, destIdx), rowBytes)
		case idx > cursor.Cell:
			copy(leafCell(dest, destIdx), leafCell(oldBuf, idx-1))
		default:
			copy(leafCell(dest, destIdx), leafCell(oldBuf, idx))
		}
	}

	setLeafNumCells(oldBuf, LeafLeftSplitCount)
	setLeafNumCells(newBuf, LeafRightSplitCount)

	if isRoot(oldBuf) {
		return t.createNewRoot(newPageNum)
	}

	parentPage := getParent(oldBuf)
	newMax, err := nodeMaxKey(t, cursor.Page)
	if err != nil {
		return err
	}
	parentBuf, err := t.pager.GetPage(parentPage)
	if err != nil {
		return err
	}
	updateInternalNodeKey(parentBuf.Data[:], oldMax, newMax)
	return internalInsert(t, parentPage, newPageNum)
}

// leafDeleteAt removes the cell at cursor's position by shifting every
// later cell one slot left and decrementing num_cells. Leaves that become
// empty or under-full are left as-is: no merge, no rebalance, no removal
// from the next_leaf chain (spec.md §4.8, an explicit non-goal).
func leafDeleteAt(cursor *Cursor) error {
	page, err := cursor.table.pager.GetPage(cursor.Page)
	if err != nil {
		return err
	}
	buf := page.Data[:]
	numCells := leafNumCells(buf)

	for i := cursor.Cell; i+1 < numCells; i++ {
		copy(leafCell(buf, i), leafCell(buf, i+1))
	}
	setLeafNumCells(buf, numCells-1)
	return nil
}

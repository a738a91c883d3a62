package btree

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

func internalNumKeys(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[internalNumKeysOffset : internalNumKeysOffset+internalNumKeysSize])
}

func setInternalNumKeys(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf[internalNumKeysOffset:internalNumKeysOffset+internalNumKeysSize], v)
}

func internalRightChild(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[internalRightOffset : internalRightOffset+internalRightSize])
}

func setInternalRightChild(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf[internalRightOffset:internalRightOffset+internalRightSize], v)
}

func internalCellOffset(i uint32) int {
	return internalHeaderSize + int(i)*internalCellSize
}

func internalChildPointer(buf []byte, i uint32) uint32 {
	off := internalCellOffset(i)
	return binary.LittleEndian.Uint32(buf[off : off+internalChildSize])
}

func setInternalChildPointer(buf []byte, i uint32, child uint32) {
	off := internalCellOffset(i)
	binary.LittleEndian.PutUint32(buf[off:off+internalChildSize], child)
}

func internalKey(buf []byte, i uint32) uint32 {
	off := internalCellOffset(i) + internalChildSize
	return binary.LittleEndian.Uint32(buf[off : off+internalKeySize])
}

func setInternalKey(buf []byte, i uint32, key uint32) {
	off := internalCellOffset(i) + internalChildSize
	binary.LittleEndian.PutUint32(buf[off:off+internalKeySize], key)
}

func copyInternalCell(buf []byte, dst, src uint32) {
	off := internalCellOffset(dst)
	srcOff := internalCellOffset(src)
	copy(buf[off:off+internalCellSize], buf[srcOff:srcOff+internalCellSize])
}

func initializeInternal(buf []byte) {
	setNodeType(buf, NodeInternal)
	setRoot(buf, false)
	setParent(buf, 0)
	setInternalNumKeys(buf, 0)
	setInternalRightChild(buf, InvalidPage)
}

// internalChild returns the page number of child i: cell(i).child for
// i < numKeys, or rightChild for i == numKeys. It rejects i > numKeys as
// corruption and an InvalidPage sentinel read-out as a missing child
// (spec.md §4.2).
func internalChild(buf []byte, i uint32) (uint32, error) {
	n := internalNumKeys(buf)
	if i > n {
		return 0, errors.Wrapf(ErrCorruptFile, "internal child index %d > numKeys %d", i, n)
	}
	var child uint32
	if i == n {
		child = internalRightChild(buf)
	} else {
		child = internalChildPointer(buf, i)
	}
	if child == InvalidPage {
		return 0, ErrInvalidChild
	}
	return child, nil
}

// internalFindChild binary-searches [0, numKeys] for the index of the
// child whose subtree may contain key (spec.md §4.3/§4.5).
func internalFindChild(buf []byte, key uint32) uint32 {
	n := internalNumKeys(buf)
	lo, hi := uint32(0), n
	for lo < hi {
		mid := lo + (hi-lo)/2
		if key <= internalKey(buf, mid) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// findInternal descends from an internal page toward the leaf that does or
// should hold key (spec.md §4.3).
func findInternal(t *Table, pageNum uint32, key uint32) (*Cursor, error) {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	buf := page.Data[:]
	idx := internalFindChild(buf, key)
	childPage, err := internalChild(buf, idx)
	if err != nil {
		return nil, err
	}
	childObj, err := t.pager.GetPage(childPage)
	if err != nil {
		return nil, err
	}
	if getNodeType(childObj.Data[:]) == NodeLeaf {
		return findLeaf(t, childPage, key)
	}
	return findInternal(t, childPage, key)
}

// updateInternalNodeKey finds the cell whose key equals oldKey and
// overwrites it with newKey, restoring invariant 4 after a child's subtree
// max changes. A key belonging to the implicit right-child subtree has no
// stored cell and is a no-op here.
func updateInternalNodeKey(buf []byte, oldKey, newKey uint32) {
	idx := internalFindChild(buf, oldKey)
	if idx < internalNumKeys(buf) {
		setInternalKey(buf, idx, newKey)
	}
}

func setChildParent(t *Table, childPage, parentPage uint32) error {
	page, err := t.pager.GetPage(childPage)
	if err != nil {
		return err
	}
	setParent(page.Data[:], parentPage)
	return nil
}

// internalInsert splices childPage into parentPage's child array at the
// position dictated by childPage's max key, splitting the parent first if
// it is already full (spec.md §4.5).
func internalInsert(t *Table, parentPage, childPage uint32) error {
	childMax, err := nodeMaxKey(t, childPage)
	if err != nil {
		return err
	}

	parentObj, err := t.pager.GetPage(parentPage)
	if err != nil {
		return err
	}
	parentBuf := parentObj.Data[:]
	n := internalNumKeys(parentBuf)

	if n >= InternalMaxKeys {
		return internalSplitInsert(t, parentPage, childPage)
	}

	if internalRightChild(parentBuf) == InvalidPage {
		setInternalRightChild(parentBuf, childPage)
		return setChildParent(t, childPage, parentPage)
	}

	rightChildMax, err := nodeMaxKey(t, internalRightChild(parentBuf))
	if err != nil {
		return err
	}

	idx := internalFindChild(parentBuf, childMax)
	if childMax > rightChildMax {
		oldRight := internalRightChild(parentBuf)
		setInternalChildPointer(parentBuf, n, oldRight)
		setInternalKey(parentBuf, n, rightChildMax)
		setInternalRightChild(parentBuf, childPage)
	} else {
		for i := n; i > idx; i-- {
			copyInternalCell(parentBuf, i, i-1)
		}
		setInternalChildPointer(parentBuf, idx, childPage)
		setInternalKey(parentBuf, idx, childMax)
	}
	setInternalNumKeys(parentBuf, n+1)
	return setChildParent(t, childPage, parentPage)
}

// internalSplitInsert resolves a full-internal-node overflow. It computes
// old_max and extra_max before any structural mutation (spec.md §9: the
// source bug of reading a max key after right_child was already cleared),
// moves the upper half of old's children into a new sibling, promotes a
// new right child for old, routes the triggering child to whichever node
// it now belongs in, and propagates the split to the grandparent — or
// creates a new root if old was the root (spec.md §4.5).
func internalSplitInsert(t *Table, oldPageNum uint32, extraChildPage uint32) error {
	oldMax, err := nodeMaxKey(t, oldPageNum)
	if err != nil {
		return err
	}
	extraMax, err := nodeMaxKey(t, extraChildPage)
	if err != nil {
		return err
	}

	newPageNum, err := t.pager.AllocatePage()
	if err != nil {
		return err
	}
	newObj, err := t.pager.GetPage(newPageNum)
	if err != nil {
		return err
	}
	initializeInternal(newObj.Data[:])

	oldObj, err := t.pager.GetPage(oldPageNum)
	if err != nil {
		return err
	}
	splittingRoot := isRoot(oldObj.Data[:])

	var parentPageNum uint32
	if splittingRoot {
		if err := t.createNewRoot(newPageNum); err != nil {
			return err
		}
		rootObj, err := t.pager.GetPage(RootPage)
		if err != nil {
			return err
		}
		leftChild, err := internalChild(rootObj.Data[:], 0)
		if err != nil {
			return err
		}
		parentPageNum = RootPage
		oldPageNum = leftChild
		oldObj, err = t.pager.GetPage(oldPageNum)
		if err != nil {
			return err
		}
	} else {
		parentPageNum = getParent(oldObj.Data[:])
	}
	oldBuf := oldObj.Data[:]

	// Move old's right child into new.
	oldRightChild := internalRightChild(oldBuf)
	if err := internalInsert(t, newPageNum, oldRightChild); err != nil {
		return err
	}
	if err := setChildParent(t, oldRightChild, newPageNum); err != nil {
		return err
	}
	setInternalRightChild(oldBuf, InvalidPage)

	// Move the upper half of old's remaining keyed children into new.
	for i := int(InternalMaxKeys) - 1; i > int(InternalMaxKeys)/2; i-- {
		idx := uint32(i)
		childPg, err := internalChild(oldBuf, idx)
		if err != nil {
			return err
		}
		if err := internalInsert(t, newPageNum, childPg); err != nil {
			return err
		}
		if err := setChildParent(t, childPg, newPageNum); err != nil {
			return err
		}
		setInternalNumKeys(oldBuf, internalNumKeys(oldBuf)-1)
	}

	// Promote old's new rightmost keyed child into its right-child slot.
	n := internalNumKeys(oldBuf)
	lastChild, err := internalChild(oldBuf, n-1)
	if err != nil {
		return err
	}
	setInternalRightChild(oldBuf, lastChild)
	setInternalNumKeys(oldBuf, n-1)

	// Route the triggering child to whichever side it now belongs on.
	curOldMax, err := nodeMaxKey(t, oldPageNum)
	if err != nil {
		return err
	}
	destination := newPageNum
	if extraMax < curOldMax {
		destination = oldPageNum
	}
	if err := internalInsert(t, destination, extraChildPage); err != nil {
		return err
	}

	parentObj, err := t.pager.GetPage(parentPageNum)
	if err != nil {
		return err
	}
	newOldMax, err := nodeMaxKey(t, oldPageNum)
	if err != nil {
		return err
	}
	updateInternalNodeKey(parentObj.Data[:], oldMax, newOldMax)

	if !splittingRoot {
		if err := internalInsert(t, parentPageNum, newPageNum); err != nil {
			return err
		}
		if err := setChildParent(t, newPageNum, parentPageNum); err != nil {
			return err
		}
	}

	return nil
}

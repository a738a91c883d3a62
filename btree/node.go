package btree

import "encoding/binary"

// The accessors in this file operate on a raw page buffer and make no
// assumption about whether it holds a leaf or an internal node; they only
// touch the six-byte common header every node shares.

func getNodeType(buf []byte) NodeType {
	return NodeType(buf[nodeTypeOffset])
}

func setNodeType(buf []byte, t NodeType) {
	buf[nodeTypeOffset] = byte(t)
}

func isRoot(buf []byte) bool {
	return buf[isRootOffset] != 0
}

func setRoot(buf []byte, v bool) {
	if v {
		buf[isRootOffset] = 1
	} else {
		buf[isRootOffset] = 0
	}
}

func getParent(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf[parentOffset : parentOffset+parentSize])
}

func setParent(buf []byte, pageNum uint32) {
	binary.LittleEndian.PutUint32(buf[parentOffset:parentOffset+parentSize], pageNum)
}

// nodeMaxKey returns the largest key stored anywhere in the subtree rooted
// at the page numbered pageNum. For a leaf that is its last cell's key;
// for an internal node it is cheap to compute because the rightmost
// subtree always holds the maximum (spec.md §4.2).
func nodeMaxKey(t *Table, pageNum uint32) (uint32, error) {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return 0, err
	}
	buf := page.Data[:]
	if getNodeType(buf) == NodeLeaf {
		n := leafNumCells(buf)
		if n == 0 {
			return 0, nil
		}
		return leafKey(buf, n-1), nil
	}
	return nodeMaxKey(t, internalRightChild(buf))
}

package btree

import (
	"math"

	"btreedb/pager"
	"btreedb/row"
)

// NodeType tags a page as a leaf or an internal node.
type NodeType uint8

const (
	NodeInternal NodeType = 0
	NodeLeaf     NodeType = 1
)

// Common node header: node_type u8 @0, is_root u8 @1, parent_page u32 @2.
const (
	nodeTypeOffset   = 0
	nodeTypeSize     = 1
	isRootOffset     = nodeTypeOffset + nodeTypeSize
	isRootSize       = 1
	parentOffset     = isRootOffset + isRootSize
	parentSize       = 4
	commonHeaderSize = nodeTypeSize + isRootSize + parentSize // 6
)

// Leaf node header, starting at commonHeaderSize:
// num_cells u32 @6, next_leaf u32 @10.
const (
	leafNumCellsOffset = commonHeaderSize
	leafNumCellsSize   = 4
	leafNextOffset     = leafNumCellsOffset + leafNumCellsSize
	leafNextSize       = 4
	leafHeaderSize     = leafNextOffset + leafNextSize // 14

	leafKeySize  = 4
	LeafCellSize = leafKeySize + row.Size // 4 + 293 = 297
)

// LeafMaxCells is the number of (key,row) cells that fit in one page after
// the leaf header, per spec.md §6: floor((4096-14)/297) = 13.
var LeafMaxCells = uint32((pager.PageSize - leafHeaderSize) / LeafCellSize)

// LeafRightSplitCount and LeafLeftSplitCount divide LeafMaxCells+1 logical
// slots between the two leaves produced by a split.
var (
	LeafRightSplitCount = (LeafMaxCells + 1 + 1) / 2 // ceil((MAX+1)/2)
	LeafLeftSplitCount  = (LeafMaxCells + 1) - LeafRightSplitCount
)

// Internal node header, starting at commonHeaderSize:
// num_keys u32 @6, right_child_page u32 @10. Same header size as a leaf's.
const (
	internalNumKeysOffset = commonHeaderSize
	internalNumKeysSize   = 4
	internalRightOffset   = internalNumKeysOffset + internalNumKeysSize
	internalRightSize     = 4
	internalHeaderSize    = internalRightOffset + internalRightSize // 14

	internalChildSize      = 4
	internalKeySize        = 4
	internalCellSize       = internalChildSize + internalKeySize // 8
	InternalMaxKeys uint32 = 3
)

// InvalidPage is the sentinel stored in an internal node's right-child slot
// before it has received its first child.
const InvalidPage uint32 = math.MaxUint32

package btree

// NodeInfo describes one visited node for tree introspection tools (the
// `.btree` meta-command and tests asserting on tree shape). It exposes
// only what a pretty-printer needs, not the raw accessors.
type NodeInfo struct {
	PageNum  uint32
	Depth    int
	IsLeaf   bool
	NumCells uint32   // leaf: row count; internal: separator-key count
	Keys     []uint32 // leaf: every row key; internal: every separator key
}

// Walk returns a pre-order traversal of every node in the tree, depth
// measured from the root (depth 0).
func (t *Table) Walk() ([]NodeInfo, error) {
	var out []NodeInfo
	if err := t.walk(RootPage, 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Table) walk(pageNum uint32, depth int, out *[]NodeInfo) error {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return err
	}
	buf := page.Data[:]

	if getNodeType(buf) == NodeLeaf {
		n := leafNumCells(buf)
		keys := make([]uint32, n)
		for i := uint32(0); i < n; i++ {
			keys[i] = leafKey(buf, i)
		}
		*out = append(*out, NodeInfo{PageNum: pageNum, Depth: depth, IsLeaf: true, NumCells: n, Keys: keys})
		return nil
	}

	n := internalNumKeys(buf)
	keys := make([]uint32, n)
	for i := uint32(0); i < n; i++ {
		keys[i] = internalKey(buf, i)
	}
	*out = append(*out, NodeInfo{PageNum: pageNum, Depth: depth, IsLeaf: false, NumCells: n, Keys: keys})

	for i := uint32(0); i < n; i++ {
		child, err := internalChild(buf, i)
		if err != nil {
			return err
		}
		if err := t.walk(child, depth+1, out); err != nil {
			return err
		}
	}
	rc, err := internalChild(buf, n)
	if err != nil {
		return err
	}
	return t.walk(rc, depth+1, out)
}

// Height reports the number of levels from root to leaf (a leaf-only tree
// has height 1).
func (t *Table) Height() (int, error) {
	depth := 0
	pageNum := RootPage
	for {
		page, err := t.pager.GetPage(pageNum)
		if err != nil {
			return 0, err
		}
		buf := page.Data[:]
		depth++
		if getNodeType(buf) == NodeLeaf {
			return depth, nil
		}
		pageNum, err = internalChild(buf, internalNumKeys(buf))
		if err != nil {
			return 0, err
		}
	}
}

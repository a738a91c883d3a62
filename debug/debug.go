// Package debug implements the `.btree`/`.constants` meta-command
// pretty-printers. It is an external collaborator of the core: it reads
// tree shape through btree.Table.Walk/Height and the exported size
// constants, never through the core's private accessors.
package debug

import (
	"fmt"
	"io"

	"btreedb/btree"
	"btreedb/pager"
	"btreedb/row"
)

// PrintTree writes an indented, pre-order rendering of every node in the
// tree to w, generalizing the teacher's single-leaf print_leaf_node to an
// arbitrary number of levels (this schema's INTERNAL_MAX_KEYS=3 makes
// multi-level trees routine, unlike the teacher's flat demo table).
func PrintTree(w io.Writer, t *btree.Table) error {
	nodes, err := t.Walk()
	if err != nil {
		return err
	}
	for _, n := range nodes {
		indent := ""
		for i := 0; i < n.Depth; i++ {
			indent += "  "
		}
		if n.IsLeaf {
			fmt.Fprintf(w, "%s- leaf (size %d)\n", indent, n.NumCells)
			for i, k := range n.Keys {
				fmt.Fprintf(w, "%s  - %d : %d\n", indent, i, k)
			}
			continue
		}
		fmt.Fprintf(w, "%s- internal (size %d)\n", indent, n.NumCells)
		for _, k := range n.Keys {
			fmt.Fprintf(w, "%s  - key %d\n", indent, k)
		}
	}
	return nil
}

// PrintConstants writes the page/row/node size constants the teacher's
// print_constants reported, generalized to this schema's layout.
func PrintConstants(w io.Writer) {
	fmt.Fprintf(w, "ROW_SIZE: %d\n", row.Size)
	fmt.Fprintf(w, "PAGE_SIZE: %d\n", pager.PageSize)
	fmt.Fprintf(w, "LEAF_CELL_SIZE: %d\n", btree.LeafCellSize)
	fmt.Fprintf(w, "LEAF_MAX_CELLS: %d\n", btree.LeafMaxCells)
	fmt.Fprintf(w, "LEAF_LEFT_SPLIT_COUNT: %d\n", btree.LeafLeftSplitCount)
	fmt.Fprintf(w, "LEAF_RIGHT_SPLIT_COUNT: %d\n", btree.LeafRightSplitCount)
	fmt.Fprintf(w, "INTERNAL_MAX_KEYS: %d\n", btree.InternalMaxKeys)
}

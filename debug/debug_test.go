package debug

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"btreedb/btree"
	"btreedb/row"
)

func TestPrintTreeSingleLeaf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	tbl, err := btree.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tbl.Close()

	for _, id := range []uint32{1, 2, 3} {
		r, err := row.New(id, "u", "e@x")
		if err != nil {
			t.Fatalf("row.New: %v", err)
		}
		c, err := tbl.Find(id)
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		buf := make([]byte, row.Size)
		if err := row.Serialize(r, buf); err != nil {
			t.Fatalf("Serialize: %v", err)
		}
		if err := tbl.InsertAt(c, id, buf); err != nil {
			t.Fatalf("InsertAt: %v", err)
		}
	}

	var out bytes.Buffer
	if err := PrintTree(&out, tbl); err != nil {
		t.Fatalf("PrintTree: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "leaf (size 3)") {
		t.Fatalf("output missing leaf summary: %q", s)
	}
	for _, key := range []string{"0 : 1", "1 : 2", "2 : 3"} {
		if !strings.Contains(s, key) {
			t.Fatalf("output missing %q: %q", key, s)
		}
	}
}

func TestPrintTreeAfterSplitShowsInternalRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	tbl, err := btree.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tbl.Close()

	for id := uint32(1); id <= btree.LeafMaxCells+1; id++ {
		r, err := row.New(id, fmt.Sprintf("u%d", id), "e@x")
		if err != nil {
			t.Fatalf("row.New: %v", err)
		}
		c, err := tbl.Find(id)
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		buf := make([]byte, row.Size)
		if err := row.Serialize(r, buf); err != nil {
			t.Fatalf("Serialize: %v", err)
		}
		if err := tbl.InsertAt(c, id, buf); err != nil {
			t.Fatalf("InsertAt: %v", err)
		}
	}

	var out bytes.Buffer
	if err := PrintTree(&out, tbl); err != nil {
		t.Fatalf("PrintTree: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "internal (size 1)") {
		t.Fatalf("output missing internal root summary: %q", s)
	}
}

func TestPrintConstants(t *testing.T) {
	var out bytes.Buffer
	PrintConstants(&out)
	s := out.String()
	for _, want := range []string{"ROW_SIZE: 293", "PAGE_SIZE: 4096", "LEAF_MAX_CELLS: 13", "INTERNAL_MAX_KEYS: 3"} {
		if !strings.Contains(s, want) {
			t.Fatalf("output missing %q: %q", want, s)
		}
	}
}

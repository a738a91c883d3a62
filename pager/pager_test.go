package pager

import (
	"os"
	"path/filepath"
	"testing"
)

func tempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

func TestOpenEmptyFile(t *testing.T) {
	p, err := Open(tempDBPath(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if p.NumPages() != 0 {
		t.Fatalf("NumPages = %d, want 0", p.NumPages())
	}
}

func TestGetPageZerosFreshBuffer(t *testing.T) {
	p, err := Open(tempDBPath(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	page, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	for i, b := range page.Data {
		if b != 0 {
			t.Fatalf("byte %d not zero: %d", i, b)
		}
	}
	if p.NumPages() != 1 {
		t.Fatalf("NumPages = %d, want 1", p.NumPages())
	}
}

func TestGetPageRejectsOutOfRange(t *testing.T) {
	p, err := Open(tempDBPath(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if _, err := p.GetPage(TableMaxPages); err == nil {
		t.Fatal("expected error for page == TableMaxPages")
	}
	if _, err := p.GetPage(TableMaxPages + 50); err == nil {
		t.Fatal("expected error for page > TableMaxPages")
	}
	// One below the boundary must still succeed.
	if _, err := p.GetPage(TableMaxPages - 1); err != nil {
		t.Fatalf("GetPage(TableMaxPages-1): %v", err)
	}
}

func TestAllocatePageReturnsNextSlot(t *testing.T) {
	p, err := Open(tempDBPath(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	n, err := p.AllocatePage()
	if err != nil {
		t.Fatalf("AllocatePage: %v", err)
	}
	if n != 0 {
		t.Fatalf("AllocatePage = %d, want 0", n)
	}
	if _, err := p.GetPage(n); err != nil {
		t.Fatalf("GetPage(%d): %v", n, err)
	}

	n2, err := p.AllocatePage()
	if err != nil {
		t.Fatalf("AllocatePage: %v", err)
	}
	if n2 != 1 {
		t.Fatalf("second AllocatePage = %d, want 1", n2)
	}
}

func TestAllocatePageTableFull(t *testing.T) {
	p, err := Open(tempDBPath(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	for i := 0; i < TableMaxPages; i++ {
		n, err := p.AllocatePage()
		if err != nil {
			t.Fatalf("AllocatePage %d: %v", i, err)
		}
		if _, err := p.GetPage(n); err != nil {
			t.Fatalf("GetPage %d: %v", i, err)
		}
	}
	if _, err := p.AllocatePage(); err != ErrTableFull {
		t.Fatalf("AllocatePage at capacity: got %v, want ErrTableFull", err)
	}
}

func TestFlushRejectsUnloadedPage(t *testing.T) {
	p, err := Open(tempDBPath(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if err := p.Flush(5); err == nil {
		t.Fatal("expected error flushing an unloaded page")
	}
}

func TestCloseReopenPreservesBytes(t *testing.T) {
	path := tempDBPath(t)

	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	page, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	page.Data[0] = 0xAB
	page.Data[PageSize-1] = 0xCD
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	p2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer p2.Close()
	if p2.NumPages() != 1 {
		t.Fatalf("NumPages after reopen = %d, want 1", p2.NumPages())
	}
	page2, err := p2.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage after reopen: %v", err)
	}
	if page2.Data[0] != 0xAB || page2.Data[PageSize-1] != 0xCD {
		t.Fatalf("bytes not preserved across close/reopen")
	}
}

func TestOpenRejectsTruncatedFile(t *testing.T) {
	path := tempDBPath(t)
	p, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := p.GetPage(0); err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Truncate the file to a non-page-aligned length.
	if err := os.Truncate(path, PageSize-1); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	if _, err := Open(path); err != ErrCorruptFile {
		t.Fatalf("Open truncated file: got %v, want ErrCorruptFile", err)
	}
}

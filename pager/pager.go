// Package pager owns the on-disk page file: demand-loaded pages, an
// unbounded page cache (up to TableMaxPages slots), page allocation, and
// write-back-on-close flushing. It knows nothing about what a page means —
// that is the btree package's job.
package pager

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	// PageSize is the fixed size, in bytes, of every page in the file.
	PageSize = 4096

	// TableMaxPages bounds the page cache and the addressable page space.
	// spec.md §9 notes the original C guard used `>` (admitting page 100);
	// this implementation uses `>=`, the corrected guard.
	TableMaxPages = 100
)

// Sentinel errors surfaced to callers. Structural failures (CorruptFile,
// PageOutOfRange, and wrapped I/O errors) are not meant to be recovered
// from by the core; TableFull is a logical result callers are expected to
// handle.
var (
	ErrCorruptFile    = errors.New("pager: file length is not a multiple of PageSize")
	ErrPageOutOfRange = errors.New("pager: page number out of range")
	ErrTableFull      = errors.New("pager: table full")
)

// Page is one fixed-size page buffer, addressed by its page number.
type Page struct {
	Data [PageSize]byte
}

// Pager owns the open file handle, the page cache, and the bookkeeping
// needed to allocate new pages and flush cached ones back to disk. It does
// not track which pages are dirty; Close writes back every cached page.
type Pager struct {
	file *os.File

	// diskPages is the number of pages physically present in the file as
	// of Open; within a session the file is never written until Close, so
	// this stays fixed for the session's lifetime.
	diskPages uint32

	// numPages is the logical page count: max(diskPages, every page
	// number ever materialized via GetPage).
	numPages uint32

	cache [TableMaxPages]*Page
}

// Open opens path for read/write, creating it if absent. The file length
// must be a whole multiple of PageSize or ErrCorruptFile is returned.
func Open(path string) (*Pager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "pager: open %q", path)
	}

	length, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "pager: seek end of %q", path)
	}
	if length%PageSize != 0 {
		f.Close()
		return nil, ErrCorruptFile
	}

	return &Pager{
		file:      f,
		diskPages: uint32(length / PageSize),
		numPages:  uint32(length / PageSize),
	}, nil
}

// NumPages reports the logical page count (invariant 7 of spec.md §3).
func (p *Pager) NumPages() uint32 { return p.numPages }

// GetPage returns the cached buffer for pageNum, loading it from disk on
// first access (or starting it zeroed if it has never been written).
func (p *Pager) GetPage(pageNum uint32) (*Page, error) {
	if pageNum >= TableMaxPages {
		return nil, errors.Wrapf(ErrPageOutOfRange, "page %d (max %d)", pageNum, TableMaxPages)
	}

	if p.cache[pageNum] == nil {
		page := &Page{}
		if pageNum < p.diskPages {
			if _, err := p.file.ReadAt(page.Data[:], int64(pageNum)*PageSize); err != nil && err != io.EOF {
				return nil, errors.Wrapf(err, "pager: read page %d", pageNum)
			}
		}
		p.cache[pageNum] = page
		if pageNum+1 > p.numPages {
			p.numPages = pageNum + 1
		}
	}
	return p.cache[pageNum], nil
}

// AllocatePage hands out the next unused page number. The page is not
// materialized until the following GetPage call.
func (p *Pager) AllocatePage() (uint32, error) {
	if p.numPages >= TableMaxPages {
		return 0, ErrTableFull
	}
	return p.numPages, nil
}

// Flush writes the cached buffer for pageNum back to its offset in the
// file. It is an error to flush a page that was never loaded or
// allocated into the cache.
func (p *Pager) Flush(pageNum uint32) error {
	page := p.cache[pageNum]
	if page == nil {
		return errors.Errorf("pager: flush: page %d has no cached buffer", pageNum)
	}
	if _, err := p.file.WriteAt(page.Data[:], int64(pageNum)*PageSize); err != nil {
		return errors.Wrapf(err, "pager: write page %d", pageNum)
	}
	return nil
}

// Close flushes every populated cache slot, closes the file handle, and
// releases all buffers. It durably commits every mutation made during
// the session (spec.md §5: "Durability: none within a session; full on
// clean close").
func (p *Pager) Close() error {
	for i := uint32(0); i < p.numPages; i++ {
		if p.cache[i] == nil {
			continue
		}
		if err := p.Flush(i); err != nil {
			return err
		}
		p.cache[i] = nil
	}
	return p.file.Close()
}

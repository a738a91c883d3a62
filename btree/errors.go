package btree

import "github.com/pkg/errors"

// Structural errors the core can detect directly from a page's own
// bytes. Both are members of spec.md §7's CorruptFile family; the core
// does not attempt to recover from either.
var (
	// ErrCorruptFile signals an accessor saw an invalid sentinel or
	// out-of-range index in a position that should never hold one.
	ErrCorruptFile = errors.New("btree: corrupt node")

	// ErrInvalidChild signals a read-out of the InvalidPage sentinel from
	// a child slot that a caller expected to be populated.
	ErrInvalidChild = errors.New("btree: invalid child pointer")
)

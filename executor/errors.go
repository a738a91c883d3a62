package executor

import "github.com/pkg/errors"

// Logical results an Operation can return alongside nil. Callers (the
// REPL) print a one-line message and continue; these never terminate the
// session (spec.md §7 distinguishes these from structural errors, which
// do).
var (
	ErrDuplicateKey = errors.New("executor: duplicate key")
	ErrNotFound     = errors.New("executor: not found")
)

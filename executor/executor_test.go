package executor

import (
	"path/filepath"
	"testing"

	"btreedb/btree"
	"btreedb/row"
)

func newExecutor(t *testing.T) *Executor {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	tbl, err := btree.Open(path)
	if err != nil {
		t.Fatalf("btree.Open: %v", err)
	}
	return New(tbl)
}

func collect(t *testing.T, e *Executor) []row.Row {
	t.Helper()
	var rows []row.Row
	if err := e.Select(func(r row.Row) error {
		rows = append(rows, r)
		return nil
	}); err != nil {
		t.Fatalf("Select: %v", err)
	}
	return rows
}

func TestInsertThenSelect(t *testing.T) {
	e := newExecutor(t)
	defer e.Close()

	if err := e.Insert(Insert{ID: 1, Username: "alice", Email: "a@x"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	rows := collect(t, e)
	if len(rows) != 1 || rows[0].ID != 1 || rows[0].Username != "alice" || rows[0].Email != "a@x" {
		t.Fatalf("got %+v", rows)
	}
}

// TestInsertDuplicateID is spec.md §8 scenario 2: a second insert at the
// same id returns DuplicateKey and leaves the original row untouched.
func TestInsertDuplicateID(t *testing.T) {
	e := newExecutor(t)
	defer e.Close()

	if err := e.Insert(Insert{ID: 1, Username: "a", Email: "a@x"}); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	err := e.Insert(Insert{ID: 1, Username: "b", Email: "b@y"})
	if err != ErrDuplicateKey {
		t.Fatalf("second Insert error = %v, want ErrDuplicateKey", err)
	}

	rows := collect(t, e)
	if len(rows) != 1 || rows[0].Username != "a" || rows[0].Email != "a@x" {
		t.Fatalf("got %+v", rows)
	}
}

func TestInsertOutOfOrderSelectsAscending(t *testing.T) {
	e := newExecutor(t)
	defer e.Close()

	for _, id := range []uint32{2, 1, 3} {
		if err := e.Insert(Insert{ID: id, Username: "u", Email: "e@x"}); err != nil {
			t.Fatalf("Insert(%d): %v", id, err)
		}
	}
	rows := collect(t, e)
	want := []uint32{1, 2, 3}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].ID != w {
			t.Fatalf("rows[%d].ID = %d, want %d", i, rows[i].ID, w)
		}
	}
}

func TestUpdateOverwritesFields(t *testing.T) {
	e := newExecutor(t)
	defer e.Close()

	if err := e.Insert(Insert{ID: 1, Username: "alice", Email: "a@x"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := e.Update(Update{ID: 1, Username: "alicia", Email: "alicia@x"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	rows := collect(t, e)
	if len(rows) != 1 || rows[0].Username != "alicia" || rows[0].Email != "alicia@x" {
		t.Fatalf("got %+v", rows)
	}
}

// TestUpdateMissingIDReturnsNotFound is the spec.md §9 fix: the source
// writes unconditionally; the spec requires NotFound for an absent id.
func TestUpdateMissingIDReturnsNotFound(t *testing.T) {
	e := newExecutor(t)
	defer e.Close()

	if err := e.Insert(Insert{ID: 1, Username: "a", Email: "a@x"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	err := e.Update(Update{ID: 99, Username: "x", Email: "x@x"})
	if err != ErrNotFound {
		t.Fatalf("Update(99) error = %v, want ErrNotFound", err)
	}
	rows := collect(t, e)
	if len(rows) != 1 || rows[0].Username != "a" {
		t.Fatalf("update must not have touched row 1: %+v", rows)
	}
}

// TestDeleteByIDScenario is spec.md §8 scenario 5.
func TestDeleteByIDScenario(t *testing.T) {
	e := newExecutor(t)
	defer e.Close()

	for id := uint32(1); id <= 30; id++ {
		if err := e.Insert(Insert{ID: id, Username: "u", Email: "e@x"}); err != nil {
			t.Fatalf("Insert(%d): %v", id, err)
		}
	}
	if err := e.Delete(Delete{ID: 15}); err != nil {
		t.Fatalf("Delete(15): %v", err)
	}

	rows := collect(t, e)
	var ids []uint32
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	var want []uint32
	for i := uint32(1); i <= 30; i++ {
		if i != 15 {
			want = append(want, i)
		}
	}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}

func TestDeleteMissingIDReturnsNotFound(t *testing.T) {
	e := newExecutor(t)
	defer e.Close()

	if err := e.Insert(Insert{ID: 1, Username: "a", Email: "a@x"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := e.Delete(Delete{ID: 99}); err != ErrNotFound {
		t.Fatalf("Delete(99) error = %v, want ErrNotFound", err)
	}
}

func TestInsertRejectsOverLongUsername(t *testing.T) {
	e := newExecutor(t)
	defer e.Close()

	long := make([]byte, 33)
	for i := range long {
		long[i] = 'a'
	}
	err := e.Insert(Insert{ID: 1, Username: string(long), Email: "a@x"})
	if err == nil {
		t.Fatal("expected an error for an over-long username")
	}
}

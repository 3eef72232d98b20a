package items

import (
	"errors"
	"testing"
	"time"

	"punchlist-cli/internal/model"
	"punchlist-cli/internal/store"
)

func newTestList(t *testing.T) (*List, store.Store) {
	t.Helper()
	st := store.Store{Dir: t.TempDir()}
	l, err := Open(st)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return l, st
}

func mustAdd(t *testing.T, l *List, name, desc string, p model.Priority) model.Item {
	t.Helper()
	l.Form.Name = name
	l.Form.Description = desc
	l.Form.Priority = p
	it, err := l.Add()
	if err != nil {
		t.Fatalf("Add(%q): %v", name, err)
	}
	return it
}

func TestOpen_EmptyStore(t *testing.T) {
	t.Parallel()

	l, _ := newTestList(t)
	if l.Len() != 0 {
		t.Fatalf("Len=%d; want 0", l.Len())
	}
	if !l.Form.IsValid() {
		t.Fatalf("fresh form should not show a validation message")
	}
}

func TestAdd_AssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	l, _ := newTestList(t)
	for k := 1; k <= 5; k++ {
		it := mustAdd(t, l, "task name", "task description", model.PriorityMedium)
		if it.ID != k {
			t.Fatalf("add #%d: id=%d; want %d", k, it.ID, k)
		}
	}
}

func TestAdd_FirstItem(t *testing.T) {
	t.Parallel()

	l, _ := newTestList(t)
	it := mustAdd(t, l, "Task A", "desc one", model.PriorityMedium)

	if it.ID != 1 || it.Name != "Task A" || it.Description != "desc one" || it.Priority != model.PriorityMedium {
		t.Fatalf("added item: %#v", it)
	}
	if it.CreatedAt.IsZero() {
		t.Fatalf("createdAt not set")
	}
	if it.ModifiedAt != nil {
		t.Fatalf("modifiedAt must be absent until first update")
	}
	if l.Len() != 1 {
		t.Fatalf("Len=%d; want 1", l.Len())
	}

	// Commit resets the form for the next entry.
	if l.Form.Name != "" || l.Form.Description != "" || l.Form.Priority != model.PriorityLow {
		t.Fatalf("form not reset: %#v", l.Form)
	}
}

func TestAdd_ValidationFailureIsQuiet(t *testing.T) {
	t.Parallel()

	l, _ := newTestList(t)
	l.Form.Name = "Hi"
	l.Form.Description = "ok"
	l.Form.Priority = model.PriorityLow

	_, err := l.Add()
	if !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("err=%v; want ErrInvalidForm", err)
	}
	if l.Len() != 0 {
		t.Fatalf("collection mutated on invalid add")
	}
	if l.Form.IsValid() {
		t.Fatalf("isValid should be false after failed validation")
	}
	// The form keeps its values so the user can fix them.
	if l.Form.Name != "Hi" || l.Form.Description != "ok" {
		t.Fatalf("form was reset on failure: %#v", l.Form)
	}
}

func TestAdd_LengthIsMeasuredWithoutTrimming(t *testing.T) {
	t.Parallel()

	l, _ := newTestList(t)
	it := mustAdd(t, l, "   ", "   ", model.PriorityLow)
	if it.Name != "   " {
		t.Fatalf("three spaces is a legal name; got %q", it.Name)
	}
}

func TestAdd_PersistsBeforeReturning(t *testing.T) {
	t.Parallel()

	l, st := newTestList(t)
	mustAdd(t, l, "persist me", "write-through snapshot", model.PriorityHigh)

	// A second controller hydrating from the same store sees the item.
	reopened, err := Open(st)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Len() != 1 || reopened.Items()[0].Name != "persist me" {
		t.Fatalf("reopened: %#v", reopened.Items())
	}
}

func TestDelete_KeepsRemainingIDs(t *testing.T) {
	t.Parallel()

	l, _ := newTestList(t)
	mustAdd(t, l, "first item", "description", model.PriorityLow)
	second := mustAdd(t, l, "second item", "description", model.PriorityLow)

	if err := l.Delete(1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if l.Len() != 1 || l.Items()[0].ID != second.ID {
		t.Fatalf("after delete: %#v; id 2 must not be renumbered", l.Items())
	}
}

func TestDelete_IsIdempotent(t *testing.T) {
	t.Parallel()

	l, _ := newTestList(t)
	mustAdd(t, l, "first item", "description", model.PriorityLow)
	mustAdd(t, l, "second item", "description", model.PriorityLow)

	if err := l.Delete(1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := l.Delete(1); err != nil {
		t.Fatalf("Delete (again): %v", err)
	}
	if l.Len() != 1 || l.Items()[0].ID != 2 {
		t.Fatalf("double delete changed the outcome: %#v", l.Items())
	}
}

func TestAdd_AfterDelete_NeverReusesAnID(t *testing.T) {
	t.Parallel()

	l, st := newTestList(t)
	mustAdd(t, l, "first item", "description", model.PriorityLow)
	mustAdd(t, l, "second item", "description", model.PriorityLow)
	if err := l.Delete(1); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	third := mustAdd(t, l, "third item", "description", model.PriorityLow)
	if third.ID != 3 {
		t.Fatalf("id=%d; want 3 (the counter is monotonic, deletions never free ids)", third.ID)
	}

	// The counter survives a restart.
	reopened, err := Open(st)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	fourth := mustAdd(t, reopened, "fourth item", "description", model.PriorityLow)
	if fourth.ID != 4 {
		t.Fatalf("id after reopen=%d; want 4", fourth.ID)
	}
}

func TestUpdate_SetsModifiedAtPreservesCreatedAt(t *testing.T) {
	t.Parallel()

	l, _ := newTestList(t)
	created := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return created }
	it := mustAdd(t, l, "original name", "original description", model.PriorityLow)

	later := created.Add(2 * time.Hour)
	l.now = func() time.Time { return later }
	if !l.StartEdit(it.ID) {
		t.Fatalf("StartEdit(%d) missed", it.ID)
	}
	l.Form.Name = "updated name"
	l.Form.Priority = model.PriorityHigh

	got, err := l.Update()
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.ID != it.ID {
		t.Fatalf("id changed: %d -> %d", it.ID, got.ID)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("createdAt changed: %v", got.CreatedAt)
	}
	if got.ModifiedAt == nil || !got.ModifiedAt.Equal(later) {
		t.Fatalf("modifiedAt=%v; want %v", got.ModifiedAt, later)
	}
	if got.ModifiedAt.Before(got.CreatedAt) {
		t.Fatalf("modifiedAt %v precedes createdAt %v", got.ModifiedAt, got.CreatedAt)
	}
	if got.Name != "updated name" || got.Description != "original description" || got.Priority != model.PriorityHigh {
		t.Fatalf("updated item: %#v", got)
	}
}

func TestUpdate_InvalidFormLeavesItemUntouched(t *testing.T) {
	t.Parallel()

	l, _ := newTestList(t)
	it := mustAdd(t, l, "original name", "original description", model.PriorityLow)

	l.StartEdit(it.ID)
	l.Form.Name = "no"

	_, err := l.Update()
	if !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("err=%v; want ErrInvalidForm", err)
	}
	cur, _ := l.Find(it.ID)
	if cur.Name != "original name" || cur.ModifiedAt != nil {
		t.Fatalf("item mutated by failed update: %#v", cur)
	}
	if l.Form.IsValid() {
		t.Fatalf("isValid should be false")
	}
}

func TestUpdate_StaleTargetIsANoOp(t *testing.T) {
	t.Parallel()

	l, _ := newTestList(t)
	it := mustAdd(t, l, "doomed item", "will be deleted", model.PriorityLow)
	other := mustAdd(t, l, "survivor", "stays as is", model.PriorityLow)

	l.StartEdit(it.ID)
	l.Form.Name = "edited after delete"
	if err := l.Delete(it.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err := l.Update()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v; want ErrNotFound", err)
	}
	cur, _ := l.Find(other.ID)
	if cur.Name != "survivor" || cur.ModifiedAt != nil {
		t.Fatalf("unrelated item touched: %#v", cur)
	}
}

func TestUpdate_WithoutTargetFails(t *testing.T) {
	t.Parallel()

	l, _ := newTestList(t)
	l.Form.Name = "long enough"
	l.Form.Description = "also long enough"

	if _, err := l.Update(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v; want ErrNotFound", err)
	}
}

func TestStartEdit_MissReportsFalse(t *testing.T) {
	t.Parallel()

	l, _ := newTestList(t)
	if l.StartEdit(99) {
		t.Fatalf("StartEdit(99) should miss on an empty collection")
	}
}

func TestView_ReflectsNewItemUnderActiveFilter(t *testing.T) {
	t.Parallel()

	l, _ := newTestList(t)
	mustAdd(t, l, "low chore", "description", model.PriorityLow)

	mode := ByPriority(model.PriorityHigh)
	if v := l.View(mode, 1); v.Total != 0 {
		t.Fatalf("Total=%d; want 0 before the high item exists", v.Total)
	}

	mustAdd(t, l, "urgent chore", "description", model.PriorityHigh)

	v := l.View(mode, 1)
	if v.Total != 1 || len(v.Items) != 1 || v.Items[0].Name != "urgent chore" {
		t.Fatalf("view after add: %#v", v)
	}
}

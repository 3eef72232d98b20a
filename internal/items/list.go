package items

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"punchlist-cli/internal/model"
	"punchlist-cli/internal/store"
)

var (
	// ErrInvalidForm is the single validation failure kind: name or
	// description below the minimum length. It is a quiet failure; the
	// collection is untouched and the form keeps its values so the user
	// can fix them.
	ErrInvalidForm = errors.New("name and description must be at least 3 characters")

	// ErrNotFound means an update targeted an id that is no longer in
	// the collection (stale edit target).
	ErrNotFound = errors.New("item not found")
)

// List owns the item collection. It is the sole mutator: every
// successful change is persisted as a whole snapshot before the call
// returns, so the store always holds the latest state. All methods are
// meant for a single goroutine, matching the one-event-at-a-time UI
// loop that drives them.
type List struct {
	st  store.Store
	col *store.Collection

	// Form is the shared create/edit buffer owned by this controller.
	Form Form

	now func() time.Time
}

// Open hydrates the controller from the store. A store with no
// snapshot yields an empty collection.
func Open(st store.Store) (*List, error) {
	col, err := st.Load()
	if err != nil {
		return nil, err
	}
	return &List{st: st, col: col, Form: NewForm(), now: time.Now}, nil
}

// Reload re-reads the snapshot, dropping unsaved in-memory state. Used
// when another process may have written the store.
func (l *List) Reload() error {
	col, err := l.st.Load()
	if err != nil {
		return err
	}
	l.col = col
	return nil
}

func (l *List) Len() int { return len(l.col.Items) }

// Items returns the collection in insertion order. Callers must not
// mutate the returned slice; views copy before sorting.
func (l *List) Items() []model.Item {
	return l.col.Items
}

func (l *List) Find(id int) (model.Item, bool) {
	it, ok := l.col.FindItem(id)
	if !ok {
		return model.Item{}, false
	}
	return *it, true
}

// Add commits the form as a new item. On validation failure nothing
// changes and the form keeps its values; IsValid carries the outcome
// either way. On success the item is appended, the snapshot saved, and
// the form reset for the next entry.
func (l *List) Add() (model.Item, error) {
	if !l.Form.Validate() {
		return model.Item{}, ErrInvalidForm
	}
	it := model.Item{
		ID:          l.col.AllocateID(),
		Name:        l.Form.Name,
		Description: l.Form.Description,
		Priority:    l.Form.Priority,
		CreatedAt:   l.now().UTC(),
	}
	l.col.Items = append(l.col.Items, it)
	if err := l.st.Save(l.col); err != nil {
		return model.Item{}, err
	}
	_ = l.st.AppendEvent("item.add", strconv.Itoa(it.ID), map[string]any{"name": it.Name, "priority": it.Priority})
	l.Form.Reset()
	return it, nil
}

// Update commits the form onto its edit target. The target's id and
// createdAt never change; modifiedAt is set on every successful update.
func (l *List) Update() (model.Item, error) {
	if !l.Form.Validate() {
		return model.Item{}, ErrInvalidForm
	}
	id, ok := l.Form.EditTarget()
	if !ok {
		return model.Item{}, fmt.Errorf("%w: no edit target", ErrNotFound)
	}
	it, ok := l.col.FindItem(id)
	if !ok {
		return model.Item{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	it.Name = l.Form.Name
	it.Description = l.Form.Description
	it.Priority = l.Form.Priority
	ts := l.now().UTC()
	it.ModifiedAt = &ts
	if err := l.st.Save(l.col); err != nil {
		return model.Item{}, err
	}
	_ = l.st.AppendEvent("item.update", strconv.Itoa(it.ID), map[string]any{"name": it.Name, "priority": it.Priority})
	l.Form.Reset()
	return *it, nil
}

// Delete removes the item with the given id. A missing id is a no-op,
// not an error, so deleting twice is the same as deleting once. The
// snapshot is persisted either way.
func (l *List) Delete(id int) error {
	removed := false
	kept := l.col.Items[:0]
	for _, it := range l.col.Items {
		if it.ID == id {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	l.col.Items = kept
	if err := l.st.Save(l.col); err != nil {
		return err
	}
	if removed {
		_ = l.st.AppendEvent("item.delete", strconv.Itoa(id), nil)
	}
	return nil
}

// StartEdit pre-populates the form from an existing item. The caller
// only offers editing for items it is displaying, so a miss just
// reports false.
func (l *List) StartEdit(id int) bool {
	it, ok := l.col.FindItem(id)
	if !ok {
		return false
	}
	l.Form.BeginEdit(*it)
	return true
}

// View computes the filtered, sorted page without touching the stored
// collection order.
func (l *List) View(mode FilterMode, page int) View {
	return BuildView(l.col.Items, mode, page)
}

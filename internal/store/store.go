package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"punchlist-cli/internal/model"
)

const (
	// itemsKey holds the whole item collection as one document. Every
	// mutation rewrites it; there is no per-item storage.
	itemsKey = "items"

	// ThemeKey holds the persisted appearance preference ("light"|"dark").
	ThemeKey = "theme"

	eventsFileName = "events.jsonl"
)

// Collection is the persisted snapshot under the "items" key.
//
// NextID is a monotonic counter: it only moves forward, so deleting items
// never causes an id to be handed out twice.
type Collection struct {
	Version int          `json:"version"`
	NextID  int          `json:"nextId"`
	Items   []model.Item `json:"items"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for an existing .punchlist
// directory, so running from a subdirectory finds the project's store.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".punchlist")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".punchlist"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) Load() (*Collection, error) {
	kv, err := s.KV()
	if err != nil {
		return nil, err
	}
	raw, ok, err := kv.Load(itemsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Collection{Version: 1, NextID: 1, Items: []model.Item{}}, nil
	}
	var col Collection
	if err := json.Unmarshal([]byte(raw), &col); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", itemsKey, err)
	}
	normalizeCollection(&col)
	return &col, nil
}

func (s Store) Save(col *Collection) error {
	kv, err := s.KV()
	if err != nil {
		return err
	}
	if col.Version == 0 {
		col.Version = 1
	}
	if col.Items == nil {
		col.Items = []model.Item{}
	}
	b, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		return err
	}
	return kv.Save(itemsKey, string(b))
}

// normalizeCollection repairs snapshots written by older builds: a missing
// or stale nextId is derived from the highest existing id so the counter
// can never collide with an item already on disk.
func normalizeCollection(col *Collection) {
	if col.Version == 0 {
		col.Version = 1
	}
	if col.Items == nil {
		col.Items = []model.Item{}
	}
	maxID := 0
	for _, it := range col.Items {
		if it.ID > maxID {
			maxID = it.ID
		}
	}
	if col.NextID <= maxID {
		col.NextID = maxID + 1
	}
}

func (c *Collection) FindItem(id int) (*model.Item, bool) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// AllocateID returns the next item id and advances the counter. The caller
// is responsible for saving the collection afterwards.
func (c *Collection) AllocateID() int {
	if c.NextID < 1 {
		c.NextID = 1
	}
	id := c.NextID
	c.NextID++
	return id
}

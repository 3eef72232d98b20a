package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"punchlist-cli/internal/model"
)

// Backup is the portable bundle for `punchlist backup`: the whole store
// state in one JSON document, independent of which backend wrote it.
type Backup struct {
	Version    int           `json:"version"`
	ExportedAt time.Time     `json:"exportedAt"`
	Collection *Collection   `json:"collection"`
	Theme      string        `json:"theme,omitempty"`
	Events     []model.Event `json:"events,omitempty"`
}

// ExportBackup gathers the snapshot, theme, and event log into a bundle.
func (s Store) ExportBackup() (*Backup, error) {
	col, err := s.Load()
	if err != nil {
		return nil, err
	}
	kv, err := s.KV()
	if err != nil {
		return nil, err
	}
	th, ok, err := kv.Load(ThemeKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		th = ""
	}
	evs, err := ReadEvents(s.Dir, 0)
	if err != nil {
		return nil, err
	}
	return &Backup{
		Version:    1,
		ExportedAt: time.Now().UTC(),
		Collection: col,
		Theme:      strings.TrimSpace(th),
		Events:     evs,
	}, nil
}

// ImportBackup replaces the store state with the bundle's. When a file
// snapshot already exists it is kept next to the store as
// items.json.pre-restore, so a bad import can be undone by hand.
func (s Store) ImportBackup(b *Backup) error {
	if b == nil || b.Collection == nil {
		return errors.New("backup: bundle has no collection")
	}
	normalizeCollection(b.Collection)

	snap := filepath.Join(s.Dir, itemsKey+".json")
	if _, err := os.Stat(snap); err == nil {
		_ = CopyFile(snap, snap+".pre-restore")
	}

	if err := s.Save(b.Collection); err != nil {
		return err
	}
	if th := strings.TrimSpace(b.Theme); th != "" {
		kv, err := s.KV()
		if err != nil {
			return err
		}
		if err := kv.Save(ThemeKey, th); err != nil {
			return err
		}
	}
	return writeEventsJSONL(filepath.Join(s.Dir, eventsFileName), b.Events)
}

// WriteBackupFile marshals the bundle as indented JSON at path.
func WriteBackupFile(path string, b *Backup) error {
	if b == nil {
		return errors.New("backup: nil bundle")
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// ReadBackupFile parses a bundle written by WriteBackupFile.
func ReadBackupFile(path string) (*Backup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// writeEventsJSONL rewrites the event log wholesale, one event per line.
// Only restore does this; normal operation appends.
func writeEventsJSONL(path string, evs []model.Event) error {
	if len(evs) == 0 {
		// A bundle without events clears the log rather than keeping a
		// trail that no longer matches the restored snapshot.
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	enc := json.NewEncoder(bw)
	for _, ev := range evs {
		if err := enc.Encode(ev); err != nil {
			f.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

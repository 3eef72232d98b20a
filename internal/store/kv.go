package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// KV is the persistence surface everything above the store writes through.
// Values are opaque documents keyed by name; Load reports ok=false for keys
// that have never been saved, and Save replaces the whole value.
//
// Two backends implement it: per-key JSON files (default) and a single
// SQLite database. See backend.go for selection.
type KV interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
}

// fileKV stores each key as <dir>/<key>.json. Writes are atomic
// (tmp file + rename) so a crash mid-save never leaves a torn value.
type fileKV struct {
	dir string
}

func (f fileKV) path(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f fileKV) Load(key string) (string, bool, error) {
	path, err := f.path(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

func (f fileKV) Save(key, value string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return err
	}
	return atomic.WriteFile(path, strings.NewReader(value))
}

// validateKey keeps keys usable as file names and SQLite identifiers alike.
func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("store: empty key")
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return fmt.Errorf("store: invalid key %q", key)
		}
	}
	return nil
}

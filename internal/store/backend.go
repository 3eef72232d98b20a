package store

import (
	"os"
	"path/filepath"
	"strings"
)

// Storage backend selection.
//
// Default: per-key JSON files (items.json, theme.json).
// Opt-in: set PUNCHLIST_BACKEND=sqlite to keep everything in punchlist.sqlite.
const envBackend = "PUNCHLIST_BACKEND"

type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

const sqliteFileName = "punchlist.sqlite"

func (s Store) Backend() Backend {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(envBackend)))
	switch v {
	case string(BackendFile):
		return BackendFile
	case string(BackendSQLite):
		return BackendSQLite
	default:
		// Auto-detect: a store that already has a SQLite database keeps using it.
		// Everything else defaults to plain files.
		if _, err := os.Stat(s.sqlitePath()); err == nil {
			return BackendSQLite
		}
		return BackendFile
	}
}

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), sqliteFileName)
}

// KV returns the key-value adapter for the selected backend.
func (s Store) KV() (KV, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	switch s.Backend() {
	case BackendSQLite:
		return sqliteKV{path: s.sqlitePath()}, nil
	default:
		return fileKV{dir: s.Dir}, nil
	}
}

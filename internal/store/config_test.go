package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	withEnv(t, "PUNCHLIST_CONFIG_DIR", t.TempDir(), func() {
		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.DataDir != "" || cfg.TUI != nil {
			t.Fatalf("expected zero config, got %#v", cfg)
		}
	})
}

func TestLoadConfig_AcceptsCommentsAndTrailingCommas(t *testing.T) {
	dir := t.TempDir()
	src := `{
	// where the store lives
	"dataDir": "/tmp/punchlist-data",
	"tui": {
		"glyphs": "ascii", // terminals without unicode
	},
}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(src), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	withEnv(t, "PUNCHLIST_CONFIG_DIR", dir, func() {
		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.DataDir != "/tmp/punchlist-data" {
			t.Fatalf("DataDir=%q", cfg.DataDir)
		}
		if cfg.TUI == nil || cfg.TUI.Glyphs != "ascii" {
			t.Fatalf("TUI=%#v", cfg.TUI)
		}
	})
}

func TestSaveConfig_RoundTripAndBackup(t *testing.T) {
	dir := t.TempDir()
	withEnv(t, "PUNCHLIST_CONFIG_DIR", dir, func() {
		if err := SaveConfig(&GlobalConfig{DataDir: "/one"}); err != nil {
			t.Fatalf("SaveConfig: %v", err)
		}
		if err := SaveConfig(&GlobalConfig{DataDir: "/two"}); err != nil {
			t.Fatalf("SaveConfig (again): %v", err)
		}

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.DataDir != "/two" {
			t.Fatalf("DataDir=%q; want /two", cfg.DataDir)
		}

		// The previous config is kept as a .bak safety net.
		bak, err := os.ReadFile(filepath.Join(dir, "config.json.bak"))
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}
		if len(bak) == 0 {
			t.Fatalf("backup is empty")
		}
	})
}

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"punchlist-cli/internal/model"
)

func TestBackup_ExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	src := Store{Dir: t.TempDir()}
	created := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	col := &Collection{Version: 1, NextID: 4, Items: []model.Item{
		{ID: 1, Name: "fix gate", Description: "latch is loose", Priority: model.PriorityHigh, CreatedAt: created},
		{ID: 3, Name: "oil hinges", Description: "both doors", Priority: model.PriorityLow, CreatedAt: created},
	}}
	if err := src.Save(col); err != nil {
		t.Fatalf("save: %v", err)
	}
	kv, err := src.KV()
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	if err := kv.Save(ThemeKey, "dark"); err != nil {
		t.Fatalf("save theme: %v", err)
	}
	if err := src.AppendEvent("item.add", "1", map[string]any{"name": "fix gate"}); err != nil {
		t.Fatalf("append event: %v", err)
	}

	b, err := src.ExportBackup()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if b.Version != 1 || b.Collection == nil {
		t.Fatalf("bad bundle header: %+v", b)
	}
	if len(b.Collection.Items) != 2 || b.Collection.NextID != 4 {
		t.Fatalf("bad bundled collection: %+v", b.Collection)
	}
	if b.Theme != "dark" || len(b.Events) != 1 {
		t.Fatalf("bad bundled theme/events: theme=%q events=%d", b.Theme, len(b.Events))
	}

	path := filepath.Join(t.TempDir(), "bundle.json")
	if err := WriteBackupFile(path, b); err != nil {
		t.Fatalf("write bundle: %v", err)
	}
	b2, err := ReadBackupFile(path)
	if err != nil {
		t.Fatalf("read bundle: %v", err)
	}

	dst := Store{Dir: t.TempDir()}
	if err := dst.ImportBackup(b2); err != nil {
		t.Fatalf("import: %v", err)
	}

	col2, err := dst.Load()
	if err != nil {
		t.Fatalf("load restored: %v", err)
	}
	if len(col2.Items) != 2 || col2.NextID != 4 {
		t.Fatalf("restored collection mismatch: %+v", col2)
	}
	if col2.Items[0].Name != "fix gate" || col2.Items[1].ID != 3 {
		t.Fatalf("restored items mismatch: %+v", col2.Items)
	}

	kv2, err := dst.KV()
	if err != nil {
		t.Fatalf("open restored kv: %v", err)
	}
	th, ok, err := kv2.Load(ThemeKey)
	if err != nil || !ok || th != "dark" {
		t.Fatalf("restored theme mismatch: %q ok=%v err=%v", th, ok, err)
	}

	evs, err := ReadEvents(dst.Dir, 0)
	if err != nil {
		t.Fatalf("read restored events: %v", err)
	}
	if len(evs) != 1 || evs[0].Type != "item.add" {
		t.Fatalf("restored events mismatch: %+v", evs)
	}
}

func TestImportBackup_KeepsPreRestoreSnapshot(t *testing.T) {
	t.Parallel()

	dst := Store{Dir: t.TempDir()}
	old := &Collection{Version: 1, NextID: 2, Items: []model.Item{
		{ID: 1, Name: "old item", Description: "about to be replaced", Priority: model.PriorityLow, CreatedAt: time.Now().UTC()},
	}}
	if err := dst.Save(old); err != nil {
		t.Fatalf("save old: %v", err)
	}

	bundle := &Backup{
		Version: 1,
		Collection: &Collection{Version: 1, NextID: 3, Items: []model.Item{
			{ID: 2, Name: "new item", Description: "from the bundle", Priority: model.PriorityHigh, CreatedAt: time.Now().UTC()},
		}},
	}
	if err := dst.ImportBackup(bundle); err != nil {
		t.Fatalf("import: %v", err)
	}

	keep := filepath.Join(dst.Dir, "items.json.pre-restore")
	b, err := os.ReadFile(keep)
	if err != nil {
		t.Fatalf("expected pre-restore copy: %v", err)
	}
	var kept Collection
	if err := json.Unmarshal(b, &kept); err != nil {
		t.Fatalf("pre-restore copy unparsable: %v", err)
	}
	if len(kept.Items) != 1 || kept.Items[0].Name != "old item" {
		t.Fatalf("pre-restore copy holds wrong data: %+v", kept.Items)
	}

	col, err := dst.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(col.Items) != 1 || col.Items[0].Name != "new item" {
		t.Fatalf("restore did not replace snapshot: %+v", col.Items)
	}
}

func TestImportBackup_RejectsEmptyBundle(t *testing.T) {
	t.Parallel()

	dst := Store{Dir: t.TempDir()}
	if err := dst.ImportBackup(nil); err == nil {
		t.Fatalf("expected error for nil bundle")
	}
	if err := dst.ImportBackup(&Backup{Version: 1}); err == nil {
		t.Fatalf("expected error for bundle without collection")
	}
}

func TestImportBackup_ClearsEventLogWhenBundleHasNone(t *testing.T) {
	t.Parallel()

	dst := Store{Dir: t.TempDir()}
	if err := dst.AppendEvent("item.add", "1", nil); err != nil {
		t.Fatalf("append event: %v", err)
	}

	bundle := &Backup{
		Version:    1,
		Collection: &Collection{Version: 1, NextID: 1, Items: []model.Item{}},
	}
	if err := dst.ImportBackup(bundle); err != nil {
		t.Fatalf("import: %v", err)
	}

	evs, err := ReadEvents(dst.Dir, 0)
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	if len(evs) != 0 {
		t.Fatalf("expected event log cleared; got %+v", evs)
	}
}

package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"punchlist-cli/internal/model"
)

func hasIssue(r DoctorReport, code string) bool {
	for _, it := range r.Issues {
		if it.Code == code {
			return true
		}
	}
	return false
}

func TestDoctor_CleanStoreHasNoIssues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{Dir: dir}
	now := time.Now().UTC()
	col := &Collection{Version: 1, NextID: 3, Items: []model.Item{
		{ID: 1, Name: "fix gate", Description: "latch is loose", Priority: model.PriorityHigh, CreatedAt: now},
		{ID: 2, Name: "oil hinges", Description: "both doors", Priority: model.PriorityLow, CreatedAt: now},
	}}
	if err := s.Save(col); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.AppendEvent("item.add", "1", nil); err != nil {
		t.Fatalf("append event: %v", err)
	}

	r := Doctor(dir)
	if len(r.Issues) != 0 {
		t.Fatalf("expected clean report; got %+v", r.Issues)
	}
	if r.HasErrors() {
		t.Fatalf("clean store must not report errors")
	}
}

func TestDoctor_NeverWrittenStoreIsHealthy(t *testing.T) {
	t.Parallel()

	r := Doctor(t.TempDir())
	if len(r.Issues) != 0 {
		t.Fatalf("expected empty report; got %+v", r.Issues)
	}
}

func TestDoctor_FlagsCorruptSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "items.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	r := Doctor(dir)
	if !hasIssue(r, "snapshot_invalid_json") {
		t.Fatalf("expected snapshot_invalid_json; got %+v", r.Issues)
	}
	if !r.HasErrors() {
		t.Fatalf("corrupt snapshot must be an error")
	}
}

func TestDoctor_FlagsInvariantViolations(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{Dir: dir}
	now := time.Now().UTC()
	earlier := now.Add(-time.Hour)
	col := &Collection{Version: 1, NextID: 2, Items: []model.Item{
		{ID: 2, Name: "fine name", Description: "fine description", Priority: model.PriorityLow, CreatedAt: now},
		{ID: 2, Name: "no", Description: "also fine", Priority: model.Priority("urgent"), CreatedAt: now, ModifiedAt: &earlier},
	}}
	if err := s.Save(col); err != nil {
		t.Fatalf("save: %v", err)
	}

	r := Doctor(dir)
	for _, code := range []string{
		"duplicate_id",
		"invalid_priority",
		"short_name",
		"modified_before_created",
		"next_id_behind",
	} {
		if !hasIssue(r, code) {
			t.Fatalf("expected issue %q; got %+v", code, r.Issues)
		}
	}
	if !r.HasErrors() {
		t.Fatalf("expected errors in report")
	}
}

func TestDoctor_FlagsCorruptEventLine(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{Dir: dir}
	if err := s.AppendEvent("item.add", "1", nil); err != nil {
		t.Fatalf("append event: %v", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "events.jsonl"), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	if _, err := f.WriteString("{broken\n"); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close log: %v", err)
	}

	r := Doctor(dir)
	if !hasIssue(r, "event_invalid_json") {
		t.Fatalf("expected event_invalid_json; got %+v", r.Issues)
	}
	for _, it := range r.Issues {
		if it.Code == "event_invalid_json" && it.Line != 2 {
			t.Fatalf("expected issue on line 2; got line %d", it.Line)
		}
	}
}

func TestDoctor_WarnsOnBadThemeAndTUIState(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{Dir: dir}
	kv, err := s.KV()
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	if err := kv.Save(ThemeKey, "purple"); err != nil {
		t.Fatalf("save theme: %v", err)
	}
	if err := os.WriteFile(s.tuiStatePath(), []byte("{oops"), 0o644); err != nil {
		t.Fatalf("write tui state: %v", err)
	}

	r := Doctor(dir)
	if !hasIssue(r, "invalid_theme") || !hasIssue(r, "tui_state_invalid") {
		t.Fatalf("expected theme and tui_state warnings; got %+v", r.Issues)
	}
	if r.HasErrors() {
		t.Fatalf("both findings are warnings, not errors; got %+v", r.Issues)
	}
}

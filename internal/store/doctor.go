package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"punchlist-cli/internal/model"
)

// ErrDoctorIssuesFound is the exit signal for `punchlist doctor --fail`.
var ErrDoctorIssuesFound = errors.New("doctor: issues found")

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Path    string           `json:"path,omitempty"`
	Line    int              `json:"line,omitempty"`
	ItemID  int              `json:"itemId,omitempty"`
}

type DoctorReport struct {
	Backend Backend       `json:"backend"`
	Issues  []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor inspects a store directory without repairing anything. The
// snapshot is read raw, not through Load, so drift that loading would
// silently normalize (a stale nextId, say) still shows up in the report.
func Doctor(dir string) DoctorReport {
	s := Store{Dir: dir}
	report := DoctorReport{Backend: s.Backend(), Issues: []DoctorIssue{}}

	kv, err := s.KV()
	if err != nil {
		report.Issues = append(report.Issues, DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    "store_unavailable",
			Message: err.Error(),
		})
		return report
	}

	report.Issues = append(report.Issues, doctorSnapshot(s, kv)...)
	report.Issues = append(report.Issues, doctorTheme(kv)...)
	report.Issues = append(report.Issues, doctorEvents(dir)...)
	report.Issues = append(report.Issues, doctorTUIState(s)...)
	return report
}

func doctorSnapshot(s Store, kv KV) []DoctorIssue {
	path := ""
	if s.Backend() == BackendFile {
		path = filepath.Join(s.Dir, itemsKey+".json")
	}

	raw, ok, err := kv.Load(itemsKey)
	if err != nil {
		return []DoctorIssue{{
			Level:   DoctorIssueLevelError,
			Code:    "snapshot_read_failed",
			Message: err.Error(),
			Path:    path,
		}}
	}
	if !ok {
		// Never-written store: healthy.
		return nil
	}

	var col Collection
	if err := json.Unmarshal([]byte(raw), &col); err != nil {
		return []DoctorIssue{{
			Level:   DoctorIssueLevelError,
			Code:    "snapshot_invalid_json",
			Message: err.Error(),
			Path:    path,
		}}
	}

	var issues []DoctorIssue
	seen := map[int]int{}
	maxID := 0
	for _, it := range col.Items {
		seen[it.ID]++
		if it.ID > maxID {
			maxID = it.ID
		}
		if it.ID < 1 {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    "nonpositive_id",
				Message: fmt.Sprintf("item id %d must be positive", it.ID),
				ItemID:  it.ID,
			})
		}
		if !it.Priority.IsValid() {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    "invalid_priority",
				Message: fmt.Sprintf("item %d has priority %q", it.ID, it.Priority),
				ItemID:  it.ID,
			})
		}
		// The form enforces three-character minimums on every write, so
		// shorter stored values can only come from hand-edited files.
		if utf8.RuneCountInString(it.Name) < 3 {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "short_name",
				Message: fmt.Sprintf("item %d name %q is shorter than 3 characters", it.ID, it.Name),
				ItemID:  it.ID,
			})
		}
		if utf8.RuneCountInString(it.Description) < 3 {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "short_description",
				Message: fmt.Sprintf("item %d description is shorter than 3 characters", it.ID),
				ItemID:  it.ID,
			})
		}
		if it.CreatedAt.IsZero() {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "missing_created_at",
				Message: fmt.Sprintf("item %d has no creation time", it.ID),
				ItemID:  it.ID,
			})
		}
		if it.ModifiedAt != nil && it.ModifiedAt.Before(it.CreatedAt) {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    "modified_before_created",
				Message: fmt.Sprintf("item %d was modified before it was created", it.ID),
				ItemID:  it.ID,
			})
		}
	}
	for id, n := range seen {
		if n > 1 {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    "duplicate_id",
				Message: fmt.Sprintf("id %d appears %d times", id, n),
				ItemID:  id,
			})
		}
	}
	if col.NextID <= maxID {
		issues = append(issues, DoctorIssue{
			Level:   DoctorIssueLevelWarn,
			Code:    "next_id_behind",
			Message: fmt.Sprintf("nextId %d is not ahead of the highest id %d; loading repairs this", col.NextID, maxID),
			Path:    path,
		})
	}
	return issues
}

func doctorTheme(kv KV) []DoctorIssue {
	raw, ok, err := kv.Load(ThemeKey)
	if err != nil {
		return []DoctorIssue{{
			Level:   DoctorIssueLevelError,
			Code:    "theme_read_failed",
			Message: err.Error(),
		}}
	}
	if !ok {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "light", "dark":
		return nil
	}
	return []DoctorIssue{{
		Level:   DoctorIssueLevelWarn,
		Code:    "invalid_theme",
		Message: fmt.Sprintf("stored theme %q is not light|dark; light will be used", raw),
	}}
}

func doctorEvents(dir string) []DoctorIssue {
	path := filepath.Join(dir, eventsFileName)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return []DoctorIssue{{
			Level:   DoctorIssueLevelError,
			Code:    "events_read_failed",
			Message: err.Error(),
			Path:    path,
		}}
	}
	defer f.Close()

	var issues []DoctorIssue
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		txt := strings.TrimSpace(sc.Text())
		if txt == "" {
			continue
		}
		var ev model.Event
		if err := json.Unmarshal([]byte(txt), &ev); err != nil {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    "event_invalid_json",
				Message: err.Error(),
				Path:    path,
				Line:    line,
			})
			continue
		}
		if strings.TrimSpace(ev.Type) == "" {
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelWarn,
				Code:    "event_missing_type",
				Message: "event has no type",
				Path:    path,
				Line:    line,
			})
		}
	}
	if err := sc.Err(); err != nil {
		issues = append(issues, DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    "events_read_failed",
			Message: err.Error(),
			Path:    path,
		})
	}
	return issues
}

func doctorTUIState(s Store) []DoctorIssue {
	path := s.tuiStatePath()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		return []DoctorIssue{{
			Level:   DoctorIssueLevelWarn,
			Code:    "tui_state_invalid",
			Message: "tui_state.json is not valid JSON and will be ignored",
			Path:    path,
		}}
	}
	return nil
}

package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"punchlist-cli/internal/model"
)

// AppendEvent records a mutation in the append-only events.jsonl audit log.
//
// The log is an observation channel, not a source of truth: the collection
// snapshot is authoritative, and callers treat append failures as
// best-effort (a full disk should not block an edit).
func (s Store) AppendEvent(typ, entityID string, payload any) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	id, err := newRandomID("ev")
	if err != nil {
		return err
	}
	ev := model.Event{
		ID:       id,
		TS:       time.Now().UTC(),
		Type:     typ,
		EntityID: entityID,
		Payload:  payload,
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	path := filepath.Join(s.Dir, eventsFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ReadEvents(dir string, limit int) ([]model.Event, error) {
	path := filepath.Join(dir, eventsFileName)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Event{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var out []model.Event
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ev model.Event
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			return nil, err
		}
		out = append(out, ev)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadEventsTail reads the last N events from the append-only events log.
//
// The returned slice is in chronological order (oldest-first within the
// returned window). If limit <= 0, all events are returned.
func ReadEventsTail(dir string, limit int) ([]model.Event, error) {
	if limit <= 0 {
		return ReadEvents(dir, 0)
	}

	path := filepath.Join(dir, eventsFileName)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Event{}, nil
		}
		return nil, err
	}
	defer f.Close()

	// Ring buffer for the last `limit` events.
	ring := make([]model.Event, limit)
	start := 0
	size := 0

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ev model.Event
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			return nil, err
		}
		if size < limit {
			ring[size] = ev
			size++
		} else {
			ring[start] = ev
			start = (start + 1) % limit
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if size == 0 {
		return []model.Event{}, nil
	}
	if size < limit {
		return ring[:size], nil
	}

	out := make([]model.Event, 0, limit)
	out = append(out, ring[start:]...)
	out = append(out, ring[:start]...)
	return out, nil
}

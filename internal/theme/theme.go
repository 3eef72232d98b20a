// Package theme holds the session-wide appearance preference. The value
// is persisted under its own key, independent of the item collection,
// and every change is written through immediately.
package theme

import (
	"strings"

	"punchlist-cli/internal/store"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == Light || t == Dark
}

// Flipped returns the other theme.
func (t Theme) Flipped() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func Parse(s string) (Theme, bool) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if t.Valid() {
		return t, true
	}
	return "", false
}

// Store is the process-wide theme holder, hydrated once per session.
type Store struct {
	kv      store.KV
	current Theme
}

// Open reads the persisted theme. Missing or unrecognized values fall
// back to light rather than failing: appearance is never worth an error.
func Open(kv store.KV) (*Store, error) {
	s := &Store{kv: kv, current: Light}
	raw, ok, err := kv.Load(store.ThemeKey)
	if err != nil {
		return nil, err
	}
	if ok {
		if t, valid := Parse(raw); valid {
			s.current = t
		}
	}
	return s, nil
}

func (s *Store) Current() Theme { return s.current }

// Set switches to the given theme and persists it before returning.
func (s *Store) Set(t Theme) error {
	if !t.Valid() {
		t = Light
	}
	s.current = t
	return s.kv.Save(store.ThemeKey, string(t))
}

// Toggle flips between light and dark, persisting immediately so the
// preference survives even if the session ends right after.
func (s *Store) Toggle() (Theme, error) {
	next := s.current.Flipped()
	if err := s.Set(next); err != nil {
		return s.current, err
	}
	return next, nil
}

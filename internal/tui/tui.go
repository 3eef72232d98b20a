package tui

import (
	"punchlist-cli/internal/items"
	"punchlist-cli/internal/store"
	"punchlist-cli/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the full-screen UI over an already opened list. The stored
// theme preference is applied before the first frame so the palette does
// not flash from the terminal default.
func Run(s store.Store, list *items.List) error {
	kv, err := s.KV()
	if err != nil {
		return err
	}
	themes, err := theme.Open(kv)
	if err != nil {
		return err
	}

	applyColorProfilePreference()
	applyThemePreference(themes.Current())

	m := newAppModel(s, list, themes)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

package tui

import (
	"fmt"
	"io"
	"strings"

	"punchlist-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type itemRow struct {
	item model.Item
}

func (r itemRow) FilterValue() string { return r.item.Name }

// rowMeta is the right-aligned part of a row: priority label plus the
// creation date.
func rowMeta(it model.Item) string {
	return fmt.Sprintf("%-6s  %s", it.Priority, it.CreatedAt.Local().Format("2006-01-02"))
}

type rowDelegate struct {
	selected lipgloss.Style
	id       lipgloss.Style
	meta     lipgloss.Style
}

func newRowDelegate() rowDelegate {
	return rowDelegate{
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		id:   lipgloss.NewStyle().Foreground(colorChromeFg),
		meta: lipgloss.NewStyle().Foreground(colorChromeFg),
	}
}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	r, ok := li.(itemRow)
	if !ok {
		fmt.Fprint(w, "")
		return
	}
	it := r.item

	idStr := fmt.Sprintf("%4d", it.ID)
	name := it.Name
	meta := rowMeta(it)

	// Fit: "  id  name<pad>meta". The name gives way first; the meta is
	// dropped entirely on very narrow terminals.
	nameW := contentW - xansi.StringWidth(idStr) - 2 - xansi.StringWidth(meta) - 2
	if nameW < 8 {
		meta = ""
		nameW = contentW - xansi.StringWidth(idStr) - 2
	}
	if nameW < 1 {
		nameW = 1
	}
	if xansi.StringWidth(name) > nameW {
		name = xansi.Cut(name, 0, nameW-1) + "…"
	}
	pad := contentW - xansi.StringWidth(idStr) - 2 - xansi.StringWidth(name) - xansi.StringWidth(meta)
	if pad < 0 {
		pad = 0
	}

	if index == m.Index() {
		line := idStr + "  " + name + strings.Repeat(" ", pad) + meta
		fmt.Fprint(w, d.selected.Render(line))
		return
	}

	metaStyled := meta
	if meta != "" {
		metaStyled = stylePriority(it.Priority).Render(string(it.Priority)) +
			d.meta.Render(meta[len(it.Priority):])
	}
	fmt.Fprint(w, d.id.Render(idStr)+"  "+name+strings.Repeat(" ", pad)+metaStyled)
}

// newList builds a bubbles list with the chrome off; the app renders its
// own header, paging indicator, and footer.
func newList(title string, items []list.Item) list.Model {
	l := list.New(items, newRowDelegate(), 0, 0)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	// Filtering happens through the app's own filter modes, not the
	// list's fuzzy matcher.
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("item", "items")
	// The list defaults to quitting on ESC; here ESC means "cancel".
	l.KeyMap.Quit.SetKeys("q")

	// Emacs-style navigation aliases.
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)

	// Left/right page through the view; stop the list from treating them
	// as cursor movement.
	l.KeyMap.NextPage.SetKeys("pgdown")
	l.KeyMap.PrevPage.SetKeys("pgup")
	return l
}

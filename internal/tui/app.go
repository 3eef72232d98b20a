package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"punchlist-cli/internal/items"
	"punchlist-cli/internal/model"
	"punchlist-cli/internal/store"
	"punchlist-cli/internal/theme"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalForm
	modalQuery
	modalConfirmDelete
)

type reloadTickMsg struct{}

type appModel struct {
	store  store.Store
	list   *items.List
	themes *theme.Store

	width  int
	height int

	mode items.FilterMode
	page int
	// cur is the page currently on screen; recomputed by refreshRows.
	cur items.View

	rows list.Model

	modal modalKind

	// editingID is 0 while adding; the target id while editing. Only used
	// for the modal title; the form itself tracks its edit target.
	editingID    int
	formFocus    formFocus
	nameInput    textinput.Model
	descArea     textarea.Model
	formPriority model.Priority

	queryInput textinput.Model

	confirmFocus confirmModalFocus
	deleteID     int

	statusMsg string

	lastItemsMod  time.Time
	lastEventsMod time.Time
}

func newAppModel(s store.Store, l *items.List, ts *theme.Store) appModel {
	m := appModel{
		store:  s,
		list:   l,
		themes: ts,
		mode:   items.DefaultFilter(),
		page:   1,
	}

	m.rows = newList("Items", nil)

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "Name"
	m.nameInput.CharLimit = 200
	m.nameInput.Width = 40

	m.descArea = textarea.New()
	m.descArea.Placeholder = "Description"
	m.descArea.CharLimit = 0
	m.descArea.SetWidth(56)
	m.descArea.SetHeight(4)
	m.descArea.ShowLineNumbers = false

	m.queryInput = textinput.New()
	m.queryInput.Placeholder = "Name contains…"
	m.queryInput.CharLimit = 200
	m.queryInput.Width = 40

	m.formPriority = model.PriorityLow

	// Best-effort: restore the last filter/page/selection for this store.
	selectID := 0
	if st, err := s.LoadTUIState(); err == nil {
		selectID = m.applySavedState(st)
	}
	m.refreshRows()
	if selectID != 0 {
		m.selectRowByID(selectID)
	}
	m.captureStoreModTimes()
	return m
}

func (m *appModel) applySavedState(st *store.TUIState) (selectID int) {
	switch st.Filter {
	case string(items.FilterByPriority):
		if p, ok := model.ParsePriority(st.FilterPriority); ok {
			m.mode = items.ByPriority(p)
		}
	case string(items.FilterByName):
		m.mode = items.ByName(st.FilterQuery)
	case string(items.FilterByDate):
		if o, ok := items.ParseSortOrder(st.SortOrder); ok {
			m.mode = items.ByDate(o)
		}
	}
	if st.Page > 0 {
		m.page = st.Page
	}
	return st.SelectedID
}

func (m *appModel) saveUIState() {
	st := &store.TUIState{
		Version: 1,
		Filter:  string(m.mode.Kind()),
		Page:    m.page,
	}
	switch m.mode.Kind() {
	case items.FilterByPriority:
		st.FilterPriority = string(m.mode.Priority())
	case items.FilterByName:
		st.FilterQuery = m.mode.Query()
	default:
		st.SortOrder = string(m.mode.Order())
	}
	if it, ok := m.selectedItem(); ok {
		st.SelectedID = it.ID
	}
	_ = m.store.SaveTUIState(st)
}

// refreshRows recomputes the visible page. The page is clamped here:
// deleting the last item of the last page must land on the new last
// page, not an empty one.
func (m *appModel) refreshRows() {
	keepID := 0
	if it, ok := m.selectedItem(); ok {
		keepID = it.ID
	}

	v := m.list.View(m.mode, m.page)
	if p := items.ClampPage(m.page, v.TotalPages); p != m.page {
		m.page = p
		v = m.list.View(m.mode, m.page)
	}
	m.cur = v

	rows := make([]list.Item, 0, len(v.Items))
	for _, it := range v.Items {
		rows = append(rows, itemRow{item: it})
	}
	m.rows.SetItems(rows)
	if m.rows.Index() >= len(rows) && len(rows) > 0 {
		m.rows.Select(len(rows) - 1)
	}
	if keepID != 0 {
		m.selectRowByID(keepID)
	}
}

func (m *appModel) selectRowByID(id int) {
	for i, li := range m.rows.Items() {
		if r, ok := li.(itemRow); ok && r.item.ID == id {
			m.rows.Select(i)
			return
		}
	}
}

func (m appModel) selectedItem() (model.Item, bool) {
	if r, ok := m.rows.SelectedItem().(itemRow); ok {
		return r.item, true
	}
	return model.Item{}, false
}

// jumpToItem pages to wherever the id landed under the active filter,
// e.g. after an add under date-descending the new item is on page 1.
func (m *appModel) jumpToItem(id int) {
	v := m.list.View(m.mode, 1)
	for p := 1; p <= v.TotalPages; p++ {
		pv := m.list.View(m.mode, p)
		for _, it := range pv.Items {
			if it.ID == id {
				m.page = p
				m.refreshRows()
				m.selectRowByID(id)
				return
			}
		}
	}
	m.refreshRows()
}

func (m appModel) Init() tea.Cmd { return tickReload() }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case reloadTickMsg:
		if m.modal == modalNone && m.storeChanged() {
			_ = m.reloadFromDisk()
		}
		return m, tickReload()

	case tea.KeyMsg:
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		return m.updateMain(msg)
	}
	return m, nil
}

func (m appModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	switch msg.String() {
	case "ctrl+c", "q":
		m.saveUIState()
		return m, tea.Quit

	case "a":
		m.openAddForm()
		return m, nil

	case "e":
		if it, ok := m.selectedItem(); ok {
			m.openEditForm(it)
		}
		return m, nil

	case "x":
		if it, ok := m.selectedItem(); ok {
			m.deleteID = it.ID
			m.confirmFocus = confirmFocusCancel
			m.modal = modalConfirmDelete
		}
		return m, nil

	case "f":
		if m.mode.Kind() == items.FilterByName {
			m.queryInput.SetValue(m.mode.Query())
		} else {
			m.queryInput.SetValue("")
		}
		m.queryInput.CursorEnd()
		m.queryInput.Focus()
		m.modal = modalQuery
		return m, nil

	case "p":
		if m.mode.Kind() == items.FilterByPriority {
			m.mode = items.ByPriority(nextPriority(m.mode.Priority()))
		} else {
			m.mode = items.ByPriority(model.PriorityHigh)
		}
		m.page = 1
		m.refreshRows()
		m.saveUIState()
		return m, nil

	case "o":
		if m.mode.Kind() == items.FilterByDate && m.mode.Order() == items.SortAsc {
			m.mode = items.ByDate(items.SortDesc)
		} else {
			m.mode = items.ByDate(items.SortAsc)
		}
		m.page = 1
		m.refreshRows()
		m.saveUIState()
		return m, nil

	case "left":
		m.page = items.ClampPage(m.page-1, m.cur.TotalPages)
		m.refreshRows()
		return m, nil

	case "right":
		m.page = items.ClampPage(m.page+1, m.cur.TotalPages)
		m.refreshRows()
		return m, nil

	case "t":
		next, err := m.themes.Toggle()
		if err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		applyThemePreference(next)
		_ = m.store.AppendEvent("theme.toggle", "", map[string]any{"theme": next})
		m.statusMsg = "theme: " + string(next)
		return m, nil

	case "r":
		// Reload from disk (so CLI commands run in another terminal are
		// reflected without waiting for the watcher).
		if err := m.reloadFromDisk(); err != nil {
			m.statusMsg = err.Error()
		} else {
			m.statusMsg = "reloaded"
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalForm:
		return m.updateFormModal(msg)
	case modalQuery:
		return m.updateQueryModal(msg)
	case modalConfirmDelete:
		return m.updateConfirmModal(msg)
	}
	return m, nil
}

func (m *appModel) openAddForm() {
	m.list.Form.Reset()
	m.editingID = 0
	m.nameInput.SetValue("")
	m.descArea.SetValue("")
	m.formPriority = model.PriorityLow
	m.formFocus = formFocusName
	m.syncFormFocus()
	m.modal = modalForm
}

func (m *appModel) openEditForm(it model.Item) {
	if !m.list.StartEdit(it.ID) {
		return
	}
	m.editingID = it.ID
	m.nameInput.SetValue(it.Name)
	m.descArea.SetValue(it.Description)
	m.formPriority = it.Priority
	m.formFocus = formFocusName
	m.syncFormFocus()
	m.modal = modalForm
}

// syncFormDraft mirrors the widgets into the shared form and re-validates,
// so the modal's hint tracks every keystroke.
func (m *appModel) syncFormDraft() {
	m.list.Form.Name = m.nameInput.Value()
	m.list.Form.Description = m.descArea.Value()
	m.list.Form.Priority = m.formPriority
	m.list.Form.Validate()
}

func (m *appModel) syncFormFocus() {
	if m.formFocus == formFocusName {
		m.nameInput.Focus()
	} else {
		m.nameInput.Blur()
	}
	if m.formFocus == formFocusDescription {
		m.descArea.Focus()
	} else {
		m.descArea.Blur()
	}
}

func (m *appModel) closeForm() {
	m.modal = modalNone
	m.nameInput.Blur()
	m.descArea.Blur()
}

func (m appModel) updateFormModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.list.Form.Reset()
		return m, nil
	case "tab":
		m.formFocus = m.formFocus.next()
		m.syncFormFocus()
		return m, nil
	case "shift+tab":
		m.formFocus = m.formFocus.prev()
		m.syncFormFocus()
		return m, nil
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case formFocusName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case formFocusDescription:
		m.descArea, cmd = m.descArea.Update(msg)
	case formFocusPriority:
		switch msg.String() {
		case "left":
			m.formPriority = prevPriority(m.formPriority)
		case "right", " ":
			m.formPriority = nextPriority(m.formPriority)
		}
	}
	m.syncFormDraft()
	return m, cmd
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	m.syncFormDraft()

	var (
		it  model.Item
		err error
	)
	if m.editingID > 0 {
		it, err = m.list.Update()
	} else {
		it, err = m.list.Add()
	}
	switch {
	case errors.Is(err, items.ErrInvalidForm):
		// Stay open; the hint line explains, the form keeps its values.
		return m, nil
	case err != nil:
		m.closeForm()
		m.statusMsg = err.Error()
		m.refreshRows()
		return m, nil
	}

	verb := "added"
	if m.editingID > 0 {
		verb = "updated"
	}
	m.closeForm()
	m.statusMsg = fmt.Sprintf("%s item %d", verb, it.ID)
	m.jumpToItem(it.ID)
	return m, nil
}

func (m appModel) updateQueryModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.queryInput.Blur()
		return m, nil
	case "enter":
		m.mode = items.ByName(m.queryInput.Value())
		m.page = 1
		m.modal = modalNone
		m.queryInput.Blur()
		m.refreshRows()
		m.saveUIState()
		return m, nil
	}

	var cmd tea.Cmd
	m.queryInput, cmd = m.queryInput.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirmModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return m, nil
	case "tab", "left", "right":
		m.confirmFocus = m.confirmFocus.toggled()
		return m, nil
	case "enter":
		m.modal = modalNone
		if m.confirmFocus == confirmFocusConfirm {
			if err := m.list.Delete(m.deleteID); err != nil {
				m.statusMsg = err.Error()
			} else {
				m.statusMsg = fmt.Sprintf("deleted item %d", m.deleteID)
			}
			m.refreshRows()
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) View() string {
	if m.modal != modalNone {
		box := m.modalView()
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
		}
		return box
	}

	title := lipgloss.NewStyle().Bold(true).Render("Punchlist")
	header := title + styleMuted().Render(fmt.Sprintf("  %d items · %s · page %d/%d",
		m.cur.Total, m.mode, m.page, m.cur.TotalPages))

	body := m.rows.View()
	if m.cur.Total == 0 {
		if m.list.Len() == 0 {
			body = styleMuted().Render("No items yet. Press a to add one.")
		} else {
			body = styleMuted().Render("Nothing matches this filter.")
		}
	}

	var footerLines []string
	if m.statusMsg != "" {
		footerLines = append(footerLines, lipgloss.NewStyle().Foreground(colorAccent).Render(m.statusMsg))
	}
	footerLines = append(footerLines, styleMuted().Render(
		"a: add  e: edit  x: delete  f: name  p: priority  o: date  ←/→: page  t: theme  q: quit"))

	return strings.Join([]string{header, body, strings.Join(footerLines, "\n")}, "\n\n")
}

func (m appModel) modalView() string {
	switch m.modal {
	case modalForm:
		title := "Add item"
		if m.editingID > 0 {
			title = fmt.Sprintf("Edit item %d", m.editingID)
		}
		return renderFormModal(m.width, title, m.nameInput, m.descArea, m.formPriority, m.formFocus, m.list.Form.IsValid())
	case modalQuery:
		content := strings.Join([]string{
			renderInputLine(modalBodyWidth(m.width), m.queryInput.View()),
			"",
			styleMuted().Render("enter: apply   esc: cancel"),
		}, "\n")
		return renderModalBox(m.width, "Filter by name", content)
	case modalConfirmDelete:
		name := ""
		if it, ok := m.list.Find(m.deleteID); ok {
			name = it.Name
		}
		body := fmt.Sprintf("Delete item %d: %s?", m.deleteID, name)
		return renderConfirmModal(m.width, "Delete", body, "Delete", "Cancel", m.confirmFocus)
	}
	return ""
}

func (m *appModel) resize() {
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.rows.SetSize(w, h)

	bodyW := modalBodyWidth(m.width)
	m.nameInput.Width = bodyW - 4
	m.queryInput.Width = bodyW - 4
	m.descArea.SetWidth(bodyW)
}

func tickReload() tea.Cmd {
	return tea.Tick(750*time.Millisecond, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m *appModel) captureStoreModTimes() {
	m.lastItemsMod = latestModTime(
		filepath.Join(m.store.Dir, "items.json"),
		filepath.Join(m.store.Dir, "punchlist.sqlite"),
	)
	m.lastEventsMod = fileModTime(filepath.Join(m.store.Dir, "events.jsonl"))
}

func (m *appModel) storeChanged() bool {
	itemsMT := latestModTime(
		filepath.Join(m.store.Dir, "items.json"),
		filepath.Join(m.store.Dir, "punchlist.sqlite"),
	)
	evMT := fileModTime(filepath.Join(m.store.Dir, "events.jsonl"))
	return itemsMT.After(m.lastItemsMod) || evMT.After(m.lastEventsMod)
}

func (m *appModel) reloadFromDisk() error {
	if err := m.list.Reload(); err != nil {
		return err
	}
	m.captureStoreModTimes()
	m.refreshRows()
	return nil
}

func fileModTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}

func latestModTime(paths ...string) time.Time {
	var latest time.Time
	for _, p := range paths {
		if mt := fileModTime(p); mt.After(latest) {
			latest = mt
		}
	}
	return latest
}

func nextPriority(p model.Priority) model.Priority {
	ps := model.Priorities()
	for i, q := range ps {
		if q == p {
			return ps[(i+1)%len(ps)]
		}
	}
	return ps[0]
}

func prevPriority(p model.Priority) model.Priority {
	ps := model.Priorities()
	for i, q := range ps {
		if q == p {
			return ps[(i+len(ps)-1)%len(ps)]
		}
	}
	return ps[0]
}

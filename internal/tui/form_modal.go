package tui

import (
	"strings"

	"punchlist-cli/internal/items"
	"punchlist-cli/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

type formFocus int

const (
	formFocusName formFocus = iota
	formFocusDescription
	formFocusPriority
)

func (f formFocus) next() formFocus {
	switch f {
	case formFocusName:
		return formFocusDescription
	case formFocusDescription:
		return formFocusPriority
	default:
		return formFocusName
	}
}

func (f formFocus) prev() formFocus {
	switch f {
	case formFocusName:
		return formFocusPriority
	case formFocusPriority:
		return formFocusDescription
	default:
		return formFocusName
	}
}

func formLabel(text string, focused bool) string {
	if focused {
		return lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(text)
	}
	return styleMuted().Render(text)
}

// renderPrioritySelector draws the three priorities as a radio row.
func renderPrioritySelector(selected model.Priority, focused bool) string {
	var parts []string
	for _, p := range model.Priorities() {
		mark := "( )"
		if p == selected {
			mark = "(•)"
		}
		cell := mark + " " + string(p)
		switch {
		case p == selected && focused:
			cell = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(cell)
		case p == selected:
			cell = stylePriority(p).Render(cell)
		default:
			cell = styleMuted().Render(cell)
		}
		parts = append(parts, cell)
	}
	return strings.Join(parts, "   ")
}

func renderFormModal(width int, title string, name textinput.Model, desc textarea.Model, prio model.Priority, focus formFocus, valid bool) string {
	bodyW := modalBodyWidth(width)

	hint := styleMuted().Width(bodyW).Render("tab: next field   enter: save   esc: cancel")
	if !valid {
		hint = lipgloss.NewStyle().Foreground(colorErrorFg).Width(bodyW).
			Render(items.ErrInvalidForm.Error())
	}

	content := strings.Join([]string{
		formLabel("Name", focus == formFocusName),
		renderInputLine(bodyW, name.View()),
		"",
		formLabel("Description", focus == formFocusDescription),
		desc.View(),
		"",
		formLabel("Priority", focus == formFocusPriority) + "   " + renderPrioritySelector(prio, focus == formFocusPriority),
		"",
		hint,
	}, "\n")

	return renderModalBox(width, title, content)
}

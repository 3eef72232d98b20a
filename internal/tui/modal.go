package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const maxModalW = 72

// modalBodyWidth is the usable content width inside a modal for the
// given terminal width.
func modalBodyWidth(width int) int {
	w := width - 8
	if w > maxModalW {
		w = maxModalW
	}
	if w < 24 {
		w = 24
	}
	return w
}

// renderModalBox draws a header bar plus body. No borders: some
// terminals show background artifacts when nesting bordered components
// inside a surface with its own background color.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorModalHeaderFg).
		Background(colorModalHeaderBg).
		Width(bodyW+4).
		Padding(0, 2).
		Render(title)

	body := lipgloss.NewStyle().
		Foreground(colorModalSurfaceFg).
		Background(colorModalSurfaceBg).
		Width(bodyW+4).
		Padding(1, 2).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}

	// Text inputs must stay a single visual line inside modals. Stray
	// newlines (or ANSI/cursor overflow) trigger wrapping that looks like
	// newline insertion while typing.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Never exceed the modal body width; terminate ANSI styling to
		// prevent bleed.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}

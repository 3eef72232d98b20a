package tui

import (
	"os"
	"strconv"
	"strings"

	"punchlist-cli/internal/model"
	"punchlist-cli/internal/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// Every color is declared as a light/dark pair so the stored theme can
// switch the whole palette at once. "Faint" styling is only applied on
// dark backgrounds; faint text on light terminals often becomes illegible.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    = ac("240", "243")
	colorChromeFg = ac("240", "245")

	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")

	colorControlBg = ac("252", "235")
	colorInputBg   = ac("254", "234")

	colorAccent   = ac("27", "62") // blue
	colorAccentFg = ac("255", "235")

	colorErrorFg = ac("160", "203")

	colorModalSurfaceBg = ac("255", "235")
	colorModalSurfaceFg = ac("235", "252")
	colorModalHeaderBg  = ac("252", "236")
	colorModalHeaderFg  = ac("235", "252")
)

var priorityStyles = map[model.Priority]lipgloss.Style{
	model.PriorityHigh:   lipgloss.NewStyle().Foreground(ac("124", "203")).Bold(true),
	model.PriorityMedium: lipgloss.NewStyle().Foreground(ac("130", "179")),
	model.PriorityLow:    lipgloss.NewStyle().Foreground(colorMuted),
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func stylePriority(p model.Priority) lipgloss.Style {
	if st, ok := priorityStyles[p]; ok {
		return st
	}
	return styleMuted()
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive session. Only NO_COLOR disables color entirely; beyond
// that we trust the terminal, upgrading when TERM/COLORTERM advertise
// more than the probe reported.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference decides which side of every adaptive color pair
// is rendered.
//
// Priority:
//  1. PUNCHLIST_THEME=light|dark|auto (session override, never persisted)
//  2. the stored theme
//
// "auto" defers to the terminal, using the COLORFGBG convention when the
// terminal reports it and Lip Gloss's own probe otherwise.
func applyThemePreference(stored theme.Theme) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PUNCHLIST_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	case "auto":
		if dark, ok := colorFGBGDark(); ok {
			lipgloss.SetHasDarkBackground(dark)
		}
		return
	}

	lipgloss.SetHasDarkBackground(stored == theme.Dark)
}

// colorFGBGDark reads the COLORFGBG convention ("fg;bg", sometimes more
// segments; the last one is the background).
func colorFGBGDark() (dark bool, ok bool) {
	v := strings.TrimSpace(os.Getenv("COLORFGBG"))
	if v == "" {
		return false, false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return false, false
	}
	return bg < 7, true
}

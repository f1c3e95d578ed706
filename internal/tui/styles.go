package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color scheme for the lab screens.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Good    lipgloss.Color
	Warn    lipgloss.Color
	Bad     lipgloss.Color
}

var (
	ThemeBench = Theme{
		Name:    "bench",
		Primary: lipgloss.Color("86"),
		Text:    lipgloss.Color("252"),
		Muted:   lipgloss.Color("243"),
		Good:    lipgloss.Color("82"),
		Warn:    lipgloss.Color("220"),
		Bad:     lipgloss.Color("196"),
	}

	ThemeChalk = Theme{
		Name:    "chalk",
		Primary: lipgloss.Color("255"),
		Text:    lipgloss.Color("250"),
		Muted:   lipgloss.Color("240"),
		Good:    lipgloss.Color("40"),
		Warn:    lipgloss.Color("178"),
		Bad:     lipgloss.Color("160"),
	}

	ThemeAmber = Theme{
		Name:    "amber",
		Primary: lipgloss.Color("214"),
		Text:    lipgloss.Color("223"),
		Muted:   lipgloss.Color("137"),
		Good:    lipgloss.Color("154"),
		Warn:    lipgloss.Color("208"),
		Bad:     lipgloss.Color("203"),
	}

	Themes = []Theme{ThemeBench, ThemeChalk, ThemeAmber}
)

func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeBench
}

// NextTheme cycles through the available themes.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeBench
}

type styles struct {
	header    lipgloss.Style
	panel     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	good      lipgloss.Style
	warn      lipgloss.Style
	bad       lipgloss.Style
	muted     lipgloss.Style
	highlight lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Muted).Padding(0, 1),
		label:     lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:     lipgloss.NewStyle().Foreground(t.Text),
		good:      lipgloss.NewStyle().Foreground(t.Good),
		warn:      lipgloss.NewStyle().Foreground(t.Warn),
		bad:       lipgloss.NewStyle().Foreground(t.Bad),
		muted:     lipgloss.NewStyle().Foreground(t.Muted),
		highlight: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
	}
}

// progressBar renders percent (0..100) as a fixed-width bar.
func (s styles) progressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case percent >= 100:
		return s.good.Render(bar)
	case percent >= 40:
		return s.warn.Render(bar)
	default:
		return s.muted.Render(bar)
	}
}

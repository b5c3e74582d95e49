package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleSet is every style the playback view uses, derived from a theme.
type styleSet struct {
	header lipgloss.Style
	year   lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	panel  lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style
}

func newStyles(t Theme) styleSet {
	return styleSet{
		header: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		year:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(16),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		muted:  lipgloss.NewStyle().Foreground(t.Muted),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2).
			Width(48),
		graph: lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		help:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
	}
}

// ProgressBar renders fraction in [0, 1] as a bar of width cells.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Swatch renders a colored block for a legend entry.
func Swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

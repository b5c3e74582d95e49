package viz

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// PickerItem is one selectable entry.
type PickerItem struct {
	Name string
	Info string
}

// Picker is a menu that selects one item and quits.
type Picker struct {
	title     string
	items     []PickerItem
	cursor    int
	chosen    string
	cancelled bool
}

func NewPicker(title string, items []PickerItem) Picker {
	return Picker{title: title, items: items}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		p.cancelled = true
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.items) > 0 {
			p.chosen = p.items[p.cursor].Name
		}
		return p, tea.Quit
	}
	return p, nil
}

func (p Picker) View() string {
	var b strings.Builder
	b.WriteString(cyan.Bold(true).Render(p.title) + "\n\n")
	for i, it := range p.items {
		line := it.Name
		if it.Info != "" {
			line += dim.Render("  " + it.Info)
		}
		if i == p.cursor {
			b.WriteString(cyan.Render("> ") + white.Bold(true).Render(line) + "\n")
		} else {
			b.WriteString("  " + dim.Render(line) + "\n")
		}
	}
	b.WriteString("\n" + dim.Render("↑↓ select · enter play · q cancel"))
	return b.String()
}

// Choice is the selected item's name, empty when cancelled.
func (p Picker) Choice() string { return p.chosen }

func (p Picker) Cancelled() bool { return p.cancelled }

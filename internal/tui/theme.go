package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name      string
	Base      lipgloss.Style
	Border    lipgloss.Color
	Header    lipgloss.Style
	Title     lipgloss.Style
	Value     lipgloss.Style
	Completed lipgloss.Style
	Input     lipgloss.Style
	Error     lipgloss.Style
	Status    lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:      "Default",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("63"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Completed: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	},
	"dracula": {
		Name:      "Dracula",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("62"),                                              // Purple
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true),   // Cyan
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),  // Pink
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),             // White
		Completed: lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Strikethrough(true),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true), // Red
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("120")),            // Green
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	},
}

// CurrentTheme holds the currently active theme.
var CurrentTheme = Themes["default"]

func SetTheme(name string) {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
	}
}

// themeOrder lists theme keys in a stable order for cycling.
func themeOrder() []string {
	names := make([]string, 0, len(Themes))
	for k := range Themes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

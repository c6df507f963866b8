package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Toolbar         lipgloss.Style
	ToolbarButton   lipgloss.Style
	ToolbarActive   lipgloss.Style
	ToolbarDisabled lipgloss.Style

	Text        lipgloss.Style
	Markup      lipgloss.Style
	Placeholder lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style

	Status   lipgloss.Style
	Warning  lipgloss.Style
	Exceeded lipgloss.Style
	Saved    lipgloss.Style
	Unsaved  lipgloss.Style

	Prompt lipgloss.Style
}

// ThemeStyle returns the built-in style for t.
func ThemeStyle(t Theme) Style {
	if t == ThemeDark {
		return darkStyle()
	}
	return lightStyle()
}

func DefaultStyle() Style { return lightStyle() }

func lightStyle() Style {
	muted := lipgloss.Color("245")
	return Style{
		Toolbar:         lipgloss.NewStyle().Background(lipgloss.Color("254")),
		ToolbarButton:   lipgloss.NewStyle().Foreground(lipgloss.Color("236")).Padding(0, 1),
		ToolbarActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("25")).Bold(true).Padding(0, 1),
		ToolbarDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 1),

		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		Markup:      lipgloss.NewStyle().Foreground(lipgloss.Color("31")),
		Placeholder: lipgloss.NewStyle().Foreground(muted).Italic(true),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("153")),
		Cursor:      lipgloss.NewStyle().Reverse(true),

		Status:   lipgloss.NewStyle().Foreground(muted),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("172")).Bold(true),
		Exceeded: lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
		Saved:    lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		Unsaved:  lipgloss.NewStyle().Foreground(lipgloss.Color("172")),

		Prompt: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("25")).
			Padding(0, 1),
	}
}

func darkStyle() Style {
	muted := lipgloss.Color("243")
	return Style{
		Toolbar:         lipgloss.NewStyle().Background(lipgloss.Color("236")),
		ToolbarButton:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1),
		ToolbarActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("75")).Bold(true).Padding(0, 1),
		ToolbarDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1),

		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Markup:      lipgloss.NewStyle().Foreground(lipgloss.Color("74")),
		Placeholder: lipgloss.NewStyle().Foreground(muted).Italic(true),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("24")),
		Cursor:      lipgloss.NewStyle().Reverse(true),

		Status:   lipgloss.NewStyle().Foreground(muted),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Exceeded: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Saved:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Unsaved:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),

		Prompt: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("75")).
			Padding(0, 1),
	}
}

package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer FooterTheme
	Panel  PanelTheme
	Detail DetailTheme
	Modal  ModalTheme
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help    lipgloss.Style
	Status  lipgloss.Style
	Busy    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// PanelTheme styles framed panes and their headings.
type PanelTheme struct {
	Frame        lipgloss.Style
	FocusedFrame lipgloss.Style
	Title        lipgloss.Style
	Row          lipgloss.Style
	SelectedRow  lipgloss.Style
	MarkedRow    lipgloss.Style
	Faint        lipgloss.Style
}

// DetailTheme styles the record detail pane.
type DetailTheme struct {
	Label     lipgloss.Style
	Value     lipgloss.Style
	Violation lipgloss.Style
	Disabled  lipgloss.Style
}

// ModalTheme styles centered modal overlays (the delete confirmation).
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Footer: FooterTheme{
			Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Busy:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1),
			FocusedFrame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("212")).
				Padding(0, 1),
			Title:       lipgloss.NewStyle().Bold(true),
			Row:         lipgloss.NewStyle(),
			SelectedRow: lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
			MarkedRow:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Faint:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
		Detail: DetailTheme{
			Label:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
			Value:     lipgloss.NewStyle(),
			Violation: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			Disabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}

// Package statusbar renders the footer line and receives the view-model
// layer's status text.
package statusbar

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/stockroom/pkg/tui/theme"
	"tableflip.dev/stockroom/pkg/tui/ui"
)

// Kind classifies the current status text.
type Kind int

const (
	KindReady Kind = iota
	KindBusy
	KindWarning
	KindError
)

// Model is the footer component. Its pointer satisfies the view-model
// StatusSink boundary, so view-model operations write straight into it.
type Model struct {
	theme theme.Theme

	kind   Kind
	status string
	help   string

	width int
}

var _ ui.Component = (*Model)(nil)

// New returns a footer with the given help line.
func New(th theme.Theme, help string) *Model {
	return &Model{theme: th, help: help, status: "Ready"}
}

// StatusStart implements the status boundary for long-running operations.
func (m *Model) StatusStart(msg string) { m.kind = KindBusy; m.status = msg }

// StatusReady implements the status boundary for completed operations.
func (m *Model) StatusReady(msg string) { m.kind = KindReady; m.status = msg }

// StatusWarning implements the status boundary for advisories.
func (m *Model) StatusWarning(msg string) { m.kind = KindWarning; m.status = msg }

// StatusError implements the status boundary for failures.
func (m *Model) StatusError(msg string) { m.kind = KindError; m.status = msg }

// Status returns the current status text.
func (m *Model) Status() string { return m.status }

// Kind returns the current status classification.
func (m *Model) Kind() Kind { return m.kind }

// SetHelp replaces the permanent help text.
func (m *Model) SetHelp(help string) { m.help = help }

// SetSize implements ui.Component.
func (m *Model) SetSize(width, _ int) { m.width = width }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component. The footer is display-only.
func (m *Model) Update(tea.Msg) (ui.Component, tea.Cmd) { return m, nil }

// View renders one footer line: status on the left, help on the right.
func (m *Model) View() string {
	style := m.theme.Footer.Status
	switch m.kind {
	case KindBusy:
		style = m.theme.Footer.Busy
	case KindWarning:
		style = m.theme.Footer.Warning
	case KindError:
		style = m.theme.Footer.Error
	}
	status := style.Render(m.status)
	help := m.theme.Footer.Help.Render(m.help)

	if m.width <= 0 {
		return status + "  " + help
	}
	gap := m.width - lipgloss.Width(status) - lipgloss.Width(help)
	if gap < 2 {
		return status
	}
	return status + strings.Repeat(" ", gap) + help
}

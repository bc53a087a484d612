// Package confirm renders the modal yes/no overlay gating destructive
// operations.
package confirm

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/stockroom/pkg/tui/theme"
	"tableflip.dev/stockroom/pkg/tui/ui"
)

// ResultMsg reports the user's verdict on the active prompt.
type ResultMsg struct {
	Accepted bool
}

// Model is a centered modal prompt. The host shows it, feeds it key
// events, and receives a ResultMsg.
type Model struct {
	theme theme.Theme

	title   string
	message string
	ok      string
	cancel  string

	width  int
	height int
}

var _ ui.Component = (*Model)(nil)

// New returns an inactive confirmation overlay.
func New(th theme.Theme) *Model {
	return &Model{theme: th}
}

// Show arms the prompt.
func (m *Model) Show(title, message, okLabel, cancelLabel string) {
	m.title = title
	m.message = message
	m.ok = okLabel
	m.cancel = cancelLabel
}

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update answers y/enter as accept and n/esc as decline.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y", "enter":
		return m, result(true)
	case "n", "N", "esc", "q":
		return m, result(false)
	}
	return m, nil
}

func result(accepted bool) tea.Cmd {
	return func() tea.Msg { return ResultMsg{Accepted: accepted} }
}

// View renders the modal centered in the component's area.
func (m *Model) View() string {
	body := fmt.Sprintf("%s\n\n%s\n\n%s",
		m.theme.Modal.Title.Render(m.title),
		m.theme.Modal.Body.Render(m.message),
		m.theme.Modal.Body.Render(fmt.Sprintf("[y] %s   [n] %s", m.ok, m.cancel)))
	box := m.theme.Modal.Frame.Render(body)
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

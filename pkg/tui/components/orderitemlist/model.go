// Package orderitemlist renders the order-line pane over an order-item
// list view-model.
package orderitemlist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/stockroom/pkg/model"
	"tableflip.dev/stockroom/pkg/tui/theme"
	"tableflip.dev/stockroom/pkg/tui/ui"
	"tableflip.dev/stockroom/pkg/vm"
)

// HighlightMsg announces the line under the cursor changed.
type HighlightMsg struct {
	Key string
}

// Model is the order-line pane, the multi-select surface of the UI.
type Model struct {
	list  *vm.OrderItemList
	theme theme.Theme

	cursor  int
	marked  map[int]bool
	focused bool

	width  int
	height int

	lastHighlight string
}

var _ ui.Component = (*Model)(nil)

// NewModel binds the pane to its view-model.
func NewModel(list *vm.OrderItemList, th theme.Theme) *Model {
	return &Model{list: list, theme: th, marked: map[int]bool{}}
}

// Focus marks the pane active.
func (m *Model) Focus() { m.focused = true }

// Blur marks the pane inactive.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the pane is active.
func (m *Model) Focused() bool { return m.focused }

// Sync clamps the cursor after a view-model refresh and drops marks.
func (m *Model) Sync() {
	count := m.list.Count()
	if count == 0 {
		m.cursor = 0
	} else if m.cursor >= count {
		m.cursor = count - 1
	}
	m.marked = map[int]bool{}
	if !m.list.MultiSelect() {
		m.list.SelectIndex(m.cursor)
	}
}

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles cursor movement and multi-select marking.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.setCursor(m.cursor - 1)
	case "down", "j":
		m.setCursor(m.cursor + 1)
	case "home", "g":
		m.setCursor(0)
	case "end", "G":
		m.setCursor(m.list.Count() - 1)
	case "space":
		m.toggleMark()
	case "esc":
		if m.list.MultiSelect() {
			m.list.EndMultiSelect()
			m.marked = map[int]bool{}
			m.list.SelectIndex(m.cursor)
		}
	}
	return m, m.highlightCmd()
}

func (m *Model) setCursor(i int) {
	count := m.list.Count()
	if count == 0 {
		m.cursor = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= count {
		i = count - 1
	}
	m.cursor = i
	if !m.list.MultiSelect() {
		m.list.SelectIndex(m.cursor)
	}
}

func (m *Model) toggleMark() {
	if m.list.Count() == 0 {
		return
	}
	if !m.list.MultiSelect() {
		m.list.BeginMultiSelect()
	}
	if m.marked[m.cursor] {
		delete(m.marked, m.cursor)
	} else {
		m.marked[m.cursor] = true
	}
	if len(m.marked) == 0 {
		m.list.EndMultiSelect()
		m.list.SelectIndex(m.cursor)
		return
	}
	items := make([]*model.OrderItem, 0, len(m.marked))
	for i, o := range m.list.Items() {
		if m.marked[i] {
			items = append(items, o)
		}
	}
	m.list.SetSelectedItems(items)
}

func (m *Model) itemAt(i int) *model.OrderItem {
	items := m.list.Items()
	if i < 0 || i >= len(items) {
		return nil
	}
	return items[i]
}

func (m *Model) highlightCmd() tea.Cmd {
	item := m.itemAt(m.cursor)
	if item == nil {
		return nil
	}
	if item.Key() == m.lastHighlight {
		return nil
	}
	m.lastHighlight = item.Key()
	key := item.Key()
	return func() tea.Msg { return HighlightMsg{Key: key} }
}

// View renders the pane body.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 60
	}
	height := m.height
	if height <= 0 {
		height = 10
	}

	items := m.list.Items()
	lines := make([]string, 0, height)
	title := fmt.Sprintf("Order %d (%d lines)", m.list.Args().OrderID, m.list.Count())
	if m.list.MultiSelect() {
		title = fmt.Sprintf("Order %d (%d marked)", m.list.Args().OrderID, m.list.SelectionCount())
	}
	lines = append(lines, m.theme.Panel.Title.Render(truncate.String(title, uint(width))))

	if len(items) == 0 {
		lines = append(lines, m.theme.Panel.Faint.Render(" none"))
	}

	rows := height - 1
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	for i := start; i < len(items) && i-start < rows; i++ {
		lines = append(lines, m.renderRow(i, items[i], width))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(i int, o *model.OrderItem, width int) string {
	caret := "  "
	if i == m.cursor && m.focused {
		caret = "→ "
	}
	mark := "  "
	if m.marked[i] {
		mark = "✓ "
	}

	line := fmt.Sprintf("%3d", o.OrderLine)
	qty := fmt.Sprintf("x%-3d", o.Quantity)
	total := fmt.Sprintf("%9.2f", o.Total())
	nameWidth := width - lipgloss.Width(line) - lipgloss.Width(qty) - lipgloss.Width(total) - 8
	if nameWidth < 10 {
		nameWidth = 10
	}
	name := fmt.Sprintf("%-*s", nameWidth, truncate.String(o.Title(), uint(nameWidth)))

	row := caret + mark + line + " " + name + " " + qty + " " + total
	style := m.theme.Panel.Row
	switch {
	case m.marked[i]:
		style = m.theme.Panel.MarkedRow
	case i == m.cursor && m.focused:
		style = m.theme.Panel.SelectedRow
	}
	return style.Render(truncate.String(row, uint(width)))
}

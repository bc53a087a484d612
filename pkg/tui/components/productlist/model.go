// Package productlist renders the catalog pane over a product list
// view-model.
package productlist

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

// HighlightMsg announces the product under the cursor changed.
type HighlightMsg struct {
	ID string
}

// ChooseMsg announces the user activated the product under the cursor.
type ChooseMsg struct {
	ID string
}

// Model is the catalog pane. It owns cursor and mark state; collection
// and selection state live in the view-model.
type Model struct {
	list  *vm.ProductList
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
func NewModel(list *vm.ProductList, th theme.Theme) *Model {
	return &Model{list: list, theme: th, marked: map[int]bool{}}
}

// Focus marks the pane active.
func (m *Model) Focus() { m.focused = true }

// Blur marks the pane inactive.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the pane is active.
func (m *Model) Focused() bool { return m.focused }

// Sync clamps the cursor after the view-model refreshed and re-applies
// the single selection. Marks do not survive a refresh; neither does the
// view-model's multi-selection.
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

// Cursor returns the cursor position.
func (m *Model) Cursor() int { return m.cursor }

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
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
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
	case "enter":
		if item := m.itemAt(m.cursor); item != nil {
			return m, choose(item.ProductID)
		}
	}
	return m, m.highlightCmd()
}

func (m *Model) moveCursor(delta int) { m.setCursor(m.cursor + delta) }

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

// toggleMark flips the mark under the cursor. The first mark enters
// multi-select mode; clearing the last one leaves it.
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
	items := make([]*model.Product, 0, len(m.marked))
	for i, p := range m.list.Items() {
		if m.marked[i] {
			items = append(items, p)
		}
	}
	m.list.SetSelectedItems(items)
}

func (m *Model) itemAt(i int) *model.Product {
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
	if item.ProductID == m.lastHighlight {
		return nil
	}
	m.lastHighlight = item.ProductID
	id := item.ProductID
	return func() tea.Msg { return HighlightMsg{ID: id} }
}

func choose(id string) tea.Cmd {
	return func() tea.Msg { return ChooseMsg{ID: id} }
}

// View renders the pane body (the host draws the frame).
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
	title := fmt.Sprintf("Products (%d)", m.list.Count())
	if m.list.MultiSelect() {
		title = fmt.Sprintf("Products (%d marked)", m.list.SelectionCount())
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

func (m *Model) renderRow(i int, p *model.Product, width int) string {
	caret := "  "
	if i == m.cursor && m.focused {
		caret = "→ "
	}
	mark := "  "
	if m.marked[i] {
		mark = "✓ "
	}

	price := fmt.Sprintf("%8.2f", p.ListPrice)
	stock := fmt.Sprintf("%5d", p.StockUnits)
	category := fmt.Sprintf("%-12s", truncate.String(p.Category, 12))
	nameWidth := width - lipgloss.Width(price) - lipgloss.Width(stock) - 12 - 8
	if nameWidth < 10 {
		nameWidth = 10
	}
	name := fmt.Sprintf("%-*s", nameWidth, truncate.String(p.Title(), uint(nameWidth)))

	row := caret + mark + name + " " + category + " " + price + " " + stock
	style := m.theme.Panel.Row
	switch {
	case m.marked[i]:
		style = m.theme.Panel.MarkedRow
	case i == m.cursor && m.focused:
		style = m.theme.Panel.SelectedRow
	}
	return style.Render(truncate.String(row, uint(width)))
}

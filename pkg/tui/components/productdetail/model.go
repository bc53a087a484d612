// Package productdetail renders the record pane over a product detail
// view-model, including its edit form.
package productdetail

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/stockroom/pkg/tui/theme"
	"tableflip.dev/stockroom/pkg/tui/ui"
	"tableflip.dev/stockroom/pkg/vm"
)

type field int

const (
	fieldName field = iota
	fieldCategory
	fieldDescription
	fieldListPrice
	fieldDealerPrice
	fieldStock
	fieldSafety
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name", "Category", "Description", "List price", "Dealer price",
	"Stock units", "Safety stock",
}

// Model is the record pane. Read mode renders the bound snapshot; edit
// mode renders one text input per field and writes back on save.
type Model struct {
	details *vm.ProductDetails
	theme   theme.Theme

	inputs  [fieldCount]textinput.Model
	focus   field
	focused bool

	width  int
	height int
}

var _ ui.Component = (*Model)(nil)

// NewModel binds the pane to its view-model.
func NewModel(details *vm.ProductDetails, th theme.Theme) *Model {
	m := &Model{details: details, theme: th}
	for f := field(0); f < fieldCount; f++ {
		in := textinput.New()
		in.Prompt = ""
		m.inputs[f] = in
	}
	return m
}

// Focus marks the pane active.
func (m *Model) Focus() { m.focused = true }

// Blur marks the pane inactive.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the pane is active.
func (m *Model) Focused() bool { return m.focused }

// BeginEdit seeds the inputs from the bound item and enters edit mode.
func (m *Model) BeginEdit() tea.Cmd {
	item := m.details.Item()
	if item == nil || !m.details.IsEnabled() {
		return nil
	}
	m.details.StartEdit()
	m.inputs[fieldName].SetValue(item.Name)
	m.inputs[fieldCategory].SetValue(item.Category)
	m.inputs[fieldDescription].SetValue(item.Description)
	m.inputs[fieldListPrice].SetValue(formatFloat(item.ListPrice))
	m.inputs[fieldDealerPrice].SetValue(formatFloat(item.DealerPrice))
	m.inputs[fieldStock].SetValue(strconv.Itoa(item.StockUnits))
	m.inputs[fieldSafety].SetValue(strconv.Itoa(item.SafetyStockLevel))
	m.focus = fieldName
	return m.applyFocus()
}

// CancelEdit leaves edit mode without applying the inputs.
func (m *Model) CancelEdit() {
	m.details.CancelEdit()
	m.blurInputs()
}

// Apply writes the inputs back onto the bound item. Numeric fields fall
// back to zero on parse failure and let validation surface the problem.
func (m *Model) Apply() {
	item := m.details.Item()
	if item == nil {
		return
	}
	item.Name = strings.TrimSpace(m.inputs[fieldName].Value())
	item.Category = strings.TrimSpace(m.inputs[fieldCategory].Value())
	item.Description = strings.TrimSpace(m.inputs[fieldDescription].Value())
	item.ListPrice = parseFloat(m.inputs[fieldListPrice].Value())
	item.DealerPrice = parseFloat(m.inputs[fieldDealerPrice].Value())
	item.StockUnits = parseInt(m.inputs[fieldStock].Value())
	item.SafetyStockLevel = parseInt(m.inputs[fieldSafety].Value())
}

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	inputWidth := width - 16
	if inputWidth < 10 {
		inputWidth = 10
	}
	for f := field(0); f < fieldCount; f++ {
		m.inputs[f].SetWidth(inputWidth)
	}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update routes keys to the focused input while editing.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if !m.focused || !m.details.IsEditing() {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % fieldCount
			return m, m.applyFocus()
		case "shift+tab", "up":
			m.focus = (m.focus + fieldCount - 1) % fieldCount
			return m, m.applyFocus()
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for f := field(0); f < fieldCount; f++ {
		if f == m.focus {
			cmd = m.inputs[f].Focus()
		} else {
			m.inputs[f].Blur()
		}
	}
	return cmd
}

func (m *Model) blurInputs() {
	for f := field(0); f < fieldCount; f++ {
		m.inputs[f].Blur()
	}
}

// View renders the pane body.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 50
	}

	item := m.details.Item()
	lines := make([]string, 0, 16)

	switch {
	case item == nil:
		lines = append(lines, m.theme.Panel.Faint.Render("No product selected"))
	case item.IsEmpty:
		lines = append(lines, m.theme.Panel.Title.Render(item.ProductID))
		lines = append(lines, m.theme.Detail.Disabled.Render("This product no longer exists."))
	default:
		title := item.Title()
		if m.details.IsNew() {
			title = "New Product"
		}
		if m.details.IsEditing() {
			title += " (editing)"
		}
		lines = append(lines, m.theme.Panel.Title.Render(title))
		lines = append(lines, "")
		if m.details.IsEditing() {
			lines = append(lines, m.editLines()...)
		} else {
			lines = append(lines, m.readLines(width)...)
		}
		if !m.details.IsEnabled() {
			lines = append(lines, "")
			lines = append(lines, m.theme.Detail.Disabled.Render("This product has been deleted."))
		}
		for _, violation := range m.details.Violations() {
			lines = append(lines, m.theme.Detail.Violation.Render("! "+violation.Message))
		}
	}

	for m.height > 0 && len(lines) < m.height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) editLines() []string {
	lines := make([]string, 0, int(fieldCount))
	for f := field(0); f < fieldCount; f++ {
		caret := "  "
		if f == m.focus {
			caret = "→ "
		}
		label := fmt.Sprintf("%s%-13s", caret, fieldLabels[f])
		lines = append(lines, m.theme.Detail.Label.Render(label)+m.inputs[f].View())
	}
	return lines
}

func (m *Model) readLines(width int) []string {
	item := m.details.Item()
	valueWidth := width - 15
	if valueWidth < 10 {
		valueWidth = 10
	}
	row := func(label, value string) string {
		if value == "" {
			value = "-"
		}
		wrapped := strings.Split(wordwrap.String(value, valueWidth), "\n")
		out := m.theme.Detail.Label.Render(fmt.Sprintf("%-14s", label)) +
			m.theme.Detail.Value.Render(wrapped[0])
		for _, extra := range wrapped[1:] {
			out += "\n" + strings.Repeat(" ", 14) + m.theme.Detail.Value.Render(extra)
		}
		return out
	}

	return []string{
		row("Name", item.Name),
		row("Category", item.Category),
		row("Description", item.Description),
		row("List price", formatFloat(item.ListPrice)),
		row("Dealer price", formatFloat(item.DealerPrice)),
		row("Stock units", strconv.Itoa(item.StockUnits)),
		row("Safety stock", strconv.Itoa(item.SafetyStockLevel)),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

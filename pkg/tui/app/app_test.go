package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/stockroom/pkg/bus"
	"tableflip.dev/stockroom/pkg/model"
	"tableflip.dev/stockroom/pkg/service"
	"tableflip.dev/stockroom/pkg/store"
	"tableflip.dev/stockroom/pkg/tui/components/confirm"
	"tableflip.dev/stockroom/pkg/vm"
)

type testConfig struct{ path string }

func (c testConfig) BasePath() string { return c.path }

func (c testConfig) ActivityPath() string { return c.path + ".activity.log" }

func newApp(t *testing.T) *Model {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	products := &service.Products{Persistence: p}
	items := &service.OrderItems{Persistence: p}
	ctx := context.Background()

	catalog := []*model.Product{
		{Name: "Bookshelf Speaker", Category: "Audio", ListPrice: 249, StockUnits: 24},
		{Name: "Studio Headphones", Category: "Audio", ListPrice: 149, StockUnits: 60},
	}
	for _, prod := range catalog {
		if err := products.Create(ctx, prod); err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	line := &model.OrderItem{
		OrderID: 1001, ProductID: catalog[0].ProductID,
		ProductName: catalog[0].Name, Quantity: 2, UnitPrice: 249,
	}
	if err := items.Create(ctx, line); err != nil {
		t.Fatalf("seed order line: %v", err)
	}

	m := New(Options{
		Persistence: p,
		Products:    products,
		Items:       items,
		Bus:         bus.New(),
		OrderID:     1001,
	})
	// Init's command starts the background loops; tests drive the model
	// synchronously instead of running the program.
	_ = m.Init()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestViewShowsAllPanes(t *testing.T) {
	m := newApp(t)

	view := m.View()
	for _, want := range []string{"Products (2)", "Bookshelf Speaker", "Order 1001 (1 lines)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDeleteAsksOnce(t *testing.T) {
	m := newApp(t)

	m.Update(tea.KeyPressMsg{Text: "d", Code: 'd'})
	if m.mode != modeConfirm {
		t.Fatalf("expected confirm mode, got %d", m.mode)
	}
	if !strings.Contains(m.View(), "Confirm Delete") {
		t.Fatalf("overlay missing:\n%s", m.View())
	}

	// Decline through the overlay result.
	m.Update(confirmResult(false))
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode, got %d", m.mode)
	}
	if m.productList.Count() != 2 {
		t.Fatalf("declined delete removed a product: %d", m.productList.Count())
	}
}

func TestDeleteConfirmedRemovesProduct(t *testing.T) {
	m := newApp(t)

	m.Update(tea.KeyPressMsg{Text: "d", Code: 'd'})
	m.Update(confirmResult(true))

	if m.productList.Count() != 1 {
		t.Fatalf("expected 1 product left, got %d", m.productList.Count())
	}
}

func TestNewEntersEditMode(t *testing.T) {
	m := newApp(t)

	m.Update(tea.KeyPressMsg{Text: "n", Code: 'n'})
	if m.mode != modeEdit {
		t.Fatalf("expected edit mode, got %d", m.mode)
	}
	if !m.productDetail.IsNew() || !m.productDetail.IsEditing() {
		t.Fatal("detail view-model not editing a new product")
	}
	if !strings.Contains(m.View(), "New Product") {
		t.Fatalf("view missing new product form:\n%s", m.View())
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNormal || m.productDetail.IsEditing() {
		t.Fatal("esc should cancel the edit")
	}
}

func TestDeleteCursorOrderLine(t *testing.T) {
	m := newApp(t)

	tab := tea.KeyPressMsg{Code: tea.KeyTab}
	m.Update(tab)
	m.Update(tab)
	if m.focus != paneItems {
		t.Fatalf("expected items pane focus, got %d", m.focus)
	}

	// No marks: the cursor's line is the selection.
	m.Update(tea.KeyPressMsg{Text: "d", Code: 'd'})
	if m.mode != modeConfirm {
		t.Fatalf("expected confirm mode, got %d", m.mode)
	}
	if !strings.Contains(m.View(), "line 1 from order 1001") {
		t.Fatalf("overlay should name the line:\n%s", m.View())
	}

	m.Update(confirmResult(true))
	if m.orderItems.Count() != 0 {
		t.Fatalf("confirmed delete left %d lines", m.orderItems.Count())
	}
	left, err := m.opts.Items.List(context.Background(), service.Query{OrderID: 1001})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("line still stored after confirmed delete: %d", len(left))
	}
}

func TestDeleteOnEmptyOrderDoesNotPrompt(t *testing.T) {
	m := newApp(t)

	tab := tea.KeyPressMsg{Code: tea.KeyTab}
	m.Update(tab)
	m.Update(tab)
	m.Update(tea.KeyPressMsg{Text: "d", Code: 'd'})
	m.Update(confirmResult(true))

	m.Update(tea.KeyPressMsg{Text: "d", Code: 'd'})
	if m.mode != modeNormal {
		t.Fatalf("empty order should not prompt, mode %d", m.mode)
	}
}

func TestAddLineAppendsToOrder(t *testing.T) {
	m := newApp(t)

	m.Update(tea.KeyPressMsg{Text: "a", Code: 'a'})
	if m.orderItems.Count() != 2 {
		t.Fatalf("expected 2 order lines, got %d", m.orderItems.Count())
	}
}

func TestNavigateAddsLineToNamedOrder(t *testing.T) {
	m := newApp(t)

	m.navigate(vm.OrderItemDetailsArgs{OrderID: 2002})

	added, err := m.opts.Items.List(context.Background(), service.Query{OrderID: 2002})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("expected 1 line on order 2002, got %d", len(added))
	}
	if m.orderItems.Args().OrderID != 1001 || m.orderItems.Count() != 1 {
		t.Fatalf("open order pane should be untouched: order %d count %d",
			m.orderItems.Args().OrderID, m.orderItems.Count())
	}
}

func TestSearchFiltersCatalog(t *testing.T) {
	m := newApp(t)

	m.Update(tea.KeyPressMsg{Text: "/", Code: '/'})
	if m.mode != modeSearch {
		t.Fatalf("expected search mode, got %d", m.mode)
	}
	m.search.SetValue("headphones")
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.mode != modeNormal {
		t.Fatalf("expected normal mode, got %d", m.mode)
	}
	if m.productList.Count() != 1 {
		t.Fatalf("expected filtered catalog, got %d", m.productList.Count())
	}
}

func confirmResult(accepted bool) tea.Msg {
	return confirm.ResultMsg{Accepted: accepted}
}

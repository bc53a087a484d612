package orderitemlist

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/stockroom/pkg/model"
	"tableflip.dev/stockroom/pkg/service"
	"tableflip.dev/stockroom/pkg/tui/theme"
	"tableflip.dev/stockroom/pkg/vm"
)

type fakeItems struct {
	items []*model.OrderItem
}

func (f *fakeItems) Get(_ context.Context, orderID int64, line int) (*model.OrderItem, error) {
	for _, o := range f.items {
		if o.OrderID == orderID && o.OrderLine == line {
			return o.Clone(), nil
		}
	}
	return nil, nil
}

func (f *fakeItems) List(_ context.Context, q service.Query) ([]*model.OrderItem, error) {
	out := make([]*model.OrderItem, 0, len(f.items))
	for _, o := range f.items {
		if q.MatchesItem(o) {
			out = append(out, o.Clone())
		}
	}
	return out, nil
}

func (f *fakeItems) Create(_ context.Context, o *model.OrderItem) error { return nil }
func (f *fakeItems) Update(_ context.Context, o *model.OrderItem) error { return nil }
func (f *fakeItems) Delete(_ context.Context, o *model.OrderItem) error { return nil }
func (f *fakeItems) DeleteRange(context.Context, int, int, service.Query) (int, error) {
	return 0, nil
}

func newPane(t *testing.T) (*Model, *vm.OrderItemList) {
	t.Helper()
	svc := &fakeItems{items: []*model.OrderItem{
		{OrderID: 1001, OrderLine: 1, ProductID: "p-1", ProductName: "Bookshelf Speaker", Quantity: 2, UnitPrice: 249},
		{OrderID: 1001, OrderLine: 2, ProductID: "p-2", ProductName: "Studio Headphones", Quantity: 1, UnitPrice: 149},
	}}
	list := vm.NewOrderItemList(svc, nil, vm.Deps{})
	if !list.Load(context.Background(), vm.OrderItemListArgs{OrderID: 1001}) {
		t.Fatal("load failed")
	}
	m := NewModel(list, theme.Default())
	m.SetSize(60, 8)
	m.Focus()
	m.Sync()
	return m, list
}

func TestViewListsOrderLines(t *testing.T) {
	m, _ := newPane(t)

	view := m.View()
	if !strings.Contains(view, "Order 1001 (2 lines)") {
		t.Fatalf("view missing title:\n%s", view)
	}
	for _, want := range []string{"Bookshelf Speaker", "Studio Headphones", "x2"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestMarksFeedSelection(t *testing.T) {
	m, list := newPane(t)

	space := tea.KeyPressMsg{Code: tea.KeySpace}
	_, _ = m.Update(space)
	_, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, _ = m.Update(space)

	if list.SelectionCount() != 2 {
		t.Fatalf("expected 2 marked lines, got %d", list.SelectionCount())
	}
	if !strings.Contains(m.View(), "(2 marked)") {
		t.Fatalf("title missing mark count:\n%s", m.View())
	}

	_, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if list.MultiSelect() {
		t.Fatal("esc should leave multi-select")
	}
}

func TestEmptyOrderRendersNone(t *testing.T) {
	svc := &fakeItems{}
	list := vm.NewOrderItemList(svc, nil, vm.Deps{})
	list.Load(context.Background(), vm.OrderItemListArgs{OrderID: 9})
	m := NewModel(list, theme.Default())
	m.SetSize(40, 6)

	if !strings.Contains(m.View(), "none") {
		t.Fatalf("expected none placeholder:\n%s", m.View())
	}
}

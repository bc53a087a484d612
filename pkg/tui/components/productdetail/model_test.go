package productdetail

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

type fakeProducts struct {
	items []*model.Product
}

func (f *fakeProducts) Get(_ context.Context, id string) (*model.Product, error) {
	for _, p := range f.items {
		if p.ProductID == id {
			return p.Clone(), nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) List(_ context.Context, q service.Query) ([]*model.Product, error) {
	out := make([]*model.Product, 0, len(f.items))
	for _, p := range f.items {
		if q.Matches(p) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (f *fakeProducts) Create(_ context.Context, p *model.Product) error { return nil }
func (f *fakeProducts) Update(_ context.Context, p *model.Product) error { return nil }
func (f *fakeProducts) Delete(_ context.Context, p *model.Product) error { return nil }
func (f *fakeProducts) DeleteRange(context.Context, int, int, service.Query) (int, error) {
	return 0, nil
}

func newPane(t *testing.T) (*Model, *vm.ProductDetails) {
	t.Helper()
	svc := &fakeProducts{items: []*model.Product{{
		ProductID:   "p-1",
		Name:        "Bookshelf Speaker",
		Category:    "Audio",
		Description: "Two-way passive bookshelf speaker.",
		ListPrice:   249,
		StockUnits:  24,
	}}}
	details := vm.NewProductDetails(svc, nil, vm.Deps{})
	details.Load(context.Background(), vm.ProductDetailsArgs{ProductID: "p-1"})
	m := NewModel(details, theme.Default())
	m.SetSize(60, 16)
	m.Focus()
	return m, details
}

func TestReadViewShowsFields(t *testing.T) {
	m, _ := newPane(t)

	view := m.View()
	for _, want := range []string{"Bookshelf Speaker", "Audio", "249.00", "24"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestEmptyPlaceholder(t *testing.T) {
	m, details := newPane(t)
	details.Load(context.Background(), vm.ProductDetailsArgs{ProductID: "gone"})

	view := m.View()
	if !strings.Contains(view, "no longer exists") {
		t.Fatalf("expected placeholder view:\n%s", view)
	}
}

func TestEditRoundTrip(t *testing.T) {
	m, details := newPane(t)

	m.BeginEdit()
	if !details.IsEditing() {
		t.Fatal("expected edit mode")
	}

	// The name input is focused and seeded with the current value; typing
	// appends at the cursor.
	_, _ = m.Update(tea.KeyPressMsg{Text: "s", Code: 's'})
	m.Apply()
	if got := details.Item().Name; got != "Bookshelf Speakers" {
		t.Fatalf("expected appended name, got %q", got)
	}

	view := m.View()
	if !strings.Contains(view, "(editing)") {
		t.Fatalf("edit view missing marker:\n%s", view)
	}
}

func TestApplyParsesNumbersWithFallback(t *testing.T) {
	m, details := newPane(t)

	m.BeginEdit()
	m.inputs[fieldListPrice].SetValue("199.50")
	m.inputs[fieldStock].SetValue("not a number")
	m.Apply()

	item := details.Item()
	if item.ListPrice != 199.50 {
		t.Fatalf("expected parsed price, got %v", item.ListPrice)
	}
	if item.StockUnits != 0 {
		t.Fatalf("expected fallback stock, got %d", item.StockUnits)
	}
}

func TestCancelEditRestoresReadView(t *testing.T) {
	m, details := newPane(t)

	m.BeginEdit()
	m.CancelEdit()
	if details.IsEditing() {
		t.Fatal("expected read mode")
	}
	if strings.Contains(m.View(), "(editing)") {
		t.Fatal("read view still shows edit marker")
	}
}

package service

import (
	"context"
	"testing"

	"tableflip.dev/stockroom/pkg/model"
	"tableflip.dev/stockroom/pkg/store"
)

type testConfig struct{ path string }

func (c testConfig) BasePath() string { return c.path }

func (c testConfig) ActivityPath() string { return c.path + ".activity.log" }

func newServices(t *testing.T) (*Products, *OrderItems) {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return &Products{Persistence: p}, &OrderItems{Persistence: p}
}

func TestProductCreateAssignsIdentity(t *testing.T) {
	products, _ := newServices(t)
	ctx := context.Background()

	p := &model.Product{Name: "Desk Lamp", ListPrice: 24.5}
	if err := products.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.IsNew() {
		t.Fatalf("create should assign an id")
	}
	if p.CreatedOn.IsZero() || p.LastModifiedOn.IsZero() {
		t.Fatalf("create should stamp timestamps: %+v", p)
	}

	got, err := products.Get(ctx, p.ProductID)
	if err != nil || got == nil {
		t.Fatalf("get after create: %v %v", got, err)
	}
	if got.Name != "Desk Lamp" {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestProductGetMissingYieldsNilNil(t *testing.T) {
	products, _ := newServices(t)
	got, err := products.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("missing product should not error: %v", err)
	}
	if got != nil {
		t.Fatalf("missing product should be nil")
	}
}

func TestProductListFilterAndSort(t *testing.T) {
	products, _ := newServices(t)
	ctx := context.Background()

	seed := []*model.Product{
		{Name: "Zoom Lens", Category: "Photo", ListPrice: 900},
		{Name: "Audio Mixer", Category: "Audio", ListPrice: 450},
		{Name: "Audio Cable", Category: "Audio", ListPrice: 12},
	}
	for _, p := range seed {
		if err := products.Create(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	byName, err := products.List(ctx, Query{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byName) != 3 || byName[0].Name != "Audio Cable" {
		t.Fatalf("default name sort wrong: %v", names(byName))
	}

	audio, err := products.List(ctx, Query{Search: "audio"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(audio) != 2 {
		t.Fatalf("expected 2 audio products, got %v", names(audio))
	}

	byPriceDesc, err := products.List(ctx, Query{OrderBy: "price", Descending: true})
	if err != nil {
		t.Fatalf("list sorted: %v", err)
	}
	if byPriceDesc[0].Name != "Zoom Lens" {
		t.Fatalf("descending price sort wrong: %v", names(byPriceDesc))
	}
}

func TestOrderItemCreateAssignsNextLine(t *testing.T) {
	_, items := newServices(t)
	ctx := context.Background()

	first := &model.OrderItem{OrderID: 42, ProductName: "Widget", Quantity: 1}
	second := &model.OrderItem{OrderID: 42, ProductName: "Gadget", Quantity: 2}
	if err := items.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := items.Create(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if first.OrderLine != 1 || second.OrderLine != 2 {
		t.Fatalf("line assignment wrong: %d, %d", first.OrderLine, second.OrderLine)
	}
}

func TestDeleteRangeIsPositionalWithinQueryScope(t *testing.T) {
	_, items := newServices(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		item := &model.OrderItem{OrderID: 42, ProductName: "Widget", Quantity: i + 1}
		if err := items.Create(ctx, item); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := items.Create(ctx, &model.OrderItem{OrderID: 7, ProductName: "Other", Quantity: 1}); err != nil {
		t.Fatalf("create other order: %v", err)
	}

	q := Query{OrderID: 42}
	deleted, err := items.DeleteRange(ctx, 1, 2, q)
	if err != nil {
		t.Fatalf("delete range: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}

	remaining, err := items.List(ctx, q)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := make([]int, 0, len(remaining))
	for _, item := range remaining {
		lines = append(lines, item.OrderLine)
	}
	if len(lines) != 3 || lines[0] != 1 || lines[1] != 4 || lines[2] != 5 {
		t.Fatalf("expected lines [1 4 5], got %v", lines)
	}

	// The sibling order is untouched.
	other, err := items.List(ctx, Query{OrderID: 7})
	if err != nil || len(other) != 1 {
		t.Fatalf("sibling order affected: %v %v", other, err)
	}
}

func TestDeleteRangeClampsOutOfBounds(t *testing.T) {
	_, items := newServices(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := items.Create(ctx, &model.OrderItem{OrderID: 1, Quantity: 1}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	deleted, err := items.DeleteRange(ctx, 2, 10, Query{OrderID: 1})
	if err != nil {
		t.Fatalf("delete range: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected clamp to 1 deletion, got %d", deleted)
	}
}

func names(list []*model.Product) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.Name
	}
	return out
}

package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/stockroom/pkg/model"
)

type testConfig struct{ path string }

func (c testConfig) BasePath() string { return c.path }

func (c testConfig) ActivityPath() string { return c.path + ".activity.log" }

func newTestPersistence(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return p
}

func TestProductRoundTrip(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()

	prod := &model.Product{
		ProductID: "7f1c0a2e-9d3b-4f6a-8c21-aa52de01b7c4",
		Name:      "USB-C Dock",
		Category:  "Accessories",
		ListPrice: 129.99,
	}
	if err := p.StoreProduct(prod); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := p.GetProduct(ctx, prod.ProductID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatalf("stored product not found")
	}
	if got.Name != prod.Name || got.ListPrice != prod.ListPrice {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestGetProductMissingIsNotAnError(t *testing.T) {
	p := newTestPersistence(t)
	got, err := p.GetProduct(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("missing product should not error: %v", err)
	}
	if got != nil {
		t.Fatalf("missing product should be nil, got %+v", got)
	}
}

func TestOrderItemRoundTripAndScope(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()

	for line := 1; line <= 3; line++ {
		item := &model.OrderItem{OrderID: 42, OrderLine: line, ProductName: "Widget", Quantity: line}
		if err := p.StoreOrderItem(item); err != nil {
			t.Fatalf("store line %d: %v", line, err)
		}
	}
	if err := p.StoreOrderItem(&model.OrderItem{OrderID: 7, OrderLine: 1, Quantity: 1}); err != nil {
		t.Fatalf("store other order: %v", err)
	}

	scoped := p.ListOrderItems(ctx, 42)
	if len(scoped) != 3 {
		t.Fatalf("expected 3 lines for order 42, got %d", len(scoped))
	}
	for i, item := range scoped {
		if item.OrderLine != i+1 {
			t.Fatalf("lines out of order: %+v", scoped)
		}
	}

	all := p.ListOrderItems(ctx, 0)
	if len(all) != 4 {
		t.Fatalf("expected 4 lines total, got %d", len(all))
	}

	if next := p.NextOrderLine(ctx, 42); next != 4 {
		t.Fatalf("expected next line 4, got %d", next)
	}
	if next := p.NextOrderLine(ctx, 99); next != 1 {
		t.Fatalf("expected next line 1 for empty order, got %d", next)
	}
}

func TestDeleteOrderItem(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()

	item := &model.OrderItem{OrderID: 5, OrderLine: 2, Quantity: 1}
	if err := p.StoreOrderItem(item); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := p.DeleteOrderItem(5, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := p.GetOrderItem(ctx, 5, 2)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("deleted line still present: %+v", got)
	}
}

func TestKeyTransformsRoundTrip(t *testing.T) {
	keys := []string{
		"products-7f1c0a2e-9d3b-4f6a-8c21-aa52de01b7c4",
		"items-42-3",
	}
	for _, key := range keys {
		pk := keyToPathTransform(key)
		if back := pathToKeyTransform(pk); back != key {
			t.Fatalf("transform round trip: %q -> %q", key, back)
		}
	}

	pk := keyToPathTransform("products-id-with-dashes")
	if pk.FileName != "id-with-dashes" {
		t.Fatalf("product id with dashes mangled: %+v", pk)
	}
	pk = keyToPathTransform("items-42-3")
	if len(pk.Path) != 2 || pk.Path[1] != "42" || pk.FileName != "3" {
		t.Fatalf("order item key mangled: %+v", pk)
	}
}

func TestWatchSeesProductWrites(t *testing.T) {
	p := newTestPersistence(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	prod := &model.Product{ProductID: "watch-me", Name: "Watched"}
	if err := p.StoreProduct(prod); err != nil {
		t.Fatalf("store: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatalf("watch channel closed early")
			}
			// Directory creation may surface first as a catalog refresh.
			if ev.Type == EventProductsChanged || ev.Type == EventCatalogInvalidated {
				return
			}
		case <-deadline:
			t.Fatalf("no watch event for product write")
		}
	}
}

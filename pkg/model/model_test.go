package model

import "testing"

func TestProductIsNewDerivesFromID(t *testing.T) {
	p := NewProduct()
	if !p.IsNew() {
		t.Fatalf("blank product should be new")
	}
	p.ProductID = "abc-123"
	if p.IsNew() {
		t.Fatalf("product with an id should not be new")
	}
}

func TestEmptyProductKeepsIdentity(t *testing.T) {
	p := EmptyProduct("gone-42")
	if !p.IsEmpty {
		t.Fatalf("placeholder should be flagged empty")
	}
	if p.ProductID != "gone-42" {
		t.Fatalf("placeholder should keep the queried id, got %q", p.ProductID)
	}
	if p.IsNew() {
		t.Fatalf("placeholder with an id is not new")
	}
}

func TestProductMergePreservesPointerIdentity(t *testing.T) {
	bound := &Product{ProductID: "p1", Name: "Old name", StockUnits: 3}
	fresh := &Product{ProductID: "p1", Name: "New name", StockUnits: 7, Category: "Audio"}

	before := bound
	bound.Merge(fresh)

	if bound != before {
		t.Fatalf("merge must not replace the bound pointer")
	}
	if bound.Name != "New name" || bound.StockUnits != 7 || bound.Category != "Audio" {
		t.Fatalf("merge did not copy fields: %+v", bound)
	}
}

func TestOrderItemKeyAndTotals(t *testing.T) {
	o := &OrderItem{
		OrderID:   42,
		OrderLine: 3,
		Quantity:  2,
		UnitPrice: 9.5,
		Discount:  4,
	}
	if o.Key() != "42/3" {
		t.Fatalf("unexpected key %q", o.Key())
	}
	if o.Subtotal() != 19 {
		t.Fatalf("unexpected subtotal %v", o.Subtotal())
	}
	if o.Total() != 15 {
		t.Fatalf("unexpected total %v", o.Total())
	}
}

func TestOrderItemMergeInPlace(t *testing.T) {
	bound := &OrderItem{OrderID: 1, OrderLine: 1, Quantity: 1}
	bound.Merge(&OrderItem{OrderID: 1, OrderLine: 1, Quantity: 5, ProductName: "Cable"})
	if bound.Quantity != 5 || bound.ProductName != "Cable" {
		t.Fatalf("merge did not copy fields: %+v", bound)
	}
}

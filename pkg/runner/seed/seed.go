// Package seed loads demo data into an empty store.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/stockroom/pkg/model"
	"tableflip.dev/stockroom/pkg/service"
)

// Seed writes a small demo catalog plus one order so the UI has something
// to show on first run.
type Seed struct {
	Products *service.Products
	Items    *service.OrderItems
}

func (s *Seed) Do(ctx context.Context) error {
	if s.Products == nil || s.Items == nil {
		return errors.New("can not seed, no services")
	}

	catalog := []*model.Product{
		{Name: "Bookshelf Speaker", Category: "Audio", Description: "Two-way passive bookshelf speaker.", ListPrice: 249.00, DealerPrice: 180.00, StockUnits: 24, SafetyStockLevel: 8},
		{Name: "Studio Headphones", Category: "Audio", Description: "Closed-back monitoring headphones.", ListPrice: 149.00, DealerPrice: 95.00, StockUnits: 60, SafetyStockLevel: 12},
		{Name: "4K Action Camera", Category: "Cameras", Description: "Waterproof 4K camera with mount kit.", ListPrice: 329.00, DealerPrice: 240.00, StockUnits: 15, SafetyStockLevel: 5},
		{Name: "Mirrorless Body", Category: "Cameras", Description: "24MP mirrorless camera body.", ListPrice: 1199.00, DealerPrice: 930.00, StockUnits: 7, SafetyStockLevel: 3},
		{Name: "Mechanical Keyboard", Category: "Computers", Description: "Tenkeyless board with tactile switches.", ListPrice: 119.00, DealerPrice: 78.00, StockUnits: 42, SafetyStockLevel: 10},
		{Name: "USB-C Dock", Category: "Computers", Description: "Dual-display dock with 100W pass-through.", ListPrice: 189.00, DealerPrice: 130.00, StockUnits: 31, SafetyStockLevel: 10},
	}
	for _, p := range catalog {
		if err := s.Products.Create(ctx, p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}

	order := []*model.OrderItem{
		{OrderID: 1001, ProductID: catalog[0].ProductID, ProductName: catalog[0].Name, Quantity: 2, UnitPrice: catalog[0].ListPrice},
		{OrderID: 1001, ProductID: catalog[1].ProductID, ProductName: catalog[1].Name, Quantity: 1, UnitPrice: catalog[1].ListPrice},
		{OrderID: 1001, ProductID: catalog[4].ProductID, ProductName: catalog[4].Name, Quantity: 4, UnitPrice: catalog[4].ListPrice, Discount: 20},
	}
	for _, o := range order {
		if err := s.Items.Create(ctx, o); err != nil {
			return fmt.Errorf("seed order line: %w", err)
		}
	}

	g := color.New(color.FgGreen)
	_, _ = fmt.Fprintf(color.Output, "%s %d products and %d order lines\n",
		g.Sprint("seeded"), len(catalog), len(order))
	return nil
}

// Package products implements the product catalog CLI verbs.
package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/stockroom/pkg/printers"
	"tableflip.dev/stockroom/pkg/service"
	"tableflip.dev/stockroom/pkg/vm"
)

// List prints the catalog, optionally filtered and sorted.
type List struct {
	Search     string
	OrderBy    string
	Descending bool
	ShowID     bool

	Service *service.Products
}

func (l *List) Do(ctx context.Context) error {
	if l.Service == nil {
		return errors.New("can not list, no service")
	}
	q := service.Query{Search: l.Search, OrderBy: l.OrderBy, Descending: l.Descending}
	all, err := l.Service.List(ctx, q)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: l.ShowID}
	pp.NewLine()
	if l.Search != "" {
		pp.TitleWithCount(fmt.Sprintf("Products matching %q", l.Search), len(all))
	} else {
		pp.TitleWithCount("Products", len(all))
	}
	pp.Products(all...)
	return nil
}

// Show prints one product by id.
type Show struct {
	ID string

	Service *service.Products
}

func (s *Show) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("can not show, no service")
	}
	p, err := s.Service.Get(ctx, s.ID)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	if p == nil {
		pp.Title(s.ID)
		pp.Product(nil)
		return nil
	}
	pp.Title(p.Title())
	pp.Product(p)
	return nil
}

// Add creates a product through the same validation the UI applies.
type Add struct {
	Name        string
	Category    string
	Description string
	ListPrice   float64
	DealerPrice float64
	Stock       int
	Safety      int

	Service *service.Products
	Log     vm.Logger
}

func (a *Add) Do(ctx context.Context) error {
	if a.Service == nil {
		return errors.New("can not add, no service")
	}
	details := vm.NewProductDetails(a.Service, nil, vm.Deps{Log: a.Log})
	details.Load(ctx, vm.ProductDetailsArgs{})
	p := details.Item()
	p.Name = a.Name
	p.Category = a.Category
	p.Description = a.Description
	p.ListPrice = a.ListPrice
	p.DealerPrice = a.DealerPrice
	p.StockUnits = a.Stock
	p.SafetyStockLevel = a.Safety

	if !details.Save(ctx) {
		if violations := details.Violations(); len(violations) > 0 {
			return errors.New(violations[0].Message)
		}
		return errors.New("save failed")
	}

	g := color.New(color.FgGreen)
	_, _ = fmt.Fprintf(color.Output, "%s %s (%s)\n", g.Sprint("added"), p.Title(), p.ProductID)
	return nil
}

// Remove deletes a product by id. The confirmation gate is answered by
// Force; without it the runner asks on the terminal.
type Remove struct {
	ID    string
	Force bool

	Service *service.Products
	Log     vm.Logger
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not remove, no service")
	}
	confirm := vm.Confirmer(vm.ConfirmFunc(promptYesNo))
	if r.Force {
		confirm = vm.ConfirmFunc(func(string, string, string, string) bool { return true })
	}
	details := vm.NewProductDetails(r.Service, nil, vm.Deps{Confirm: confirm, Log: r.Log})
	details.Load(ctx, vm.ProductDetailsArgs{ProductID: r.ID})
	if details.Item() == nil || details.Item().IsEmpty {
		return fmt.Errorf("no product %s", r.ID)
	}
	title := details.Item().Title()
	if !details.Delete(ctx) {
		return errors.New("delete aborted")
	}

	g := color.New(color.FgGreen)
	_, _ = fmt.Fprintf(color.Output, "%s %s\n", g.Sprint("removed"), title)
	return nil
}

func promptYesNo(title, message, okLabel, _ string) bool {
	bold := color.New(color.Bold)
	_, _ = fmt.Fprintf(color.Output, "%s\n%s [%s/cancel]: ", bold.Sprint(title), message, okLabel)
	var answer string
	if _, err := fmt.Scanln(&answer); err != nil {
		return false
	}
	switch answer {
	case "y", "Y", "yes", okLabel:
		return true
	}
	return false
}

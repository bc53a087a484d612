// Package items implements the order-line CLI verbs.
package items

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/stockroom/pkg/printers"
	"tableflip.dev/stockroom/pkg/service"
	"tableflip.dev/stockroom/pkg/vm"
)

// List prints the lines of one order, or every line when OrderID is zero.
type List struct {
	OrderID    int64
	Search     string
	OrderBy    string
	Descending bool

	Service *service.OrderItems
}

func (l *List) Do(ctx context.Context) error {
	if l.Service == nil {
		return errors.New("can not list, no service")
	}
	q := service.Query{
		Search:     l.Search,
		OrderBy:    l.OrderBy,
		Descending: l.Descending,
		OrderID:    l.OrderID,
	}
	all, err := l.Service.List(ctx, q)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	if l.OrderID != 0 {
		pp.TitleWithCount(fmt.Sprintf("Order %d", l.OrderID), len(all))
	} else {
		pp.TitleWithCount("Order items", len(all))
	}
	pp.OrderItems(all...)
	return nil
}

// Add appends a line to an order. The service assigns the order line.
type Add struct {
	OrderID     int64
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   float64
	Discount    float64

	Service  *service.OrderItems
	Products *service.Products
	Log      vm.Logger
}

func (a *Add) Do(ctx context.Context) error {
	if a.Service == nil {
		return errors.New("can not add, no service")
	}
	details := vm.NewOrderItemDetails(a.Service, nil, vm.Deps{Log: a.Log})
	details.Load(ctx, vm.OrderItemDetailsArgs{OrderID: a.OrderID})
	item := details.Item()
	item.ProductID = a.ProductID
	item.ProductName = a.ProductName
	item.Quantity = a.Quantity
	item.UnitPrice = a.UnitPrice
	item.Discount = a.Discount

	// Fill display fields from the catalog when only the id was given.
	if a.Products != nil && item.ProductID != "" && item.ProductName == "" {
		if p, err := a.Products.Get(ctx, item.ProductID); err == nil && p != nil {
			item.ProductName = p.Name
			if item.UnitPrice == 0 {
				item.UnitPrice = p.ListPrice
			}
		}
	}

	if !details.Save(ctx) {
		if violations := details.Violations(); len(violations) > 0 {
			return errors.New(violations[0].Message)
		}
		return errors.New("save failed")
	}

	g := color.New(color.FgGreen)
	_, _ = fmt.Fprintf(color.Output, "%s line %d on order %d\n",
		g.Sprint("added"), item.OrderLine, item.OrderID)
	return nil
}

// Remove deletes one line from an order.
type Remove struct {
	OrderID int64
	Line    int
	Force   bool

	Service *service.OrderItems
	Log     vm.Logger
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not remove, no service")
	}
	confirm := vm.Confirmer(vm.ConfirmFunc(func(string, string, string, string) bool { return r.Force }))
	if !r.Force {
		confirm = vm.ConfirmFunc(promptYesNo)
	}
	details := vm.NewOrderItemDetails(r.Service, nil, vm.Deps{Confirm: confirm, Log: r.Log})
	details.Load(ctx, vm.OrderItemDetailsArgs{OrderID: r.OrderID, OrderLine: r.Line})
	if details.Item() == nil || details.Item().IsEmpty {
		return fmt.Errorf("no line %d on order %d", r.Line, r.OrderID)
	}
	if !details.Delete(ctx) {
		return errors.New("delete aborted")
	}

	g := color.New(color.FgGreen)
	_, _ = fmt.Fprintf(color.Output, "%s line %d from order %d\n",
		g.Sprint("removed"), r.Line, r.OrderID)
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

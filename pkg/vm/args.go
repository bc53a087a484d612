// Package vm implements the view-model layer: detail editors and list
// views that mediate between UI surfaces and the catalog services, kept in
// sync across views through the message bus.
//
// View-models are not safe for concurrent use. Every operation, including
// bus drains that run their subscription handlers, is expected to happen on
// the single UI goroutine.
package vm

import (
	"strings"

	"tableflip.dev/stockroom/pkg/service"
)

// ProductDetailsArgs parameterizes a product detail view. Captured back out
// with CreateArgs so the same view can be resumed later.
type ProductDetailsArgs struct {
	ProductID string
}

// IsNew reports whether the args describe a not-yet-persisted product.
func (a ProductDetailsArgs) IsNew() bool {
	return strings.TrimSpace(a.ProductID) == ""
}

// OrderItemDetailsArgs parameterizes an order-line detail view. A zero
// OrderLine means a new line for the order.
type OrderItemDetailsArgs struct {
	OrderID   int64
	OrderLine int
}

// IsNew reports whether the args describe a not-yet-persisted line.
func (a OrderItemDetailsArgs) IsNew() bool {
	return a.OrderLine == 0
}

// OrderItemListArgs parameterizes an order-line list view: the parent order
// scope plus the filter and sort state needed to resume the same listing.
type OrderItemListArgs struct {
	OrderID    int64
	Query      string
	OrderBy    string
	Descending bool

	// IsEmpty asks the view to show nothing instead of fetching, used by
	// hosts that lay out the pane before a parent is chosen.
	IsEmpty bool
}

// BuildQuery converts the args into a service query.
func (a OrderItemListArgs) BuildQuery() service.Query {
	return service.Query{
		Search:     a.Query,
		OrderBy:    a.OrderBy,
		Descending: a.Descending,
		OrderID:    a.OrderID,
	}
}

// ProductListArgs parameterizes a product list view.
type ProductListArgs struct {
	Query      string
	OrderBy    string
	Descending bool
	IsEmpty    bool
}

// BuildQuery converts the args into a service query.
func (a ProductListArgs) BuildQuery() service.Query {
	return service.Query{
		Search:     a.Query,
		OrderBy:    a.OrderBy,
		Descending: a.Descending,
	}
}

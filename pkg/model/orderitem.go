package model

import (
	"fmt"
	"strings"
)

// OrderItem is one line of an order. Its identity is the composite
// (OrderID, OrderLine) key.
type OrderItem struct {
	OrderID   int64 `json:"orderId"`
	OrderLine int   `json:"orderLine"`

	ProductID   string `json:"productId,omitempty"`
	ProductName string `json:"productName,omitempty"`

	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Discount  float64 `json:"discount,omitempty"`

	IsEmpty bool `json:"-"`
}

// EmptyOrderItem returns a placeholder for a line that has no backing record.
func EmptyOrderItem(orderID int64, line int) *OrderItem {
	return &OrderItem{OrderID: orderID, OrderLine: line, IsEmpty: true}
}

// IsNew reports whether the line has been persisted yet.
func (o *OrderItem) IsNew() bool {
	return o.OrderLine == 0
}

// Key renders the composite identity as "order/line".
func (o *OrderItem) Key() string {
	return OrderItemKey(o.OrderID, o.OrderLine)
}

// OrderItemKey renders a composite order-line identity.
func OrderItemKey(orderID int64, line int) string {
	return fmt.Sprintf("%d/%d", orderID, line)
}

// Subtotal is quantity times unit price before discount.
func (o *OrderItem) Subtotal() float64 {
	return float64(o.Quantity) * o.UnitPrice
}

// Total is the subtotal less the line discount.
func (o *OrderItem) Total() float64 {
	return o.Subtotal() - o.Discount
}

// Title renders a display label for the line.
func (o *OrderItem) Title() string {
	if strings.TrimSpace(o.ProductName) != "" {
		return o.ProductName
	}
	return o.Key()
}

// Merge copies the business fields of src onto o in place, keeping the same
// pointer so UI bindings survive a refresh.
func (o *OrderItem) Merge(src *OrderItem) {
	if src == nil {
		return
	}
	o.OrderID = src.OrderID
	o.OrderLine = src.OrderLine
	o.ProductID = src.ProductID
	o.ProductName = src.ProductName
	o.Quantity = src.Quantity
	o.UnitPrice = src.UnitPrice
	o.Discount = src.Discount
	o.IsEmpty = src.IsEmpty
}

// Clone returns an independent copy of the line.
func (o *OrderItem) Clone() *OrderItem {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

// Package service provides the CRUD operations view-models call. Services
// wrap persistence and keep list/query logic out of the UI layers.
package service

import (
	"sort"
	"strings"

	"tableflip.dev/stockroom/pkg/model"
)

// Query scopes a list fetch: free-text filter, sort expression, and an
// optional parent order constraint. A Query captured from a view can be
// round-tripped to reproduce the same listing later.
type Query struct {
	Search     string
	OrderBy    string
	Descending bool

	// OrderID restricts order-item queries to one parent order. Zero means
	// no constraint.
	OrderID int64
}

// Matches reports whether the product passes the free-text filter.
func (q Query) Matches(p *model.Product) bool {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	if needle == "" {
		return true
	}
	for _, hay := range []string{p.Name, p.Category, p.Description, p.ProductID} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// MatchesItem reports whether the order line passes the filter and order
// scope.
func (q Query) MatchesItem(o *model.OrderItem) bool {
	if q.OrderID != 0 && o.OrderID != q.OrderID {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	if needle == "" {
		return true
	}
	for _, hay := range []string{o.ProductName, o.ProductID, o.Key()} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

func sortProducts(list []*model.Product, q Query) {
	less := func(a, b *model.Product) bool {
		switch q.OrderBy {
		case "category":
			if a.Category != b.Category {
				return a.Category < b.Category
			}
		case "price":
			if a.ListPrice != b.ListPrice {
				return a.ListPrice < b.ListPrice
			}
		case "stock":
			if a.StockUnits != b.StockUnits {
				return a.StockUnits < b.StockUnits
			}
		case "modified":
			if !a.LastModifiedOn.Equal(b.LastModifiedOn) {
				return a.LastModifiedOn.Before(b.LastModifiedOn)
			}
		default: // name
			an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if an != bn {
				return an < bn
			}
		}
		return a.ProductID < b.ProductID
	}
	sort.SliceStable(list, func(i, j int) bool {
		if q.Descending {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
}

func sortOrderItems(list []*model.OrderItem, q Query) {
	less := func(a, b *model.OrderItem) bool {
		switch q.OrderBy {
		case "product":
			an, bn := strings.ToLower(a.ProductName), strings.ToLower(b.ProductName)
			if an != bn {
				return an < bn
			}
		case "quantity":
			if a.Quantity != b.Quantity {
				return a.Quantity < b.Quantity
			}
		case "total":
			if a.Total() != b.Total() {
				return a.Total() < b.Total()
			}
		default: // line
		}
		if a.OrderID != b.OrderID {
			return a.OrderID < b.OrderID
		}
		return a.OrderLine < b.OrderLine
	}
	sort.SliceStable(list, func(i, j int) bool {
		if q.Descending {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
}

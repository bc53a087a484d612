// Package model defines the entity snapshots the view-model layer binds to.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Product is the in-memory snapshot of one catalog record. A view-model owns
// the snapshot it loaded; external-change notifications are applied with
// Merge so bound references stay valid.
type Product struct {
	ProductID   string `json:"productId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`

	ListPrice   float64 `json:"listPrice"`
	DealerPrice float64 `json:"dealerPrice,omitempty"`

	StockUnits       int `json:"stockUnits"`
	SafetyStockLevel int `json:"safetyStockLevel,omitempty"`

	CreatedOn      time.Time `json:"createdOn,omitempty"`
	LastModifiedOn time.Time `json:"lastModifiedOn,omitempty"`

	// IsEmpty marks a placeholder for an id the backend no longer returns.
	// Distinct from "not yet loaded" and never persisted.
	IsEmpty bool `json:"-"`
}

// NewProduct returns a blank product ready for editing.
func NewProduct() *Product {
	return &Product{}
}

// EmptyProduct returns a placeholder for an id that has no backing record.
func EmptyProduct(id string) *Product {
	return &Product{ProductID: id, IsEmpty: true}
}

// IsNew reports whether the product has been persisted yet. Derived from the
// identity field so it can never contradict it.
func (p *Product) IsNew() bool {
	return strings.TrimSpace(p.ProductID) == ""
}

// Title renders a display name, falling back to the id.
func (p *Product) Title() string {
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	if p.ProductID != "" {
		return p.ProductID
	}
	return "New Product"
}

// Merge copies the business fields of src onto p in place, keeping the same
// pointer so UI bindings survive a refresh.
func (p *Product) Merge(src *Product) {
	if src == nil {
		return
	}
	p.ProductID = src.ProductID
	p.Name = src.Name
	p.Description = src.Description
	p.Category = src.Category
	p.ListPrice = src.ListPrice
	p.DealerPrice = src.DealerPrice
	p.StockUnits = src.StockUnits
	p.SafetyStockLevel = src.SafetyStockLevel
	p.CreatedOn = src.CreatedOn
	p.LastModifiedOn = src.LastModifiedOn
	p.IsEmpty = src.IsEmpty
}

// Clone returns an independent copy, used when an editor needs a scratch
// snapshot it can abandon.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func (p *Product) String() string {
	return fmt.Sprintf("%s (%s)", p.Title(), p.ProductID)
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/stockroom/pkg/model"
	"tableflip.dev/stockroom/pkg/store"
)

// Products provides CRUD operations for the product catalog.
type Products struct {
	Persistence store.Persistence
}

// Get fetches one product. A missing id yields (nil, nil).
func (s *Products) Get(ctx context.Context, id string) (*model.Product, error) {
	if s.Persistence == nil {
		return nil, errors.New("service: no persistence configured")
	}
	return s.Persistence.GetProduct(ctx, id)
}

// List returns the products matching the query, sorted per its expression.
func (s *Products) List(ctx context.Context, q Query) ([]*model.Product, error) {
	if s.Persistence == nil {
		return nil, errors.New("service: no persistence configured")
	}
	all := s.Persistence.ListProducts(ctx)
	matched := make([]*model.Product, 0, len(all))
	for _, p := range all {
		if q.Matches(p) {
			matched = append(matched, p)
		}
	}
	sortProducts(matched, q)
	return matched, nil
}

// Create assigns an id, stamps timestamps, and stores the product.
func (s *Products) Create(ctx context.Context, p *model.Product) error {
	if s.Persistence == nil {
		return errors.New("service: no persistence configured")
	}
	if p == nil {
		return errors.New("service: product required")
	}
	if strings.TrimSpace(p.ProductID) == "" {
		p.ProductID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedOn = now
	p.LastModifiedOn = now
	return s.Persistence.StoreProduct(p)
}

// Update stores the product and bumps its modification stamp.
func (s *Products) Update(ctx context.Context, p *model.Product) error {
	if s.Persistence == nil {
		return errors.New("service: no persistence configured")
	}
	if p == nil || p.IsNew() {
		return errors.New("service: product id required")
	}
	p.LastModifiedOn = time.Now().UTC()
	return s.Persistence.StoreProduct(p)
}

// Delete removes the product record.
func (s *Products) Delete(ctx context.Context, p *model.Product) error {
	if s.Persistence == nil {
		return errors.New("service: no persistence configured")
	}
	if p == nil || p.IsNew() {
		return errors.New("service: product id required")
	}
	return s.Persistence.DeleteProduct(p.ProductID)
}

// DeleteRange removes length products starting at index within the listing
// the query describes at call time. It reports how many records were
// removed; a partial failure still returns the count so callers can show
// progress before re-syncing.
func (s *Products) DeleteRange(ctx context.Context, index, length int, q Query) (int, error) {
	if s.Persistence == nil {
		return 0, errors.New("service: no persistence configured")
	}
	listed, err := s.List(ctx, q)
	if err != nil {
		return 0, err
	}
	start, end := clampRange(index, length, len(listed))
	deleted := 0
	var firstErr error
	for _, p := range listed[start:end] {
		if err := s.Persistence.DeleteProduct(p.ProductID); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		deleted++
	}
	return deleted, firstErr
}

func clampRange(index, length, size int) (start, end int) {
	if index < 0 {
		length += index
		index = 0
	}
	if index > size {
		index = size
	}
	if length < 0 {
		length = 0
	}
	if index+length > size {
		length = size - index
	}
	return index, index + length
}

package service

import (
	"context"
	"errors"

	"tableflip.dev/stockroom/pkg/model"
	"tableflip.dev/stockroom/pkg/store"
)

// OrderItems provides CRUD operations for order lines.
type OrderItems struct {
	Persistence store.Persistence
}

// Get fetches one line by its composite key. A missing line yields
// (nil, nil).
func (s *OrderItems) Get(ctx context.Context, orderID int64, line int) (*model.OrderItem, error) {
	if s.Persistence == nil {
		return nil, errors.New("service: no persistence configured")
	}
	return s.Persistence.GetOrderItem(ctx, orderID, line)
}

// List returns the order lines matching the query, sorted per its
// expression.
func (s *OrderItems) List(ctx context.Context, q Query) ([]*model.OrderItem, error) {
	if s.Persistence == nil {
		return nil, errors.New("service: no persistence configured")
	}
	all := s.Persistence.ListOrderItems(ctx, q.OrderID)
	matched := make([]*model.OrderItem, 0, len(all))
	for _, o := range all {
		if q.MatchesItem(o) {
			matched = append(matched, o)
		}
	}
	sortOrderItems(matched, q)
	return matched, nil
}

// Create assigns the next free line number within the order and stores the
// line.
func (s *OrderItems) Create(ctx context.Context, o *model.OrderItem) error {
	if s.Persistence == nil {
		return errors.New("service: no persistence configured")
	}
	if o == nil || o.OrderID == 0 {
		return errors.New("service: order id required")
	}
	if o.OrderLine == 0 {
		o.OrderLine = s.Persistence.NextOrderLine(ctx, o.OrderID)
	}
	return s.Persistence.StoreOrderItem(o)
}

// Update stores the line under its existing key.
func (s *OrderItems) Update(ctx context.Context, o *model.OrderItem) error {
	if s.Persistence == nil {
		return errors.New("service: no persistence configured")
	}
	if o == nil || o.OrderID == 0 || o.OrderLine == 0 {
		return errors.New("service: order item key required")
	}
	return s.Persistence.StoreOrderItem(o)
}

// Delete removes the line record.
func (s *OrderItems) Delete(ctx context.Context, o *model.OrderItem) error {
	if s.Persistence == nil {
		return errors.New("service: no persistence configured")
	}
	if o == nil {
		return errors.New("service: order item required")
	}
	return s.Persistence.DeleteOrderItem(o.OrderID, o.OrderLine)
}

// DeleteRange removes length lines starting at index within the listing the
// query describes at call time. It reports how many records were removed;
// a partial failure still returns the count so callers can show progress
// before re-syncing.
func (s *OrderItems) DeleteRange(ctx context.Context, index, length int, q Query) (int, error) {
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
	for _, o := range listed[start:end] {
		if err := s.Persistence.DeleteOrderItem(o.OrderID, o.OrderLine); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		deleted++
	}
	return deleted, firstErr
}

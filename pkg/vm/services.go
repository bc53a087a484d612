package vm

import (
	"context"

	"tableflip.dev/stockroom/pkg/model"
	"tableflip.dev/stockroom/pkg/service"
)

// ProductService is the backend contract the product view-models call.
// Get returns (nil, nil) for a missing id: not-found is a valid outcome.
type ProductService interface {
	Get(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, q service.Query) ([]*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, p *model.Product) error
	DeleteRange(ctx context.Context, index, length int, q service.Query) (int, error)
}

// OrderItemService is the backend contract the order-line view-models
// call.
type OrderItemService interface {
	Get(ctx context.Context, orderID int64, line int) (*model.OrderItem, error)
	List(ctx context.Context, q service.Query) ([]*model.OrderItem, error)
	Create(ctx context.Context, o *model.OrderItem) error
	Update(ctx context.Context, o *model.OrderItem) error
	Delete(ctx context.Context, o *model.OrderItem) error
	DeleteRange(ctx context.Context, index, length int, q service.Query) (int, error)
}

var (
	_ ProductService   = (*service.Products)(nil)
	_ OrderItemService = (*service.OrderItems)(nil)
)

// Package store persists the catalog on disk through diskv and watches it
// for out-of-process changes.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/stockroom/pkg/model"
)

// Persistence is the storage contract for products and order lines. Reads
// of a missing record return (nil, nil): not-found is a valid outcome, not
// an error.
type Persistence interface {
	ListProducts(ctx context.Context) []*model.Product
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	StoreProduct(p *model.Product) error
	DeleteProduct(id string) error

	ListOrderItems(ctx context.Context, orderID int64) []*model.OrderItem
	GetOrderItem(ctx context.Context, orderID int64, line int) (*model.OrderItem, error)
	StoreOrderItem(o *model.OrderItem) error
	DeleteOrderItem(orderID int64, line int) error
	NextOrderLine(ctx context.Context, orderID int64) int

	Watch(ctx context.Context) (<-chan Event, error)
}

const (
	kindProducts = "products"
	kindItems    = "items"
)

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) ListProducts(ctx context.Context) []*model.Product {
	all := make([]*model.Product, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, kindProducts+"-") {
			continue
		}
		prod, err := p.readProduct(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, prod)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Name == all[j].Name {
			return all[i].ProductID < all[j].ProductID
		}
		return all[i].Name < all[j].Name
	})
	return all
}

func (p *persistence) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("store: product id required")
	}
	prod, err := p.readProduct(productKey(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return prod, nil
}

func (p *persistence) StoreProduct(prod *model.Product) error {
	if prod == nil || strings.TrimSpace(prod.ProductID) == "" {
		return errors.New("store: product id required")
	}
	data, err := json.Marshal(prod)
	if err != nil {
		return err
	}
	return p.d.Write(productKey(prod.ProductID), data)
}

func (p *persistence) DeleteProduct(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("store: product id required")
	}
	return p.d.Erase(productKey(id))
}

func (p *persistence) ListOrderItems(ctx context.Context, orderID int64) []*model.OrderItem {
	prefix := kindItems + "-"
	if orderID != 0 {
		prefix = fmt.Sprintf("%s-%d-", kindItems, orderID)
	}
	all := make([]*model.OrderItem, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		item, err := p.readOrderItem(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, item)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].OrderID == all[j].OrderID {
			return all[i].OrderLine < all[j].OrderLine
		}
		return all[i].OrderID < all[j].OrderID
	})
	return all
}

func (p *persistence) GetOrderItem(ctx context.Context, orderID int64, line int) (*model.OrderItem, error) {
	item, err := p.readOrderItem(orderItemKey(orderID, line))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (p *persistence) StoreOrderItem(o *model.OrderItem) error {
	if o == nil || o.OrderID == 0 || o.OrderLine == 0 {
		return errors.New("store: order item key required")
	}
	data, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return p.d.Write(orderItemKey(o.OrderID, o.OrderLine), data)
}

func (p *persistence) DeleteOrderItem(orderID int64, line int) error {
	return p.d.Erase(orderItemKey(orderID, line))
}

// NextOrderLine returns one past the highest line number recorded for the
// order, starting at 1 for an empty order.
func (p *persistence) NextOrderLine(ctx context.Context, orderID int64) int {
	next := 1
	for _, item := range p.ListOrderItems(ctx, orderID) {
		if item.OrderLine >= next {
			next = item.OrderLine + 1
		}
	}
	return next
}

func (p *persistence) readProduct(key string) (*model.Product, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	prod := &model.Product{}
	if err := json.Unmarshal(val, prod); err != nil {
		return nil, err
	}
	if prod.ProductID == "" {
		prod.ProductID = keyToPathTransform(key).FileName
	}
	return prod, nil
}

func (p *persistence) readOrderItem(key string) (*model.OrderItem, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	item := &model.OrderItem{}
	if err := json.Unmarshal(val, item); err != nil {
		return nil, err
	}
	if item.OrderID == 0 || item.OrderLine == 0 {
		pk := keyToPathTransform(key)
		if len(pk.Path) == 2 {
			item.OrderID, _ = strconv.ParseInt(pk.Path[1], 10, 64)
		}
		item.OrderLine, _ = strconv.Atoi(pk.FileName)
	}
	return item, nil
}

func productKey(id string) string {
	return fmt.Sprintf("%s-%s", kindProducts, id)
}

func orderItemKey(orderID int64, line int) string {
	return fmt.Sprintf("%s-%d-%d", kindItems, orderID, line)
}

// keyToPathTransform maps keys onto directories: products live flat under
// products/, order items nest one level per order. Product ids may contain
// dashes, so only the kind prefix is split off.
func keyToPathTransform(s string) *diskv.PathKey {
	kind, rest, _ := strings.Cut(s, "-")
	if kind == kindItems {
		if order, line, ok := cutLast(rest); ok {
			return &diskv.PathKey{Path: []string{kind, order}, FileName: line}
		}
	}
	return &diskv.PathKey{Path: []string{kind}, FileName: rest}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

func cutLast(s string) (before, after string, ok bool) {
	idx := strings.LastIndex(s, "-")
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+1:], true
}

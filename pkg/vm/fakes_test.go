package vm

import (
	"context"
	"fmt"

	"tableflip.dev/stockroom/pkg/model"
	"tableflip.dev/stockroom/pkg/service"
)

// fakeProducts is an in-memory ProductService. It returns clones like the
// real service does, so merge-in-place behavior is observable.
type fakeProducts struct {
	items []*model.Product
	seq   int

	listErr   error
	saveErr   error
	deleteErr error

	creates int
	updates int
	deletes int
}

func (f *fakeProducts) Get(_ context.Context, id string) (*model.Product, error) {
	for _, p := range f.items {
		if p.ProductID == id {
			return p.Clone(), nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) List(_ context.Context, q service.Query) ([]*model.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*model.Product{}
	for _, p := range f.items {
		if q.Matches(p) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (f *fakeProducts) Create(_ context.Context, p *model.Product) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.creates++
	if p.ProductID == "" {
		f.seq++
		p.ProductID = fmt.Sprintf("p-%d", f.seq)
	}
	f.items = append(f.items, p.Clone())
	return nil
}

func (f *fakeProducts) Update(_ context.Context, p *model.Product) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.updates++
	for i, cur := range f.items {
		if cur.ProductID == p.ProductID {
			f.items[i] = p.Clone()
			return nil
		}
	}
	f.items = append(f.items, p.Clone())
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, p *model.Product) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes++
	for i, cur := range f.items {
		if cur.ProductID == p.ProductID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeProducts) DeleteRange(ctx context.Context, index, length int, q service.Query) (int, error) {
	visible, err := f.List(ctx, q)
	if err != nil {
		return 0, err
	}
	if index < 0 {
		index = 0
	}
	if index >= len(visible) {
		return 0, nil
	}
	if index+length > len(visible) {
		length = len(visible) - index
	}
	n := 0
	for _, p := range visible[index : index+length] {
		if err := f.Delete(ctx, p); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// fakeOrderItems is an in-memory OrderItemService.
type fakeOrderItems struct {
	items []*model.OrderItem

	listErr   error
	saveErr   error
	deleteErr error
}

func (f *fakeOrderItems) Get(_ context.Context, orderID int64, line int) (*model.OrderItem, error) {
	for _, o := range f.items {
		if o.OrderID == orderID && o.OrderLine == line {
			return o.Clone(), nil
		}
	}
	return nil, nil
}

func (f *fakeOrderItems) List(_ context.Context, q service.Query) ([]*model.OrderItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*model.OrderItem{}
	for _, o := range f.items {
		if q.MatchesItem(o) {
			out = append(out, o.Clone())
		}
	}
	return out, nil
}

func (f *fakeOrderItems) Create(_ context.Context, o *model.OrderItem) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if o.OrderLine == 0 {
		next := 1
		for _, cur := range f.items {
			if cur.OrderID == o.OrderID && cur.OrderLine >= next {
				next = cur.OrderLine + 1
			}
		}
		o.OrderLine = next
	}
	f.items = append(f.items, o.Clone())
	return nil
}

func (f *fakeOrderItems) Update(_ context.Context, o *model.OrderItem) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	for i, cur := range f.items {
		if cur.OrderID == o.OrderID && cur.OrderLine == o.OrderLine {
			f.items[i] = o.Clone()
			return nil
		}
	}
	f.items = append(f.items, o.Clone())
	return nil
}

func (f *fakeOrderItems) Delete(_ context.Context, o *model.OrderItem) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, cur := range f.items {
		if cur.OrderID == o.OrderID && cur.OrderLine == o.OrderLine {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeOrderItems) DeleteRange(ctx context.Context, index, length int, q service.Query) (int, error) {
	visible, err := f.List(ctx, q)
	if err != nil {
		return 0, err
	}
	if index < 0 {
		index = 0
	}
	if index >= len(visible) {
		return 0, nil
	}
	if index+length > len(visible) {
		length = len(visible) - index
	}
	n := 0
	for _, o := range visible[index : index+length] {
		if err := f.Delete(ctx, o); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// statusRecorder captures status text per severity.
type statusRecorder struct {
	starts   []string
	readies  []string
	warnings []string
	errors   []string
}

func (s *statusRecorder) StatusStart(msg string)   { s.starts = append(s.starts, msg) }
func (s *statusRecorder) StatusReady(msg string)   { s.readies = append(s.readies, msg) }
func (s *statusRecorder) StatusWarning(msg string) { s.warnings = append(s.warnings, msg) }
func (s *statusRecorder) StatusError(msg string)   { s.errors = append(s.errors, msg) }

// navRecorder captures navigation requests.
type navRecorder struct {
	navigated []any
	opened    []any
}

func (n *navRecorder) Navigate(args any)      { n.navigated = append(n.navigated, args) }
func (n *navRecorder) OpenInNewView(args any) { n.opened = append(n.opened, args) }

// confirmRecorder answers confirmations with a fixed verdict and records
// the prompts.
type confirmRecorder struct {
	answer   bool
	titles   []string
	messages []string
}

func (c *confirmRecorder) Confirm(title, message, _, _ string) bool {
	c.titles = append(c.titles, title)
	c.messages = append(c.messages, message)
	return c.answer
}

func seedProducts(f *fakeProducts, names ...string) {
	for i, name := range names {
		f.items = append(f.items, &model.Product{
			ProductID: fmt.Sprintf("p-%d", i+1),
			Name:      name,
			Category:  "Audio",
			ListPrice: 10,
		})
		f.seq = i + 1
	}
}

func seedOrderItems(f *fakeOrderItems, orderID int64, lines ...int) {
	for _, line := range lines {
		f.items = append(f.items, &model.OrderItem{
			OrderID:     orderID,
			OrderLine:   line,
			ProductID:   fmt.Sprintf("p-%d", line),
			ProductName: fmt.Sprintf("Product %d", line),
			Quantity:    1,
			UnitPrice:   10,
		})
	}
}

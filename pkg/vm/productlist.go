package vm

import (
	"context"
	"fmt"

	"tableflip.dev/stockroom/pkg/bus"
	"tableflip.dev/stockroom/pkg/model"
)

// ProductList drives the product catalog view. Same shape as
// OrderItemList over the product service and topic.
type ProductList struct {
	*ListCore[model.Product]

	deps   Deps
	svc    ProductService
	bus    *bus.Bus
	sender string

	IsMainView bool

	args ProductListArgs
	subs []*bus.Subscription
}

// NewProductList builds a list view-model over the given service and bus.
func NewProductList(svc ProductService, b *bus.Bus, deps Deps) *ProductList {
	deps = deps.normalized()
	return &ProductList{
		ListCore: newListCore("products", deps, svc.List),
		deps:     deps,
		svc:      svc,
		bus:      b,
		sender:   nextSender("product-list"),
	}
}

// Load initializes the view from args. Empty args show a blank list
// without touching the service.
func (v *ProductList) Load(ctx context.Context, args ProductListArgs) bool {
	v.args = args
	if args.IsEmpty {
		v.Empty()
		return true
	}
	return v.Refresh(ctx)
}

// Args returns the current navigation state.
func (v *ProductList) Args() ProductListArgs { return v.args }

// CreateArgs captures the navigation state needed to reopen this view.
func (v *ProductList) CreateArgs() ProductListArgs {
	return ProductListArgs{
		Query:      v.args.Query,
		OrderBy:    v.args.OrderBy,
		Descending: v.args.Descending,
	}
}

// Refresh re-runs the current query against the service.
func (v *ProductList) Refresh(ctx context.Context) bool {
	v.args.IsEmpty = false
	return v.ListCore.Refresh(ctx, v.args.BuildQuery())
}

// ApplySearch sets the free-text query and refreshes.
func (v *ProductList) ApplySearch(ctx context.Context, text string) bool {
	v.args.Query = text
	return v.Refresh(ctx)
}

// SortBy sets the sort order and refreshes.
func (v *ProductList) SortBy(ctx context.Context, field string, descending bool) bool {
	v.args.OrderBy = field
	v.args.Descending = descending
	return v.Refresh(ctx)
}

// New opens a detail view for a fresh product.
func (v *ProductList) New() {
	args := ProductDetailsArgs{}
	if v.IsMainView {
		v.deps.Nav.OpenInNewView(args)
	} else {
		v.deps.Nav.Navigate(args)
	}
}

// DeleteSelection removes the selected products after one confirmation
// for the whole set. See OrderItemList.DeleteSelection for the range
// semantics; they are identical here.
func (v *ProductList) DeleteSelection(ctx context.Context) bool {
	ranges := NormalizeRanges(v.SelectedRanges())
	items := v.SelectedItems()
	count := TotalLength(ranges)
	if count == 0 {
		count = len(items)
	}
	if count == 0 {
		return false
	}
	noun := "products"
	if count == 1 {
		noun = "product"
	}
	if !v.deps.Confirm.Confirm("Confirm Delete",
		fmt.Sprintf("Are you sure you want to delete %d selected %s?", count, noun),
		"Delete", "Cancel") {
		return false
	}

	q := v.args.BuildQuery()
	deleted := 0
	var firstErr error
	if len(ranges) > 0 {
		for i := len(ranges) - 1; i >= 0; i-- {
			n, err := v.svc.DeleteRange(ctx, ranges[i].Index, ranges[i].Length, q)
			deleted += n
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
		v.publish(TagRangesDeleted, RangesDeletedPayload{Query: q, Ranges: ranges})
	} else {
		keys := make([]string, 0, len(items))
		for _, item := range items {
			if err := v.svc.Delete(ctx, item); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			deleted++
			keys = append(keys, item.ProductID)
		}
		v.publish(TagItemsDeleted, keys)
	}

	if firstErr != nil {
		msg := fmt.Sprintf("Error deleting %d %s: %s", count, noun, firstErr)
		v.deps.Status.StatusError(msg)
		v.deps.Log.Error("Products", "Delete", msg, firstErr.Error())
	} else {
		v.deps.Status.StatusReady(fmt.Sprintf("%d %s deleted", deleted, noun))
		v.deps.Log.Info("Products", "Delete", fmt.Sprintf("%d %s deleted", deleted, noun), "")
	}

	v.Refresh(ctx)
	return firstErr == nil
}

// Subscribe starts refreshing on product change notifications.
func (v *ProductList) Subscribe() {
	if v.bus == nil {
		return
	}
	v.subs = append(v.subs, v.bus.Subscribe(TopicProducts, v.onProductMessage))
}

// Unsubscribe stops all bus reactions.
func (v *ProductList) Unsubscribe() {
	for _, s := range v.subs {
		s.Unsubscribe()
	}
	v.subs = nil
}

func (v *ProductList) publish(tag bus.Tag, payload any) {
	if v.bus != nil {
		v.bus.Publish(v.sender, TopicProducts, tag, payload)
	}
}

func (v *ProductList) onProductMessage(env bus.Envelope) {
	if env.Sender == v.sender {
		return
	}
	switch env.Tag {
	case TagItemChanged, TagNewItemSaved, TagItemDeleted,
		TagItemsDeleted, TagRangesDeleted, TagRefreshAll:
		if !v.args.IsEmpty {
			v.Refresh(context.Background())
		}
	}
}

package vm

import (
	"context"
	"fmt"

	"tableflip.dev/stockroom/pkg/bus"
	"tableflip.dev/stockroom/pkg/model"
)

// OrderItemList drives the order-line collection view: querying, sorting,
// selection, bulk delete, and refresh on external changes.
type OrderItemList struct {
	*ListCore[model.OrderItem]

	deps   Deps
	svc    OrderItemService
	bus    *bus.Bus
	sender string

	// IsMainView selects how a new line opens: a separate view when this
	// list is the primary surface, in place otherwise.
	IsMainView bool

	args OrderItemListArgs
	subs []*bus.Subscription
}

// NewOrderItemList builds a list view-model over the given service and
// bus.
func NewOrderItemList(svc OrderItemService, b *bus.Bus, deps Deps) *OrderItemList {
	deps = deps.normalized()
	return &OrderItemList{
		ListCore: newListCore("order items", deps, svc.List),
		deps:     deps,
		svc:      svc,
		bus:      b,
		sender:   nextSender("orderitem-list"),
	}
}

// Load initializes the view from args. Empty args show a blank list
// without touching the service.
func (v *OrderItemList) Load(ctx context.Context, args OrderItemListArgs) bool {
	v.args = args
	if args.IsEmpty {
		v.Empty()
		return true
	}
	return v.Refresh(ctx)
}

// Args returns the current navigation state.
func (v *OrderItemList) Args() OrderItemListArgs { return v.args }

// CreateArgs captures the navigation state needed to reopen this view.
func (v *OrderItemList) CreateArgs() OrderItemListArgs {
	return OrderItemListArgs{
		OrderID:    v.args.OrderID,
		Query:      v.args.Query,
		OrderBy:    v.args.OrderBy,
		Descending: v.args.Descending,
	}
}

// Refresh re-runs the current query against the service.
func (v *OrderItemList) Refresh(ctx context.Context) bool {
	v.args.IsEmpty = false
	return v.ListCore.Refresh(ctx, v.args.BuildQuery())
}

// ApplySearch sets the free-text query and refreshes.
func (v *OrderItemList) ApplySearch(ctx context.Context, text string) bool {
	v.args.Query = text
	return v.Refresh(ctx)
}

// SortBy sets the sort order and refreshes.
func (v *OrderItemList) SortBy(ctx context.Context, field string, descending bool) bool {
	v.args.OrderBy = field
	v.args.Descending = descending
	return v.Refresh(ctx)
}

// New opens a detail view for a fresh line on the current order.
func (v *OrderItemList) New() {
	args := OrderItemDetailsArgs{OrderID: v.args.OrderID}
	if v.IsMainView {
		v.deps.Nav.OpenInNewView(args)
	} else {
		v.deps.Nav.Navigate(args)
	}
}

// DeleteSelection removes the selected lines after one confirmation for
// the whole set. Range selections delete by position within the current
// query, highest range first so earlier removals do not shift pending
// offsets. The list refreshes unconditionally afterwards, even when some
// deletes failed, so the view re-syncs to the service's current truth.
func (v *OrderItemList) DeleteSelection(ctx context.Context) bool {
	ranges := NormalizeRanges(v.SelectedRanges())
	items := v.SelectedItems()
	count := TotalLength(ranges)
	if count == 0 {
		count = len(items)
	}
	if count == 0 {
		return false
	}
	noun := "order items"
	if count == 1 {
		noun = "order item"
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
			keys = append(keys, item.Key())
		}
		v.publish(TagItemsDeleted, keys)
	}

	if firstErr != nil {
		msg := fmt.Sprintf("Error deleting %d %s: %s", count, noun, firstErr)
		v.deps.Status.StatusError(msg)
		v.deps.Log.Error("Order items", "Delete", msg, firstErr.Error())
	} else {
		v.deps.Status.StatusReady(fmt.Sprintf("%d %s deleted", deleted, noun))
		v.deps.Log.Info("Order items", "Delete", fmt.Sprintf("%d %s deleted", deleted, noun), "")
	}

	v.Refresh(ctx)
	return firstErr == nil
}

// Subscribe starts refreshing on order-item change notifications.
func (v *OrderItemList) Subscribe() {
	if v.bus == nil {
		return
	}
	v.subs = append(v.subs, v.bus.Subscribe(TopicOrderItems, v.onOrderItemMessage))
}

// Unsubscribe stops all bus reactions.
func (v *OrderItemList) Unsubscribe() {
	for _, s := range v.subs {
		s.Unsubscribe()
	}
	v.subs = nil
}

func (v *OrderItemList) publish(tag bus.Tag, payload any) {
	if v.bus != nil {
		v.bus.Publish(v.sender, TopicOrderItems, tag, payload)
	}
}

// onOrderItemMessage refreshes on any change from another view. Deciding
// whether a foreign change intersects the current query costs as much as
// the refresh itself, so the list always re-fetches.
func (v *OrderItemList) onOrderItemMessage(env bus.Envelope) {
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

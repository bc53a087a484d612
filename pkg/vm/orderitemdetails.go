package vm

import (
	"context"
	"fmt"

	"tableflip.dev/stockroom/pkg/bus"
	"tableflip.dev/stockroom/pkg/model"
)

// OrderItemDetails owns one order line's view/edit lifecycle. It mirrors
// ProductDetails but keys records by the composite order/line pair.
type OrderItemDetails struct {
	deps   Deps
	svc    OrderItemService
	bus    *bus.Bus
	editor *Editor[model.OrderItem]
	sender string

	args       OrderItemDetailsArgs
	item       *model.OrderItem
	editMode   bool
	enabled    bool
	violations []Violation
	subs       []*bus.Subscription
}

// NewOrderItemDetails builds a detail view-model over the given service
// and bus.
func NewOrderItemDetails(svc OrderItemService, b *bus.Bus, deps Deps) *OrderItemDetails {
	v := &OrderItemDetails{
		deps:    deps.normalized(),
		svc:     svc,
		bus:     b,
		sender:  nextSender("orderitem-details"),
		enabled: true,
	}
	v.editor = &Editor[model.OrderItem]{Noun: "Order item", Deps: v.deps, Hooks: v}
	return v
}

// Load initializes the view from args. A zero line means a new line on
// args.OrderID, opened in edit mode. A missing line yields an
// empty-flagged placeholder; a service failure is logged and leaves the
// prior state untouched.
func (v *OrderItemDetails) Load(ctx context.Context, args OrderItemDetailsArgs) {
	v.args = args
	if args.IsNew() {
		v.item = &model.OrderItem{OrderID: args.OrderID, Quantity: 1}
		v.editMode = true
		v.enabled = true
		v.violations = nil
		return
	}
	item, err := v.svc.Get(ctx, args.OrderID, args.OrderLine)
	if err != nil {
		v.deps.Log.Error("Order item", "Load",
			fmt.Sprintf("Error loading order item %s", model.OrderItemKey(args.OrderID, args.OrderLine)),
			err.Error())
		return
	}
	if item == nil {
		item = model.EmptyOrderItem(args.OrderID, args.OrderLine)
	}
	v.item = item
	v.editMode = false
	v.enabled = true
	v.violations = nil
}

// Item returns the bound snapshot.
func (v *OrderItemDetails) Item() *model.OrderItem { return v.item }

// IsNew reports whether the bound line has been persisted yet.
func (v *OrderItemDetails) IsNew() bool { return v.item == nil || v.item.IsNew() }

// IsEditing reports whether the view is in edit mode.
func (v *OrderItemDetails) IsEditing() bool { return v.editMode }

// IsEnabled reports whether the view accepts input.
func (v *OrderItemDetails) IsEnabled() bool { return v.enabled }

// Violations returns the constraint failures from the last save attempt.
func (v *OrderItemDetails) Violations() []Violation { return v.violations }

// StartEdit enters edit mode.
func (v *OrderItemDetails) StartEdit() {
	if v.enabled {
		v.editMode = true
	}
}

// CancelEdit leaves edit mode without saving.
func (v *OrderItemDetails) CancelEdit() {
	v.editMode = false
	v.violations = nil
}

// CreateArgs captures the navigation state needed to reopen this view.
func (v *OrderItemDetails) CreateArgs() OrderItemDetailsArgs {
	if v.item == nil {
		return v.args
	}
	return OrderItemDetailsArgs{OrderID: v.item.OrderID, OrderLine: v.item.OrderLine}
}

// Save validates and persists the bound line. The service assigns the
// order line on first save; the published key reflects the assigned line.
func (v *OrderItemDetails) Save(ctx context.Context) bool {
	if v.item == nil || !v.enabled {
		return false
	}
	v.violations = v.editor.Validate(v.item)
	if len(v.violations) > 0 {
		v.deps.Status.StatusWarning(v.violations[0].Message)
		return false
	}
	isNew := v.item.IsNew()
	if !v.editor.Save(ctx, v.item) {
		return false
	}
	v.editMode = false
	tag := TagItemChanged
	if isNew {
		tag = TagNewItemSaved
	}
	v.publish(tag, v.item.Key())
	return true
}

// Delete removes the bound line after confirmation.
func (v *OrderItemDetails) Delete(ctx context.Context) bool {
	if v.item == nil || v.item.IsNew() || v.item.IsEmpty {
		return false
	}
	key := v.item.Key()
	if !v.editor.Delete(ctx, v.item) {
		return false
	}
	v.editMode = false
	v.enabled = false
	v.publish(TagItemDeleted, key)
	return true
}

// SaveItem implements EditorHooks.
func (v *OrderItemDetails) SaveItem(ctx context.Context, item *model.OrderItem) error {
	if item.IsNew() {
		return v.svc.Create(ctx, item)
	}
	return v.svc.Update(ctx, item)
}

// DeleteItem implements EditorHooks.
func (v *OrderItemDetails) DeleteItem(ctx context.Context, item *model.OrderItem) error {
	return v.svc.Delete(ctx, item)
}

// ConfirmDelete implements EditorHooks.
func (v *OrderItemDetails) ConfirmDelete() bool {
	return v.deps.Confirm.Confirm("Confirm Delete",
		"Are you sure you want to delete current order item?", "Delete", "Cancel")
}

// Rules implements EditorHooks.
func (v *OrderItemDetails) Rules() []Rule[model.OrderItem] {
	return []Rule[model.OrderItem]{
		Required("Product", func(o *model.OrderItem) string { return o.ProductID }),
		Positive("Quantity", func(o *model.OrderItem) float64 { return float64(o.Quantity) }),
	}
}

// Subscribe starts reacting to order-item change notifications.
func (v *OrderItemDetails) Subscribe() {
	if v.bus == nil {
		return
	}
	v.subs = append(v.subs, v.bus.Subscribe(TopicOrderItems, v.onOrderItemMessage))
}

// Unsubscribe stops all bus reactions.
func (v *OrderItemDetails) Unsubscribe() {
	for _, s := range v.subs {
		s.Unsubscribe()
	}
	v.subs = nil
}

func (v *OrderItemDetails) publish(tag bus.Tag, payload any) {
	if v.bus != nil {
		v.bus.Publish(v.sender, TopicOrderItems, tag, payload)
	}
}

func (v *OrderItemDetails) onOrderItemMessage(env bus.Envelope) {
	if env.Sender == v.sender {
		return
	}
	if v.item == nil || v.item.IsNew() {
		return
	}
	current := v.item.Key()
	switch env.Tag {
	case TagItemChanged, TagNewItemSaved:
		if payloadKey(env) == current {
			v.refetch(context.Background())
		}
	case TagItemDeleted:
		if payloadKey(env) == current {
			v.externallyDeleted()
		}
	case TagItemsDeleted:
		for _, key := range payloadKeys(env) {
			if key == current {
				v.externallyDeleted()
				return
			}
		}
	case TagRangesDeleted, TagRefreshAll:
		v.refetch(context.Background())
	}
}

func (v *OrderItemDetails) refetch(ctx context.Context) {
	fresh, err := v.svc.Get(ctx, v.item.OrderID, v.item.OrderLine)
	if err != nil {
		v.deps.Log.Error("Order item", "Refresh",
			fmt.Sprintf("Error refreshing order item %s", v.item.Key()), err.Error())
		return
	}
	if fresh == nil {
		v.externallyDeleted()
		return
	}
	v.item.Merge(fresh)
	if v.editMode {
		v.deps.Status.StatusWarning("WARNING: This order item has been modified externally")
	}
}

func (v *OrderItemDetails) externallyDeleted() {
	v.editMode = false
	v.enabled = false
	v.deps.Status.StatusWarning("WARNING: This order item has been deleted externally")
}

package vm

import (
	"context"
	"fmt"

	"tableflip.dev/stockroom/pkg/bus"
	"tableflip.dev/stockroom/pkg/model"
)

// ProductDetails owns one product's view/edit lifecycle: load, validate,
// save, delete, and reaction to external change notifications.
type ProductDetails struct {
	deps   Deps
	svc    ProductService
	bus    *bus.Bus
	editor *Editor[model.Product]
	sender string

	args       ProductDetailsArgs
	item       *model.Product
	editMode   bool
	enabled    bool
	violations []Violation
	subs       []*bus.Subscription
}

// NewProductDetails builds a detail view-model over the given service and
// bus. Call Subscribe once the view activates and Unsubscribe when it
// deactivates.
func NewProductDetails(svc ProductService, b *bus.Bus, deps Deps) *ProductDetails {
	v := &ProductDetails{
		deps:    deps.normalized(),
		svc:     svc,
		bus:     b,
		sender:  nextSender("product-details"),
		enabled: true,
	}
	v.editor = &Editor[model.Product]{Noun: "Product", Deps: v.deps, Hooks: v}
	return v
}

// Load initializes the view from args. New args yield a blank product in
// edit mode; a missing id yields an empty-flagged placeholder, which is a
// valid outcome, not an error. A service failure is logged and leaves the
// prior state untouched.
func (v *ProductDetails) Load(ctx context.Context, args ProductDetailsArgs) {
	v.args = args
	if args.IsNew() {
		v.item = model.NewProduct()
		v.editMode = true
		v.enabled = true
		v.violations = nil
		return
	}
	item, err := v.svc.Get(ctx, args.ProductID)
	if err != nil {
		v.deps.Log.Error("Product", "Load",
			fmt.Sprintf("Error loading product %s", args.ProductID), err.Error())
		return
	}
	if item == nil {
		item = model.EmptyProduct(args.ProductID)
	}
	v.item = item
	v.editMode = false
	v.enabled = true
	v.violations = nil
}

// Item returns the bound snapshot. External changes are merged into the
// same pointer, so callers may hold on to it.
func (v *ProductDetails) Item() *model.Product { return v.item }

// IsNew reports whether the bound product has been persisted yet.
func (v *ProductDetails) IsNew() bool { return v.item == nil || v.item.IsNew() }

// IsEditing reports whether the view is in edit mode.
func (v *ProductDetails) IsEditing() bool { return v.editMode }

// IsEnabled reports whether the view accepts input. The view disables
// itself when its record is deleted.
func (v *ProductDetails) IsEnabled() bool { return v.enabled }

// Violations returns the constraint failures from the last save attempt.
func (v *ProductDetails) Violations() []Violation { return v.violations }

// StartEdit enters edit mode.
func (v *ProductDetails) StartEdit() {
	if v.enabled {
		v.editMode = true
	}
}

// CancelEdit leaves edit mode without saving.
func (v *ProductDetails) CancelEdit() {
	v.editMode = false
	v.violations = nil
}

// CreateArgs captures the navigation state needed to reopen this view.
func (v *ProductDetails) CreateArgs() ProductDetailsArgs {
	if v.item == nil {
		return v.args
	}
	return ProductDetailsArgs{ProductID: v.item.ProductID}
}

// Save validates and persists the bound product. Save is blocked while
// any constraint fails; a service failure surfaces as status text plus a
// log entry. On success the change is published so sibling views showing
// the same product can refresh.
func (v *ProductDetails) Save(ctx context.Context) bool {
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
	v.publish(tag, v.item.ProductID)
	return true
}

// Delete removes the bound product after confirmation. Declining aborts
// with no side effects.
func (v *ProductDetails) Delete(ctx context.Context) bool {
	if v.item == nil || v.item.IsNew() || v.item.IsEmpty {
		return false
	}
	id := v.item.ProductID
	if !v.editor.Delete(ctx, v.item) {
		return false
	}
	v.editMode = false
	v.enabled = false
	v.publish(TagItemDeleted, id)
	return true
}

// SaveItem implements EditorHooks.
func (v *ProductDetails) SaveItem(ctx context.Context, item *model.Product) error {
	if item.IsNew() {
		return v.svc.Create(ctx, item)
	}
	return v.svc.Update(ctx, item)
}

// DeleteItem implements EditorHooks.
func (v *ProductDetails) DeleteItem(ctx context.Context, item *model.Product) error {
	return v.svc.Delete(ctx, item)
}

// ConfirmDelete implements EditorHooks.
func (v *ProductDetails) ConfirmDelete() bool {
	return v.deps.Confirm.Confirm("Confirm Delete",
		"Are you sure you want to delete current product?", "Delete", "Cancel")
}

// Rules implements EditorHooks: the field constraints gating save.
func (v *ProductDetails) Rules() []Rule[model.Product] {
	return []Rule[model.Product]{
		Required("Name", func(p *model.Product) string { return p.Name }),
		Required("Category", func(p *model.Product) string { return p.Category }),
		Positive("List price", func(p *model.Product) float64 { return p.ListPrice }),
	}
}

// Subscribe starts reacting to product change notifications.
func (v *ProductDetails) Subscribe() {
	if v.bus == nil {
		return
	}
	v.subs = append(v.subs, v.bus.Subscribe(TopicProducts, v.onProductMessage))
}

// Unsubscribe stops all bus reactions. Call on deactivation.
func (v *ProductDetails) Unsubscribe() {
	for _, s := range v.subs {
		s.Unsubscribe()
	}
	v.subs = nil
}

func (v *ProductDetails) publish(tag bus.Tag, payload any) {
	if v.bus != nil {
		v.bus.Publish(v.sender, TopicProducts, tag, payload)
	}
}

// onProductMessage applies best-effort cache coherency: a same-id change
// re-fetches and merges in place, a same-id delete cancels the edit and
// disables the view. Advisory only; concurrent edits can still race.
func (v *ProductDetails) onProductMessage(env bus.Envelope) {
	if env.Sender == v.sender {
		return
	}
	if v.item == nil || v.item.IsNew() {
		return
	}
	current := v.item.ProductID
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
		// Ranges are positional, so relevance cannot be decided from the
		// payload alone; re-fetch and let absence mean deletion.
		v.refetch(context.Background())
	}
}

func (v *ProductDetails) refetch(ctx context.Context) {
	fresh, err := v.svc.Get(ctx, v.item.ProductID)
	if err != nil {
		v.deps.Log.Error("Product", "Refresh",
			fmt.Sprintf("Error refreshing product %s", v.item.ProductID), err.Error())
		return
	}
	if fresh == nil {
		v.externallyDeleted()
		return
	}
	v.item.Merge(fresh)
	if v.editMode {
		v.deps.Status.StatusWarning("WARNING: This product has been modified externally")
	}
}

func (v *ProductDetails) externallyDeleted() {
	v.editMode = false
	v.enabled = false
	v.deps.Status.StatusWarning("WARNING: This product has been deleted externally")
}

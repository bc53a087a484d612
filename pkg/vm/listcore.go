package vm

import (
	"context"
	"fmt"

	"tableflip.dev/stockroom/pkg/service"
)

// ListCore holds the collection state shared by list view-models: the
// bound slice, its display count, and the mutually exclusive selection
// shapes (one item in single-select mode, a set of items or a set of index
// ranges in multi-select mode).
type ListCore[T any] struct {
	noun  string
	deps  Deps
	fetch func(ctx context.Context, q service.Query) ([]*T, error)

	items []*T
	count int

	multiSelect    bool
	selected       *T
	selectedItems  []*T
	selectedRanges []IndexRange
}

func newListCore[T any](noun string, deps Deps, fetch func(context.Context, service.Query) ([]*T, error)) *ListCore[T] {
	return &ListCore[T]{noun: noun, deps: deps, fetch: fetch, items: []*T{}}
}

// Refresh fetches the query's collection and replaces the bound slice
// wholesale. On failure the collection is left empty with an error status
// and a log entry: the view never mixes stale data with an error state.
func (l *ListCore[T]) Refresh(ctx context.Context, q service.Query) bool {
	l.deps.Status.StatusStart(fmt.Sprintf("Loading %s...", l.noun))
	items, err := l.fetch(ctx, q)
	if err != nil {
		l.items = []*T{}
		l.count = 0
		l.clearSelection()
		msg := fmt.Sprintf("Error loading %s: %s", l.noun, err)
		l.deps.Status.StatusError(msg)
		l.deps.Log.Error(l.noun, "Refresh", msg, err.Error())
		return false
	}
	l.items = items
	l.count = len(items)
	l.resetSelection()
	l.deps.Status.StatusReady(fmt.Sprintf("%d %s loaded", l.count, l.noun))
	return true
}

// Empty clears the collection without fetching.
func (l *ListCore[T]) Empty() {
	l.items = []*T{}
	l.count = 0
	l.clearSelection()
}

// Items returns the bound collection.
func (l *ListCore[T]) Items() []*T { return l.items }

// Count returns the display count recomputed on the last refresh.
func (l *ListCore[T]) Count() int { return l.count }

// Selected returns the single-select item, nil when nothing is selected
// or multi-select is active.
func (l *ListCore[T]) Selected() *T {
	if l.multiSelect {
		return nil
	}
	return l.selected
}

// SelectIndex sets the single-select item by position; out-of-range
// clears it.
func (l *ListCore[T]) SelectIndex(i int) {
	if i < 0 || i >= len(l.items) {
		l.selected = nil
		return
	}
	l.selected = l.items[i]
}

// MultiSelect reports whether multi-select mode is active.
func (l *ListCore[T]) MultiSelect() bool { return l.multiSelect }

// BeginMultiSelect enters multi-select mode and clears the single
// selection.
func (l *ListCore[T]) BeginMultiSelect() {
	l.multiSelect = true
	l.selected = nil
}

// EndMultiSelect leaves multi-select mode and drops any accumulated sets.
func (l *ListCore[T]) EndMultiSelect() {
	l.multiSelect = false
	l.selectedItems = nil
	l.selectedRanges = nil
	l.resetSelection()
}

// SetSelectedItems records a set of individually selected items,
// displacing any range selection.
func (l *ListCore[T]) SetSelectedItems(items []*T) {
	l.selectedItems = items
	l.selectedRanges = nil
}

// SetSelectedRanges records a set of contiguous index ranges, displacing
// any item selection.
func (l *ListCore[T]) SetSelectedRanges(ranges []IndexRange) {
	l.selectedRanges = ranges
	l.selectedItems = nil
}

// SelectedItems returns the multi-select item set.
func (l *ListCore[T]) SelectedItems() []*T { return l.selectedItems }

// SelectedRanges returns the multi-select range set.
func (l *ListCore[T]) SelectedRanges() []IndexRange { return l.selectedRanges }

// SelectionCount returns how many items the current selection covers.
func (l *ListCore[T]) SelectionCount() int {
	switch {
	case len(l.selectedRanges) > 0:
		return TotalLength(NormalizeRanges(l.selectedRanges))
	case len(l.selectedItems) > 0:
		return len(l.selectedItems)
	case !l.multiSelect && l.selected != nil:
		return 1
	default:
		return 0
	}
}

// resetSelection applies the post-refresh selection policy: first item in
// single-select mode, nothing in multi-select mode.
func (l *ListCore[T]) resetSelection() {
	l.selectedItems = nil
	l.selectedRanges = nil
	if l.multiSelect {
		l.selected = nil
		return
	}
	if len(l.items) > 0 {
		l.selected = l.items[0]
	} else {
		l.selected = nil
	}
}

func (l *ListCore[T]) clearSelection() {
	l.selected = nil
	l.selectedItems = nil
	l.selectedRanges = nil
}

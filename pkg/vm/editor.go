package vm

import (
	"context"
	"fmt"
	"strings"
)

// EditorHooks supplies the entity-specific pieces of the edit lifecycle.
// Detail view-models implement it and compose an Editor rather than
// inheriting shared behavior.
type EditorHooks[T any] interface {
	SaveItem(ctx context.Context, item *T) error
	DeleteItem(ctx context.Context, item *T) error
	ConfirmDelete() bool
	Rules() []Rule[T]
}

// Editor orchestrates validate/save/delete for one entity type: status
// messages around the service call, a structured log entry for the
// outcome, and a boolean result. No error escapes this boundary.
type Editor[T any] struct {
	Noun  string
	Deps  Deps
	Hooks EditorHooks[T]
}

// Validate evaluates the hooks' rules against the item.
func (e *Editor[T]) Validate(item *T) []Violation {
	return Validate(item, e.Hooks.Rules())
}

// Save persists the item. Returns false if validation blocks the save or
// the service fails; the failure is surfaced as status text and, for
// service errors, a log entry.
func (e *Editor[T]) Save(ctx context.Context, item *T) bool {
	if violations := e.Validate(item); len(violations) > 0 {
		e.Deps.Status.StatusWarning(violations[0].Message)
		return false
	}
	noun := strings.ToLower(e.Noun)
	e.Deps.Status.StatusStart(fmt.Sprintf("Saving %s...", noun))
	if err := e.Hooks.SaveItem(ctx, item); err != nil {
		msg := fmt.Sprintf("Error saving %s: %s", noun, err)
		e.Deps.Status.StatusError(msg)
		e.Deps.Log.Error(e.Noun, "Save", msg, err.Error())
		return false
	}
	e.Deps.Status.StatusReady(fmt.Sprintf("%s saved", e.Noun))
	e.Deps.Log.Info(e.Noun, "Save", fmt.Sprintf("%s saved", e.Noun), "")
	return true
}

// Delete removes the item after the hooks' confirmation gate. A declined
// confirmation aborts with no side effects.
func (e *Editor[T]) Delete(ctx context.Context, item *T) bool {
	if !e.Hooks.ConfirmDelete() {
		return false
	}
	noun := strings.ToLower(e.Noun)
	e.Deps.Status.StatusStart(fmt.Sprintf("Deleting %s...", noun))
	if err := e.Hooks.DeleteItem(ctx, item); err != nil {
		msg := fmt.Sprintf("Error deleting %s: %s", noun, err)
		e.Deps.Status.StatusError(msg)
		e.Deps.Log.Error(e.Noun, "Delete", msg, err.Error())
		return false
	}
	e.Deps.Status.StatusReady(fmt.Sprintf("%s deleted", e.Noun))
	e.Deps.Log.Info(e.Noun, "Delete", fmt.Sprintf("%s deleted", e.Noun), "")
	return true
}

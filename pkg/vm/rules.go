package vm

import "strings"

// Violation is one failed field constraint, surfaced to the UI. Validation
// failures block save locally and are never logged as errors.
type Violation struct {
	Field   string
	Message string
}

// Rule is a declarative field constraint: a selector plus a predicate,
// evaluated eagerly before save.
type Rule[T any] struct {
	Field   string
	Message string
	Valid   func(*T) bool
}

// Validate evaluates every rule and collects all failures.
func Validate[T any](item *T, rules []Rule[T]) []Violation {
	if item == nil {
		return nil
	}
	var out []Violation
	for _, r := range rules {
		if r.Valid != nil && !r.Valid(item) {
			out = append(out, Violation{Field: r.Field, Message: r.Message})
		}
	}
	return out
}

// Required builds a non-empty-string constraint for the named field.
func Required[T any](field string, get func(*T) string) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: field + " must not be empty",
		Valid: func(item *T) bool {
			return strings.TrimSpace(get(item)) != ""
		},
	}
}

// Positive builds a greater-than-zero constraint for the named field.
func Positive[T any](field string, get func(*T) float64) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: field + " must be greater than zero",
		Valid: func(item *T) bool {
			return get(item) > 0
		},
	}
}

package catalog

import (
	"slices"

	"campushub/internal/domain"
)

// Schema describes how one page specializes the generic entity
type Schema[T any] struct {
	Name        string
	Title       string
	Categories  []string // closed category set
	Transitions []domain.TransitionKind

	// SearchText returns extra page-specific fields matched by the text criterion
	SearchText func(T) []string

	// Numeric extracts the field the threshold criterion applies to
	Numeric      func(*domain.Entity[T]) (float64, bool)
	NumericLabel string
	Bound        Bound
}

// Supports reports whether kind is in the page's transition set
func (s Schema[T]) Supports(kind domain.TransitionKind) bool {
	return slices.Contains(s.Transitions, kind)
}

// HasCategory reports whether category belongs to the closed set
func (s Schema[T]) HasCategory(category string) bool {
	return slices.Contains(s.Categories, category)
}

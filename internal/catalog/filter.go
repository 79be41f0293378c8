package catalog

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"campushub/internal/domain"
)

// Predicate is one independent filter condition
type Predicate[T any] func(*domain.Entity[T]) bool

// Chain is a set of predicates combined with logical AND
type Chain[T any] struct {
	predicates []Predicate[T]
}

// NewChain builds a chain from explicit predicates
func NewChain[T any](predicates ...Predicate[T]) Chain[T] {
	return Chain[T]{predicates: predicates}
}

// Build turns criteria into a chain. Inactive or malformed criteria add no
// predicate. now anchors the date buckets.
func Build[T any](schema Schema[T], c Criteria, now time.Time) Chain[T] {
	var chain Chain[T]

	if text := strings.TrimSpace(c.Text); text != "" {
		chain.predicates = append(chain.predicates, textPredicate(schema, text))
	}

	if categoryActive(c.Category) {
		category := strings.TrimSpace(c.Category)
		chain.predicates = append(chain.predicates, func(e *domain.Entity[T]) bool {
			return e.Category == category
		})
	}

	if c.DateBucket != BucketAny && c.DateBucket.Valid() {
		start, end := bucketRange(c.DateBucket, now)
		chain.predicates = append(chain.predicates, func(e *domain.Entity[T]) bool {
			d := e.PrimaryDate()
			if d.IsZero() {
				return false
			}
			return !d.Before(start) && d.Before(end)
		})
	}

	if c.Threshold != nil && schema.Numeric != nil {
		threshold := *c.Threshold
		bound := schema.Bound
		chain.predicates = append(chain.predicates, func(e *domain.Entity[T]) bool {
			v, ok := schema.Numeric(e)
			if !ok {
				return false
			}
			if bound == AtLeast {
				return v >= threshold
			}
			return v <= threshold
		})
	}

	for flag, state := range c.Flags {
		chain.predicates = append(chain.predicates, func(e *domain.Entity[T]) bool {
			return e.Flags.Has(flag) == state
		})
	}

	return chain
}

// And returns a chain requiring both c and other
func (c Chain[T]) And(other Chain[T]) Chain[T] {
	predicates := make([]Predicate[T], 0, len(c.predicates)+len(other.predicates))
	predicates = append(predicates, c.predicates...)
	predicates = append(predicates, other.predicates...)
	return Chain[T]{predicates: predicates}
}

// Len returns the number of active predicates
func (c Chain[T]) Len() int {
	return len(c.predicates)
}

// Matches reports whether e satisfies every predicate
func (c Chain[T]) Matches(e *domain.Entity[T]) bool {
	for _, p := range c.predicates {
		if !p(e) {
			return false
		}
	}
	return true
}

// Apply returns the matching entities in their original order
func (c Chain[T]) Apply(entities []*domain.Entity[T]) []*domain.Entity[T] {
	return lo.Filter(entities, func(e *domain.Entity[T], _ int) bool {
		return c.Matches(e)
	})
}

// Filter is Build followed by Apply
func Filter[T any](schema Schema[T], entities []*domain.Entity[T], c Criteria, now time.Time) []*domain.Entity[T] {
	return Build(schema, c, now).Apply(entities)
}

func textPredicate[T any](schema Schema[T], text string) Predicate[T] {
	caser := cases.Fold()
	needle := caser.String(text)

	return func(e *domain.Entity[T]) bool {
		fields := make([]string, 0, 2+len(e.Tags))
		fields = append(fields, e.Title, e.Description)
		fields = append(fields, e.Tags...)
		if schema.SearchText != nil {
			fields = append(fields, schema.SearchText(e.Fields)...)
		}
		return lo.SomeBy(fields, func(field string) bool {
			return strings.Contains(caser.String(field), needle)
		})
	}
}

// bucketRange returns the half-open interval [start, end) for a bucket.
// Weeks start on Sunday.
func bucketRange(b DateBucket, now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch b {
	case BucketToday:
		return midnight, midnight.AddDate(0, 0, 1)
	case BucketThisWeek:
		start := midnight.AddDate(0, 0, -int(now.Weekday()))
		return start, start.AddDate(0, 0, 7)
	case BucketThisMonth:
		start := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	default:
		return time.Time{}, time.Time{}
	}
}

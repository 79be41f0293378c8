package catalog

import (
	"slices"
	"time"

	"github.com/samber/lo"

	"campushub/internal/domain"
)

// ViewKind selects a derived projection of the visible list
type ViewKind int

const (
	ViewAll ViewKind = iota
	ViewTop
	ViewUpcoming
	ViewMine
)

func (v ViewKind) String() string {
	switch v {
	case ViewTop:
		return "top"
	case ViewUpcoming:
		return "upcoming"
	case ViewMine:
		return "mine"
	default:
		return "all"
	}
}

// ParseViewKind resolves a view name, defaulting to ViewAll
func ParseViewKind(s string) (ViewKind, bool) {
	for _, v := range []ViewKind{ViewAll, ViewTop, ViewUpcoming, ViewMine} {
		if v.String() == s {
			return v, true
		}
	}
	return ViewAll, false
}

// TopByScore returns the first n entities by descending score. Ties and
// unscored entities keep insertion order; unscored entities rank last.
// n <= 0 returns all of them.
func TopByScore[T any](entities []*domain.Entity[T], n int) []*domain.Entity[T] {
	sorted := slices.Clone(entities)
	slices.SortStableFunc(sorted, func(a, b *domain.Entity[T]) int {
		switch {
		case a.Score == nil && b.Score == nil:
			return 0
		case a.Score == nil:
			return 1
		case b.Score == nil:
			return -1
		case *a.Score > *b.Score:
			return -1
		case *a.Score < *b.Score:
			return 1
		default:
			return 0
		}
	})

	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Upcoming returns entities whose primary date is strictly after now and
// no later than withinDays days from now, earliest first
func Upcoming[T any](entities []*domain.Entity[T], now time.Time, withinDays int) []*domain.Entity[T] {
	limit := now.AddDate(0, 0, withinDays)
	upcoming := lo.Filter(entities, func(e *domain.Entity[T], _ int) bool {
		d := e.PrimaryDate()
		return !d.IsZero() && d.After(now) && !d.After(limit)
	})

	slices.SortStableFunc(upcoming, func(a, b *domain.Entity[T]) int {
		return a.PrimaryDate().Compare(b.PrimaryDate())
	})
	return upcoming
}

// Mine returns entities with flag set, in insertion order
func Mine[T any](entities []*domain.Entity[T], flag domain.Flag) []*domain.Entity[T] {
	return lo.Filter(entities, func(e *domain.Entity[T], _ int) bool {
		return e.Flags.Has(flag)
	})
}

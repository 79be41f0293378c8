package campus

import (
	"time"

	"github.com/samber/lo"

	"campushub/internal/catalog"
	"campushub/internal/domain"
	"campushub/internal/eventbus"
)

// Detail is one labelled page-specific value
type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Row is the page-independent projection of an entity that hosts render
type Row struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Tags        []string       `json:"tags,omitempty"`
	Score       *float64       `json:"score,omitempty"`
	Dates       []time.Time    `json:"dates,omitempty"`
	Flags       []string       `json:"flags,omitempty"`
	Counts      *domain.Counts `json:"counts,omitempty"`
	Numeric     *float64       `json:"numeric,omitempty"`
	Details     []Detail       `json:"details,omitempty"`
}

// Date returns the primary date, or the zero time
func (r Row) Date() time.Time {
	if len(r.Dates) == 0 {
		return time.Time{}
	}
	return r.Dates[0]
}

// HasFlag reports whether the named flag is set
func (r Row) HasFlag(f domain.Flag) bool {
	return lo.Contains(r.Flags, f.String())
}

// ViewOptions parameterizes Derived
type ViewOptions struct {
	TopN         int
	UpcomingDays int
	Flag         domain.Flag // mine view; zero uses the page default
}

// Board is the page surface the hosts talk to, independent of the page's
// field type
type Board interface {
	Name() string
	Title() string
	Categories() []string
	Transitions() []domain.TransitionKind
	NumericLabel() string
	Bound() catalog.Bound
	MineFlag() domain.Flag

	Criteria() catalog.Criteria
	SetCriteria(c catalog.Criteria) []Row
	Visible() []Row
	Mutate(id string, kind domain.TransitionKind) ([]Row, *domain.Notification)
	Derived(view catalog.ViewKind, opts ViewOptions) []Row
	Detail(id string) (Row, bool)
	Len() int
}

type board[T any] struct {
	page *catalog.Page[T]
	spec pageSpec[T]
	bus  eventbus.EventBus // optional
}

func newBoard[T any](page *catalog.Page[T], spec pageSpec[T], bus eventbus.EventBus) *board[T] {
	b := &board[T]{page: page, spec: spec, bus: bus}
	b.publish(eventbus.StoreSeededEvent{Page: spec.schema.Name, Count: page.Store().Len()})
	return b
}

func (b *board[T]) publish(e eventbus.DomainEvent) {
	if b.bus != nil {
		b.bus.Publish(e)
	}
}

func (b *board[T]) Name() string                         { return b.spec.schema.Name }
func (b *board[T]) Title() string                        { return b.spec.schema.Title }
func (b *board[T]) Categories() []string                 { return b.spec.schema.Categories }
func (b *board[T]) Transitions() []domain.TransitionKind { return b.spec.schema.Transitions }
func (b *board[T]) NumericLabel() string                 { return b.spec.schema.NumericLabel }
func (b *board[T]) Bound() catalog.Bound                 { return b.spec.schema.Bound }
func (b *board[T]) MineFlag() domain.Flag                { return b.spec.mine }
func (b *board[T]) Criteria() catalog.Criteria           { return b.page.Criteria() }
func (b *board[T]) Len() int                             { return b.page.Store().Len() }
func (b *board[T]) Visible() []Row                       { return b.rows(b.page.Visible()) }

func (b *board[T]) SetCriteria(c catalog.Criteria) []Row {
	rows := b.rows(b.page.SetCriteria(c))
	b.publish(eventbus.CriteriaChangedEvent{Page: b.Name(), Visible: len(rows)})
	return rows
}

func (b *board[T]) Mutate(id string, kind domain.TransitionKind) ([]Row, *domain.Notification) {
	entities, n := b.page.Mutate(id, kind)
	if n != nil {
		if e, ok := b.page.Store().Get(id); ok {
			b.publish(eventbus.EntityMutatedEvent{Page: b.Name(), EntityID: id, Kind: kind, Flags: e.Flags})
		}
	}
	return b.rows(entities), n
}

func (b *board[T]) Derived(view catalog.ViewKind, opts ViewOptions) []Row {
	switch view {
	case catalog.ViewTop:
		return b.rows(b.page.TopByScore(opts.TopN))
	case catalog.ViewUpcoming:
		return b.rows(b.page.Upcoming(opts.UpcomingDays))
	case catalog.ViewMine:
		flag := opts.Flag
		if flag == 0 {
			flag = b.spec.mine
		}
		return b.rows(b.page.Mine(flag))
	default:
		return b.Visible()
	}
}

func (b *board[T]) Detail(id string) (Row, bool) {
	e, ok := b.page.Store().Get(id)
	if !ok {
		return Row{}, false
	}
	return b.row(e), true
}

func (b *board[T]) rows(entities []*domain.Entity[T]) []Row {
	return lo.Map(entities, func(e *domain.Entity[T], _ int) Row {
		return b.row(e)
	})
}

func (b *board[T]) row(e *domain.Entity[T]) Row {
	r := Row{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		Tags:        e.Tags,
		Score:       e.Score,
		Dates:       e.Dates,
		Flags:       e.Flags.Names(),
	}
	if e.Counts != nil {
		counts := *e.Counts
		r.Counts = &counts
	}
	if b.spec.schema.Numeric != nil {
		if v, ok := b.spec.schema.Numeric(e); ok {
			r.Numeric = &v
		}
	}
	if b.spec.details != nil {
		r.Details = b.spec.details(e.Fields)
	}
	return r
}

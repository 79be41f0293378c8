package catalog

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"campushub/internal/domain"
)

// Notifier receives notifications produced by mutations
type Notifier interface {
	Notify(n domain.Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(domain.Notification)

func (f NotifierFunc) Notify(n domain.Notification) { f(n) }

// Deps is the capability bundle a page is constructed with
type Deps struct {
	Clock    func() time.Time
	Notifier Notifier // optional
	Logger   *log.Logger
	NewID    func() string // notification ids; optional
}

func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	return d
}

// Page is one catalog page session: a store, its schema and the current
// filter criteria
type Page[T any] struct {
	mu       sync.Mutex
	schema   Schema[T]
	store    *Store[T]
	criteria Criteria
	deps     Deps
	logger   *log.Logger
}

// NewPage seeds a new page session
func NewPage[T any](schema Schema[T], seed []domain.Entity[T], deps Deps) (*Page[T], error) {
	deps = deps.withDefaults()
	store := NewStore[T]()
	if err := store.Initialize(seed); err != nil {
		return nil, fmt.Errorf("seed page %s: %w", schema.Name, err)
	}

	p := &Page[T]{
		schema: schema,
		store:  store,
		deps:   deps,
		logger: deps.Logger.With("page", schema.Name),
	}
	p.logger.Debug("store seeded", "count", store.Len())
	return p, nil
}

// Schema returns the page schema
func (p *Page[T]) Schema() Schema[T] {
	return p.schema
}

// Store returns the underlying store
func (p *Page[T]) Store() *Store[T] {
	return p.store
}

// Criteria returns the current filter criteria
func (p *Page[T]) Criteria() Criteria {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.criteria
}

// SetCriteria records c and returns the recomputed visible list
func (p *Page[T]) SetCriteria(c Criteria) []*domain.Entity[T] {
	p.mu.Lock()
	p.criteria = c
	p.mu.Unlock()

	visible := p.Visible()
	p.logger.Debug("criteria changed", "text", c.Text, "category", c.Category, "bucket", c.DateBucket, "visible", len(visible))
	return visible
}

// Visible applies the current criteria to the store
func (p *Page[T]) Visible() []*domain.Entity[T] {
	return Filter(p.schema, p.store.All(), p.Criteria(), p.deps.Clock())
}

// Mutate applies kind to one entity and returns the full updated list
// together with the notification, if any. Unknown ids and kinds outside
// the page's transition set are no-ops.
func (p *Page[T]) Mutate(id string, kind domain.TransitionKind) ([]*domain.Entity[T], *domain.Notification) {
	n, next := p.mutate(id, kind)
	if n != nil && p.deps.Notifier != nil {
		p.deps.Notifier.Notify(*n)
	}
	return next, n
}

// mutate runs the reducer under the lock. Notifying happens after it is
// released so notifiers may call back into the page.
func (p *Page[T]) mutate(id string, kind domain.TransitionKind) (*domain.Notification, []*domain.Entity[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.schema.Supports(kind) {
		p.logger.Debug("transition not supported", "kind", kind, "id", id)
		return nil, p.store.All()
	}

	out := Reduce(p.store.All(), id, kind)
	if out.Changed == nil {
		p.logger.Debug("mutation ignored", "kind", kind, "id", id)
		return nil, out.Entities
	}
	p.store.Replace(out.Entities)

	n := out.Notification
	n.Page = p.schema.Name
	n.Time = p.deps.Clock()
	if p.deps.NewID != nil {
		n.ID = p.deps.NewID()
	}
	p.logger.Debug("entity mutated", "kind", kind, "id", id, "flags", out.Changed.Flags.Names())
	return n, p.store.All()
}

// TopByScore projects the visible list by score
func (p *Page[T]) TopByScore(n int) []*domain.Entity[T] {
	return TopByScore(p.Visible(), n)
}

// Upcoming projects the visible list to dated entities within the window
func (p *Page[T]) Upcoming(withinDays int) []*domain.Entity[T] {
	return Upcoming(p.Visible(), p.deps.Clock(), withinDays)
}

// Mine projects the visible list to entities with flag set
func (p *Page[T]) Mine(flag domain.Flag) []*domain.Entity[T] {
	return Mine(p.Visible(), flag)
}

package campus

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"campushub/internal/catalog"
	"campushub/internal/domain"
	"campushub/internal/eventbus"
)

// ErrUnknownPage is returned when a page name is not registered
var ErrUnknownPage = errors.New("unknown page")

// Options configures a Registry
type Options struct {
	Clock  func() time.Time
	Logger *log.Logger
	Bus    eventbus.EventBus // optional; receives seeding, criteria, mutation and notification events
	NewID  func() string     // notification ids, defaults to random UUIDs
}

// Registry owns one board per campus page for a session
type Registry struct {
	boards []Board
	byName map[string]Board
}

type builder func(now time.Time, deps catalog.Deps, bus eventbus.EventBus) (Board, error)

func build[T any](spec pageSpec[T]) builder {
	return func(now time.Time, deps catalog.Deps, bus eventbus.EventBus) (Board, error) {
		seed, err := loadSeed(spec.schema, now)
		if err != nil {
			return nil, err
		}
		page, err := catalog.NewPage(spec.schema, seed, deps)
		if err != nil {
			return nil, err
		}
		return newBoard(page, spec, bus), nil
	}
}

// builders lists the pages in tab order
var builders = []builder{
	build(eventsPage()),
	build(clubsPage()),
	build(hackathonsPage()),
	build(pyqsPage()),
	build(libraryMatesPage()),
	build(roommatesPage()),
	build(jobsPage()),
}

// busNotifier forwards page notifications to the event bus
type busNotifier struct {
	bus eventbus.EventBus
}

func (n busNotifier) Notify(notification domain.Notification) {
	n.bus.Publish(eventbus.NotificationEvent{Notification: notification})
}

// NewRegistry seeds every page. Relative seed dates resolve against the
// clock at construction time.
func NewRegistry(opts Options) (*Registry, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	deps := catalog.Deps{
		Clock:  opts.Clock,
		Logger: opts.Logger,
		NewID:  opts.NewID,
	}
	if opts.Bus != nil {
		deps.Notifier = busNotifier{bus: opts.Bus}
	}

	now := opts.Clock()
	r := &Registry{byName: make(map[string]Board, len(builders))}
	for _, buildPage := range builders {
		b, err := buildPage(now, deps, opts.Bus)
		if err != nil {
			return nil, err
		}
		r.boards = append(r.boards, b)
		r.byName[b.Name()] = b
	}

	opts.Logger.Info("pages seeded", "pages", len(r.boards))
	return r, nil
}

// Boards returns the boards in tab order
func (r *Registry) Boards() []Board {
	return r.boards
}

// Names returns the page names in tab order
func (r *Registry) Names() []string {
	return lo.Map(r.boards, func(b Board, _ int) string { return b.Name() })
}

// Board looks a page up by name, case-insensitively
func (r *Registry) Board(name string) (Board, error) {
	if b, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownPage, name, strings.Join(r.Names(), ", "))
}

// Index returns the tab position of a page, or -1
func (r *Registry) Index(name string) int {
	return lo.IndexOf(r.Names(), strings.ToLower(strings.TrimSpace(name)))
}

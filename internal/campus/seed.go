package campus

import (
	"embed"
	"errors"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"campushub/internal/catalog"
	"campushub/internal/domain"
)

//go:embed seeds/*.yaml
var seedFS embed.FS

// ErrInvalidSeed is returned when embedded seed data is malformed
var ErrInvalidSeed = errors.New("invalid seed")

// seedDate is either an absolute date or an offset from today
type seedDate struct {
	At          string `yaml:"at"`            // RFC 3339 timestamp or YYYY-MM-DD
	DaysFromNow *int   `yaml:"days_from_now"` // relative to today's midnight
	Time        string `yaml:"time"`          // HH:MM, relative dates only
}

type seedRecord[T any] struct {
	ID           string     `yaml:"id"`
	Title        string     `yaml:"title"`
	Description  string     `yaml:"description"`
	Category     string     `yaml:"category"`
	Tags         []string   `yaml:"tags"`
	Score        *float64   `yaml:"score"`
	Dates        []seedDate `yaml:"dates"`
	Flags        []string   `yaml:"flags"`
	Participants *int       `yaml:"participants"`
	Max          int        `yaml:"max"`
	Fields       T          `yaml:"fields"`
}

// loadSeed reads seeds/<page>.yaml and resolves it against now
func loadSeed[T any](schema catalog.Schema[T], now time.Time) ([]domain.Entity[T], error) {
	data, err := seedFS.ReadFile("seeds/" + schema.Name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", schema.Name, err)
	}
	return parseSeed(schema, data, now)
}

func parseSeed[T any](schema catalog.Schema[T], data []byte, now time.Time) ([]domain.Entity[T], error) {
	var records []seedRecord[T]
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", schema.Name, err)
	}

	entities := make([]domain.Entity[T], 0, len(records))
	for _, r := range records {
		e, err := r.entity(schema, now)
		if err != nil {
			return nil, fmt.Errorf("seed %s: entity %q: %w", schema.Name, r.ID, err)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (r seedRecord[T]) entity(schema catalog.Schema[T], now time.Time) (domain.Entity[T], error) {
	if r.ID == "" {
		return domain.Entity[T]{}, fmt.Errorf("%w: missing id", ErrInvalidSeed)
	}
	if !schema.HasCategory(r.Category) {
		return domain.Entity[T]{}, fmt.Errorf("%w: category %q not in %v", ErrInvalidSeed, r.Category, schema.Categories)
	}

	e := domain.Entity[T]{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Tags:        r.Tags,
		Score:       r.Score,
		Fields:      r.Fields,
	}

	for _, d := range r.Dates {
		t, err := d.resolve(now)
		if err != nil {
			return domain.Entity[T]{}, err
		}
		e.Dates = append(e.Dates, t)
	}

	for _, name := range r.Flags {
		flag, ok := domain.ParseFlag(name)
		if !ok {
			return domain.Entity[T]{}, fmt.Errorf("%w: unknown flag %q", ErrInvalidSeed, name)
		}
		if !slices.ContainsFunc(schema.Transitions, func(k domain.TransitionKind) bool {
			f, _ := catalog.FlagFor(k)
			return f == flag
		}) {
			return domain.Entity[T]{}, fmt.Errorf("%w: flag %q not used by page", ErrInvalidSeed, name)
		}
		e.Flags = e.Flags.With(flag)
	}

	if r.Participants != nil {
		e.Counts = &domain.Counts{Participants: *r.Participants, Max: r.Max}
	}
	return e, nil
}

func (d seedDate) resolve(now time.Time) (time.Time, error) {
	switch {
	case d.At != "" && d.DaysFromNow != nil:
		return time.Time{}, fmt.Errorf("%w: date has both at and days_from_now", ErrInvalidSeed)

	case d.At != "":
		if t, err := time.Parse(time.RFC3339, d.At); err == nil {
			return t, nil
		}
		t, err := time.ParseInLocation(time.DateOnly, d.At, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: date %q: %v", ErrInvalidSeed, d.At, err)
		}
		return t, nil

	case d.DaysFromNow != nil:
		y, m, day := now.Date()
		t := time.Date(y, m, day+*d.DaysFromNow, 0, 0, 0, 0, now.Location())
		if d.Time != "" {
			clock, err := time.Parse("15:04", d.Time)
			if err != nil {
				return time.Time{}, fmt.Errorf("%w: time %q: %v", ErrInvalidSeed, d.Time, err)
			}
			t = t.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
		}
		return t, nil

	default:
		return time.Time{}, fmt.Errorf("%w: empty date", ErrInvalidSeed)
	}
}

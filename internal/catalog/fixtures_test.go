package catalog

import (
	"time"

	"campushub/internal/domain"
)

type eventFields struct {
	Venue string
	Price float64
}

// wednesday is the fixed "now" for date-dependent tests
var wednesday = time.Date(2023, time.November, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return wednesday }

func score(v float64) *float64 { return &v }

func eventSchema() Schema[eventFields] {
	return Schema[eventFields]{
		Name:        "events",
		Title:       "Events",
		Categories:  []string{"Technical", "Cultural", "Sports", "Workshop", "Seminar"},
		Transitions: []domain.TransitionKind{domain.ToggleRegistered, domain.ToggleSaved, domain.ToggleInterested},
		SearchText:  func(f eventFields) []string { return []string{f.Venue} },
		Numeric: func(e *domain.Entity[eventFields]) (float64, bool) {
			return e.Fields.Price, true
		},
		NumericLabel: "price",
		Bound:        AtMost,
	}
}

func eventSeed() []domain.Entity[eventFields] {
	return []domain.Entity[eventFields]{
		{
			ID:          "evt-1",
			Title:       "Tech Summit 2023",
			Description: "Talks on cloud and AI from industry speakers",
			Category:    "Technical",
			Tags:        []string{"cloud", "ai"},
			Score:       score(4.6),
			Dates:       []time.Time{time.Date(2023, time.October, 20, 9, 0, 0, 0, time.UTC)},
			Counts:      &domain.Counts{Participants: 120, Max: 200},
			Fields:      eventFields{Venue: "Main Auditorium", Price: 0},
		},
		{
			ID:          "evt-2",
			Title:       "Cultural Night",
			Description: "Music and dance performances by student societies",
			Category:    "Cultural",
			Tags:        []string{"music", "dance"},
			Score:       score(4.8),
			Dates:       []time.Time{time.Date(2023, time.November, 15, 18, 0, 0, 0, time.UTC)},
			Counts:      &domain.Counts{Participants: 300, Max: 500},
			Fields:      eventFields{Venue: "Open Air Theatre", Price: 50},
		},
		{
			ID:          "evt-3",
			Title:       "Football Finals",
			Description: "Inter-hostel football championship final",
			Category:    "Sports",
			Tags:        []string{"football"},
			Score:       score(4.2),
			Dates:       []time.Time{time.Date(2023, time.November, 13, 16, 0, 0, 0, time.UTC)},
			Flags:       domain.NewFlags(domain.FlagSaved),
			Counts:      &domain.Counts{Participants: 40, Max: 44},
			Fields:      eventFields{Venue: "Sports Complex", Price: 0},
		},
		{
			ID:          "evt-4",
			Title:       "Photography Workshop",
			Description: "Hands-on session on composition and lighting",
			Category:    "Workshop",
			Tags:        []string{"photography", "arts"},
			Score:       score(4.8),
			Dates:       []time.Time{time.Date(2023, time.November, 20, 10, 0, 0, 0, time.UTC)},
			Counts:      &domain.Counts{Participants: 18, Max: 25},
			Fields:      eventFields{Venue: "Media Lab", Price: 200},
		},
		{
			ID:          "evt-5",
			Title:       "Career Seminar",
			Description: "Alumni share placement preparation advice",
			Category:    "Seminar",
			Tags:        []string{"career", "placements"},
			Dates:       []time.Time{time.Date(2023, time.December, 1, 11, 0, 0, 0, time.UTC)},
			Flags:       domain.NewFlags(domain.FlagRegistered, domain.FlagInterested),
			Counts:      &domain.Counts{Participants: 75, Max: 150},
			Fields:      eventFields{Venue: "Seminar Hall", Price: 0},
		},
	}
}

func seededEntities() []*domain.Entity[eventFields] {
	s := NewStore[eventFields]()
	if err := s.Initialize(eventSeed()); err != nil {
		panic(err)
	}
	return s.All()
}

func ids[T any](entities []*domain.Entity[T]) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.ID
	}
	return out
}

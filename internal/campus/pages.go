package campus

import (
	"fmt"
	"strconv"
	"strings"

	"campushub/internal/catalog"
	"campushub/internal/domain"
)

// Page names
const (
	PageEvents       = "events"
	PageClubs        = "clubs"
	PageHackathons   = "hackathons"
	PagePYQs         = "pyqs"
	PageLibraryMates = "librarymates"
	PageRoommates    = "roommates"
	PageJobs         = "jobs"
)

// EventFields is the page-specific record of a campus event
type EventFields struct {
	Venue     string  `yaml:"venue"`
	Organizer string  `yaml:"organizer"`
	Price     float64 `yaml:"price"`
}

// ClubFields describes a student club
type ClubFields struct {
	President  string  `yaml:"president"`
	MeetingDay string  `yaml:"meeting_day"`
	Fee        float64 `yaml:"fee"`
}

// HackathonFields describes a hackathon. Dates are start and end.
type HackathonFields struct {
	Organizer string  `yaml:"organizer"`
	Mode      string  `yaml:"mode"`
	Prize     float64 `yaml:"prize"`
	TeamSize  int     `yaml:"team_size"`
}

// PYQFields describes a previous-year question paper
type PYQFields struct {
	Subject    string `yaml:"subject"`
	CourseCode string `yaml:"course_code"`
	Year       int    `yaml:"year"`
	Semester   int    `yaml:"semester"`
}

// LibraryMateFields describes a study partner looking for company
type LibraryMateFields struct {
	Major        string   `yaml:"major"`
	Year         int      `yaml:"year"`
	Subjects     []string `yaml:"subjects"`
	Availability string   `yaml:"availability"`
}

// RoommateFields describes a roommate listing
type RoommateFields struct {
	Budget   float64  `yaml:"budget"`
	Location string   `yaml:"location"`
	Gender   string   `yaml:"gender"`
	Habits   []string `yaml:"habits"`
}

// JobFields describes a job or internship posting
type JobFields struct {
	Company  string  `yaml:"company"`
	Location string  `yaml:"location"`
	Stipend  float64 `yaml:"stipend"`
}

// pageSpec bundles a schema with how its page is presented
type pageSpec[T any] struct {
	schema  catalog.Schema[T]
	mine    domain.Flag // flag used by the "mine" view
	details func(T) []Detail
}

func money(v float64) string {
	if v == 0 {
		return "free"
	}
	return "₹" + strconv.FormatFloat(v, 'f', -1, 64)
}

func eventsPage() pageSpec[EventFields] {
	return pageSpec[EventFields]{
		schema: catalog.Schema[EventFields]{
			Name:        PageEvents,
			Title:       "Events",
			Categories:  []string{"Technical", "Cultural", "Sports", "Workshop", "Seminar"},
			Transitions: []domain.TransitionKind{domain.ToggleRegistered, domain.ToggleSaved, domain.ToggleInterested},
			SearchText: func(f EventFields) []string {
				return []string{f.Venue, f.Organizer}
			},
			Numeric: func(e *domain.Entity[EventFields]) (float64, bool) {
				return e.Fields.Price, true
			},
			NumericLabel: "price",
			Bound:        catalog.AtMost,
		},
		mine: domain.FlagRegistered,
		details: func(f EventFields) []Detail {
			return []Detail{
				{"Venue", f.Venue},
				{"Organizer", f.Organizer},
				{"Price", money(f.Price)},
			}
		},
	}
}

func clubsPage() pageSpec[ClubFields] {
	return pageSpec[ClubFields]{
		schema: catalog.Schema[ClubFields]{
			Name:        PageClubs,
			Title:       "Clubs",
			Categories:  []string{"Technical", "Cultural", "Sports", "Arts", "Social"},
			Transitions: []domain.TransitionKind{domain.ToggleJoined, domain.ToggleSaved},
			SearchText: func(f ClubFields) []string {
				return []string{f.President, f.MeetingDay}
			},
			Numeric: func(e *domain.Entity[ClubFields]) (float64, bool) {
				return e.Fields.Fee, true
			},
			NumericLabel: "fee",
			Bound:        catalog.AtMost,
		},
		mine: domain.FlagJoined,
		details: func(f ClubFields) []Detail {
			return []Detail{
				{"President", f.President},
				{"Meets", f.MeetingDay},
				{"Fee", money(f.Fee)},
			}
		},
	}
}

func hackathonsPage() pageSpec[HackathonFields] {
	return pageSpec[HackathonFields]{
		schema: catalog.Schema[HackathonFields]{
			Name:        PageHackathons,
			Title:       "Hackathons",
			Categories:  []string{"AI/ML", "Web", "Blockchain", "Open Innovation"},
			Transitions: []domain.TransitionKind{domain.ToggleRegistered, domain.ToggleSaved},
			SearchText: func(f HackathonFields) []string {
				return []string{f.Organizer, f.Mode}
			},
			Numeric: func(e *domain.Entity[HackathonFields]) (float64, bool) {
				return e.Fields.Prize, e.Fields.Prize > 0
			},
			NumericLabel: "prize",
			Bound:        catalog.AtLeast,
		},
		mine: domain.FlagRegistered,
		details: func(f HackathonFields) []Detail {
			return []Detail{
				{"Organizer", f.Organizer},
				{"Mode", f.Mode},
				{"Prize pool", money(f.Prize)},
				{"Team size", fmt.Sprintf("up to %d", f.TeamSize)},
			}
		},
	}
}

func pyqsPage() pageSpec[PYQFields] {
	return pageSpec[PYQFields]{
		schema: catalog.Schema[PYQFields]{
			Name:        PagePYQs,
			Title:       "PYQs",
			Categories:  []string{"CSE", "ECE", "ME", "Civil"},
			Transitions: []domain.TransitionKind{domain.ToggleSaved},
			SearchText: func(f PYQFields) []string {
				return []string{f.Subject, f.CourseCode}
			},
			Numeric: func(e *domain.Entity[PYQFields]) (float64, bool) {
				return float64(e.Fields.Year), e.Fields.Year > 0
			},
			NumericLabel: "year",
			Bound:        catalog.AtLeast,
		},
		mine: domain.FlagSaved,
		details: func(f PYQFields) []Detail {
			return []Detail{
				{"Subject", f.Subject},
				{"Course", f.CourseCode},
				{"Year", strconv.Itoa(f.Year)},
				{"Semester", strconv.Itoa(f.Semester)},
			}
		},
	}
}

func libraryMatesPage() pageSpec[LibraryMateFields] {
	return pageSpec[LibraryMateFields]{
		schema: catalog.Schema[LibraryMateFields]{
			Name:        PageLibraryMates,
			Title:       "Library mates",
			Categories:  []string{"Group", "Pair", "Silent"},
			Transitions: []domain.TransitionKind{domain.ToggleConnected},
			SearchText: func(f LibraryMateFields) []string {
				return append([]string{f.Major, f.Availability}, f.Subjects...)
			},
			Numeric: func(e *domain.Entity[LibraryMateFields]) (float64, bool) {
				return float64(e.Fields.Year), e.Fields.Year > 0
			},
			NumericLabel: "year",
			Bound:        catalog.AtMost,
		},
		mine: domain.FlagConnected,
		details: func(f LibraryMateFields) []Detail {
			return []Detail{
				{"Major", f.Major},
				{"Year", strconv.Itoa(f.Year)},
				{"Subjects", strings.Join(f.Subjects, ", ")},
				{"Available", f.Availability},
			}
		},
	}
}

func roommatesPage() pageSpec[RoommateFields] {
	return pageSpec[RoommateFields]{
		schema: catalog.Schema[RoommateFields]{
			Name:        PageRoommates,
			Title:       "Roommates",
			Categories:  []string{"Hostel", "Apartment", "PG"},
			Transitions: []domain.TransitionKind{domain.ToggleConnected, domain.ToggleSaved},
			SearchText: func(f RoommateFields) []string {
				return append([]string{f.Location, f.Gender}, f.Habits...)
			},
			Numeric: func(e *domain.Entity[RoommateFields]) (float64, bool) {
				return e.Fields.Budget, e.Fields.Budget > 0
			},
			NumericLabel: "budget",
			Bound:        catalog.AtMost,
		},
		mine: domain.FlagConnected,
		details: func(f RoommateFields) []Detail {
			return []Detail{
				{"Budget", money(f.Budget) + "/month"},
				{"Location", f.Location},
				{"Gender", f.Gender},
				{"Habits", strings.Join(f.Habits, ", ")},
			}
		},
	}
}

func jobsPage() pageSpec[JobFields] {
	return pageSpec[JobFields]{
		schema: catalog.Schema[JobFields]{
			Name:        PageJobs,
			Title:       "Jobs",
			Categories:  []string{"Internship", "Full-time", "Part-time"},
			Transitions: []domain.TransitionKind{domain.ToggleApplied, domain.ToggleSaved},
			SearchText: func(f JobFields) []string {
				return []string{f.Company, f.Location}
			},
			Numeric: func(e *domain.Entity[JobFields]) (float64, bool) {
				return e.Fields.Stipend, e.Fields.Stipend > 0
			},
			NumericLabel: "stipend",
			Bound:        catalog.AtLeast,
		},
		mine: domain.FlagApplied,
		details: func(f JobFields) []Detail {
			return []Detail{
				{"Company", f.Company},
				{"Location", f.Location},
				{"Stipend", money(f.Stipend)},
			}
		},
	}
}

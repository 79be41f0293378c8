package domain

import (
	"strings"
	"time"
)

// Entity is one record in a page's catalog (event, club, hackathon, job, ...).
// Page-specific data lives in Fields.
type Entity[T any] struct {
	ID          string
	Title       string
	Description string
	Category    string
	Tags        []string
	Score       *float64    // popularity, compatibility or rating; static seed data
	Dates       []time.Time // Dates[0] is the primary date
	Flags       Flags
	Counts      *Counts
	Fields      T
}

// Counts tracks participation for entities with a capacity
type Counts struct {
	Participants int `json:"participants"`
	Max          int `json:"max"`
}

// PrimaryDate returns the first date, or the zero time when the entity has none
func (e *Entity[T]) PrimaryDate() time.Time {
	if len(e.Dates) == 0 {
		return time.Time{}
	}
	return e.Dates[0]
}

// Clone returns a shallow copy with its own Counts.
// Tags, Dates and Fields are shared with the original.
func (e *Entity[T]) Clone() *Entity[T] {
	c := *e
	if e.Counts != nil {
		counts := *e.Counts
		c.Counts = &counts
	}
	return &c
}

// Flag is a named boolean on an entity
type Flag uint16

const (
	FlagSaved Flag = 1 << iota
	FlagRegistered
	FlagInterested
	FlagJoined
	FlagApplied
	FlagConnected
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{FlagSaved, "saved"},
	{FlagRegistered, "registered"},
	{FlagInterested, "interested"},
	{FlagJoined, "joined"},
	{FlagApplied, "applied"},
	{FlagConnected, "connected"},
}

// String returns the flag's name
func (f Flag) String() string {
	for _, fn := range flagNames {
		if fn.flag == f {
			return fn.name
		}
	}
	return "unknown"
}

// ParseFlag resolves a flag name case-insensitively
func ParseFlag(name string) (Flag, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, fn := range flagNames {
		if fn.name == name {
			return fn.flag, true
		}
	}
	return 0, false
}

// AllFlags returns every known flag in declaration order
func AllFlags() []Flag {
	flags := make([]Flag, 0, len(flagNames))
	for _, fn := range flagNames {
		flags = append(flags, fn.flag)
	}
	return flags
}

// Flags is an immutable set of flags
type Flags uint16

// NewFlags builds a set from the given flags
func NewFlags(flags ...Flag) Flags {
	var fs Flags
	for _, f := range flags {
		fs = fs.With(f)
	}
	return fs
}

func (fs Flags) Has(f Flag) bool      { return fs&Flags(f) != 0 }
func (fs Flags) With(f Flag) Flags    { return fs | Flags(f) }
func (fs Flags) Without(f Flag) Flags { return fs &^ Flags(f) }
func (fs Flags) Toggle(f Flag) Flags  { return fs ^ Flags(f) }

// Names lists the set flags in declaration order
func (fs Flags) Names() []string {
	var names []string
	for _, fn := range flagNames {
		if fs.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return names
}

// TransitionKind names a toggle a user can apply to one entity
type TransitionKind int

const (
	ToggleSaved TransitionKind = iota + 1
	ToggleRegistered
	ToggleInterested
	ToggleJoined
	ToggleApplied
	ToggleConnected
)

var transitionNames = map[TransitionKind]string{
	ToggleSaved:      "toggleSaved",
	ToggleRegistered: "toggleRegistered",
	ToggleInterested: "toggleInterested",
	ToggleJoined:     "toggleJoined",
	ToggleApplied:    "toggleApplied",
	ToggleConnected:  "toggleConnected",
}

func (k TransitionKind) String() string {
	if name, ok := transitionNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseTransitionKind accepts either the full name ("toggleSaved") or the
// flag name ("saved")
func ParseTransitionKind(name string) (TransitionKind, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for kind, n := range transitionNames {
		if strings.ToLower(n) == lower || strings.TrimPrefix(strings.ToLower(n), "toggle") == lower {
			return kind, true
		}
	}
	return 0, false
}

// Notification is a user-visible message describing a transition
type Notification struct {
	ID          string
	Page        string
	Title       string
	Description string
	Time        time.Time
}

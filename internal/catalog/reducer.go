package catalog

import (
	"fmt"

	"campushub/internal/domain"
)

// transition describes what a TransitionKind does to an entity
type transition struct {
	flag    domain.Flag
	counted bool // moves Counts.Participants with the flag

	onTitle  string
	onText   string // formatted with the entity title
	offTitle string
	offText  string
}

var transitions = map[domain.TransitionKind]transition{
	domain.ToggleSaved: {
		flag:    domain.FlagSaved,
		onTitle: "Saved", onText: "Saved %s",
		offTitle: "Removed from saved", offText: "Removed %s from saved items",
	},
	domain.ToggleRegistered: {
		flag: domain.FlagRegistered, counted: true,
		onTitle: "Registration confirmed", onText: "Registered for %s",
		offTitle: "Registration cancelled", offText: "Cancelled registration for %s",
	},
	domain.ToggleInterested: {
		flag:    domain.FlagInterested,
		onTitle: "Marked as interested", onText: "You are interested in %s",
		offTitle: "No longer interested", offText: "Removed interest in %s",
	},
	domain.ToggleJoined: {
		flag: domain.FlagJoined, counted: true,
		onTitle: "Joined", onText: "You joined %s",
		offTitle: "Left", offText: "You left %s",
	},
	domain.ToggleApplied: {
		flag:    domain.FlagApplied,
		onTitle: "Application sent", onText: "Applied to %s",
		offTitle: "Application withdrawn", offText: "Withdrew application to %s",
	},
	domain.ToggleConnected: {
		flag:    domain.FlagConnected,
		onTitle: "Request sent", onText: "Connection request sent to %s",
		offTitle: "Request withdrawn", offText: "Withdrew connection request to %s",
	},
}

// FlagFor returns the flag a transition kind toggles
func FlagFor(kind domain.TransitionKind) (domain.Flag, bool) {
	t, ok := transitions[kind]
	return t.flag, ok
}

// Counted reports whether kind moves the participant count
func Counted(kind domain.TransitionKind) bool {
	return transitions[kind].counted
}

// Outcome is the result of one reducer step
type Outcome[T any] struct {
	Entities     []*domain.Entity[T]
	Changed      *domain.Entity[T]    // nil when nothing changed
	Notification *domain.Notification // nil when nothing changed
}

// Reduce applies kind to the entity with the given id. The matching entity
// is replaced by a copy; all other pointers are preserved and the input
// slice is not written. Unknown ids and kinds return the input unchanged.
//
// Counts are not clamped: a counted toggle may take Participants below
// zero or above Max if the seed allows it.
func Reduce[T any](entities []*domain.Entity[T], id string, kind domain.TransitionKind) Outcome[T] {
	t, ok := transitions[kind]
	if !ok {
		return Outcome[T]{Entities: entities}
	}

	pos := -1
	for i, e := range entities {
		if e.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return Outcome[T]{Entities: entities}
	}

	updated := entities[pos].Clone()
	updated.Flags = updated.Flags.Toggle(t.flag)
	on := updated.Flags.Has(t.flag)
	if t.counted && updated.Counts != nil {
		if on {
			updated.Counts.Participants++
		} else {
			updated.Counts.Participants--
		}
	}

	next := make([]*domain.Entity[T], len(entities))
	copy(next, entities)
	next[pos] = updated

	n := &domain.Notification{
		Title:       t.offTitle,
		Description: fmt.Sprintf(t.offText, updated.Title),
	}
	if on {
		n.Title = t.onTitle
		n.Description = fmt.Sprintf(t.onText, updated.Title)
	}

	return Outcome[T]{Entities: next, Changed: updated, Notification: n}
}

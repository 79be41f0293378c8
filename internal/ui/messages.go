package ui

import (
	"campushub/internal/assistant"
	"campushub/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// toastExpiredMsg clears the toast it was scheduled for
type toastExpiredMsg struct {
	seq int
}

// assistantReplyMsg carries the outcome of one assistant question
type assistantReplyMsg struct {
	turn assistant.Turn
}

// pagerDoneMsg is sent when the detail pager exits
type pagerDoneMsg struct {
	err error
}

package assistant

import (
	"context"
	"slices"
	"strings"
	"sync"

	"campushub/internal/eventbus"
)

// Turn is the outcome of one question. Exactly one of Reply and Err is set.
type Turn struct {
	Question string
	Reply    string
	Err      string
}

// Failed reports whether the turn produced an error
func (t Turn) Failed() bool {
	return t.Err != ""
}

// Chat keeps a conversation transcript with a Completer
type Chat struct {
	mu         sync.Mutex
	completer  Completer
	transcript []Message
	generation int               // bumped by Reset
	bus        eventbus.EventBus // optional
}

// NewChat creates an empty conversation. bus may be nil.
func NewChat(completer Completer, bus eventbus.EventBus) *Chat {
	return &Chat{completer: completer, bus: bus}
}

// Ask sends text with the conversation so far. Failed turns are not kept
// in the transcript, nor are replies that arrive after a Reset.
func (c *Chat) Ask(ctx context.Context, text string) Turn {
	text = strings.TrimSpace(text)
	turn := Turn{Question: text}
	if text == "" {
		turn.Err = "message is empty"
		return turn
	}

	c.mu.Lock()
	pending := append(slices.Clone(c.transcript), Message{Role: RoleUser, Content: text})
	generation := c.generation
	c.mu.Unlock()

	reply, err := c.completer.Complete(ctx, pending)
	if err != nil {
		turn.Err = err.Error()
	} else {
		turn.Reply = reply
		c.mu.Lock()
		if c.generation == generation {
			c.transcript = append(pending, Message{Role: RoleAssistant, Content: reply})
		}
		c.mu.Unlock()
	}

	if c.bus != nil {
		c.bus.Publish(eventbus.AssistantRepliedEvent{Reply: turn.Reply, Err: turn.Err})
	}
	return turn
}

// Transcript returns a copy of the kept messages
func (c *Chat) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.transcript)
}

// Reset forgets the conversation
func (c *Chat) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = nil
	c.generation++
}

package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campushub/internal/eventbus"
)

type recordedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"messages"`
}

func (r recordedRequest) roles() []string {
	roles := make([]string, len(r.Messages))
	for i, m := range r.Messages {
		roles[i] = m.Role
	}
	return roles
}

func completionServer(t *testing.T, status int, reply string) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var requests []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req recordedRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		mu.Lock()
		requests = append(requests, req)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = io.WriteString(w, `{"error":{"message":"upstream exploded","type":"server_error"}}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   req.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": reply},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), requests...)
	}
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(Config{
		APIKey:       "sk-test",
		BaseURL:      srv.URL,
		Model:        "campus-model",
		SystemPrompt: "be brief",
		Timeout:      5 * time.Second,
	}, nil)
}

func TestClientComplete(t *testing.T) {
	srv, requests := completionServer(t, http.StatusOK, "The library closes at 11pm.")
	client := newTestClient(srv)
	require.True(t, client.Configured())

	reply, err := client.Complete(context.Background(), []Message{
		{Role: RoleUser, Content: "When does the library close?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "The library closes at 11pm.", reply)

	require.Len(t, requests(), 1)
	req := requests()[0]
	assert.Equal(t, "campus-model", req.Model)
	assert.Equal(t, []string{"system", "user"}, req.roles())
}

func TestClientNotConfigured(t *testing.T) {
	client := NewClient(Config{Model: "m"}, nil)
	assert.False(t, client.Configured())

	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestClientServerError(t *testing.T) {
	srv, _ := completionServer(t, http.StatusInternalServerError, "")
	client := newTestClient(srv)

	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion")
}

func TestChatKeepsTranscript(t *testing.T) {
	srv, requests := completionServer(t, http.StatusOK, "Try the Robotics Club.")
	chat := NewChat(newTestClient(srv), nil)

	turn := chat.Ask(context.Background(), "  Which club builds robots?  ")
	require.False(t, turn.Failed())
	assert.Equal(t, "Which club builds robots?", turn.Question)
	assert.Equal(t, "Try the Robotics Club.", turn.Reply)

	chat.Ask(context.Background(), "When do they meet?")

	require.Len(t, requests(), 2)
	assert.Equal(t, []string{"system", "user", "assistant", "user"}, requests()[1].roles())
	assert.Len(t, chat.Transcript(), 4)

	chat.Reset()
	assert.Empty(t, chat.Transcript())
}

type failingCompleter struct{ calls int }

func (f *failingCompleter) Complete(context.Context, []Message) (string, error) {
	f.calls++
	return "", errors.New("connection refused")
}

func TestChatFailedTurnIsNotKept(t *testing.T) {
	completer := &failingCompleter{}
	chat := NewChat(completer, nil)

	turn := chat.Ask(context.Background(), "hello")
	assert.True(t, turn.Failed())
	assert.Equal(t, "connection refused", turn.Err)
	assert.Empty(t, turn.Reply)
	assert.Empty(t, chat.Transcript())
	assert.Equal(t, 1, completer.calls)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	completer := &failingCompleter{}
	chat := NewChat(completer, nil)

	turn := chat.Ask(context.Background(), "   ")
	assert.True(t, turn.Failed())
	assert.Equal(t, 0, completer.calls)
}

type staticCompleter string

func (s staticCompleter) Complete(context.Context, []Message) (string, error) {
	return string(s), nil
}

func TestChatPublishesReplies(t *testing.T) {
	bus := eventbus.New(log.New(io.Discard))
	defer bus.Close()

	replies := make(chan eventbus.AssistantRepliedEvent, 1)
	bus.Subscribe(eventbus.EventAssistantReplied, func(e eventbus.DomainEvent) {
		replies <- e.(eventbus.AssistantRepliedEvent)
	})

	NewChat(staticCompleter("sure"), bus).Ask(context.Background(), "can you help?")

	select {
	case got := <-replies:
		assert.Equal(t, eventbus.AssistantRepliedEvent{Reply: "sure"}, got)
	case <-time.After(time.Second):
		t.Fatal("no AssistantRepliedEvent published")
	}
}

func TestClientEmptyReply(t *testing.T) {
	srv, _ := completionServer(t, http.StatusOK, "")
	chat := NewChat(newTestClient(srv), nil)

	turn := chat.Ask(context.Background(), "hello?")
	assert.True(t, turn.Failed())
	assert.Empty(t, turn.Reply)
	assert.Equal(t, ErrEmptyReply.Error(), turn.Err)
	assert.Empty(t, chat.Transcript())
}

// gatedCompleter blocks inside Complete until release is closed
type gatedCompleter struct {
	entered chan struct{}
	release chan struct{}
}

func (g *gatedCompleter) Complete(context.Context, []Message) (string, error) {
	g.entered <- struct{}{}
	<-g.release
	return "late reply", nil
}

func TestReplyAfterResetIsDropped(t *testing.T) {
	chat := NewChat(staticCompleter("first reply"), nil)
	chat.Ask(context.Background(), "first question")
	require.Len(t, chat.Transcript(), 2)

	gate := &gatedCompleter{entered: make(chan struct{}), release: make(chan struct{})}
	chat.completer = gate

	turns := make(chan Turn, 1)
	go func() { turns <- chat.Ask(context.Background(), "second question") }()

	<-gate.entered
	chat.Reset()
	close(gate.release)

	turn := <-turns
	assert.Equal(t, "late reply", turn.Reply)
	assert.Empty(t, chat.Transcript(), "a reply to the old conversation must not revive it")

	chat.completer = staticCompleter("fresh")
	chat.Ask(context.Background(), "new topic")
	assert.Equal(t, []Message{
		{Role: RoleUser, Content: "new topic"},
		{Role: RoleAssistant, Content: "fresh"},
	}, chat.Transcript())
}

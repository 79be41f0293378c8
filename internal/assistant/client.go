package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/samber/lo"
)

var (
	// ErrNotConfigured is returned when no API key is available
	ErrNotConfigured = errors.New("assistant not configured: set CAMPUSHUB_ASSISTANT_API_KEY")
	// ErrEmptyReply is returned when the endpoint answers without choices
	// or with an empty message
	ErrEmptyReply = errors.New("assistant returned no reply")
)

// Role is the author of a message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Completer turns a transcript into the next assistant message
type Completer interface {
	Complete(ctx context.Context, transcript []Message) (string, error)
}

// Config configures Client
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	SystemPrompt string
	Timeout      time.Duration
}

// Client is a Completer backed by an OpenAI-compatible chat completions
// endpoint
type Client struct {
	client *openai.Client
	model  string
	system string
	logger *log.Logger
}

// NewClient creates a client. Without an API key every call returns
// ErrNotConfigured.
func NewClient(cfg Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Client{
		model:  cfg.Model,
		system: cfg.SystemPrompt,
		logger: logger.WithPrefix("assistant"),
	}
	if cfg.APIKey == "" {
		return c
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	client := openai.NewClient(opts...)
	c.client = &client
	return c
}

// Configured reports whether the client has credentials
func (c *Client) Configured() bool {
	return c.client != nil
}

// Complete sends the transcript, prefixed with the system prompt
func (c *Client) Complete(ctx context.Context, transcript []Message) (string, error) {
	if c.client == nil {
		return "", ErrNotConfigured
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(transcript)+1)
	if c.system != "" {
		messages = append(messages, openai.SystemMessage(c.system))
	}
	messages = append(messages, lo.FilterMap(transcript, func(m Message, _ int) (openai.ChatCompletionMessageParamUnion, bool) {
		switch m.Role {
		case RoleUser:
			return openai.UserMessage(m.Content), true
		case RoleAssistant:
			return openai.AssistantMessage(m.Content), true
		case RoleSystem:
			return openai.SystemMessage(m.Content), true
		default:
			return openai.ChatCompletionMessageParamUnion{}, false
		}
	})...)

	start := time.Now()
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		c.logger.Warn("completion failed", "model", c.model, "err", err)
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return "", ErrEmptyReply
	}

	c.logger.Debug("completion", "model", c.model, "messages", len(messages), "elapsed", time.Since(start))
	return completion.Choices[0].Message.Content, nil
}

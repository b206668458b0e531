package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ai "github.com/spetersoncode/toolloop"
	"github.com/spetersoncode/toolloop/chat"
	"github.com/spetersoncode/toolloop/provider/ollama"
	"github.com/spetersoncode/toolloop/provider/openai"
)

// ProviderName identifies a model gateway backend.
type ProviderName string

const (
	ProviderOllama ProviderName = "ollama"
	ProviderOpenAI ProviderName = "openai"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = ollama.DefaultModel

// Config holds configuration for creating a client.
type Config struct {
	// Provider selects the backend. Defaults to ProviderOllama.
	Provider ProviderName

	// Model is the default model for every request.
	Model string

	// BaseURL overrides the backend address. For Ollama this takes
	// precedence over OLLAMA_HOST; for OpenAI it must include /v1.
	BaseURL string

	// APIKey is sent to OpenAI-compatible endpoints. Local servers ignore it.
	APIKey string

	// Logger receives request logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Events is an optional channel for receiving client operation events.
	// Events are sent non-blocking; if the channel is full, events are dropped.
	Events chan<- Event
}

// ErrUnknownProvider is returned when Config.Provider names no backend.
type ErrUnknownProvider struct {
	Provider string
}

func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("unknown provider %q: expected %q or %q", e.Provider, ProviderOllama, ProviderOpenAI)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultTemperature sets the default temperature for chat requests.
// Per-request options override this default.
func WithDefaultTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithTemperature(t))
	}
}

// WithDefaultChatOptions sets default options for all chat requests.
// Per-request options override these defaults.
func WithDefaultChatOptions(opts ...ai.Option) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, opts...)
	}
}

// Client routes chat requests to the configured backend.
type Client struct {
	provider        ProviderName
	model           string
	backend         chat.Client
	events          chan<- Event
	logger          *slog.Logger
	defaultChatOpts []ai.Option
}

// New creates a client for the configured backend.
func New(cfg Config, opts ...ClientOption) (*Client, error) {
	name := ProviderName(strings.ToLower(strings.TrimSpace(string(cfg.Provider))))
	if name == "" {
		name = ProviderOllama
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var backend chat.Client
	switch name {
	case ProviderOllama:
		ollamaOpts := []ollama.ClientOption{ollama.WithLogger(logger)}
		if cfg.BaseURL != "" {
			ollamaOpts = append(ollamaOpts, ollama.WithBaseURL(cfg.BaseURL))
		}
		oc, err := ollama.New(model, ollamaOpts...)
		if err != nil {
			return nil, err
		}
		backend = oc
	case ProviderOpenAI:
		openaiOpts := []openai.ClientOption{openai.WithModel(model), openai.WithLogger(logger)}
		if cfg.BaseURL != "" {
			openaiOpts = append(openaiOpts, openai.WithBaseURL(cfg.BaseURL))
		}
		if cfg.APIKey != "" {
			openaiOpts = append(openaiOpts, openai.WithAPIKey(cfg.APIKey))
		}
		backend = openai.New(openaiOpts...)
	default:
		return nil, &ErrUnknownProvider{Provider: string(cfg.Provider)}
	}

	return newClient(name, model, backend, cfg, logger, opts...), nil
}

// Wrap creates a client around an existing gateway.
func Wrap(backend chat.Client, cfg Config, opts ...ClientOption) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return newClient(cfg.Provider, cfg.Model, backend, cfg, logger, opts...)
}

func newClient(name ProviderName, model string, backend chat.Client, cfg Config, logger *slog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		provider: name,
		model:    model,
		backend:  backend,
		events:   cfg.Events,
		logger:   logger.With("provider", string(name)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the selected backend.
func (c *Client) Provider() ProviderName {
	return c.provider
}

// Model returns the default model.
func (c *Client) Model() string {
	return c.model
}

// Chat sends a conversation and returns a complete response.
// The model can be specified via WithModel option, or the default model is used.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	// Prepend default options so per-request options override them
	all := make([]ai.Option, 0, len(c.defaultChatOpts)+len(opts))
	all = append(all, c.defaultChatOpts...)
	all = append(all, opts...)

	model := ai.ApplyOptions(all...).Model
	if model == "" {
		model = c.model
	}

	start := time.Now()
	emit(c.events, Event{
		Type:     EventRequestStart,
		Provider: c.provider,
		Model:    model,
	})

	resp, err := c.backend.Chat(ctx, messages, all...)
	if err == nil && resp == nil {
		err = fmt.Errorf("%s: backend returned no response", c.provider)
	}
	if err != nil {
		emit(c.events, Event{
			Type:     EventRequestError,
			Provider: c.provider,
			Model:    model,
			Duration: time.Since(start),
			Error:    err,
		})
		return nil, err
	}

	c.logger.Debug("chat complete",
		"model", model,
		"duration", time.Since(start),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"tool_calls", len(resp.ToolCalls))

	emit(c.events, Event{
		Type:      EventRequestComplete,
		Provider:  c.provider,
		Model:     model,
		Duration:  time.Since(start),
		Usage:     &resp.Usage,
		ToolCalls: len(resp.ToolCalls),
	})
	return resp, nil
}

var _ chat.Client = (*Client)(nil)

package openai

import (
	"context"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	ai "github.com/spetersoncode/toolloop"
	"github.com/spetersoncode/toolloop/chat"
)

const (
	// DefaultBaseURL is Ollama's OpenAI-compatible endpoint.
	DefaultBaseURL = "http://localhost:11434/v1"
	// DefaultModel is a small local model with tool support.
	DefaultModel = "PetrosStav/gemma3-tools:4b"
	// placeholderAPIKey is accepted and ignored by local servers.
	placeholderAPIKey = "ollama"
)

// Client wraps the OpenAI SDK to implement chat.Client.
type Client struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

type clientConfig struct {
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	logger     *slog.Logger
}

// ClientOption configures the OpenAI-compatible client.
type ClientOption func(*clientConfig)

// WithBaseURL sets the endpoint, including the /v1 suffix.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

// WithAPIKey sets the bearer token sent with each request.
func WithAPIKey(key string) ClientOption {
	return func(c *clientConfig) {
		c.apiKey = key
	}
}

// WithModel sets the default model for requests.
func WithModel(model string) ClientOption {
	return func(c *clientConfig) {
		c.model = model
	}
}

// WithMaxRetries sets how many times the SDK retries a failed request.
// The default is 0: failures surface to the caller immediately.
func WithMaxRetries(n int) ClientOption {
	return func(c *clientConfig) {
		c.maxRetries = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// New creates a new OpenAI-compatible client.
func New(opts ...ClientOption) *Client {
	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
		apiKey:  placeholderAPIKey,
		model:   DefaultModel,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client := openai.NewClient(
		option.WithBaseURL(cfg.baseURL),
		option.WithAPIKey(cfg.apiKey),
		option.WithMaxRetries(cfg.maxRetries),
	)
	return &Client{
		client: &client,
		model:  cfg.model,
		logger: cfg.logger,
	}
}

// Model returns the default model name.
func (c *Client) Model() string {
	return c.model
}

// Chat sends a conversation and returns a complete response.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	options := ai.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: convertMessages(messages),
	}
	if options.Temperature != nil {
		params.Temperature = openai.Float(*options.Temperature)
	}
	if len(options.Tools) > 0 {
		tools, err := convertTools(options.Tools)
		if err != nil {
			return nil, err
		}
		params.Tools = tools
	}

	c.logger.Debug("openai chat", "model", model, "messages", len(params.Messages), "tools", len(params.Tools))

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		c.logger.Error("openai chat failed", "model", model, "error", err)
		return nil, wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, ai.NewPermanentError("openai: response has no choices", 0, nil)
	}

	choice := resp.Choices[0]
	return &ai.Response{
		Role:         ai.RoleAssistant,
		Content:      choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Usage: ai.Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
		ToolCalls: extractToolCalls(choice.Message, c.logger),
	}, nil
}

var _ chat.Client = (*Client)(nil)

package ollama

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/ollama/ollama/api"
	ai "github.com/spetersoncode/toolloop"
	"github.com/spetersoncode/toolloop/chat"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultModel is a small local model with tool support.
const DefaultModel = "PetrosStav/gemma3-tools:4b"

// Client wraps the Ollama API client to implement chat.Client.
type Client struct {
	client  *api.Client
	model   string
	options map[string]any
	logger  *slog.Logger
}

type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	options    map[string]any
	logger     *slog.Logger
}

// ClientOption configures the Ollama client.
type ClientOption func(*clientConfig)

// WithBaseURL sets the Ollama server address, overriding OLLAMA_HOST.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithOptions sets model runtime options (num_ctx, temperature, ...)
// sent with every request.
func WithOptions(options map[string]any) ClientOption {
	return func(c *clientConfig) {
		c.options = options
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// New creates an Ollama client for model.
func New(model string, opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	if model == "" {
		model = DefaultModel
	}

	var client *api.Client
	if cfg.baseURL != "" {
		u, err := url.Parse(cfg.baseURL)
		if err != nil {
			return nil, fmt.Errorf("ollama: invalid base URL: %w", err)
		}
		hc := cfg.httpClient
		if hc == nil {
			hc = defaultHTTPClient()
		}
		client = api.NewClient(u, hc)
	} else {
		var err error
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("ollama: %w", err)
		}
	}

	cfg.logger.Debug("ollama client initialized", "model", model, "base_url", cfg.baseURL)

	return &Client{
		client:  client,
		model:   model,
		options: cfg.options,
		logger:  cfg.logger,
	}, nil
}

// defaultHTTPClient imposes no overall timeout: local models can take
// minutes to load and answer.
func defaultHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
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

	msgs, err := convertMessages(messages)
	if err != nil {
		return nil, err
	}
	tools, err := convertTools(options.Tools)
	if err != nil {
		return nil, err
	}

	reqOptions := c.options
	if options.Temperature != nil {
		reqOptions = maps.Clone(c.options)
		if reqOptions == nil {
			reqOptions = make(map[string]any)
		}
		reqOptions["temperature"] = *options.Temperature
	}

	stream := false
	req := &api.ChatRequest{
		Model:    model,
		Messages: msgs,
		Tools:    tools,
		Options:  reqOptions,
		Stream:   &stream,
	}

	c.logger.Debug("ollama chat", "model", model, "messages", len(msgs), "tools", len(tools))

	var (
		content strings.Builder
		calls   []api.ToolCall
		final   api.ChatResponse
	)
	err = c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		calls = append(calls, resp.Message.ToolCalls...)
		if resp.Done {
			final = resp
		}
		return nil
	})
	if err != nil {
		c.logger.Error("ollama chat failed", "model", model, "error", err)
		return nil, wrapError(err)
	}

	toolCalls, err := extractToolCalls(calls)
	if err != nil {
		return nil, err
	}

	return &ai.Response{
		Role:         ai.RoleAssistant,
		Content:      content.String(),
		FinishReason: final.DoneReason,
		Usage: ai.Usage{
			InputTokens:  final.PromptEvalCount,
			OutputTokens: final.EvalCount,
		},
		ToolCalls: toolCalls,
	}, nil
}

// wrapError categorizes Ollama API errors.
func wrapError(err error) error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		msg := "ollama: " + statusErr.ErrorMessage
		code := statusErr.StatusCode
		switch {
		case code == http.StatusTooManyRequests || code >= 500:
			return ai.NewTransientError(msg, code, err)
		case code == http.StatusBadRequest || code == http.StatusNotFound:
			return ai.NewUserInputError(msg, code, err)
		default:
			return ai.NewPermanentError(msg, code, err)
		}
	}

	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "does not support tools"), strings.Contains(lower, "not found"):
		return ai.NewUserInputError("ollama", 0, err)
	case strings.Contains(lower, "connection refused"), strings.Contains(lower, "connection reset"):
		return ai.NewTransientError("ollama: server unreachable", 0, err)
	}
	return ai.NewPermanentError("ollama", 0, err)
}

var _ chat.Client = (*Client)(nil)

package client

import (
	"context"
	"errors"
	"testing"

	ai "github.com/spetersoncode/toolloop"
	"github.com/spetersoncode/toolloop/provider/ollama"
	"github.com/spetersoncode/toolloop/provider/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBackend records the options it was called with.
type mockBackend struct {
	resp    *ai.Response
	err     error
	options *ai.Options
}

func (m *mockBackend) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	m.options = ai.ApplyOptions(opts...)
	return m.resp, m.err
}

func TestNew(t *testing.T) {
	t.Run("defaults to ollama", func(t *testing.T) {
		c, err := New(Config{BaseURL: "http://localhost:11434"})
		require.NoError(t, err)
		assert.Equal(t, ProviderOllama, c.Provider())
		assert.Equal(t, DefaultModel, c.Model())
		assert.IsType(t, &ollama.Client{}, c.backend)
	})

	t.Run("selects openai case-insensitively", func(t *testing.T) {
		c, err := New(Config{Provider: " OpenAI ", Model: "qwen3"})
		require.NoError(t, err)
		assert.Equal(t, ProviderOpenAI, c.Provider())
		assert.Equal(t, "qwen3", c.Model())
		assert.IsType(t, &openai.Client{}, c.backend)
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		_, err := New(Config{Provider: "anthropic"})
		var unknown *ErrUnknownProvider
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "anthropic", unknown.Provider)
	})
}

func TestClient_Chat(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults and emits events", func(t *testing.T) {
		backend := &mockBackend{resp: &ai.Response{Content: "hi", Usage: ai.Usage{InputTokens: 3, OutputTokens: 1}}}
		events := make(chan Event, 4)
		c := Wrap(backend, Config{Provider: ProviderOllama, Model: "m", Events: events}, WithDefaultTemperature(0.1))

		resp, err := c.Chat(ctx, []ai.Message{ai.NewUserMessage("hello")}, ai.WithModel("other"))
		require.NoError(t, err)
		assert.Equal(t, "hi", resp.Content)

		require.NotNil(t, backend.options.Temperature)
		assert.Equal(t, 0.1, *backend.options.Temperature)
		assert.Equal(t, "other", backend.options.Model)

		start := <-events
		assert.Equal(t, EventRequestStart, start.Type)
		assert.Equal(t, "other", start.Model)
		done := <-events
		assert.Equal(t, EventRequestComplete, done.Type)
		require.NotNil(t, done.Usage)
		assert.Equal(t, 3, done.Usage.InputTokens)
	})

	t.Run("per-request options override defaults", func(t *testing.T) {
		backend := &mockBackend{resp: &ai.Response{}}
		c := Wrap(backend, Config{Model: "m"}, WithDefaultTemperature(0.1))

		_, err := c.Chat(ctx, nil, ai.WithTemperature(0.9))
		require.NoError(t, err)
		assert.Equal(t, 0.9, *backend.options.Temperature)
	})

	t.Run("errors are returned and emitted", func(t *testing.T) {
		boom := ai.NewTransientError("ollama: server unreachable", 0, errors.New("connection refused"))
		backend := &mockBackend{err: boom}
		events := make(chan Event, 4)
		c := Wrap(backend, Config{Model: "m", Events: events})

		resp, err := c.Chat(ctx, []ai.Message{ai.NewUserMessage("hello")})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, boom)

		<-events
		failed := <-events
		assert.Equal(t, EventRequestError, failed.Type)
		assert.Equal(t, boom, failed.Error)
	})

	t.Run("nil response is an error", func(t *testing.T) {
		backend := &mockBackend{}
		events := make(chan Event, 4)
		c := Wrap(backend, Config{Provider: ProviderOllama, Model: "m", Events: events})

		resp, err := c.Chat(ctx, []ai.Message{ai.NewUserMessage("hello")})
		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no response")

		<-events
		failed := <-events
		assert.Equal(t, EventRequestError, failed.Type)
	})

	t.Run("full event channel does not block", func(t *testing.T) {
		backend := &mockBackend{resp: &ai.Response{}}
		events := make(chan Event)
		c := Wrap(backend, Config{Model: "m", Events: events})

		_, err := c.Chat(ctx, nil)
		assert.NoError(t, err)
	})
}

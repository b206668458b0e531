// Package chat defines the model gateway used by the agent loop.
//
// A gateway takes the full conversation and the tool specifications to
// advertise, and returns either free text or a list of tool-call requests.
// The call is synchronous: the agent loop does no other work until it
// returns.
//
// Implementations live under provider/: [github.com/spetersoncode/toolloop/provider/ollama]
// talks to Ollama's native API, [github.com/spetersoncode/toolloop/provider/openai]
// to any OpenAI-compatible endpoint. Use [github.com/spetersoncode/toolloop/client.New]
// to pick one by name.
package chat

import (
	"context"

	ai "github.com/spetersoncode/toolloop"
)

// Client defines the interface for model gateways.
type Client interface {
	// Chat sends a conversation and returns a complete response.
	// Tools to advertise are passed with [ai.WithTools].
	Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error)
}

// Package client selects and wraps a model gateway.
//
// The Client hides which backend serves the model and provides:
//
//   - Provider selection by name: "ollama" (native API, default) or "openai"
//     (any OpenAI-compatible endpoint, Ollama's /v1 by default)
//   - Default chat options applied to every request
//   - Event emission: observable requests via channel
//
// # Basic Usage
//
//	c, err := client.New(client.Config{
//	    Provider: client.ProviderOllama,
//	    Model:    "PetrosStav/gemma3-tools:4b",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := c.Chat(ctx, []toolloop.Message{toolloop.NewUserMessage("Hello!")})
//
// # Events
//
// Pass a buffered channel to observe requests. Events are sent without
// blocking; if the channel is full they are dropped.
//
//	events := make(chan client.Event, 16)
//	c, _ := client.New(client.Config{Events: events})
//
// Requests are never retried: model errors are returned to the caller.
package client

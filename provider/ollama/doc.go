// Package ollama provides a model gateway backed by a local Ollama server.
//
// The client talks to Ollama's native /api/chat endpoint through
// github.com/ollama/ollama/api and performs one non-streaming request per
// call. The server address is read from OLLAMA_HOST unless a base URL is
// given explicitly.
//
//	c, err := ollama.New("PetrosStav/gemma3-tools:4b")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := c.Chat(ctx, messages, toolloop.WithTools(registry.Tools()))
//
// The model must support tool calling; see https://ollama.com/search?c=tools.
package ollama

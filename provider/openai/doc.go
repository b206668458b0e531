// Package openai provides a model gateway for OpenAI-compatible chat
// completion endpoints.
//
// By default it targets Ollama's compatibility layer at
// http://localhost:11434/v1, so the same local models can be reached through
// the official OpenAI Go SDK. Any other compatible server (llama.cpp,
// vLLM, LM Studio) works by setting the base URL.
//
//	c := openai.New(openai.WithBaseURL("http://localhost:8080/v1"), openai.WithModel("qwen3"))
//
//	resp, err := c.Chat(ctx, messages, toolloop.WithTools(registry.Tools()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Content)
package openai

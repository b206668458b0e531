// Package toolloop lets a locally hosted language model call tools served by
// out-of-process MCP servers and iterate on their output until it answers.
//
// The root package holds the shared data model: conversation turns
// ([Message]), tool specifications ([Tool]), model-issued tool calls
// ([ToolCall]), tool outputs ([ToolResult]) and the error taxonomy.
// The moving parts live in subpackages:
//
//   - [github.com/spetersoncode/toolloop/tool]: the tool registry and invoker
//   - [github.com/spetersoncode/toolloop/mcp]: MCP connections, tool discovery and a stdio server
//   - [github.com/spetersoncode/toolloop/chat]: the model gateway interface
//   - [github.com/spetersoncode/toolloop/provider/ollama] and
//     [github.com/spetersoncode/toolloop/provider/openai]: gateway implementations
//   - [github.com/spetersoncode/toolloop/agent]: the bounded agent loop
//
// # Basic Usage
//
//	registry := tool.NewRegistry()
//
//	conn := mcp.NewStdioConnection("memory", "npx", nil, []string{"-y", "@modelcontextprotocol/server-memory"})
//	if err := conn.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	if _, err := mcp.Discover(ctx, conn, registry); err != nil {
//	    log.Fatal(err)
//	}
//
//	model, err := ollama.New("PetrosStav/gemma3-tools:4b")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	a := agent.New(model, registry)
//	result, err := a.Respond(ctx, "What do you remember about me?")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Content)
//
// # Errors
//
// Every error type names its own kind ([KindOf]). Failures local to a single
// tool call are rendered into the conversation as "Error: <kind>: <message>"
// so the model can react; failures in discovery, connection setup, and
// schema validation are returned to the caller.
package toolloop

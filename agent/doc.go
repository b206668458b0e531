// Package agent provides the bounded tool-calling loop.
//
// An agent owns a conversation and a tool registry. Each call to
// [Agent.Respond] appends the user's text, then repeatedly queries the model
// with the whole conversation and every registered tool, executing the tool
// calls the model requests, until the model answers without tool calls.
//
// # Basic Usage
//
//	registry := tool.NewRegistry()
//	a := agent.New(client, registry)
//
//	conn := mcp.NewStdioConnection("memory", "npx", nil, []string{"-y", "@modelcontextprotocol/server-memory"})
//	if err := conn.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	if _, err := a.AddTools(ctx, conn); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := a.Respond(ctx, "Remember that my name is Sam.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Content)
//
// # Loop Semantics
//
//   - Assistant text is appended to the conversation as soon as it arrives,
//     even when tool calls follow.
//   - Tool calls run one at a time, in the order the model issued them.
//     Each produces exactly one tool turn.
//   - A failing or unknown tool becomes a tool turn reading
//     "Error: <kind>: <message>"; the loop continues.
//   - A failed model query aborts the turn and is returned.
//
// # Termination Conditions
//
//   - The model responds without tool calls (TerminationComplete)
//   - MaxSteps model queries were made (TerminationMaxSteps, Truncated set)
//   - Timeout is exceeded (TerminationTimeout)
//   - Context is cancelled (TerminationCancelled)
//   - The model query failed (TerminationError)
//
// The step limit defaults to 5 and is a normal termination path: the
// assistant text gathered so far is returned without an error.
//
// # Observing Execution
//
//	a := agent.New(client, registry, agent.WithEventHandler(func(e agent.Event) {
//	    if e.Type == agent.EventToolCallStarted {
//	        fmt.Printf("Tool call: %s(%s)\n", e.ToolCall.Name, e.ToolCall.ArgumentsJSON())
//	    }
//	}))
package agent

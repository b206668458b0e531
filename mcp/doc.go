// Package mcp connects the tool registry to MCP (Model Context Protocol)
// servers.
//
// MCP servers run out of process and speak JSON-RPC over stdio. This package
// provides both directions:
//
//   - Client: a [Connection] to one server, and [Discover], which registers
//     every tool the server offers into a [tool.Registry] so that calls are
//     forwarded back over the connection.
//   - Server: expose a [tool.Registry] as an MCP server with [NewServer] or
//     [ServeStdio].
//
// # Consuming MCP Servers
//
//	conn := mcp.NewStdioConnection("memory", "npx", nil, []string{"-y", "@modelcontextprotocol/server-memory"})
//	err := mcp.Session(ctx, conn, func(conn *mcp.Connection) error {
//	    tools, err := mcp.Discover(ctx, conn, registry)
//	    if err != nil {
//	        return err
//	    }
//	    // ... run the agent while the session is open
//	})
//
// Only single-page tool listings are supported; a listing with a
// continuation cursor fails with [toolloop.PaginationUnsupportedError].
//
// # Exposing Tools as an MCP Server
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("get_weather", "Get weather", weatherHandler),
//	)
//
//	if err := mcp.ServeStdio(registry, mcp.WithName("weather")); err != nil {
//	    log.Fatal(err)
//	}
package mcp

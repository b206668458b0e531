package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	ai "github.com/spetersoncode/toolloop"
	"github.com/spetersoncode/toolloop/tool"
)

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
	extra   []server.ServerOption
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// WithServerOptions passes options through to the underlying mcp-go server.
func WithServerOptions(opts ...server.ServerOption) ServerOption {
	return func(c *serverConfig) {
		c.extra = append(c.extra, opts...)
	}
}

// NewServer creates an MCP server that exposes the tools of registry.
// Calls are executed through [tool.Registry.Execute], so handler failures
// reach the client as error-flagged results.
//
// Example:
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("get_weather", "Get weather", weatherHandler),
//	)
//
//	s := mcp.NewServer(registry, mcp.WithName("weather"))
//	server.ServeStdio(s)
func NewServer(registry *tool.Registry, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "toolloop-mcp-server",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	serverOpts := append([]server.ServerOption{server.WithToolCapabilities(true)}, cfg.extra...)
	s := server.NewMCPServer(cfg.name, cfg.version, serverOpts...)

	for _, t := range registry.Tools() {
		s.AddTool(ToMCPTool(t), createMCPHandler(registry, t.Name))
	}

	return s
}

// createMCPHandler executes toolName in registry for each MCP call.
func createMCPHandler(registry *tool.Registry, toolName string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := registry.Execute(ctx, ai.ToolCall{
			Name:      toolName,
			Arguments: req.GetArguments(),
		})
		if err != nil {
			return mcp.NewToolResultError(ai.FormatError(err)), nil
		}
		return ToMCPCallToolResult(result), nil
	}
}

// ServeStdio starts an MCP server that communicates over stdin/stdout.
// This is the standard transport for MCP servers invoked as subprocesses.
func ServeStdio(registry *tool.Registry, opts ...ServerOption) error {
	s := NewServer(registry, opts...)
	return server.ServeStdio(s)
}

package mcp

import (
	"context"

	ai "github.com/spetersoncode/toolloop"
	"github.com/spetersoncode/toolloop/tool"
)

// Discover lists the tools offered on conn and registers each one in
// registry under its own name, bound to a handler that calls the tool on
// conn. Every schema is validated before anything is registered, so a
// failure leaves the registry unchanged.
//
// It returns the registered specifications in listing order.
func Discover(ctx context.Context, conn *Connection, registry *tool.Registry) ([]ai.Tool, error) {
	listed, err := conn.ListTools(ctx)
	if err != nil {
		return nil, err
	}

	tools := make([]ai.Tool, 0, len(listed))
	for _, t := range listed {
		spec, err := FromMCPTool(t)
		if err != nil {
			conn.logger.Error("invalid tool schema", "tool", t.Name, "error", err)
			return nil, err
		}
		tools = append(tools, spec)
	}

	handler := Handler(conn)
	for _, spec := range tools {
		if err := registry.RegisterTool(spec, handler); err != nil {
			return nil, err
		}
		conn.logger.Info("registered tool", "tool", spec.Name)
	}
	return tools, nil
}

// Handler returns a tool handler that calls the requested tool by name on conn.
func Handler(conn *Connection) tool.Handler {
	return func(ctx context.Context, name string, args map[string]any) (ai.ToolResult, error) {
		return conn.CallTool(ctx, name, args)
	}
}

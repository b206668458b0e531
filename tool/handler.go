package tool

import (
	"context"

	ai "github.com/spetersoncode/toolloop"
)

// Handler is the capability bound to a registered tool.
// It receives the tool name and the argument mapping supplied by the model
// and returns the tool's output. A returned error is converted into an
// error-flagged result by [Registry.Execute].
type Handler func(ctx context.Context, name string, args map[string]any) (ai.ToolResult, error)

// TypedHandler is a function that executes a tool call with typed arguments.
// The args parameter is decoded from the call's argument mapping.
type TypedHandler[T any] func(ctx context.Context, args T) (string, error)

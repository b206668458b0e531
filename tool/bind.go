package tool

import (
	"context"
	"encoding/json"
	"fmt"

	ai "github.com/spetersoncode/toolloop"
)

// Registration holds a tool and its handler for fluent registration.
type Registration struct {
	Tool    ai.Tool
	Handler Handler
}

// Bind creates a Tool and Handler from a typed function.
// The tool's properties and required parameters are generated from struct
// tags on type T.
//
// Example:
//
//	type WeatherArgs struct {
//	    Location string `json:"location" desc:"City name" required:"true"`
//	}
//
//	t, h, err := tool.Bind("get_weather", "Get current weather",
//	    func(ctx context.Context, args WeatherArgs) (string, error) {
//	        return lookup(args.Location), nil
//	    })
func Bind[T any](name, description string, fn TypedHandler[T]) (ai.Tool, Handler, error) {
	schema, err := ai.SchemaFor[T]()
	if err != nil {
		return ai.Tool{}, nil, err
	}

	properties, required, err := ParseInputSchema(name, schema)
	if err != nil {
		return ai.Tool{}, nil, err
	}

	t := ai.Tool{
		Name:        name,
		Description: description,
		Properties:  properties,
		Required:    required,
	}

	return t, typed(fn), nil
}

// Func creates a Registration with automatic schema generation from the typed handler.
// Panics if schema generation fails.
//
// Example:
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("get_weather", "Get weather", weatherFn),
//	    tool.Func("echo", "Echo text", echoFn),
//	)
func Func[T any](name, description string, fn TypedHandler[T]) Registration {
	t, h, err := Bind(name, description, fn)
	if err != nil {
		panic(err)
	}
	return Registration{Tool: t, Handler: h}
}

// typed adapts a TypedHandler to a Handler by decoding the argument mapping into T.
func typed[T any](fn TypedHandler[T]) Handler {
	return func(ctx context.Context, name string, args map[string]any) (ai.ToolResult, error) {
		var decoded T
		if len(args) > 0 {
			raw, err := json.Marshal(args)
			if err != nil {
				return ai.ToolResult{}, fmt.Errorf("encoding arguments: %w", err)
			}
			if err := json.Unmarshal(raw, &decoded); err != nil {
				return ai.ToolResult{}, fmt.Errorf("malformed arguments: %w", err)
			}
		}
		text, err := fn(ctx, decoded)
		if err != nil {
			return ai.ToolResult{}, err
		}
		return ai.NewToolTextResult(text), nil
	}
}

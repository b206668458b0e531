// Package tool provides the tool registry and invoker.
//
// A [Registry] maps tool names to a specification (description, parameter
// properties, required parameters) and a [Handler]. The specifications are
// advertised to the model; [Registry.Execute] resolves a model-issued
// [toolloop.ToolCall] and runs the bound handler.
//
// # Registering Tools
//
// Tools discovered from an MCP server arrive with a raw input schema:
//
//	err := registry.Register("read_file", handler, "Read a file",
//	    json.RawMessage(`{"type":"object","properties":{"path":{"type":"string"}},"required":["path"]}`))
//
// Local tools can be bound from typed functions. The schema is generated
// from struct tags:
//
//	type WeatherArgs struct {
//	    Location string `json:"location" desc:"City name" required:"true"`
//	    Unit     string `json:"unit" desc:"Temperature unit" enum:"celsius,fahrenheit"`
//	}
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("get_weather", "Get current weather",
//	        func(ctx context.Context, args WeatherArgs) (string, error) {
//	            return lookup(args.Location), nil
//	        }),
//	)
//
// # Execution Semantics
//
//   - Unknown tool names return [toolloop.UnknownToolError].
//   - Handler errors and panics become error-flagged results with text
//     "Error: <kind>: <message>".
//   - Results with non-text content return [toolloop.UnsupportedContentError].
//
// Registering a name twice keeps the last registration and logs a warning.
package tool

package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	ai "github.com/spetersoncode/toolloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testArgs struct {
	Query string `json:"query" desc:"Search query" required:"true"`
}

type weatherArgs struct {
	Location string `json:"location" desc:"City or region" required:"true"`
}

var weatherSchema = json.RawMessage(`{
	"type": "object",
	"properties": {"location": {"type": "string", "description": "City or region"}},
	"required": ["location"]
}`)

func textHandler(text string) Handler {
	return func(ctx context.Context, name string, args map[string]any) (ai.ToolResult, error) {
		return ai.NewToolTextResult(text), nil
	}
}

func TestRegistry_Register(t *testing.T) {
	t.Run("lists exactly what was registered", func(t *testing.T) {
		r := NewRegistry()

		err := r.Register("get_weather", textHandler("72F, sunny"), "Get the weather", weatherSchema)
		require.NoError(t, err)

		tools := r.Tools()
		require.Len(t, tools, 1)
		assert.Equal(t, "get_weather", tools[0].Name)
		assert.Equal(t, "Get the weather", tools[0].Description)
		assert.Equal(t, map[string]any{
			"location": map[string]any{"type": "string", "description": "City or region"},
		}, tools[0].Properties)
		assert.Equal(t, []string{"location"}, tools[0].Required)
	})

	t.Run("fails when properties is missing", func(t *testing.T) {
		r := NewRegistry()

		err := r.Register("broken", textHandler(""), "Broken", json.RawMessage(`{"type":"object","required":[]}`))

		var schemaErr *ai.SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, "properties", schemaErr.Key)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("fails when required is missing", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register("ok", textHandler(""), "Fine", weatherSchema))

		err := r.Register("broken", textHandler(""), "Broken", json.RawMessage(`{"type":"object","properties":{}}`))

		var schemaErr *ai.SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, "required", schemaErr.Key)
		assert.Equal(t, []string{"ok"}, r.Names())
	})

	t.Run("fails on malformed schema", func(t *testing.T) {
		r := NewRegistry()
		err := r.Register("broken", textHandler(""), "Broken", json.RawMessage(`not json`))

		var schemaErr *ai.SchemaError
		assert.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, 0, r.Len())
	})

	t.Run("replaces duplicate name", func(t *testing.T) {
		var logs bytes.Buffer
		r := NewRegistry(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

		require.NoError(t, r.Register("get_weather", textHandler("old"), "Old", weatherSchema))
		require.NoError(t, r.Register("other", textHandler("other"), "Other", weatherSchema))
		require.NoError(t, r.Register("get_weather", textHandler("new"), "New", weatherSchema))

		assert.Equal(t, 2, r.Len())
		assert.Equal(t, []string{"get_weather", "other"}, r.Names())

		got, ok := r.GetTool("get_weather")
		require.True(t, ok)
		assert.Equal(t, "New", got.Description)

		result, err := r.Execute(context.Background(), ai.ToolCall{Name: "get_weather"})
		require.NoError(t, err)
		text, err := result.Text()
		require.NoError(t, err)
		assert.Equal(t, "new", text)

		assert.Contains(t, logs.String(), "replacing")
	})

	t.Run("rejects nil handler", func(t *testing.T) {
		r := NewRegistry()
		assert.Error(t, r.RegisterTool(ai.Tool{Name: "x"}, nil))
		assert.Panics(t, func() { r.MustRegister(ai.Tool{Name: "x"}, nil) })
	})
}

func TestRegistry_ToolsOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, r.Register(name, textHandler(name), name, weatherSchema))
	}

	var names []string
	for _, tl := range r.Tools() {
		names = append(names, tl.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}

func TestRegistry_ClearAndUnregister(t *testing.T) {
	r := NewRegistry().Add(
		Func("a", "A", func(ctx context.Context, args testArgs) (string, error) { return "a", nil }),
		Func("b", "B", func(ctx context.Context, args testArgs) (string, error) { return "b", nil }),
		Func("c", "C", func(ctx context.Context, args testArgs) (string, error) { return "c", nil }),
	)

	r.Unregister("b")
	r.Unregister("missing")
	assert.Equal(t, []string{"a", "c"}, r.Names())
	assert.False(t, r.Has("b"))

	r.Clear()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Tools())

	r.Add(Func("d", "D", func(ctx context.Context, args testArgs) (string, error) { return "d", nil }))
	assert.Equal(t, []string{"d"}, r.Names())
}

func TestRegistry_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("passes name and arguments to the handler", func(t *testing.T) {
		var gotName string
		var gotArgs map[string]any
		r := NewRegistry()
		require.NoError(t, r.Register("get_weather", func(ctx context.Context, name string, args map[string]any) (ai.ToolResult, error) {
			gotName, gotArgs = name, args
			return ai.NewToolTextResult("72F, sunny"), nil
		}, "Weather", weatherSchema))

		result, err := r.Execute(ctx, ai.ToolCall{
			ID:        "call_1",
			Name:      "get_weather",
			Arguments: map[string]any{"location": "Texas"},
		})

		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "get_weather", gotName)
		assert.Equal(t, map[string]any{"location": "Texas"}, gotArgs)
	})

	t.Run("unknown tool returns UnknownToolError without mutating", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register("known", textHandler("ok"), "Known", weatherSchema))
		before := r.Tools()

		_, err := r.Execute(ctx, ai.ToolCall{Name: "unknown"})

		var unknown *ai.UnknownToolError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "unknown", unknown.Name)
		assert.Equal(t, before, r.Tools())
	})

	t.Run("handler error becomes error result", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register("fail", func(ctx context.Context, name string, args map[string]any) (ai.ToolResult, error) {
			return ai.ToolResult{}, errors.New("connection reset")
		}, "Fails", weatherSchema))

		result, err := r.Execute(ctx, ai.ToolCall{Name: "fail"})

		require.NoError(t, err)
		assert.True(t, result.IsError)
		require.Len(t, result.Content, 1)
		assert.True(t, result.Content[0].IsText())
		assert.Contains(t, result.Content[0].Text, "ToolExecutionError")
		assert.Contains(t, result.Content[0].Text, "connection reset")
	})

	t.Run("handler panic becomes error result", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register("explode", func(ctx context.Context, name string, args map[string]any) (ai.ToolResult, error) {
			panic("kaboom")
		}, "Panics", weatherSchema))

		result, err := r.Execute(ctx, ai.ToolCall{Name: "explode"})

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "kaboom")
	})

	t.Run("non-text content returns UnsupportedContentError", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register("screenshot", func(ctx context.Context, name string, args map[string]any) (ai.ToolResult, error) {
			return ai.ToolResult{Content: []ai.ContentPart{{Type: ai.ContentPartTypeImage, Data: "aGk="}}}, nil
		}, "Screenshot", weatherSchema))

		_, err := r.Execute(ctx, ai.ToolCall{Name: "screenshot"})

		var unsupported *ai.UnsupportedContentError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, "screenshot", unsupported.Tool)
		assert.Equal(t, ai.ContentPartTypeImage, unsupported.Type)
	})

	t.Run("error result without text gets a message", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register("silent", func(ctx context.Context, name string, args map[string]any) (ai.ToolResult, error) {
			return ai.ToolResult{IsError: true}, nil
		}, "Silent failure", weatherSchema))

		result, err := r.Execute(ctx, ai.ToolCall{Name: "silent"})

		require.NoError(t, err)
		assert.True(t, result.IsError)
		text, err := result.Text()
		require.NoError(t, err)
		assert.NotEmpty(t, text)
	})
}

func TestFunc(t *testing.T) {
	t.Run("creates Registration with generated schema", func(t *testing.T) {
		reg := Func("get_weather", "Get weather", func(ctx context.Context, args weatherArgs) (string, error) {
			return args.Location, nil
		})

		assert.Equal(t, "get_weather", reg.Tool.Name)
		assert.Equal(t, "Get weather", reg.Tool.Description)
		assert.Equal(t, []string{"location"}, reg.Tool.Required)
		assert.Contains(t, reg.Tool.Properties, "location")
		assert.NotNil(t, reg.Handler)
	})

	t.Run("handler decodes arguments", func(t *testing.T) {
		reg := Func("search", "Search", func(ctx context.Context, args testArgs) (string, error) {
			return "got: " + args.Query, nil
		})

		result, err := reg.Handler(context.Background(), "search", map[string]any{"query": "hello world"})

		require.NoError(t, err)
		text, err := result.Text()
		require.NoError(t, err)
		assert.Equal(t, "got: hello world", text)
	})

	t.Run("malformed arguments surface through Execute", func(t *testing.T) {
		r := NewRegistry().Add(Func("search", "Search", func(ctx context.Context, args testArgs) (string, error) {
			return args.Query, nil
		}))

		result, err := r.Execute(context.Background(), ai.ToolCall{
			Name:      "search",
			Arguments: map[string]any{"query": 42},
		})

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "malformed arguments")
	})
}

func TestParseInputSchema(t *testing.T) {
	t.Run("normalizes null collections", func(t *testing.T) {
		props, required, err := ParseInputSchema("t", json.RawMessage(`{"properties":null,"required":null}`))
		require.NoError(t, err)
		assert.NotNil(t, props)
		assert.NotNil(t, required)
	})

	t.Run("rejects wrongly typed required", func(t *testing.T) {
		_, _, err := ParseInputSchema("t", json.RawMessage(`{"properties":{},"required":"location"}`))
		var schemaErr *ai.SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, "required", schemaErr.Key)
	})
}

package main

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/toolloop/mcp"
	"github.com/spetersoncode/toolloop/tool"
)

func TestServerTools(t *testing.T) {
	ctx := context.Background()

	c, err := client.NewInProcessClient(mcp.NewServer(newRegistry(slog.Default())))
	require.NoError(t, err)
	conn := mcp.NewConnection("demo", c)
	require.NoError(t, conn.Connect(ctx))
	defer conn.Close()

	registry := tool.NewRegistry()
	tools, err := mcp.Discover(ctx, conn, registry)
	require.NoError(t, err)
	// The server lists its tools sorted by name.
	assert.Equal(t, []string{"calculate", "echo", "get_weather", "time"}, registry.Names())
	assert.Len(t, tools, 4)

	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		want    string
		isError bool
	}{
		{name: "echo", tool: "echo", args: map[string]any{"text": "hi"}, want: "hi"},
		{name: "add", tool: "calculate", args: map[string]any{"operation": "add", "a": 2, "b": 3}, want: "5"},
		{name: "divide", tool: "calculate", args: map[string]any{"operation": "divide", "a": 1, "b": 4}, want: "0.25"},
		{name: "divide by zero", tool: "calculate", args: map[string]any{"operation": "divide", "a": 1, "b": 0}, isError: true},
		{name: "weather", tool: "get_weather", args: map[string]any{"location": "Texas"}, want: "Texas: 72F, sunny"},
		{name: "weather without location", tool: "get_weather", args: map[string]any{}, isError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := conn.CallTool(ctx, tt.tool, tt.args)
			require.NoError(t, err)

			text, err := result.Text()
			require.NoError(t, err)
			assert.Equal(t, tt.isError, result.IsError)
			if !tt.isError {
				assert.Equal(t, tt.want, text)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	now := time.Date(2024, 3, 1, 15, 4, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-01T15:04:00Z", formatTime(now, "RFC3339"))
	assert.Equal(t, "1709305440", formatTime(now, "unix"))
	assert.Equal(t, "Friday, March 1, 2024 at 3:04 PM UTC", formatTime(now, ""))
}

package toolloop

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTool_Parameters(t *testing.T) {
	t.Run("renders properties and required", func(t *testing.T) {
		tool := Tool{
			Name:       "get_weather",
			Properties: map[string]any{"location": map[string]any{"type": "string"}},
			Required:   []string{"location"},
		}

		assert.JSONEq(t,
			`{"type":"object","properties":{"location":{"type":"string"}},"required":["location"]}`,
			string(tool.Parameters()))
	})

	t.Run("renders empty collections for nil fields", func(t *testing.T) {
		assert.JSONEq(t,
			`{"type":"object","properties":{},"required":[]}`,
			string(Tool{Name: "ping"}.Parameters()))
	})
}

func TestToolCall_ArgumentsJSON(t *testing.T) {
	assert.Equal(t, "{}", ToolCall{Name: "ping"}.ArgumentsJSON())
	assert.JSONEq(t, `{"location":"Texas"}`,
		ToolCall{Name: "w", Arguments: map[string]any{"location": "Texas"}}.ArgumentsJSON())
}

func TestToolResult_Text(t *testing.T) {
	t.Run("concatenates text parts in order", func(t *testing.T) {
		result := ToolResult{Content: []ContentPart{NewTextPart("72F, "), NewTextPart("sunny")}}

		text, err := result.Text()
		require.NoError(t, err)
		assert.Equal(t, "72F, sunny", text)
	})

	t.Run("rejects non-text parts", func(t *testing.T) {
		result := ToolResult{Content: []ContentPart{
			NewTextPart("see image"),
			{Type: ContentPartTypeImage, Data: "aGk=", MimeType: "image/png"},
		}}

		_, err := result.Text()
		var unsupported *UnsupportedContentError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, ContentPartTypeImage, unsupported.Type)
	})

	t.Run("empty result yields empty text", func(t *testing.T) {
		text, err := ToolResult{}.Text()
		require.NoError(t, err)
		assert.Empty(t, text)
	})
}

func TestNewToolErrorResult(t *testing.T) {
	t.Run("carries the message as text", func(t *testing.T) {
		result := NewToolErrorResult("Error: ToolExecutionError: boom")
		assert.True(t, result.IsError)
		require.Len(t, result.Content, 1)
		assert.True(t, result.Content[0].IsText())
		assert.Equal(t, "Error: ToolExecutionError: boom", result.Content[0].Text)
	})

	t.Run("never produces an empty error", func(t *testing.T) {
		result := NewToolErrorResult("")
		require.Len(t, result.Content, 1)
		assert.NotEmpty(t, result.Content[0].Text)
	})
}

package toolloop

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type weatherArgs struct {
	Location string   `json:"location" desc:"City or region" required:"true"`
	Unit     string   `json:"unit" desc:"Temperature unit" enum:"celsius, fahrenheit"`
	Days     int      `json:"days"`
	Tags     []string `json:"tags,omitempty"`
	internal string
	Skipped  string `json:"-"`
}

func TestSchemaFor(t *testing.T) {
	t.Run("reflects struct tags", func(t *testing.T) {
		raw, err := SchemaFor[weatherArgs]()
		require.NoError(t, err)

		var schema map[string]any
		require.NoError(t, json.Unmarshal(raw, &schema))

		assert.Equal(t, "object", schema["type"])
		assert.Equal(t, []any{"location"}, schema["required"])

		props := schema["properties"].(map[string]any)
		assert.Len(t, props, 4)

		location := props["location"].(map[string]any)
		assert.Equal(t, "string", location["type"])
		assert.Equal(t, "City or region", location["description"])

		unit := props["unit"].(map[string]any)
		assert.Equal(t, []any{"celsius", "fahrenheit"}, unit["enum"])

		assert.Equal(t, "integer", props["days"].(map[string]any)["type"])
		tags := props["tags"].(map[string]any)
		assert.Equal(t, "array", tags["type"])
		assert.Equal(t, map[string]any{"type": "string"}, tags["items"])
	})

	t.Run("empty struct has empty properties and required", func(t *testing.T) {
		raw, err := SchemaFor[struct{}]()
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"object","properties":{},"required":[]}`, string(raw))
	})

	t.Run("rejects non-struct types", func(t *testing.T) {
		_, err := SchemaFor[string]()
		assert.Error(t, err)
		assert.Panics(t, func() { MustSchemaFor[int]() })
	})
}

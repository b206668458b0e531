package tool

import (
	"encoding/json"

	ai "github.com/spetersoncode/toolloop"
)

// ParseInputSchema decomposes a JSON Schema object into its properties and
// required parameter names. Both keys must be present; a missing key yields
// a SchemaError naming it.
func ParseInputSchema(name string, inputSchema json.RawMessage) (map[string]any, []string, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(inputSchema, &top); err != nil {
		return nil, nil, &ai.SchemaError{Tool: name, Err: err}
	}

	rawProps, ok := top["properties"]
	if !ok {
		return nil, nil, &ai.SchemaError{Tool: name, Key: "properties"}
	}
	rawRequired, ok := top["required"]
	if !ok {
		return nil, nil, &ai.SchemaError{Tool: name, Key: "required"}
	}

	var properties map[string]any
	if err := json.Unmarshal(rawProps, &properties); err != nil {
		return nil, nil, &ai.SchemaError{Tool: name, Key: "properties", Err: err}
	}
	if properties == nil {
		properties = map[string]any{}
	}

	var required []string
	if err := json.Unmarshal(rawRequired, &required); err != nil {
		return nil, nil, &ai.SchemaError{Tool: name, Key: "required", Err: err}
	}
	if required == nil {
		required = []string{}
	}

	return properties, required, nil
}

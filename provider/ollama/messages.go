package ollama

import (
	"fmt"

	"github.com/ollama/ollama/api"
	ai "github.com/spetersoncode/toolloop"
)

// functionSpec mirrors Ollama's tool wire format. Tools are bridged through
// JSON so the SDK's property types decode them.
type functionSpec struct {
	Type     string       `json:"type"`
	Function functionBody `json:"function"`
}

type functionBody struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

func convertTools(tools []ai.Tool) (api.Tools, error) {
	if len(tools) == 0 {
		return nil, nil
	}

	specs := make([]functionSpec, len(tools))
	for i, t := range tools {
		props := t.Properties
		if props == nil {
			props = map[string]any{}
		}
		required := t.Required
		if required == nil {
			required = []string{}
		}
		specs[i] = functionSpec{
			Type: "function",
			Function: functionBody{
				Name:        t.Name,
				Description: t.Description,
				Parameters: map[string]any{
					"type":       "object",
					"properties": props,
					"required":   required,
				},
			},
		}
	}

	raw, err := json.Marshal(specs)
	if err != nil {
		return nil, fmt.Errorf("ollama: encoding tools: %w", err)
	}
	var result api.Tools
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("ollama: decoding tools: %w", err)
	}
	return result, nil
}

func convertMessages(messages []ai.Message) ([]api.Message, error) {
	result := make([]api.Message, 0, len(messages))
	for _, m := range messages {
		msg := api.Message{
			Role:    string(m.Role),
			Content: m.Content,
		}

		switch m.Role {
		case ai.RoleAssistant:
			for _, tc := range m.ToolCalls {
				args, err := toAPIArguments(tc.Arguments)
				if err != nil {
					return nil, err
				}
				msg.ToolCalls = append(msg.ToolCalls, api.ToolCall{
					ID: tc.ID,
					Function: api.ToolCallFunction{
						Name:      tc.Name,
						Arguments: args,
					},
				})
			}
		case ai.RoleTool:
			msg.ToolName = m.ToolName
			msg.ToolCallID = m.ToolCallID
		}

		result = append(result, msg)
	}
	return result, nil
}

func toAPIArguments(args map[string]any) (api.ToolCallFunctionArguments, error) {
	var apiArgs api.ToolCallFunctionArguments
	if args == nil {
		args = map[string]any{}
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return apiArgs, fmt.Errorf("ollama: encoding tool arguments: %w", err)
	}
	if err := json.Unmarshal(raw, &apiArgs); err != nil {
		return apiArgs, fmt.Errorf("ollama: decoding tool arguments: %w", err)
	}
	return apiArgs, nil
}

func extractToolCalls(calls []api.ToolCall) ([]ai.ToolCall, error) {
	if len(calls) == 0 {
		return nil, nil
	}
	result := make([]ai.ToolCall, len(calls))
	for i, tc := range calls {
		raw, err := json.Marshal(tc.Function.Arguments)
		if err != nil {
			return nil, fmt.Errorf("ollama: encoding tool call arguments: %w", err)
		}
		var args map[string]any
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("ollama: decoding tool call arguments: %w", err)
		}

		id := tc.ID
		if id == "" {
			id = ai.GenerateToolCallID()
		}
		result[i] = ai.ToolCall{
			ID:        id,
			Name:      tc.Function.Name,
			Arguments: args,
		}
	}
	return result, nil
}

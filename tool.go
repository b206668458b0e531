package toolloop

import (
	"encoding/json"
	"strings"
)

// Tool is the declarative specification of a tool advertised to the model.
type Tool struct {
	// Name is the unique identifier for the tool.
	Name string `json:"name"`
	// Description explains what the tool does (helps the model decide when to use it).
	Description string `json:"description"`
	// Properties maps each parameter name to its JSON Schema fragment.
	Properties map[string]any `json:"properties"`
	// Required lists the parameters the model must supply.
	Required []string `json:"required"`
}

// Parameters renders the tool's input as a JSON Schema object.
func (t Tool) Parameters() json.RawMessage {
	props := t.Properties
	if props == nil {
		props = map[string]any{}
	}
	required := t.Required
	if required == nil {
		required = []string{}
	}
	data, err := json.Marshal(map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	})
	if err != nil {
		return json.RawMessage(`{"type":"object","properties":{},"required":[]}`)
	}
	return data
}

// ToolCall represents a request from the model to invoke a tool.
type ToolCall struct {
	// ID is a unique identifier for this tool call (used to match results).
	ID string `json:"id"`
	// Name is the name of the tool to invoke.
	Name string `json:"name"`
	// Arguments maps parameter names to the values the model supplied.
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ArgumentsJSON returns the arguments encoded as a JSON object.
func (c ToolCall) ArgumentsJSON() string {
	if len(c.Arguments) == 0 {
		return "{}"
	}
	data, err := json.Marshal(c.Arguments)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ContentPartType tags the variant held by a ContentPart.
type ContentPartType string

const (
	ContentPartTypeText     ContentPartType = "text"
	ContentPartTypeImage    ContentPartType = "image"
	ContentPartTypeAudio    ContentPartType = "audio"
	ContentPartTypeResource ContentPartType = "resource"
)

// ContentPart is a single part of a tool's output.
// Only the text variant can be forwarded to the model.
type ContentPart struct {
	Type ContentPartType `json:"type"`
	// Text holds the content of a text part.
	Text string `json:"text,omitempty"`
	// Data holds base64 payloads of image and audio parts.
	Data     string `json:"data,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	// URI identifies an embedded resource.
	URI string `json:"uri,omitempty"`
}

// NewTextPart creates a text content part.
func NewTextPart(text string) ContentPart {
	return ContentPart{
		Type: ContentPartTypeText,
		Text: text,
	}
}

// IsText reports whether the part is the text variant.
func (p ContentPart) IsText() bool {
	return p.Type == ContentPartTypeText
}

// ToolResult represents the result of executing a tool call.
type ToolResult struct {
	// Content holds the ordered output parts of the tool.
	Content []ContentPart `json:"content"`
	// IsError indicates if the result represents an error.
	IsError bool `json:"isError,omitempty"`
}

// NewToolTextResult creates a successful result with a single text part.
func NewToolTextResult(text string) ToolResult {
	return ToolResult{Content: []ContentPart{NewTextPart(text)}}
}

// NewToolErrorResult creates an error result. The message is always
// carried as a text part so the model receives textual feedback.
func NewToolErrorResult(msg string) ToolResult {
	if msg == "" {
		msg = "tool returned an error"
	}
	return ToolResult{
		Content: []ContentPart{NewTextPart(msg)},
		IsError: true,
	}
}

// Validate returns an UnsupportedContentError if any part is not text.
func (r ToolResult) Validate() error {
	for _, p := range r.Content {
		if !p.IsText() {
			return &UnsupportedContentError{Type: p.Type}
		}
	}
	return nil
}

// Text concatenates the text parts of the result.
func (r ToolResult) Text() (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, p := range r.Content {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

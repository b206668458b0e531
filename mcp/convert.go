package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	ai "github.com/spetersoncode/toolloop"
	"github.com/spetersoncode/toolloop/tool"
)

// ToMCPTool converts a Tool to an MCP Tool.
// The tool's parameter schema is used as the MCP Tool's RawInputSchema.
func ToMCPTool(t ai.Tool) mcp.Tool {
	return mcp.NewToolWithRawSchema(t.Name, t.Description, t.Parameters())
}

// InputSchemaJSON returns the input schema of t as sent by the server.
// Keys the server left out stay absent so they can be reported.
func InputSchemaJSON(t mcp.Tool) json.RawMessage {
	if len(t.RawInputSchema) > 0 {
		return t.RawInputSchema
	}

	m := map[string]any{"type": t.InputSchema.Type}
	if t.InputSchema.Properties != nil {
		m["properties"] = t.InputSchema.Properties
	}
	if t.InputSchema.Required != nil {
		m["required"] = t.InputSchema.Required
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return data
}

// FromMCPTool converts an MCP Tool to a Tool. It fails with a SchemaError
// when the input schema has no "properties" or no "required" key.
func FromMCPTool(t mcp.Tool) (ai.Tool, error) {
	if t.Name == "" {
		return ai.Tool{}, &ai.SchemaError{Key: "name"}
	}
	properties, required, err := tool.ParseInputSchema(t.Name, InputSchemaJSON(t))
	if err != nil {
		return ai.Tool{}, err
	}
	return ai.Tool{
		Name:        t.Name,
		Description: t.Description,
		Properties:  properties,
		Required:    required,
	}, nil
}

// ToMCPCallToolRequest converts a ToolCall to an MCP CallToolRequest.
func ToMCPCallToolRequest(call ai.ToolCall) mcp.CallToolRequest {
	args := call.Arguments
	if args == nil {
		args = map[string]any{}
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      call.Name,
			Arguments: args,
		},
	}
}

// FromMCPCallToolResult converts an MCP CallToolResult to a ToolResult.
// Each content item becomes one part of the matching variant; structured
// content is rendered as JSON text when no other content was returned.
func FromMCPCallToolResult(result *mcp.CallToolResult) ai.ToolResult {
	if result == nil {
		return ai.NewToolErrorResult("tool server returned no result")
	}

	parts := make([]ai.ContentPart, 0, len(result.Content))
	for _, c := range result.Content {
		parts = append(parts, fromMCPContent(c))
	}

	if len(parts) == 0 && result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			parts = append(parts, ai.NewTextPart(string(data)))
		}
	}

	return ai.ToolResult{
		Content: parts,
		IsError: result.IsError,
	}
}

func fromMCPContent(c mcp.Content) ai.ContentPart {
	switch content := c.(type) {
	case mcp.TextContent:
		return ai.NewTextPart(content.Text)
	case *mcp.TextContent:
		return ai.NewTextPart(content.Text)
	case mcp.ImageContent:
		return ai.ContentPart{Type: ai.ContentPartTypeImage, Data: content.Data, MimeType: content.MIMEType}
	case *mcp.ImageContent:
		return ai.ContentPart{Type: ai.ContentPartTypeImage, Data: content.Data, MimeType: content.MIMEType}
	case mcp.AudioContent:
		return ai.ContentPart{Type: ai.ContentPartTypeAudio, Data: content.Data, MimeType: content.MIMEType}
	case *mcp.AudioContent:
		return ai.ContentPart{Type: ai.ContentPartTypeAudio, Data: content.Data, MimeType: content.MIMEType}
	case mcp.EmbeddedResource:
		return fromResource(content.Resource)
	case *mcp.EmbeddedResource:
		return fromResource(content.Resource)
	default:
		return ai.ContentPart{Type: ai.ContentPartTypeResource}
	}
}

func fromResource(r mcp.ResourceContents) ai.ContentPart {
	part := ai.ContentPart{Type: ai.ContentPartTypeResource}
	switch res := r.(type) {
	case mcp.TextResourceContents:
		part.URI, part.MimeType, part.Text = res.URI, res.MIMEType, res.Text
	case *mcp.TextResourceContents:
		part.URI, part.MimeType, part.Text = res.URI, res.MIMEType, res.Text
	case mcp.BlobResourceContents:
		part.URI, part.MimeType, part.Data = res.URI, res.MIMEType, res.Blob
	case *mcp.BlobResourceContents:
		part.URI, part.MimeType, part.Data = res.URI, res.MIMEType, res.Blob
	}
	return part
}

// ToMCPCallToolResult converts a ToolResult to an MCP CallToolResult.
func ToMCPCallToolResult(result ai.ToolResult) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(result.Content))
	for _, p := range result.Content {
		switch p.Type {
		case ai.ContentPartTypeImage:
			content = append(content, mcp.NewImageContent(p.Data, p.MimeType))
		case ai.ContentPartTypeAudio:
			content = append(content, mcp.NewAudioContent(p.Data, p.MimeType))
		case ai.ContentPartTypeResource:
			if p.Data != "" {
				content = append(content, mcp.NewEmbeddedResource(mcp.BlobResourceContents{
					URI: p.URI, MIMEType: p.MimeType, Blob: p.Data,
				}))
			} else {
				content = append(content, mcp.NewEmbeddedResource(mcp.TextResourceContents{
					URI: p.URI, MIMEType: p.MimeType, Text: p.Text,
				}))
			}
		default:
			content = append(content, mcp.NewTextContent(p.Text))
		}
	}
	return &mcp.CallToolResult{
		Content: content,
		IsError: result.IsError,
	}
}

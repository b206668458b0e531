package toolloop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleConstants(t *testing.T) {
	assert.Equal(t, Role("user"), RoleUser)
	assert.Equal(t, Role("assistant"), RoleAssistant)
	assert.Equal(t, Role("system"), RoleSystem)
	assert.Equal(t, Role("tool"), RoleTool)
}

func TestMessageConstructors(t *testing.T) {
	assert.Equal(t, Message{Role: RoleSystem, Content: "be brief"}, NewSystemMessage("be brief"))
	assert.Equal(t, Message{Role: RoleUser, Content: "hello"}, NewUserMessage("hello"))

	call := ToolCall{ID: "call_1", Name: "get_weather", Arguments: map[string]any{"location": "Texas"}}

	assistant := NewAssistantMessage("", call)
	assert.Equal(t, RoleAssistant, assistant.Role)
	assert.Len(t, assistant.ToolCalls, 1)

	toolMsg := NewToolMessage(call, "72F, sunny")
	assert.Equal(t, RoleTool, toolMsg.Role)
	assert.Equal(t, "72F, sunny", toolMsg.Content)
	assert.Equal(t, "call_1", toolMsg.ToolCallID)
	assert.Equal(t, "get_weather", toolMsg.ToolName)
}

func TestGenerateIDs(t *testing.T) {
	a := GenerateMessageID()
	b := GenerateMessageID()
	assert.True(t, strings.HasPrefix(a, "msg-"))
	assert.NotEqual(t, a, b)

	assert.True(t, strings.HasPrefix(GenerateToolCallID(), "call-"))
}

func TestResponse_HasToolCalls(t *testing.T) {
	var nilResp *Response
	assert.False(t, nilResp.HasToolCalls())
	assert.False(t, (&Response{Content: "hi"}).HasToolCalls())
	assert.True(t, (&Response{ToolCalls: []ToolCall{{Name: "x"}}}).HasToolCalls())
}

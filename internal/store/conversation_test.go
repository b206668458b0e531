package store

import (
	"sync"
	"testing"

	ai "github.com/spetersoncode/toolloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConversation(t *testing.T) {
	t.Run("seeds exactly one system turn", func(t *testing.T) {
		c := NewConversation("You are helpful.")

		msgs := c.Messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, ai.RoleSystem, msgs[0].Role)
		assert.Equal(t, "You are helpful.", msgs[0].Content)
		assert.NotEmpty(t, msgs[0].ID)
	})

	t.Run("empty prompt has no system turn", func(t *testing.T) {
		c := NewConversation("")
		assert.Equal(t, 0, c.Len())
	})
}

func TestConversation_Append(t *testing.T) {
	c := NewConversation("sys")

	c.Append(ai.NewUserMessage("hello"))
	c.Append(
		ai.NewAssistantMessage("Hi there"),
		ai.Message{ID: "fixed", Role: ai.RoleUser, Content: "again"},
	)
	c.Append()

	msgs := c.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, []ai.Role{ai.RoleSystem, ai.RoleUser, ai.RoleAssistant, ai.RoleUser},
		[]ai.Role{msgs[0].Role, msgs[1].Role, msgs[2].Role, msgs[3].Role})
	assert.NotEmpty(t, msgs[1].ID)
	assert.Equal(t, "fixed", msgs[3].ID)
}

func TestConversation_IgnoresLateSystemTurns(t *testing.T) {
	c := NewConversation("sys")
	c.Append(ai.NewUserMessage("hello"), ai.NewSystemMessage("override"))

	msgs := c.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "sys", msgs[0].Content)
}

func TestConversation_MessagesIsACopy(t *testing.T) {
	c := NewConversation("")
	c.Append(ai.NewUserMessage("Hello"))

	msgs := c.Messages()
	msgs[0].Content = "Modified"

	assert.Equal(t, "Hello", c.Messages()[0].Content)
}

func TestConversation_Since(t *testing.T) {
	c := NewConversation("sys")
	c.Append(ai.NewUserMessage("q"))
	mark := c.Len()
	c.Append(ai.NewAssistantMessage("a1"), ai.NewAssistantMessage("a2"))

	fresh := c.Since(mark)
	require.Len(t, fresh, 2)
	assert.Equal(t, "a1", fresh[0].Content)
	assert.Equal(t, "a2", fresh[1].Content)

	assert.Nil(t, c.Since(c.Len()))
	assert.Len(t, c.Since(-3), 4)
}

func TestConversation_Reset(t *testing.T) {
	c := NewConversation("sys")
	c.Append(ai.NewUserMessage("q"), ai.NewAssistantMessage("a"))

	c.Reset()

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, ai.RoleSystem, msgs[0].Role)
	assert.Equal(t, "sys", c.SystemPrompt())
}

func TestConversation_ConcurrentAppend(t *testing.T) {
	c := NewConversation("")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Append(ai.NewUserMessage("x"))
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, c.Len())
}

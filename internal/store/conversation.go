package store

import (
	"sync"

	ai "github.com/spetersoncode/toolloop"
)

// Conversation is an append-only sequence of turns.
type Conversation struct {
	mu           sync.RWMutex
	systemPrompt string
	messages     []ai.Message
}

// NewConversation creates a conversation seeded with a single system turn.
// An empty prompt yields a conversation without a system turn.
func NewConversation(systemPrompt string) *Conversation {
	c := &Conversation{systemPrompt: systemPrompt}
	c.seed()
	return c
}

func (c *Conversation) seed() {
	c.messages = make([]ai.Message, 0, 8)
	if c.systemPrompt != "" {
		c.messages = append(c.messages, withID(ai.NewSystemMessage(c.systemPrompt)))
	}
}

// Append adds turns to the end of the conversation. Turns without an ID
// are assigned one. System turns are ignored after the first position.
func (c *Conversation) Append(msgs ...ai.Message) {
	if len(msgs) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range msgs {
		if m.Role == ai.RoleSystem && len(c.messages) > 0 {
			continue
		}
		c.messages = append(c.messages, withID(m))
	}
}

// Messages returns a copy of all turns.
func (c *Conversation) Messages() []ai.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]ai.Message, len(c.messages))
	copy(result, c.messages)
	return result
}

// Since returns a copy of the turns appended at or after index i.
func (c *Conversation) Since(i int) []ai.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 {
		i = 0
	}
	if i >= len(c.messages) {
		return nil
	}
	result := make([]ai.Message, len(c.messages)-i)
	copy(result, c.messages[i:])
	return result
}

// Len returns the number of turns.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// SystemPrompt returns the prompt the conversation was seeded with.
func (c *Conversation) SystemPrompt() string {
	return c.systemPrompt
}

// Reset drops every turn except the leading system turn.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seed()
}

func withID(m ai.Message) ai.Message {
	if m.ID == "" {
		m.ID = ai.GenerateMessageID()
	}
	return m
}

// Package store holds the conversation state shared by every iteration of
// the agent loop.
//
// A [Conversation] is an ordered, append-only log of turns. It is created
// with at most one leading system turn and only grows through
// [Conversation.Append]; the whole log is replayed to the model on every
// step, so order is significant.
//
//	conv := store.NewConversation("You are a helpful assistant.")
//	conv.Append(ai.NewUserMessage("hello"))
//
//	mark := conv.Len()
//	conv.Append(ai.NewAssistantMessage("Hi! How can I help?"))
//	fresh := conv.Since(mark) // turns added after the user turn
package store

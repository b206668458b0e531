package client

import (
	"time"

	ai "github.com/spetersoncode/toolloop"
)

// EventType identifies the kind of event occurring during client operations.
type EventType string

const (
	// EventRequestStart fires before a model request begins.
	EventRequestStart EventType = "request_start"

	// EventRequestComplete fires after a model request completes successfully.
	EventRequestComplete EventType = "request_complete"

	// EventRequestError fires when a model request fails.
	EventRequestError EventType = "request_error"
)

// Event represents an observable occurrence during client operations.
type Event struct {
	// Type identifies the kind of event.
	Type EventType

	// Provider identifies which backend served the request.
	Provider ProviderName

	// Model is the model name being used.
	Model string

	// Duration is the elapsed time for finished requests.
	Duration time.Duration

	// Usage contains token usage for completed requests.
	Usage *ai.Usage

	// ToolCalls is the number of tool calls the model issued.
	ToolCalls int

	// Error contains the error for EventRequestError.
	Error error

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// emit sends an event with timestamp to the channel without blocking.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
		// Channel full - don't block
	}
}

package agent

import (
	"time"

	ai "github.com/spetersoncode/toolloop"
)

// EventType identifies the kind of event occurring during agent execution.
type EventType string

const (
	// EventStepStart fires before each model query.
	EventStepStart EventType = "step_start"

	// EventStepComplete fires after each model query with its response.
	EventStepComplete EventType = "step_complete"

	// EventToolCallStarted fires before executing a tool call.
	EventToolCallStarted EventType = "tool_call_started"

	// EventToolCallRejected fires when a tool call is rejected by the approver.
	EventToolCallRejected EventType = "tool_call_rejected"

	// EventToolResult fires after a tool call completes, successfully or not.
	EventToolResult EventType = "tool_result"

	// EventAgentComplete fires when the user turn has an answer.
	EventAgentComplete EventType = "agent_complete"

	// EventError fires when the user turn is aborted by an error.
	EventError EventType = "error"
)

// Event represents an observable occurrence during agent execution.
type Event struct {
	// Type identifies the kind of event.
	Type EventType

	// Step is the current model query number (1-indexed).
	Step int

	// ToolCall contains the tool call for tool-related events.
	ToolCall *ai.ToolCall

	// ToolResult contains the result for EventToolResult events.
	ToolResult *ai.ToolResult

	// Response contains the model response for EventStepComplete.
	Response *ai.Response

	// Result contains the outcome for EventAgentComplete.
	Result *Result

	// Error contains the error for EventError events.
	Error error

	// Message contains additional context (e.g., rejection reason).
	Message string

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// TerminationReason indicates why the agent stopped execution.
type TerminationReason string

const (
	// TerminationComplete indicates normal completion (no more tool calls).
	TerminationComplete TerminationReason = "complete"

	// TerminationMaxSteps indicates the step limit was reached.
	TerminationMaxSteps TerminationReason = "max_steps"

	// TerminationTimeout indicates the context deadline was exceeded.
	TerminationTimeout TerminationReason = "timeout"

	// TerminationCancelled indicates context cancellation.
	TerminationCancelled TerminationReason = "cancelled"

	// TerminationError indicates the model query failed.
	TerminationError TerminationReason = "error"
)

// Result represents the outcome of one user turn.
type Result struct {
	// Content is the assistant text produced during the turn, one line
	// per assistant turn that carried text.
	Content string

	// Turns holds every turn appended during the turn, starting with the
	// user turn.
	Turns []ai.Message

	// Steps is the number of model queries made.
	Steps int

	// ToolCalls is the number of tool calls dispatched.
	ToolCalls int

	// Termination indicates why execution stopped.
	Termination TerminationReason

	// Truncated is set when the step limit cut off outstanding tool work.
	Truncated bool

	// TotalUsage aggregates token usage across all steps.
	TotalUsage ai.Usage
}

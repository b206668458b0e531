package agent

import (
	"context"
	"log/slog"
	"time"

	ai "github.com/spetersoncode/toolloop"
)

// DefaultMaxSteps is the number of model queries allowed per user turn.
const DefaultMaxSteps = 5

// DefaultSystemPrompt seeds every conversation unless overridden.
const DefaultSystemPrompt = "You are a helpful assistant who can use available tools to solve problems. You have a memory to take notes and recall information."

// ApproverFunc is called before each tool call is executed.
// It returns true to approve the call, or false with a reason to reject it.
// The rejection reason is sent back to the model as an error result.
type ApproverFunc func(ctx context.Context, call ai.ToolCall) (approved bool, reason string)

// EventHandler observes agent execution. It is called synchronously from
// the loop, so it must not block for long.
type EventHandler func(Event)

// Options contains configuration for an agent.
type Options struct {
	// MaxSteps limits the model queries per user turn. Default is 5.
	MaxSteps int

	// SystemPrompt is the content of the leading system turn.
	SystemPrompt string

	// Timeout sets a deadline for each user turn.
	// A value of 0 means no timeout (context deadline applies).
	Timeout time.Duration

	// HandlerTimeout sets the timeout for each individual tool call.
	// A value of 0 means no per-call timeout. Default is 30 seconds.
	HandlerTimeout time.Duration

	// Approver enables human-in-the-loop approval for tool calls.
	// If nil, all tool calls are automatically approved.
	Approver ApproverFunc

	// EventHandler receives execution events. May be nil.
	EventHandler EventHandler

	// Logger receives loop diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// ChatOptions are passed through to the chat client on every query.
	ChatOptions []ai.Option
}

// Option is a functional option for configuring an agent.
type Option func(*Options)

// WithMaxSteps sets the maximum number of model queries per user turn.
// Values below 1 are ignored.
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxSteps = n
		}
	}
}

// WithSystemPrompt replaces the default system prompt.
func WithSystemPrompt(prompt string) Option {
	return func(o *Options) {
		o.SystemPrompt = prompt
	}
}

// WithTimeout sets a deadline for each user turn.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithHandlerTimeout sets the timeout for each individual tool call.
// Default is 30 seconds. Set to 0 for no per-call timeout.
func WithHandlerTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.HandlerTimeout = d
	}
}

// WithApprover sets the human-in-the-loop approval function.
func WithApprover(fn ApproverFunc) Option {
	return func(o *Options) {
		o.Approver = fn
	}
}

// WithEventHandler sets the function that observes execution events.
func WithEventHandler(fn EventHandler) Option {
	return func(o *Options) {
		o.EventHandler = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithChatOptions passes options through to the chat client.
// These options are applied to every query made by the agent.
func WithChatOptions(opts ...ai.Option) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, opts...)
	}
}

// WithModel is a convenience option to set the model for chat calls.
func WithModel(model string) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, ai.WithModel(model))
	}
}

// WithTemperature is a convenience option to set temperature for chat calls.
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, ai.WithTemperature(t))
	}
}

// ApplyOptions applies functional options to an Options struct with defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		MaxSteps:       DefaultMaxSteps,
		SystemPrompt:   DefaultSystemPrompt,
		HandlerTimeout: 30 * time.Second,
		Logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

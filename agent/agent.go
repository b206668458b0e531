package agent

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	ai "github.com/spetersoncode/toolloop"
	"github.com/spetersoncode/toolloop/chat"
	"github.com/spetersoncode/toolloop/internal/store"
	"github.com/spetersoncode/toolloop/mcp"
	"github.com/spetersoncode/toolloop/tool"
)

// Agent runs a bounded tool-calling loop over one conversation.
// Calls to Respond are serialized.
type Agent struct {
	chatClient   chat.Client
	registry     *tool.Registry
	conversation *store.Conversation
	options      *Options

	mu sync.Mutex
}

// New creates a new Agent with the given chat client and tool registry.
// A nil registry is replaced by an empty one.
func New(c chat.Client, registry *tool.Registry, opts ...Option) *Agent {
	if registry == nil {
		registry = tool.NewRegistry()
	}
	options := ApplyOptions(opts...)
	return &Agent{
		chatClient:   c,
		registry:     registry,
		conversation: store.NewConversation(options.SystemPrompt),
		options:      options,
	}
}

// Registry returns the agent's tool registry.
func (a *Agent) Registry() *tool.Registry {
	return a.registry
}

// AddTools discovers the tools offered on conn and registers them with the
// agent. On failure no tool from conn is registered.
func (a *Agent) AddTools(ctx context.Context, conn *mcp.Connection) ([]ai.Tool, error) {
	tools, err := mcp.Discover(ctx, conn, a.registry)
	if err != nil {
		return nil, err
	}
	for _, t := range tools {
		a.options.Logger.Debug("tool available", "server", conn.Name(), "tool", t.Name)
	}
	return tools, nil
}

// Messages returns a copy of the conversation history.
func (a *Agent) Messages() []ai.Message {
	return a.conversation.Messages()
}

// Reset clears the conversation back to the system turn.
func (a *Agent) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.conversation.Reset()
}

// outcomeKind tags the interpretation of one model response.
type outcomeKind int

const (
	outcomeFinal outcomeKind = iota
	outcomeToolCalls
	outcomeError
)

// stepOutcome is the result of a single model query.
type stepOutcome struct {
	kind     outcomeKind
	response *ai.Response
	calls    []ai.ToolCall
	err      error
}

// Respond appends text as a user turn and runs the loop until the model
// answers without tool calls or the step limit is reached.
//
// Reaching the step limit is not an error: the assistant text gathered so
// far is returned with Truncated set. Tool failures are reported to the
// model as tool turns and never abort the turn. A failed model query aborts
// the turn and its error is returned along with the partial result.
func (a *Agent) Respond(ctx context.Context, text string) (*Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.options.Timeout)
		defer cancel()
	}

	log := a.options.Logger
	start := a.conversation.Len()
	a.conversation.Append(ai.NewUserMessage(text))

	result := &Result{}
	chatOpts := append([]ai.Option{ai.WithTools(a.registry.Tools())}, a.options.ChatOptions...)

	for step := 1; ; step++ {
		if step > a.options.MaxSteps {
			result.Termination = TerminationMaxSteps
			result.Truncated = true
			log.Warn("step limit reached, returning partial answer",
				"max_steps", a.options.MaxSteps, "tool_calls", result.ToolCalls)
			break
		}
		if err := ctx.Err(); err != nil {
			result.Termination = terminationFor(err)
			a.finish(result, start)
			a.emit(Event{Type: EventError, Step: step, Error: err})
			return result, err
		}

		result.Steps = step
		a.emit(Event{Type: EventStepStart, Step: step})

		out := a.query(ctx, chatOpts)
		if out.response != nil {
			result.TotalUsage.InputTokens += out.response.Usage.InputTokens
			result.TotalUsage.OutputTokens += out.response.Usage.OutputTokens
			a.emit(Event{Type: EventStepComplete, Step: step, Response: out.response})
		}

		switch out.kind {
		case outcomeError:
			log.Error("model query failed", "step", step, "error", out.err)
			result.Termination = TerminationError
			if ctx.Err() != nil {
				result.Termination = terminationFor(ctx.Err())
			}
			a.finish(result, start)
			a.emit(Event{Type: EventError, Step: step, Error: out.err})
			return result, out.err

		case outcomeFinal:
			if out.response.Content != "" {
				a.conversation.Append(ai.NewAssistantMessage(out.response.Content))
			}
			result.Termination = TerminationComplete

		case outcomeToolCalls:
			a.conversation.Append(ai.NewAssistantMessage(out.response.Content, out.calls...))
			for _, call := range out.calls {
				a.conversation.Append(a.dispatch(ctx, step, call))
				result.ToolCalls++
			}
			continue
		}
		break
	}

	a.finish(result, start)
	log.Debug("turn complete",
		"steps", result.Steps,
		"tool_calls", result.ToolCalls,
		"termination", result.Termination)
	a.emit(Event{Type: EventAgentComplete, Step: result.Steps, Result: result})
	return result, nil
}

// query makes one model call and classifies the response.
func (a *Agent) query(ctx context.Context, chatOpts []ai.Option) stepOutcome {
	resp, err := a.chatClient.Chat(ctx, a.conversation.Messages(), chatOpts...)
	if err != nil {
		return stepOutcome{kind: outcomeError, err: err}
	}
	if resp == nil {
		return stepOutcome{kind: outcomeError, err: errors.New("agent: chat client returned no response")}
	}
	if !resp.HasToolCalls() {
		return stepOutcome{kind: outcomeFinal, response: resp}
	}

	calls := make([]ai.ToolCall, len(resp.ToolCalls))
	for i, call := range resp.ToolCalls {
		if call.ID == "" {
			call.ID = ai.GenerateToolCallID()
		}
		calls[i] = call
	}
	return stepOutcome{kind: outcomeToolCalls, response: resp, calls: calls}
}

// dispatch runs one tool call and returns the tool turn answering it.
// Every failure is rendered into the turn's text.
func (a *Agent) dispatch(ctx context.Context, step int, call ai.ToolCall) ai.Message {
	log := a.options.Logger.With("tool", call.Name, "call_id", call.ID, "step", step)
	a.emit(Event{Type: EventToolCallStarted, Step: step, ToolCall: &call})

	if a.options.Approver != nil {
		if approved, reason := a.options.Approver(ctx, call); !approved {
			rejected := &ToolRejectedError{Name: call.Name, Reason: reason}
			log.Info("tool call rejected", "reason", reason)
			a.emit(Event{Type: EventToolCallRejected, Step: step, ToolCall: &call, Message: reason})
			return a.toolTurn(step, call, ai.NewToolErrorResult(ai.FormatError(rejected)))
		}
	}

	execCtx := ctx
	if a.options.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, a.options.HandlerTimeout)
		defer cancel()
	}

	started := time.Now()
	result, err := a.registry.Execute(execCtx, call)
	if err != nil {
		log.Warn("tool call failed", "error", err)
		result = ai.NewToolErrorResult(ai.FormatError(err))
	} else {
		log.Debug("tool call finished", "duration", time.Since(started), "is_error", result.IsError)
	}
	return a.toolTurn(step, call, result)
}

func (a *Agent) toolTurn(step int, call ai.ToolCall, result ai.ToolResult) ai.Message {
	a.emit(Event{Type: EventToolResult, Step: step, ToolCall: &call, ToolResult: &result})

	text, err := result.Text()
	if err != nil {
		text = ai.FormatError(err)
	}
	return ai.NewToolMessage(call, text)
}

// finish fills in the fields derived from the turns appended since start.
func (a *Agent) finish(result *Result, start int) {
	result.Turns = a.conversation.Since(start)

	var lines []string
	for _, m := range result.Turns {
		if m.Role == ai.RoleAssistant && m.Content != "" {
			lines = append(lines, m.Content)
		}
	}
	result.Content = strings.Join(lines, "\n")
}

func (a *Agent) emit(e Event) {
	if a.options.EventHandler == nil {
		return
	}
	e.Timestamp = time.Now()
	a.options.EventHandler(e)
}

func terminationFor(err error) TerminationReason {
	if errors.Is(err, context.DeadlineExceeded) {
		return TerminationTimeout
	}
	return TerminationCancelled
}

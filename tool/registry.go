package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	ai "github.com/spetersoncode/toolloop"
)

// registeredTool combines a tool definition with its handler.
type registeredTool struct {
	tool    ai.Tool
	handler Handler
}

// Registry maps tool names to their specifications and handlers.
// Tools are listed in registration order. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]registeredTool
	order  []string
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration and execution messages.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// NewRegistry creates an empty tool registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		tools:  make(map[string]registeredTool),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register stores a tool under name. The input schema is decomposed into
// its properties and required parameters; if either key is absent the call
// fails with a SchemaError and the registry is left untouched.
//
// Registering a name that already exists replaces the previous tool.
func (r *Registry) Register(name string, handler Handler, description string, inputSchema json.RawMessage) error {
	properties, required, err := ParseInputSchema(name, inputSchema)
	if err != nil {
		return err
	}
	return r.RegisterTool(ai.Tool{
		Name:        name,
		Description: description,
		Properties:  properties,
		Required:    required,
	}, handler)
}

// RegisterTool stores an already decomposed tool specification.
// Registering a name that already exists replaces the previous tool in place.
func (r *Registry) RegisterTool(t ai.Tool, handler Handler) error {
	if t.Name == "" {
		return &ai.SchemaError{Tool: t.Name, Key: "name"}
	}
	if handler == nil {
		return fmt.Errorf("tool %s: nil handler", t.Name)
	}
	if t.Properties == nil {
		t.Properties = map[string]any{}
	}
	if t.Required == nil {
		t.Required = []string{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Name]; exists {
		r.logger.Warn("tool already registered, replacing", "tool", t.Name)
	} else {
		r.order = append(r.order, t.Name)
	}
	r.tools[t.Name] = registeredTool{tool: t, handler: handler}
	return nil
}

// MustRegister is like RegisterTool but panics on error.
func (r *Registry) MustRegister(t ai.Tool, handler Handler) {
	if err := r.RegisterTool(t, handler); err != nil {
		panic(err)
	}
}

// Add registers one or more tools to the registry.
// Returns the registry for fluent chaining.
//
// Example:
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("get_weather", "Get weather", weatherFn),
//	    tool.Func("echo", "Echo text", echoFn),
//	)
func (r *Registry) Add(regs ...Registration) *Registry {
	for _, reg := range regs {
		r.MustRegister(reg.Tool, reg.Handler)
	}
	return r
}

// Unregister removes a tool from the registry.
// It is a no-op if the tool is not registered.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tools[name]; !ok {
		return
	}
	delete(r.tools, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Clear removes every registered tool.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools = make(map[string]registeredTool)
	r.order = nil
}

// Get retrieves a handler by tool name.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok {
		return nil, false
	}
	return rt.handler, true
}

// GetTool retrieves a tool specification by name.
func (r *Registry) GetTool(name string) (ai.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	if !ok {
		return ai.Tool{}, false
	}
	return rt.tool, true
}

// Has returns true if the registry has a tool with the given name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Tools returns the specification of every registered tool in
// registration order. This is what gets advertised to the model.
func (r *Registry) Tools() []ai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]ai.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name].tool)
	}
	return tools
}

// Names returns the names of all registered tools in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Execute resolves call in the registry and runs its handler.
//
// An unregistered name returns an UnknownToolError. Any failure raised by
// the handler, including a panic, is returned as an error-flagged result
// whose text names the failure's kind, so one broken tool never aborts the
// conversation. A result containing non-text content returns an
// UnsupportedContentError.
func (r *Registry) Execute(ctx context.Context, call ai.ToolCall) (ai.ToolResult, error) {
	r.mu.RLock()
	rt, ok := r.tools[call.Name]
	r.mu.RUnlock()

	if !ok {
		return ai.ToolResult{}, &ai.UnknownToolError{Name: call.Name}
	}

	log := r.logger.With("tool", call.Name, "call_id", call.ID)
	log.Debug("executing tool", "args", call.Arguments)

	result, err := invoke(ctx, rt.handler, call)
	if err != nil {
		execErr := &ai.ToolExecutionError{Name: call.Name, Err: err}
		log.Warn("tool execution failed", "error", err)
		return ai.NewToolErrorResult(ai.FormatError(execErr)), nil
	}

	if err := result.Validate(); err != nil {
		var unsupported *ai.UnsupportedContentError
		if errors.As(err, &unsupported) {
			unsupported.Tool = call.Name
		}
		return ai.ToolResult{}, err
	}

	if result.IsError {
		if text, _ := result.Text(); text == "" {
			result = ai.NewToolErrorResult(fmt.Sprintf("Error: tool %s reported an error", call.Name))
		}
	}

	return result, nil
}

// invoke runs the handler, converting a panic into an error.
func invoke(ctx context.Context, h Handler, call ai.ToolCall) (result ai.ToolResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return h(ctx, call.Name, call.Arguments)
}

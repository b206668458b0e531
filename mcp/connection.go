package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	ai "github.com/spetersoncode/toolloop"
)

// ErrClosed is returned when connecting a Connection that was closed.
var ErrClosed = errors.New("mcp: connection closed")

// Connection is a client session with one MCP server.
//
// A Connection must complete its handshake with [Connection.Connect] before
// tools can be listed or called; until then those operations fail with a
// [toolloop.NotConnectedError]. Connection is safe for concurrent use.
type Connection struct {
	name string

	mu         sync.RWMutex
	client     *client.Client
	dial       func() (*client.Client, error)
	needsStart bool
	connected  bool
	closed     bool
	serverInfo mcp.Implementation

	clientInfo mcp.Implementation
	logger     *slog.Logger
}

// ConnectionOption configures a Connection.
type ConnectionOption func(*Connection)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ConnectionOption {
	return func(c *Connection) {
		c.logger = l
	}
}

// WithClientInfo sets the client name and version sent in the handshake.
func WithClientInfo(name, version string) ConnectionOption {
	return func(c *Connection) {
		c.clientInfo = mcp.Implementation{Name: name, Version: version}
	}
}

// NewStdioConnection describes a connection to a server launched as a
// subprocess. The process is spawned by Connect and stopped by Close.
// env entries have the form "KEY=value".
func NewStdioConnection(name, command string, env []string, args []string, opts ...ConnectionOption) *Connection {
	c := newConnection(name, opts...)
	c.dial = func() (*client.Client, error) {
		return client.NewStdioMCPClient(command, env, args...)
	}
	c.logger = c.logger.With("command", command)
	return c
}

// NewConnection wraps an existing, not yet started MCP client. Use it for
// transports other than stdio, such as the in-process client.
func NewConnection(name string, c *client.Client, opts ...ConnectionOption) *Connection {
	conn := newConnection(name, opts...)
	conn.client = c
	conn.needsStart = true
	return conn
}

func newConnection(name string, opts ...ConnectionOption) *Connection {
	c := &Connection{
		name:       name,
		clientInfo: mcp.Implementation{Name: "toolloop", Version: "1.0.0"},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("server", name)
	return c
}

// Name returns the name the connection was created with.
func (c *Connection) Name() string {
	return c.name
}

// Connected reports whether the handshake has completed.
func (c *Connection) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// ServerInfo returns the name and version the server reported.
func (c *Connection) ServerInfo() mcp.Implementation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverInfo
}

// Connect starts the transport if needed and performs the initialize
// handshake. Connecting an already connected Connection is a no-op.
func (c *Connection) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.connected {
		return nil
	}

	if c.client == nil {
		cl, err := c.dial()
		if err != nil {
			return fmt.Errorf("mcp %s: starting server: %w", c.name, err)
		}
		c.client = cl
	}
	if c.needsStart {
		if err := c.client.Start(ctx); err != nil {
			return fmt.Errorf("mcp %s: starting transport: %w", c.name, err)
		}
		c.needsStart = false
	}

	result, err := c.client.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo:      c.clientInfo,
		},
	})
	if err != nil {
		return fmt.Errorf("mcp %s: initialize: %w", c.name, err)
	}

	c.serverInfo = result.ServerInfo
	c.connected = true
	c.logger.Info("connected to tool server",
		"server_name", result.ServerInfo.Name,
		"server_version", result.ServerInfo.Version,
		"protocol", result.ProtocolVersion)
	return nil
}

// ListTools returns the tools the server offers. Only one page is read:
// a listing that carries a continuation cursor fails with a
// PaginationUnsupportedError.
func (c *Connection) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	cl, err := c.session("list tools")
	if err != nil {
		return nil, err
	}

	// ListTools would follow the cursor; only the first page is read.
	result, err := cl.ListToolsByPage(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("mcp %s: list tools: %w", c.name, err)
	}
	if result.NextCursor != "" {
		return nil, &ai.PaginationUnsupportedError{Cursor: string(result.NextCursor)}
	}

	c.logger.Debug("listed tools", "count", len(result.Tools))
	return result.Tools, nil
}

// CallTool invokes the named tool on the server. A tool that reports
// failure yields an error-flagged result, not an error; errors are
// reserved for transport and protocol failures.
func (c *Connection) CallTool(ctx context.Context, name string, args map[string]any) (ai.ToolResult, error) {
	cl, err := c.session("call tool " + name)
	if err != nil {
		return ai.ToolResult{}, err
	}

	result, err := cl.CallTool(ctx, ToMCPCallToolRequest(ai.ToolCall{Name: name, Arguments: args}))
	if err != nil {
		return ai.ToolResult{}, fmt.Errorf("mcp %s: %w", c.name, err)
	}
	return FromMCPCallToolResult(result), nil
}

// Close stops the server process and releases the transport.
// Closing twice is a no-op.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.connected = false
	if c.client == nil {
		return nil
	}

	err := c.client.Close()
	c.client = nil
	c.logger.Debug("connection closed")
	if err != nil {
		return fmt.Errorf("mcp %s: close: %w", c.name, err)
	}
	return nil
}

func (c *Connection) session(op string) (*client.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.connected {
		return nil, &ai.NotConnectedError{Op: op}
	}
	return c.client, nil
}

// Session connects conn, runs fn, and closes conn on every exit path,
// including a failed handshake or a panic in fn.
func Session(ctx context.Context, conn *Connection, fn func(*Connection) error) (err error) {
	defer func() {
		if closeErr := conn.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := conn.Connect(ctx); err != nil {
		return err
	}
	return fn(conn)
}

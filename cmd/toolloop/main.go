// Command toolloop is an interactive prompt that lets a local model answer
// questions using tools served by MCP servers.
//
// Every configured server is launched as a subprocess, its tools are
// registered, and each line typed at the prompt is one user turn. The model
// may call tools up to TOOLLOOP_MAX_STEPS times per turn.
//
// Usage:
//
//	ollama pull PetrosStav/gemma3-tools:4b
//	go run ./cmd/toolloop
//
// Type exit, quit, q or :q to leave.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	ai "github.com/spetersoncode/toolloop"
	"github.com/spetersoncode/toolloop/agent"
	"github.com/spetersoncode/toolloop/client"
	"github.com/spetersoncode/toolloop/mcp"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	toolStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

var exitWords = map[string]bool{"exit": true, "quit": true, "q": true, ":q": true}

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("config: "+err.Error()))
		os.Exit(1)
	}

	level, _ := parseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		stop()
		os.Exit(1)
	}
}

// run connects every server, then serves the prompt until the input ends
// or an exit word is entered. Connections are closed before it returns.
func run(ctx context.Context, cfg *Config, logger *slog.Logger, in io.Reader, out io.Writer) error {
	model, err := client.New(cfg.ClientConfig(logger))
	if err != nil {
		return err
	}

	a := agent.New(model, nil,
		agent.WithSystemPrompt(cfg.SystemPrompt),
		agent.WithMaxSteps(cfg.MaxSteps),
		agent.WithLogger(logger),
		agent.WithEventHandler(func(e agent.Event) {
			if e.Type == agent.EventToolCallStarted && e.ToolCall != nil {
				fmt.Fprintln(out, toolStyle.Render(fmt.Sprintf("Tool call: %s(%s)", e.ToolCall.Name, e.ToolCall.ArgumentsJSON())))
			}
		}),
	)

	var conns []*mcp.Connection
	defer func() {
		for _, conn := range conns {
			if err := conn.Close(); err != nil {
				logger.Warn("closing tool server", "server", conn.Name(), "error", err)
			}
		}
	}()

	for _, s := range cfg.Servers {
		conns = append(conns, mcp.NewStdioConnection(s.Name, s.Command, s.Env, s.Args, mcp.WithLogger(logger)))
	}

	// Discovery stays sequential so registration order follows the config.
	g, gctx := errgroup.WithContext(ctx)
	for _, conn := range conns {
		g.Go(func() error { return conn.Connect(gctx) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintln(out, mutedStyle.Render("Fetching available tools from the MCP server"))
	for _, conn := range conns {
		tools, err := a.AddTools(ctx, conn)
		if err != nil {
			return fmt.Errorf("discovering tools on %s: %w", conn.Name(), err)
		}
		for _, t := range tools {
			fmt.Fprintln(out, mutedStyle.Render("Registering tool: "+t.Name))
		}
	}

	return prompt(ctx, a, in, out)
}

// prompt reads one user turn per line and prints the agent's answer.
func prompt(ctx context.Context, a *agent.Agent, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, promptStyle.Render("prompt>")+" ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		if exitWords[strings.ToLower(text)] {
			return nil
		}
		if text == "" {
			continue
		}

		result, err := a.Respond(ctx, text)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
			if hint := errorHint(err); hint != "" {
				fmt.Fprintln(out, mutedStyle.Render(hint))
			}
			continue
		}

		fmt.Fprintln(out, result.Content)
		if result.Truncated {
			fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("(stopped after %d steps)", result.Steps)))
		}
	}
}

// errorHint suggests what to do about a failed model request.
func errorHint(err error) string {
	switch {
	case ai.IsTransient(err):
		return "(the model server is busy or unreachable; try again)"
	case ai.IsPermanent(err):
		if code := ai.StatusCodeOf(err); code != 0 {
			return fmt.Sprintf("(request rejected with status %d; check the model name and server settings)", code)
		}
		return "(request rejected; check the model name and server settings)"
	default:
		return ""
	}
}

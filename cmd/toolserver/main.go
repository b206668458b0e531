// Command toolserver is a demo MCP server that exposes a few local tools
// over stdio. Point toolloop at it to try the agent without external
// servers:
//
//	# servers.yaml
//	servers:
//	  - name: demo
//	    command: go
//	    args: ["run", "./cmd/toolserver"]
//
//	TOOLLOOP_SERVERS=servers.yaml go run ./cmd/toolloop
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spetersoncode/toolloop/mcp"
	"github.com/spetersoncode/toolloop/tool"
)

func main() {
	// stdout carries the protocol; logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if err := mcp.ServeStdio(newRegistry(logger),
		mcp.WithName("toolloop-demo"),
		mcp.WithVersion("1.0.0"),
	); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newRegistry(logger *slog.Logger) *tool.Registry {
	return tool.NewRegistry(tool.WithLogger(logger)).Add(
		tool.Func("echo", "Echo back the input text", echoHandler),
		tool.Func("time", "Get the current time", timeHandler),
		tool.Func("calculate", "Perform basic arithmetic", calculateHandler),
		tool.Func("get_weather", "Get the current weather for a location", weatherHandler),
	)
}

// EchoArgs are the arguments for the echo tool.
type EchoArgs struct {
	Text string `json:"text" desc:"The text to echo back" required:"true"`
}

func echoHandler(ctx context.Context, args EchoArgs) (string, error) {
	return args.Text, nil
}

// TimeArgs are the arguments for the time tool.
type TimeArgs struct {
	Format string `json:"format" desc:"Time format: 'rfc3339', 'unix', or 'human'" enum:"rfc3339,unix,human"`
}

func timeHandler(ctx context.Context, args TimeArgs) (string, error) {
	return formatTime(time.Now(), args.Format), nil
}

func formatTime(now time.Time, format string) string {
	switch strings.ToLower(format) {
	case "rfc3339":
		return now.Format(time.RFC3339)
	case "unix":
		return fmt.Sprintf("%d", now.Unix())
	default:
		return now.Format("Monday, January 2, 2006 at 3:04 PM MST")
	}
}

// CalculateArgs are the arguments for the calculate tool.
type CalculateArgs struct {
	Operation string  `json:"operation" desc:"The operation to perform" enum:"add,subtract,multiply,divide" required:"true"`
	A         float64 `json:"a" desc:"First number" required:"true"`
	B         float64 `json:"b" desc:"Second number" required:"true"`
}

func calculateHandler(ctx context.Context, args CalculateArgs) (string, error) {
	var result float64

	switch args.Operation {
	case "add":
		result = args.A + args.B
	case "subtract":
		result = args.A - args.B
	case "multiply":
		result = args.A * args.B
	case "divide":
		if args.B == 0 {
			return "", fmt.Errorf("cannot divide by zero")
		}
		result = args.A / args.B
	default:
		return "", fmt.Errorf("unknown operation: %s", args.Operation)
	}

	return fmt.Sprintf("%.6g", result), nil
}

// WeatherArgs are the arguments for the get_weather tool.
type WeatherArgs struct {
	Location string `json:"location" desc:"City or region" required:"true"`
}

// weatherHandler returns canned conditions.
func weatherHandler(ctx context.Context, args WeatherArgs) (string, error) {
	if strings.TrimSpace(args.Location) == "" {
		return "", fmt.Errorf("location is required")
	}
	return fmt.Sprintf("%s: 72F, sunny", args.Location), nil
}

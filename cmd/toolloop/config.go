package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/spetersoncode/toolloop/agent"
	"github.com/spetersoncode/toolloop/client"
)

// ServerConfig describes one MCP server launched as a subprocess.
type ServerConfig struct {
	Name    string   `yaml:"name"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Env     []string `yaml:"env"`
}

// serverFile is the layout of the TOOLLOOP_SERVERS file.
type serverFile struct {
	Servers []ServerConfig `yaml:"servers"`
}

// defaultServers are used when TOOLLOOP_SERVERS is unset.
var defaultServers = []ServerConfig{
	{Name: "mcp-fs", Command: "mcp-fs"},
	{Name: "memory", Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-memory"}},
}

// Config holds the CLI configuration loaded from environment variables.
type Config struct {
	LogLevel string // debug, info, warn, error

	// Provider selection. The Ollama address comes from OLLAMA_HOST,
	// which the Ollama client reads itself.
	Provider      string
	Model         string
	OpenAIBaseURL string
	OpenAIKey     string

	// Agent config
	SystemPrompt string
	MaxSteps     int

	Servers []ServerConfig
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		LogLevel:      getEnvOrDefault("TOOLLOOP_LOG_LEVEL", "warn"),
		Provider:      strings.ToLower(getEnvOrDefault("TOOLLOOP_PROVIDER", string(client.ProviderOllama))),
		Model:         getEnvOrDefault("TOOLLOOP_MODEL", client.DefaultModel),
		OpenAIBaseURL: os.Getenv("TOOLLOOP_OPENAI_BASE_URL"),
		OpenAIKey:     os.Getenv("TOOLLOOP_OPENAI_API_KEY"),
		SystemPrompt:  getEnvOrDefault("TOOLLOOP_SYSTEM_PROMPT", agent.DefaultSystemPrompt),
		MaxSteps:      getEnvIntOrDefault("TOOLLOOP_MAX_STEPS", agent.DefaultMaxSteps),
		Servers:       append([]ServerConfig(nil), defaultServers...),
	}

	if path := os.Getenv("TOOLLOOP_SERVERS"); path != "" {
		servers, err := loadServers(path)
		if err != nil {
			return nil, err
		}
		cfg.Servers = servers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadServers reads a YAML server list.
func loadServers(path string) ([]ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading server list: %w", err)
	}
	var file serverFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing server list %s: %w", path, err)
	}
	return file.Servers, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch client.ProviderName(c.Provider) {
	case client.ProviderOllama, client.ProviderOpenAI:
	default:
		return fmt.Errorf("unknown provider: %s (must be ollama or openai)", c.Provider)
	}

	if c.MaxSteps < 1 {
		return fmt.Errorf("TOOLLOOP_MAX_STEPS must be at least 1, got %d", c.MaxSteps)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Servers))
	for i, s := range c.Servers {
		if s.Command == "" {
			return fmt.Errorf("server %d (%s): command is required", i, s.Name)
		}
		if s.Name == "" {
			c.Servers[i].Name = s.Command
		}
		name := c.Servers[i].Name
		if seen[name] {
			return fmt.Errorf("duplicate server name: %s", name)
		}
		seen[name] = true
	}

	return nil
}

// ClientConfig returns the model client configuration.
func (c *Config) ClientConfig(logger *slog.Logger) client.Config {
	cfg := client.Config{
		Provider: client.ProviderName(c.Provider),
		Model:    c.Model,
		Logger:   logger,
	}
	if cfg.Provider == client.ProviderOpenAI {
		cfg.BaseURL = c.OpenAIBaseURL
		cfg.APIKey = c.OpenAIKey
	}
	return cfg
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", s)
	}
	return level, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

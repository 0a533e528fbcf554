package claudecode

import (
	"log/slog"
	"time"

	"github.com/petal-labs/prism/core"
)

// DefaultPath is the executable looked up on PATH when none is configured.
const DefaultPath = "claude"

// Config holds configuration for the Claude Code handler.
type Config struct {
	// Path is the claude executable. Defaults to DefaultPath.
	Path string

	ModelID string

	// MaxOutputTokens is passed as CLAUDE_CODE_MAX_OUTPUT_TOKENS.
	MaxOutputTokens int

	// Env is appended to the inherited environment of the subprocess.
	Env []string

	// KillDelay bounds how long a cancelled process may keep its pipes open.
	KillDelay time.Duration

	Logger    *slog.Logger
	Telemetry core.TelemetryHook
}

// Option configures the handler.
type Option func(*Config)

// WithPath sets the claude executable. Empty keeps the default.
func WithPath(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.Path = path
		}
	}
}

// WithModel selects the model.
func WithModel(id string) Option {
	return func(c *Config) {
		c.ModelID = id
	}
}

// WithMaxOutputTokens caps output tokens.
func WithMaxOutputTokens(n int) Option {
	return func(c *Config) {
		c.MaxOutputTokens = n
	}
}

// WithEnv adds KEY=VALUE entries to the subprocess environment.
func WithEnv(kv ...string) Option {
	return func(c *Config) {
		c.Env = append(c.Env, kv...)
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithTelemetry reports stream lifecycle to hook.
func WithTelemetry(hook core.TelemetryHook) Option {
	return func(c *Config) {
		c.Telemetry = hook
	}
}

package gemini

import (
	"log/slog"
	"net/http"

	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/internal/gcp"
)

// Config holds configuration for the Gemini handler.
type Config struct {
	// APIKey is sent as x-goog-api-key. Unused on Vertex.
	APIKey core.Secret

	// BaseURL is the API base URL. Defaults to https://generativelanguage.googleapis.com
	BaseURL string

	// HTTPClient is the HTTP client to use. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Headers contains optional extra headers to include in requests.
	Headers http.Header

	ModelID     string
	MaxTokens   int
	Temperature *float64

	// ThinkingBudget enables thought summaries on models that support them.
	ThinkingBudget int

	// Vertex routes requests through Vertex AI.
	Vertex *VertexConfig

	Logger    *slog.Logger
	Retry     core.RetryPolicy
	Telemetry core.TelemetryHook
}

// VertexConfig addresses Gemini models hosted on Vertex AI.
type VertexConfig struct {
	ProjectID   string
	Region      string
	Credentials *gcp.Credentials
}

// DefaultBaseURL is the default Gemini API base URL.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// Option configures the Gemini handler.
type Option func(*Config)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = core.NewSecret(key)
	}
}

// WithBaseURL sets the API base URL. Empty keeps the default.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		if url != "" {
			c.BaseURL = url
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		if client != nil {
			c.HTTPClient = client
		}
	}
}

// WithHeader adds an extra header to include in requests.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

// WithModel selects the model.
func WithModel(id string) Option {
	return func(c *Config) {
		c.ModelID = id
	}
}

// WithMaxTokens caps output tokens.
func WithMaxTokens(n int) Option {
	return func(c *Config) {
		c.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t *float64) Option {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithThinkingBudget sets the thinking token budget.
func WithThinkingBudget(n int) Option {
	return func(c *Config) {
		c.ThinkingBudget = n
	}
}

// WithVertex routes requests through Vertex AI.
func WithVertex(v VertexConfig) Option {
	return func(c *Config) {
		c.Vertex = &v
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

// WithRetry sets the reconnect policy.
func WithRetry(p core.RetryPolicy) Option {
	return func(c *Config) {
		c.Retry = p
	}
}

// WithTelemetry reports stream lifecycle to hook.
func WithTelemetry(hook core.TelemetryHook) Option {
	return func(c *Config) {
		c.Telemetry = hook
	}
}

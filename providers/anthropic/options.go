package anthropic

import (
	"log/slog"
	"net/http"

	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/internal/gcp"
)

// Config holds configuration for the Anthropic handler.
type Config struct {
	// APIKey is sent as x-api-key, or as a bearer token when UseAuthToken is set.
	APIKey       core.Secret
	UseAuthToken bool

	// BaseURL is the API base URL. Defaults to https://api.anthropic.com
	BaseURL string

	// HTTPClient is the HTTP client to use. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Version is the Anthropic API version. Defaults to 2023-06-01.
	Version string

	// Headers contains optional extra headers to include in requests.
	Headers http.Header

	// ModelID selects the model; empty means the catalog default.
	ModelID string

	// MaxTokens overrides the model's output limit.
	MaxTokens int

	// ThinkingBudget enables extended thinking for models that support it.
	ThinkingBudget int

	Temperature *float64

	// Beta1MContext requests the 1M-token context window beta.
	Beta1MContext bool

	// Vertex routes requests through Vertex AI instead of the Anthropic API.
	Vertex *VertexConfig

	Logger    *slog.Logger
	Retry     core.RetryPolicy
	Telemetry core.TelemetryHook
}

// VertexConfig addresses Claude models hosted on Vertex AI.
type VertexConfig struct {
	ProjectID   string
	Region      string
	Credentials *gcp.Credentials
}

// DefaultBaseURL is the default Anthropic API base URL.
const DefaultBaseURL = "https://api.anthropic.com"

// DefaultVersion is the default Anthropic API version.
const DefaultVersion = "2023-06-01"

// vertexVersion is sent in the body for Vertex-hosted Claude.
const vertexVersion = "vertex-2023-10-16"

const beta1MContext = "context-1m-2025-08-07"

// Option configures the Anthropic handler.
type Option func(*Config)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = core.NewSecret(key)
	}
}

// WithAuthToken sends the key as "Authorization: Bearer" instead of x-api-key.
func WithAuthToken(use bool) Option {
	return func(c *Config) {
		c.UseAuthToken = use
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

// WithVersion sets the Anthropic API version.
func WithVersion(version string) Option {
	return func(c *Config) {
		c.Version = version
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

// WithThinkingBudget enables extended thinking with the given token budget.
func WithThinkingBudget(n int) Option {
	return func(c *Config) {
		c.ThinkingBudget = n
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t *float64) Option {
	return func(c *Config) {
		c.Temperature = t
	}
}

// With1MContext toggles the 1M context beta header.
func With1MContext(on bool) Option {
	return func(c *Config) {
		c.Beta1MContext = on
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

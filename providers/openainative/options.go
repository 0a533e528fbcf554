package openainative

import (
	"log/slog"
	"net/http"

	"github.com/petal-labs/prism/core"
)

// DefaultBaseURL is the OpenAI API base URL.
const DefaultBaseURL = "https://api.openai.com/v1"

// Config holds configuration for the Responses API handler.
type Config struct {
	APIKey  core.Secret
	BaseURL string

	HTTPClient *http.Client
	Headers    http.Header

	ModelID string

	MaxTokens       int
	Temperature     *float64
	ReasoningEffort string

	// ServiceTier selects the processing tier: "default", "flex" or "priority".
	ServiceTier string

	Logger    *slog.Logger
	Retry     core.RetryPolicy
	Telemetry core.TelemetryHook
}

// Option configures the handler.
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

// WithTemperature sets the sampling temperature. Reasoning models ignore it.
func WithTemperature(t *float64) Option {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithReasoningEffort sets the reasoning effort for reasoning models.
func WithReasoningEffort(effort string) Option {
	return func(c *Config) {
		c.ReasoningEffort = effort
	}
}

// WithServiceTier selects the processing tier.
func WithServiceTier(tier string) Option {
	return func(c *Config) {
		c.ServiceTier = tier
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

package ollama

import (
	"log/slog"
	"net/http"

	"github.com/petal-labs/prism/core"
)

// Default base URLs for Ollama API.
const (
	// DefaultLocalURL is the default URL for local Ollama instances.
	DefaultLocalURL = "http://localhost:11434"

	// DefaultCloudURL is the URL for Ollama Cloud (ollama.com).
	DefaultCloudURL = "https://ollama.com"
)

// Config holds the configuration for the Ollama handler.
type Config struct {
	// APIKey is the API key for Ollama Cloud. Optional for local instances.
	APIKey core.Secret

	// BaseURL is the base URL for the Ollama API.
	// Defaults to DefaultLocalURL.
	BaseURL string

	// HTTPClient is the HTTP client to use for requests.
	// Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Headers contains additional HTTP headers to include in requests.
	Headers http.Header

	ModelID     string
	MaxTokens   int
	Temperature *float64

	Logger    *slog.Logger
	Retry     core.RetryPolicy
	Telemetry core.TelemetryHook
}

// Option is a function that configures the Ollama handler.
type Option func(*Config)

// WithAPIKey sets the API key for Ollama Cloud.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = core.NewSecret(key)
	}
}

// WithBaseURL sets a custom base URL. Empty keeps the default.
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

// WithMaxTokens caps output tokens (num_predict).
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

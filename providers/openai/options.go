package openai

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/petal-labs/prism/core"
)

// DefaultBaseURL is the OpenAI API base URL.
const DefaultBaseURL = "https://api.openai.com/v1"

// DefaultAzureAPIVersion is sent as api-version when Azure mode is on.
const DefaultAzureAPIVersion = "2024-12-01-preview"

// CredentialSource supplies a bearer token and, optionally, a base URL at
// request time. It is used by backends whose credentials rotate.
type CredentialSource func(ctx context.Context) (token, baseURL string, err error)

// Config holds configuration for an OpenAI-compatible handler.
type Config struct {
	// Provider names the backend in errors, telemetry and catalog lookups.
	Provider string

	APIKey  core.Secret
	BaseURL string

	HTTPClient *http.Client
	Headers    http.Header

	// Azure sends the key as api-key and adds the api-version query.
	Azure           bool
	AzureAPIVersion string

	ModelID string
	// ModelInfo overrides catalog metadata for custom models.
	ModelInfo *core.ModelInfo

	MaxTokens       int
	Temperature     *float64
	ReasoningEffort string

	// DisableStreaming makes a single non-streaming call whose result is
	// replayed as events.
	DisableStreaming bool

	// NoStreamUsage omits stream_options.include_usage for backends that
	// reject it.
	NoStreamUsage bool

	// ThinkTags splits inline <think> sections into reasoning events.
	ThinkTags bool

	// Body adds fixed top-level fields to every request.
	Body map[string]any

	// SystemBody adds fields only to requests that carry a system prompt.
	// The system message is messages.0 in those requests.
	SystemBody map[string]any

	// RequestBody adds per-request fields derived from the call metadata.
	RequestBody func(meta *core.Metadata) map[string]any

	// RequestHeaders adds per-request headers derived from the call metadata.
	RequestHeaders func(meta *core.Metadata) map[string]string

	Credentials CredentialSource

	MaxRetries int
	Logger     *slog.Logger
	Telemetry  core.TelemetryHook
}

// Option configures an OpenAI-compatible handler.
type Option func(*Config)

// WithProvider sets the backend name used in errors and catalog lookups.
func WithProvider(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.Provider = name
		}
	}
}

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

// WithAzure enables Azure OpenAI authentication. An empty version uses
// DefaultAzureAPIVersion.
func WithAzure(apiVersion string) Option {
	return func(c *Config) {
		c.Azure = true
		c.AzureAPIVersion = apiVersion
	}
}

// WithModel selects the model.
func WithModel(id string) Option {
	return func(c *Config) {
		c.ModelID = id
	}
}

// WithModelInfo overrides the catalog metadata for the model.
func WithModelInfo(info *core.ModelInfo) Option {
	return func(c *Config) {
		c.ModelInfo = info
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

// WithReasoningEffort sets reasoning_effort ("low", "medium", "high").
func WithReasoningEffort(effort string) Option {
	return func(c *Config) {
		c.ReasoningEffort = effort
	}
}

// WithStreaming toggles streaming requests.
func WithStreaming(on bool) Option {
	return func(c *Config) {
		c.DisableStreaming = !on
	}
}

// WithoutStreamUsage omits the include_usage stream option.
func WithoutStreamUsage() Option {
	return func(c *Config) {
		c.NoStreamUsage = true
	}
}

// WithThinkTags splits inline <think> sections into reasoning events.
func WithThinkTags(on bool) Option {
	return func(c *Config) {
		c.ThinkTags = on
	}
}

// WithBodyField adds a fixed top-level request field.
func WithBodyField(key string, value any) Option {
	return func(c *Config) {
		if c.Body == nil {
			c.Body = make(map[string]any)
		}
		c.Body[key] = value
	}
}

// WithSystemBodyField adds a request field only when a system prompt is
// sent, such as a cache marker on messages.0.
func WithSystemBodyField(key string, value any) Option {
	return func(c *Config) {
		if c.SystemBody == nil {
			c.SystemBody = make(map[string]any)
		}
		c.SystemBody[key] = value
	}
}

// WithRequestBody derives extra request fields from call metadata.
func WithRequestBody(fn func(meta *core.Metadata) map[string]any) Option {
	return func(c *Config) {
		c.RequestBody = fn
	}
}

// WithRequestHeaders derives extra request headers from call metadata.
func WithRequestHeaders(fn func(meta *core.Metadata) map[string]string) Option {
	return func(c *Config) {
		c.RequestHeaders = fn
	}
}

// WithCredentials resolves the bearer token per request.
func WithCredentials(src CredentialSource) Option {
	return func(c *Config) {
		c.Credentials = src
	}
}

// WithMaxRetries sets how often failed connection attempts are retried.
func WithMaxRetries(n int) Option {
	return func(c *Config) {
		c.MaxRetries = n
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

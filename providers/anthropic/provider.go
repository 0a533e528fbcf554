// Package anthropic implements the Anthropic Messages API handler, used for
// the anthropic provider, the default fallback, and Claude models hosted on
// Vertex AI.
package anthropic

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/catalog"
	"github.com/petal-labs/prism/providers/internal/gcp"
)

const messagesPath = "/v1/messages"

// Handler streams completions from the Anthropic Messages API.
// Handler is safe for concurrent use.
type Handler struct {
	id     string
	config Config
	model  core.ModelRef
	log    *slog.Logger
}

// New creates a handler. It performs no I/O.
func New(opts ...Option) *Handler {
	cfg := Config{
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
		Version:    DefaultVersion,
		Logger:     slog.Default(),
		Retry:      core.DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	id := "anthropic"
	if cfg.Vertex != nil {
		id = "vertex"
	}
	return &Handler{
		id:     id,
		config: cfg,
		model:  catalog.Resolve(id, cfg.ModelID),
		log:    cfg.Logger.With("provider", id),
	}
}

// Model reports the configured model.
func (h *Handler) Model() core.ModelRef {
	return h.model
}

// messagesURL returns the streaming endpoint.
func (h *Handler) messagesURL() string {
	if v := h.config.Vertex; v != nil {
		return gcp.Endpoint(v.Region) + "/v1/projects/" + v.ProjectID + "/locations/" + v.Region +
			"/publishers/anthropic/models/" + h.model.ID + ":streamRawPredict"
	}
	return strings.TrimRight(h.config.BaseURL, "/") + messagesPath
}

// buildHeaders constructs the HTTP headers for an API request.
func (h *Handler) buildHeaders() http.Header {
	headers := make(http.Header)

	if h.config.Vertex == nil {
		if h.config.UseAuthToken {
			headers.Set("Authorization", "Bearer "+h.config.APIKey.Expose())
		} else {
			headers.Set("x-api-key", h.config.APIKey.Expose())
		}
		headers.Set("anthropic-version", h.config.Version)
	}
	if h.config.Beta1MContext && strings.HasPrefix(h.model.ID, "claude-sonnet-4") {
		headers.Set("anthropic-beta", beta1MContext)
	}

	for key, values := range h.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}
	return headers
}

func (h *Handler) authorize() func(context.Context, *http.Request) error {
	if v := h.config.Vertex; v != nil && v.Credentials != nil {
		return v.Credentials.Authorize
	}
	return nil
}

// CreateMessage streams a completion.
func (h *Handler) CreateMessage(ctx context.Context, systemPrompt string, messages []core.Message, meta *core.Metadata) *core.Stream {
	req := h.buildRequest(systemPrompt, messages)
	return core.NewStream(ctx, func(ctx context.Context, emit core.Emit) error {
		return h.stream(ctx, req, emit)
	}, core.WithTelemetry(h.id, h.model.ID, h.config.Telemetry))
}

var _ core.Handler = (*Handler)(nil)

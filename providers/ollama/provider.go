package ollama

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/catalog"
	"github.com/petal-labs/prism/providers/internal/transport"
)

const (
	providerID = "ollama"
	chatPath   = "/api/chat"
)

// Handler streams completions from an Ollama server.
// Handler is safe for concurrent use.
type Handler struct {
	core.EstimatingCounter

	config Config
	model  core.ModelRef
	log    *slog.Logger
}

// New creates a handler. It performs no I/O.
func New(opts ...Option) *Handler {
	cfg := Config{
		BaseURL:    DefaultLocalURL,
		HTTPClient: http.DefaultClient,
		Logger:     slog.Default(),
		Retry:      core.DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{
		config: cfg,
		model:  catalog.Resolve(providerID, cfg.ModelID),
		log:    cfg.Logger.With("provider", providerID),
	}
}

// Model reports the configured model.
func (h *Handler) Model() core.ModelRef {
	return h.model
}

// buildHeaders constructs the HTTP headers for an API request.
// Authorization is only sent when an API key is set.
func (h *Handler) buildHeaders() http.Header {
	headers := transport.Bearer(h.config.APIKey)
	for key, values := range h.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}
	return headers
}

func (h *Handler) chatURL() string {
	return strings.TrimRight(h.config.BaseURL, "/") + chatPath
}

// CreateMessage streams a completion.
func (h *Handler) CreateMessage(ctx context.Context, systemPrompt string, messages []core.Message, meta *core.Metadata) *core.Stream {
	req := h.buildRequest(systemPrompt, messages)
	return core.NewStream(ctx, func(ctx context.Context, emit core.Emit) error {
		return h.stream(ctx, req, emit)
	}, core.WithTelemetry(providerID, h.model.ID, h.config.Telemetry))
}

var _ core.Handler = (*Handler)(nil)

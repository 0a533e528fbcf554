// Package openainative implements the OpenAI Responses API handler. It
// chains requests through previous_response_id so the server keeps the
// conversation state.
package openainative

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
	providerID    = "openai-native"
	responsesPath = "/responses"
)

// Handler streams completions from the Responses API.
// Handler is safe for concurrent use.
type Handler struct {
	core.EstimatingCounter

	config     Config
	model      core.ModelRef
	continuity core.Continuity
	log        *slog.Logger
}

// New creates a handler. It performs no I/O.
func New(opts ...Option) *Handler {
	cfg := Config{
		BaseURL:    DefaultBaseURL,
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

// LastResponseID returns the id the next unsuppressed call will continue from.
func (h *Handler) LastResponseID() string {
	return h.continuity.Last()
}

func (h *Handler) buildHeaders() http.Header {
	headers := transport.Bearer(h.config.APIKey)
	for key, values := range h.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}
	return headers
}

// CreateMessage streams a completion. The previous response id is resolved
// when the stream starts, so calls issued in sequence chain correctly.
func (h *Handler) CreateMessage(ctx context.Context, systemPrompt string, messages []core.Message, meta *core.Metadata) *core.Stream {
	return core.NewStream(ctx, func(ctx context.Context, emit core.Emit) error {
		prev := h.continuity.Previous(meta)
		req := h.buildRequest(systemPrompt, messages, prev, meta.StoreEnabled())
		if prev != "" {
			h.log.Debug("continuing response", "previous_response_id", prev)
		}
		return h.stream(ctx, req, meta, emit)
	}, core.WithTelemetry(providerID, h.model.ID, h.config.Telemetry))
}

func (h *Handler) responsesURL() string {
	return strings.TrimRight(h.config.BaseURL, "/") + responsesPath
}

var _ core.Handler = (*Handler)(nil)

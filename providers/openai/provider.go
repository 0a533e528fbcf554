// Package openai implements the Chat Completions handler shared by every
// OpenAI-compatible backend: OpenAI-compatible endpoints, Azure OpenAI and
// the hosted routers and inference APIs that speak the same protocol.
package openai

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/catalog"
)

// Handler streams completions from a Chat Completions endpoint.
// Handler is safe for concurrent use.
type Handler struct {
	core.EstimatingCounter

	config  Config
	model   core.ModelRef
	service openai.ChatCompletionService
	log     *slog.Logger
}

// New creates a handler. It performs no I/O and never reads the process
// environment.
func New(opts ...Option) *Handler {
	cfg := Config{
		Provider:   "openai",
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
		MaxRetries: 2,
		Logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Azure && cfg.AzureAPIVersion == "" {
		cfg.AzureAPIVersion = DefaultAzureAPIVersion
	}

	model := catalog.Resolve(cfg.Provider, cfg.ModelID)
	if cfg.ModelInfo != nil {
		model.Info = *cfg.ModelInfo
	}

	h := &Handler{
		config: cfg,
		model:  model,
		log:    cfg.Logger.With("provider", cfg.Provider),
	}
	h.service = openai.NewChatCompletionService(h.clientOptions()...)
	return h
}

// Model reports the configured model.
func (h *Handler) Model() core.ModelRef {
	return h.model
}

// Provider returns the backend name.
func (h *Handler) Provider() string {
	return h.config.Provider
}

func (h *Handler) clientOptions() []option.RequestOption {
	opts := []option.RequestOption{
		option.WithBaseURL(h.config.BaseURL),
		option.WithHTTPClient(h.config.HTTPClient),
		option.WithMaxRetries(h.config.MaxRetries),
	}

	key := h.config.APIKey.Expose()
	switch {
	case h.config.Azure:
		opts = append(opts,
			option.WithHeader("api-key", key),
			option.WithQuery("api-version", h.config.AzureAPIVersion),
		)
	case key != "":
		opts = append(opts, option.WithAPIKey(key))
	}

	for k, vs := range h.config.Headers {
		for _, v := range vs {
			opts = append(opts, option.WithHeaderAdd(k, v))
		}
	}
	return opts
}

// requestOptions returns the per-call options: extra body fields, metadata
// headers and rotating credentials.
func (h *Handler) requestOptions(ctx context.Context, systemPrompt string, meta *core.Metadata) ([]option.RequestOption, error) {
	var opts []option.RequestOption
	for k, v := range h.config.Body {
		opts = append(opts, option.WithJSONSet(k, v))
	}
	if systemPrompt != "" {
		for k, v := range h.config.SystemBody {
			opts = append(opts, option.WithJSONSet(k, v))
		}
	}
	if h.config.RequestBody != nil {
		for k, v := range h.config.RequestBody(meta) {
			opts = append(opts, option.WithJSONSet(k, v))
		}
	}
	if h.config.RequestHeaders != nil {
		for k, v := range h.config.RequestHeaders(meta) {
			if v != "" {
				opts = append(opts, option.WithHeader(k, v))
			}
		}
	}
	if h.config.Credentials != nil {
		token, baseURL, err := h.config.Credentials(ctx)
		if err != nil {
			return nil, &core.ProviderError{Provider: h.config.Provider, Message: err.Error(), Err: core.ErrUnauthorized}
		}
		opts = append(opts, option.WithAPIKey(token))
		if baseURL != "" {
			opts = append(opts, option.WithBaseURL(baseURL))
		}
	}
	return opts, nil
}

// CreateMessage streams a completion.
func (h *Handler) CreateMessage(ctx context.Context, systemPrompt string, messages []core.Message, meta *core.Metadata) *core.Stream {
	params := h.buildParams(systemPrompt, messages)
	return core.NewStream(ctx, func(ctx context.Context, emit core.Emit) error {
		opts, err := h.requestOptions(ctx, systemPrompt, meta)
		if err != nil {
			return err
		}
		f := &failure{provider: h.config.Provider}
		opts = append(opts, f.middleware())
		if h.config.DisableStreaming {
			return h.complete(ctx, params, opts, f, emit)
		}
		return h.stream(ctx, params, opts, f, emit)
	}, core.WithTelemetry(h.config.Provider, h.model.ID, h.config.Telemetry))
}

var _ core.Handler = (*Handler)(nil)

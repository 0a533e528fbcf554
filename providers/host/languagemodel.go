package host

import (
	"context"
	"iter"
	"strings"

	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/settings"
)

// LanguageModel is a host-provided chat model, such as one exposed by an
// editor. Implementations pick the concrete model from the selector.
type LanguageModel interface {
	// SendRequest streams text fragments of the reply.
	SendRequest(ctx context.Context, selector settings.ModelSelector, systemPrompt string, messages []core.Message) iter.Seq2[string, error]

	// CountTokens counts tokens with the host model's tokenizer.
	CountTokens(ctx context.Context, selector settings.ModelSelector, text string) (int, error)
}

// HostModel completes requests through a LanguageModel.
type HostModel struct {
	lm       LanguageModel
	selector settings.ModelSelector
	cfg      config
}

// NewHostModel creates a handler for the model matched by selector.
// lm may be nil.
func NewHostModel(lm LanguageModel, selector *settings.ModelSelector, opts ...Option) *HostModel {
	h := &HostModel{lm: lm, cfg: newConfig(opts)}
	if selector != nil {
		h.selector = *selector
	}
	return h
}

// Model reports an id derived from the selector. Host models carry no
// static metadata.
func (h *HostModel) Model() core.ModelRef {
	return core.ModelRef{ID: selectorID(h.selector), Info: core.DefaultModelInfo}
}

func selectorID(s settings.ModelSelector) string {
	if s.ID != "" {
		return s.ID
	}
	var parts []string
	for _, p := range []string{s.Vendor, s.Family, s.Version} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "vscode-lm"
	}
	return strings.Join(parts, "/")
}

// CreateMessage relays the request to the host model.
func (h *HostModel) CreateMessage(ctx context.Context, systemPrompt string, messages []core.Message, _ *core.Metadata) *core.Stream {
	return core.NewStream(ctx, func(ctx context.Context, emit core.Emit) error {
		if h.lm == nil {
			return noHost("vscode-lm")
		}
		var out int
		for fragment, err := range h.lm.SendRequest(ctx, h.selector, systemPrompt, messages) {
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return &core.ProviderError{Provider: "vscode-lm", Message: err.Error(), Err: core.ErrServer}
			}
			if fragment == "" {
				continue
			}
			out += len(fragment)
			if !emit(core.TextEvent(fragment)) {
				return nil
			}
		}
		// The host reports no usage; estimate both sides.
		input := core.EstimateTokens([]core.ContentBlock{core.Text(systemPrompt)})
		for _, m := range messages {
			input += core.EstimateTokens(m.Content)
		}
		emit(core.UsageEvent(core.Usage{
			InputTokens:  input,
			OutputTokens: (out + 3) / 4,
		}))
		return nil
	}, core.WithTelemetry("vscode-lm", selectorID(h.selector), h.cfg.telemetry))
}

// CountTokens uses the host tokenizer for text and falls back to the
// estimator when the host is absent or fails.
func (h *HostModel) CountTokens(ctx context.Context, content []core.ContentBlock) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if h.lm == nil || len(content) == 0 {
		return core.EstimateTokens(content), nil
	}
	var text strings.Builder
	for _, c := range content {
		if c.Type != core.BlockText {
			return core.EstimateTokens(content), nil
		}
		text.WriteString(c.Text)
	}
	n, err := h.lm.CountTokens(ctx, h.selector, text.String())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		return core.EstimateTokens(content), nil
	}
	return n, nil
}

var _ core.Handler = (*HostModel)(nil)

package host

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/petal-labs/prism/core"
)

// RelayFunc hands a rendered prompt to a person and returns what they
// paste back. It should block until an answer arrives or ctx ends.
type RelayFunc func(ctx context.Context, id, prompt string) (string, error)

// HumanRelay completes requests by relaying them through a person.
type HumanRelay struct {
	core.EstimatingCounter

	relay RelayFunc
	cfg   config
}

// NewHumanRelay creates a relay handler. relay may be nil.
func NewHumanRelay(relay RelayFunc, opts ...Option) *HumanRelay {
	return &HumanRelay{relay: relay, cfg: newConfig(opts)}
}

// Model reports the fixed relay model.
func (h *HumanRelay) Model() core.ModelRef {
	return core.ModelRef{ID: "human-relay", Info: core.DefaultModelInfo}
}

// CreateMessage renders the conversation and waits for the relayed answer,
// which is delivered as a single text event.
func (h *HumanRelay) CreateMessage(ctx context.Context, systemPrompt string, messages []core.Message, _ *core.Metadata) *core.Stream {
	prompt := RenderPrompt(systemPrompt, messages)
	return core.NewStream(ctx, func(ctx context.Context, emit core.Emit) error {
		if h.relay == nil {
			return noHost("human-relay")
		}
		answer, err := h.relay(ctx, uuid.NewString(), prompt)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &core.ProviderError{Provider: "human-relay", Message: err.Error(), Err: err}
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			emit(core.TextEvent(answer))
		}
		return nil
	}, core.WithTelemetry("human-relay", "human-relay", h.cfg.telemetry))
}

// RenderPrompt flattens a conversation into the plain text shown to the
// person relaying it. Images are noted but not inlined.
func RenderPrompt(systemPrompt string, messages []core.Message) string {
	var b strings.Builder
	if systemPrompt != "" {
		b.WriteString(systemPrompt)
		b.WriteString("\n\n")
	}
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if m.Role == core.RoleAssistant {
			b.WriteString("Assistant: ")
		} else {
			b.WriteString("User: ")
		}
		b.WriteString(m.PlainText())
		for _, c := range m.Content {
			if c.Type == core.BlockImage {
				b.WriteString("\n[image]")
			}
		}
	}
	return b.String()
}

func noHost(provider string) error {
	return &core.ProviderError{Provider: provider, Message: core.ErrNoHost.Error(), Err: core.ErrNoHost}
}

var _ core.Handler = (*HumanRelay)(nil)

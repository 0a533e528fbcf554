package host

import (
	"context"

	"github.com/petal-labs/prism/core"
)

// Fake forwards every call to a caller-supplied handler. It lets tests and
// demos plug in a scripted backend through ordinary configuration.
type Fake struct {
	delegate core.Handler
	cfg      config
}

// NewFake wraps delegate, which may be nil.
func NewFake(delegate core.Handler, opts ...Option) *Fake {
	return &Fake{delegate: delegate, cfg: newConfig(opts)}
}

// CreateMessage replays the delegate's stream under the fake-ai tag.
func (f *Fake) CreateMessage(ctx context.Context, systemPrompt string, messages []core.Message, meta *core.Metadata) *core.Stream {
	return core.NewStream(ctx, func(ctx context.Context, emit core.Emit) error {
		if f.delegate == nil {
			return noHost("fake-ai")
		}
		for ev, err := range f.delegate.CreateMessage(ctx, systemPrompt, messages, meta).Events() {
			if err != nil {
				return err
			}
			if ev.Type == core.EventError {
				return ev.Err
			}
			if !emit(ev) {
				return ctx.Err()
			}
		}
		return nil
	}, core.WithTelemetry("fake-ai", f.Model().ID, f.cfg.telemetry))
}

func (f *Fake) Model() core.ModelRef {
	if f.delegate == nil {
		return core.ModelRef{ID: "fake-ai", Info: core.DefaultModelInfo}
	}
	return f.delegate.Model()
}

func (f *Fake) CountTokens(ctx context.Context, content []core.ContentBlock) (int, error) {
	if f.delegate == nil {
		return core.EstimatingCounter{}.CountTokens(ctx, content)
	}
	return f.delegate.CountTokens(ctx, content)
}

// Script is a Handler that replays fixed events. It is the usual delegate
// for Fake.
type Script struct {
	core.EstimatingCounter

	ModelRef core.ModelRef
	Events   []core.StreamEvent
}

func (s *Script) CreateMessage(ctx context.Context, _ string, _ []core.Message, _ *core.Metadata) *core.Stream {
	events := append([]core.StreamEvent(nil), s.Events...)
	return core.NewStream(ctx, func(_ context.Context, emit core.Emit) error {
		for _, ev := range events {
			if ev.Type == core.EventError {
				return ev.Err
			}
			if !emit(ev) {
				return nil
			}
		}
		return nil
	})
}

func (s *Script) Model() core.ModelRef {
	if s.ModelRef.ID == "" {
		return core.ModelRef{ID: "fake-ai", Info: core.DefaultModelInfo}
	}
	return s.ModelRef
}

var (
	_ core.Handler = (*Fake)(nil)
	_ core.Handler = (*Script)(nil)
)

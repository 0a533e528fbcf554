// Package otel reports prism completion streams as OpenTelemetry spans.
//
//	hook := otel.New()
//	handler := providers.Build(cfg, providers.WithTelemetry(hook))
//
// One client span is recorded per stream, from the first pull to the
// producer's return. Spans carry provider, model and token counts only.
package otel

import (
	"context"

	gotel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/petal-labs/prism/core"
)

const instrumentationName = "github.com/petal-labs/prism/contrib/otel"

// Attribute keys follow the GenAI semantic conventions where one exists.
const (
	attrSystem       = attribute.Key("gen_ai.system")
	attrModel        = attribute.Key("gen_ai.request.model")
	attrInputTokens  = attribute.Key("gen_ai.usage.input_tokens")
	attrOutputTokens = attribute.Key("gen_ai.usage.output_tokens")
	attrCacheRead    = attribute.Key("prism.usage.cache_read_tokens")
	attrCacheWrite   = attribute.Key("prism.usage.cache_write_tokens")
	attrReasoning    = attribute.Key("prism.usage.reasoning_tokens")
	attrCost         = attribute.Key("prism.usage.cost_usd")
	attrEvents       = attribute.Key("prism.stream.events")
)

// Hook implements core.TelemetryHook.
type Hook struct {
	tracer trace.Tracer
}

// Option configures a Hook.
type Option func(*config)

type config struct {
	provider trace.TracerProvider
}

// WithTracerProvider sets the provider spans are created from.
// The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		if tp != nil {
			c.provider = tp
		}
	}
}

// New creates a hook.
func New(opts ...Option) *Hook {
	cfg := config{provider: gotel.GetTracerProvider()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Hook{tracer: cfg.provider.Tracer(instrumentationName)}
}

// OnStreamStart does nothing; the span is recorded with its real start
// time once the stream ends.
func (h *Hook) OnStreamStart(core.StreamStartEvent) {}

// OnStreamEnd records one span for the finished stream.
func (h *Hook) OnStreamEnd(e core.StreamEndEvent) {
	_, span := h.tracer.Start(context.Background(), "prism.stream "+e.Provider,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithTimestamp(e.Start),
		trace.WithAttributes(
			attrSystem.String(e.Provider),
			attrModel.String(e.Model),
			attrEvents.Int(e.Events),
			attrInputTokens.Int(e.Usage.InputTokens),
			attrOutputTokens.Int(e.Usage.OutputTokens),
		),
	)

	if e.Usage.CacheReadTokens > 0 {
		span.SetAttributes(attrCacheRead.Int(e.Usage.CacheReadTokens))
	}
	if e.Usage.CacheWriteTokens > 0 {
		span.SetAttributes(attrCacheWrite.Int(e.Usage.CacheWriteTokens))
	}
	if e.Usage.ReasoningTokens > 0 {
		span.SetAttributes(attrReasoning.Int(e.Usage.ReasoningTokens))
	}
	if e.Usage.TotalCost != nil {
		span.SetAttributes(attrCost.Float64(*e.Usage.TotalCost))
	}

	if e.Err != nil {
		span.RecordError(e.Err)
		span.SetStatus(codes.Error, e.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(e.End))
}

var _ core.TelemetryHook = (*Hook)(nil)

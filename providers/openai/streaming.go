package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/internal/thinktags"
	"github.com/tidwall/gjson"
)

// stream performs a streaming request and translates chunks into events.
func (h *Handler) stream(ctx context.Context, params openai.ChatCompletionNewParams, opts []option.RequestOption, f *failure, emit core.Emit) error {
	s := h.service.NewStreaming(ctx, params, opts...)
	defer s.Close()

	out := newEmitter(h.config.ThinkTags, emit)
	for s.Next() {
		chunk := s.Current()
		for _, choice := range chunk.Choices {
			if !out.reasoning(reasoningText(choice.Delta.RawJSON())) || !out.text(choice.Delta.Content) {
				return nil
			}
		}
		if u := gjson.Get(chunk.RawJSON(), "usage"); u.IsObject() {
			if !emit(core.UsageEvent(usageFromJSON(u))) {
				return nil
			}
		}
	}
	if err := s.Err(); err != nil {
		return h.mapError(ctx, f, err)
	}
	out.flush()
	return nil
}

// complete performs one non-streaming request and replays it as events.
func (h *Handler) complete(ctx context.Context, params openai.ChatCompletionNewParams, opts []option.RequestOption, f *failure, emit core.Emit) error {
	resp, err := h.service.New(ctx, params, opts...)
	if err != nil {
		return h.mapError(ctx, f, err)
	}

	out := newEmitter(h.config.ThinkTags, emit)
	for _, choice := range resp.Choices {
		if !out.reasoning(reasoningText(choice.Message.RawJSON())) || !out.text(choice.Message.Content) {
			return nil
		}
	}
	if !out.flush() {
		return nil
	}
	if u := gjson.Get(resp.RawJSON(), "usage"); u.IsObject() {
		emit(core.UsageEvent(usageFromJSON(u)))
	}
	return nil
}

// reasoningText reads the non-standard reasoning fields several
// compatible backends add to deltas.
func reasoningText(raw string) string {
	if raw == "" {
		return ""
	}
	res := gjson.GetMany(raw, "reasoning_content", "reasoning")
	for _, r := range res {
		if r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
	}
	return ""
}

// usageFromJSON reads a usage object, including the cache and cost fields
// some backends add to the standard shape.
func usageFromJSON(u gjson.Result) core.Usage {
	usage := core.Usage{
		InputTokens:      int(u.Get("prompt_tokens").Int()),
		OutputTokens:     int(u.Get("completion_tokens").Int()),
		CacheReadTokens:  int(u.Get("prompt_tokens_details.cached_tokens").Int()),
		CacheWriteTokens: int(u.Get("cache_creation_input_tokens").Int()),
		ReasoningTokens:  int(u.Get("completion_tokens_details.reasoning_tokens").Int()),
	}
	if hit := u.Get("prompt_cache_hit_tokens"); hit.Exists() {
		usage.CacheReadTokens = int(hit.Int())
	}
	if cost := u.Get("cost"); cost.Type == gjson.Number {
		c := cost.Float()
		usage.TotalCost = &c
	}
	return usage
}

// emitter routes content through an optional <think> splitter.
type emitter struct {
	emit  core.Emit
	split *thinktags.Splitter
}

func newEmitter(thinkTags bool, emit core.Emit) *emitter {
	e := &emitter{emit: emit}
	if thinkTags {
		e.split = &thinktags.Splitter{}
	}
	return e
}

func (e *emitter) reasoning(s string) bool {
	if s == "" {
		return true
	}
	return e.emit(core.ReasoningEvent(s))
}

func (e *emitter) text(s string) bool {
	if s == "" {
		return true
	}
	if e.split == nil {
		return e.emit(core.TextEvent(s))
	}
	return e.all(e.split.Feed(s))
}

func (e *emitter) flush() bool {
	if e.split == nil {
		return true
	}
	return e.all(e.split.Flush())
}

func (e *emitter) all(events []core.StreamEvent) bool {
	for _, ev := range events {
		if !e.emit(ev) {
			return false
		}
	}
	return true
}

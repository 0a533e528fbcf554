package gemini

import (
	"context"
	"errors"
	"io"

	json "github.com/goccy/go-json"
	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/internal/sse"
	"github.com/petal-labs/prism/providers/internal/transport"
)

// stream performs the request and translates SSE chunks into events.
// Gemini repeats cumulative usage on every chunk, so usage is emitted once
// after the last chunk.
func (h *Handler) stream(ctx context.Context, req *geminiRequest, emit core.Emit) error {
	resp, err := transport.Post(ctx, transport.Request{
		Provider:  h.id,
		Client:    h.config.HTTPClient,
		URL:       h.modelURL("streamGenerateContent") + "?alt=sse",
		Header:    h.buildHeaders(),
		Body:      req,
		Retry:     h.config.Retry,
		Authorize: h.authorize(),
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var usage *geminiUsage
	dec := sse.NewDecoder(resp.Body)
	for {
		ev, err := dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return h.newNetworkError(err)
		}
		if len(ev.Data) == 0 {
			continue
		}

		var chunk geminiResponse
		if err := json.Unmarshal(ev.Data, &chunk); err != nil {
			return h.newDecodeError(err)
		}
		if chunk.Error != nil {
			return h.newStreamError(chunk.Error)
		}
		if chunk.UsageMetadata != nil {
			usage = chunk.UsageMetadata
		}
		if len(chunk.Candidates) == 0 {
			continue
		}

		for _, part := range chunk.Candidates[0].Content.Parts {
			if part.Text == "" {
				continue
			}
			out := core.TextEvent(part.Text)
			if part.Thought {
				out = core.ReasoningEvent(part.Text)
			}
			if !emit(out) {
				return nil
			}
		}
	}

	if usage != nil {
		emit(core.UsageEvent(h.usage(usage)))
	}
	return nil
}

func (h *Handler) usage(u *geminiUsage) core.Usage {
	usage := core.Usage{
		InputTokens:     u.PromptTokenCount - u.CachedContentTokenCount,
		OutputTokens:    u.CandidatesTokenCount,
		CacheReadTokens: u.CachedContentTokenCount,
		ReasoningTokens: u.ThoughtsTokenCount,
	}
	cost := h.model.Info.Cost(usage)
	usage.TotalCost = &cost
	return usage
}

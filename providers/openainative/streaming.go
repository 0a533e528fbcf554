package openainative

import (
	"context"
	"errors"
	"io"

	json "github.com/goccy/go-json"
	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/internal/normalize"
	"github.com/petal-labs/prism/providers/internal/sse"
	"github.com/petal-labs/prism/providers/internal/transport"
)

// stream performs the request and translates Responses events.
func (h *Handler) stream(ctx context.Context, req *responsesRequest, meta *core.Metadata, emit core.Emit) error {
	resp, err := transport.Post(ctx, transport.Request{
		Provider: providerID,
		Client:   h.config.HTTPClient,
		URL:      h.responsesURL(),
		Header:   h.buildHeaders(),
		Body:     req,
		Retry:    h.config.Retry,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	dec := sse.NewDecoder(resp.Body)
	for {
		ev, err := dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return normalize.NetworkError(providerID, err)
		}
		if len(ev.Data) == 0 || sse.Done(ev.Data) {
			continue
		}

		var event responsesStreamEvent
		if err := json.Unmarshal(ev.Data, &event); err != nil {
			return normalize.DecodeError(providerID, err)
		}

		switch event.Type {
		case "response.output_text.delta":
			if event.Delta != "" && !emit(core.TextEvent(event.Delta)) {
				return nil
			}

		case "response.reasoning_summary_text.delta", "response.reasoning_text.delta":
			if event.Delta != "" && !emit(core.ReasoningEvent(event.Delta)) {
				return nil
			}

		case "response.completed", "response.incomplete":
			if r := event.Response; r != nil {
				h.continuity.Remember(meta, r.ID)
				if r.Usage != nil {
					emit(core.UsageEvent(h.usage(r.Usage)))
				}
			}
			return nil

		case "response.failed":
			if r := event.Response; r != nil && r.Error != nil {
				return normalize.StreamError(providerID, r.Error.Code, r.Error.Message)
			}
			return normalize.StreamError(providerID, "", "response failed")

		case "error":
			return normalize.StreamError(providerID, event.Code, event.Message)
		}
	}
}

func (h *Handler) usage(u *responsesUsage) core.Usage {
	usage := core.Usage{
		InputTokens:     u.InputTokens - u.InputTokensDetails.CachedTokens,
		OutputTokens:    u.OutputTokens,
		CacheReadTokens: u.InputTokensDetails.CachedTokens,
		ReasoningTokens: u.OutputTokensDetails.ReasoningTokens,
	}
	cost := h.model.Info.Cost(usage)
	usage.TotalCost = &cost
	return usage
}

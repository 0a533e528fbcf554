package anthropic

import (
	"context"
	"errors"
	"io"

	json "github.com/goccy/go-json"
	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/internal/sse"
	"github.com/petal-labs/prism/providers/internal/transport"
)

// stream performs the request and translates SSE events into stream events.
func (h *Handler) stream(ctx context.Context, req *anthropicRequest, emit core.Emit) error {
	resp, err := transport.Post(ctx, transport.Request{
		Provider:  h.id,
		Client:    h.config.HTTPClient,
		URL:       h.messagesURL(),
		Header:    h.buildHeaders(),
		Body:      req,
		Retry:     h.config.Retry,
		Authorize: h.authorize(),
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
			return h.newNetworkError(err)
		}
		if len(ev.Data) == 0 {
			continue
		}

		var event anthropicStreamEvent
		if err := json.Unmarshal(ev.Data, &event); err != nil {
			return h.newDecodeError(err)
		}

		switch event.Type {
		case "message_start":
			if event.Message != nil {
				u := event.Message.Usage
				if !emit(core.UsageEvent(core.Usage{
					InputTokens:      u.InputTokens,
					CacheWriteTokens: u.CacheCreationInputTokens,
					CacheReadTokens:  u.CacheReadInputTokens,
				})) {
					return nil
				}
			}

		case "content_block_start":
			if b := event.ContentBlock; b != nil {
				var ok = true
				switch {
				case b.Type == "text" && b.Text != "":
					ok = emit(core.TextEvent(b.Text))
				case b.Type == "thinking" && b.Thinking != "":
					ok = emit(core.ReasoningEvent(b.Thinking))
				}
				if !ok {
					return nil
				}
			}

		case "content_block_delta":
			if d := event.Delta; d != nil {
				var ok = true
				switch d.Type {
				case "text_delta":
					if d.Text != "" {
						ok = emit(core.TextEvent(d.Text))
					}
				case "thinking_delta":
					if d.Thinking != "" {
						ok = emit(core.ReasoningEvent(d.Thinking))
					}
				}
				if !ok {
					return nil
				}
			}

		case "message_delta":
			if event.Usage != nil && event.Usage.OutputTokens > 0 {
				if !emit(core.UsageEvent(core.Usage{OutputTokens: event.Usage.OutputTokens})) {
					return nil
				}
			}

		case "message_stop":
			return nil

		case "error":
			if event.Error != nil {
				return h.newStreamError(event.Error)
			}
		}
	}
}

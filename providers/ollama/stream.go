package ollama

import (
	"context"
	"errors"
	"io"

	json "github.com/goccy/go-json"
	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/internal/normalize"
	"github.com/petal-labs/prism/providers/internal/transport"
)

// stream performs the request and decodes the NDJSON body line by line.
func (h *Handler) stream(ctx context.Context, req *ollamaRequest, emit core.Emit) error {
	resp, err := transport.Post(ctx, transport.Request{
		Provider: providerID,
		Client:   h.config.HTTPClient,
		URL:      h.chatURL(),
		Header:   h.buildHeaders(),
		Body:     req,
		Retry:    h.config.Retry,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	dec := json.NewDecoder(resp.Body)
	for {
		var chunk ollamaResponse
		if err := dec.Decode(&chunk); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return normalize.DecodeError(providerID, err)
		}

		if chunk.Error != "" {
			return normalize.StreamError(providerID, "stream_error", chunk.Error)
		}
		if chunk.Message.Thinking != "" && !emit(core.ReasoningEvent(chunk.Message.Thinking)) {
			return nil
		}
		if chunk.Message.Content != "" && !emit(core.TextEvent(chunk.Message.Content)) {
			return nil
		}
		if chunk.Done {
			emit(core.UsageEvent(core.Usage{
				InputTokens:  chunk.PromptEvalCount,
				OutputTokens: chunk.EvalCount,
			}))
			return nil
		}
	}
}

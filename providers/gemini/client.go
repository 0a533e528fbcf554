package gemini

import (
	"context"

	json "github.com/goccy/go-json"
	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/internal/transport"
)

// CountTokens asks the countTokens endpoint and falls back to the local
// estimate on any failure.
func (h *Handler) CountTokens(ctx context.Context, content []core.ContentBlock) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(content) == 0 {
		return 0, nil
	}

	n, err := h.countTokens(ctx, content)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		h.log.Debug("native token count failed, estimating", "error", err)
		return core.EstimateTokens(content), nil
	}
	return n, nil
}

func (h *Handler) countTokens(ctx context.Context, content []core.ContentBlock) (int, error) {
	resp, err := transport.Post(ctx, transport.Request{
		Provider:  h.id,
		Client:    h.config.HTTPClient,
		URL:       h.modelURL("countTokens"),
		Header:    h.buildHeaders(),
		Body:      countTokensRequest{Contents: []geminiContent{{Role: "user", Parts: mapParts(content)}}},
		Authorize: h.authorize(),
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var out countTokensResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, h.newDecodeError(err)
	}
	return out.TotalTokens, nil
}

package anthropic

import (
	"context"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/internal/transport"
)

const countTokensPath = "/v1/messages/count_tokens"

// CountTokens asks the API for an exact count and falls back to the local
// estimate when the endpoint is unavailable. Vertex always uses the estimate.
func (h *Handler) CountTokens(ctx context.Context, content []core.ContentBlock) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if h.config.Vertex != nil || len(content) == 0 {
		return core.EstimateTokens(content), nil
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
	blocks := mapBlocks(content)
	if len(blocks) == 0 {
		return 0, nil
	}
	resp, err := transport.Post(ctx, transport.Request{
		Provider: h.id,
		Client:   h.config.HTTPClient,
		URL:      strings.TrimRight(h.config.BaseURL, "/") + countTokensPath,
		Header:   h.buildHeaders(),
		Body: countTokensRequest{
			Model:    h.model.ID,
			Messages: []anthropicMessage{{Role: string(core.RoleUser), Content: blocks}},
		},
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var out countTokensResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, h.newDecodeError(err)
	}
	return out.InputTokens, nil
}

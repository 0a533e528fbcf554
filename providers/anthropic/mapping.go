package anthropic

import (
	"github.com/petal-labs/prism/core"
)

var ephemeral = &anthropicCacheControl{Type: "ephemeral"}

// buildRequest maps a conversation to a Messages API request.
//
// On models with prompt caching the system prompt and the last two user
// messages are marked as cache breakpoints.
func (h *Handler) buildRequest(systemPrompt string, messages []core.Message) *anthropicRequest {
	model := h.model
	req := &anthropicRequest{
		Messages:  mapMessages(messages),
		MaxTokens: h.maxTokens(),
		Stream:    true,
	}
	if h.config.Vertex != nil {
		req.AnthropicVersion = vertexVersion
	} else {
		req.Model = model.ID
	}
	if systemPrompt != "" {
		req.System = []anthropicBlock{{Type: "text", Text: systemPrompt}}
	}

	if budget := h.config.ThinkingBudget; budget > 0 && model.Info.SupportsReasoning {
		// Thinking requires the default temperature and a budget below max_tokens.
		req.Thinking = &anthropicThinking{Type: "enabled", BudgetTokens: min(budget, req.MaxTokens-1)}
	} else {
		req.Temperature = h.config.Temperature
	}

	if model.Info.SupportsPromptCache {
		if len(req.System) > 0 {
			req.System[0].CacheControl = ephemeral
		}
		markLastUserMessages(req.Messages, 2)
	}
	return req
}

func (h *Handler) maxTokens() int {
	if h.config.MaxTokens > 0 {
		return h.config.MaxTokens
	}
	if h.model.Info.MaxTokens > 0 {
		return h.model.Info.MaxTokens
	}
	return core.DefaultModelInfo.MaxTokens
}

func mapMessages(messages []core.Message) []anthropicMessage {
	out := make([]anthropicMessage, 0, len(messages))
	for _, m := range messages {
		blocks := mapBlocks(m.Content)
		if len(blocks) == 0 {
			continue
		}
		out = append(out, anthropicMessage{Role: string(m.Role), Content: blocks})
	}
	return out
}

func mapBlocks(content []core.ContentBlock) []anthropicBlock {
	blocks := make([]anthropicBlock, 0, len(content))
	for _, b := range content {
		switch b.Type {
		case core.BlockText:
			if b.Text == "" {
				continue
			}
			blocks = append(blocks, anthropicBlock{Type: "text", Text: b.Text})
		case core.BlockImage:
			if b.Image == nil {
				continue
			}
			blocks = append(blocks, anthropicBlock{
				Type: "image",
				Source: &anthropicImageSource{
					Type:      "base64",
					MediaType: b.Image.MediaType,
					Data:      b.Image.Data,
				},
			})
		}
	}
	return blocks
}

func markLastUserMessages(messages []anthropicMessage, n int) {
	for i := len(messages) - 1; i >= 0 && n > 0; i-- {
		if messages[i].Role != string(core.RoleUser) {
			continue
		}
		content := messages[i].Content
		content[len(content)-1].CacheControl = ephemeral
		n--
	}
}

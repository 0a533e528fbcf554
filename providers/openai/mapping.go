package openai

import (
	"github.com/openai/openai-go"
	"github.com/petal-labs/prism/core"
)

// buildParams converts a neutral conversation to a Chat Completions request.
func (h *Handler) buildParams(systemPrompt string, messages []core.Message) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:    h.model.ID,
		Messages: mapMessages(systemPrompt, messages),
	}
	if !h.config.DisableStreaming && !h.config.NoStreamUsage {
		params.StreamOptions.IncludeUsage = openai.Bool(true)
	}
	if h.config.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(h.config.MaxTokens))
	}
	if t := h.config.Temperature; t != nil {
		params.Temperature = openai.Float(*t)
	}
	if h.config.ReasoningEffort != "" {
		params.ReasoningEffort = openai.ReasoningEffort(h.config.ReasoningEffort)
	}
	return params
}

// mapMessages puts the system prompt first and keeps message order.
func mapMessages(systemPrompt string, messages []core.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if systemPrompt != "" {
		out = append(out, openai.SystemMessage(systemPrompt))
	}
	for _, m := range messages {
		if m.Role == core.RoleAssistant {
			out = append(out, openai.AssistantMessage(m.PlainText()))
			continue
		}
		out = append(out, userMessage(m.Content))
	}
	return out
}

// userMessage sends plain text as a string and switches to content parts
// only when images are present.
func userMessage(blocks []core.ContentBlock) openai.ChatCompletionMessageParamUnion {
	if !hasImage(blocks) {
		return openai.UserMessage(core.Message{Content: blocks}.PlainText())
	}
	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(blocks))
	for _, b := range blocks {
		switch {
		case b.Type == core.BlockText:
			parts = append(parts, openai.TextContentPart(b.Text))
		case b.Type == core.BlockImage && b.Image != nil:
			parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: b.Image.DataURL(),
			}))
		}
	}
	return openai.UserMessage(parts)
}

func hasImage(blocks []core.ContentBlock) bool {
	for _, b := range blocks {
		if b.Type == core.BlockImage && b.Image != nil {
			return true
		}
	}
	return false
}

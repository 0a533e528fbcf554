package gemini

import "github.com/petal-labs/prism/core"

// buildRequest creates a Gemini request from a neutral conversation.
func (h *Handler) buildRequest(systemPrompt string, messages []core.Message) *geminiRequest {
	req := &geminiRequest{Contents: mapMessages(messages)}
	if systemPrompt != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}}
	}

	gen := &geminiGenConfig{
		Temperature:     h.config.Temperature,
		MaxOutputTokens: h.config.MaxTokens,
	}
	if h.config.ThinkingBudget > 0 && h.model.Info.SupportsReasoning {
		gen.ThinkingConfig = &geminiThinkConfig{
			ThinkingBudget:  h.config.ThinkingBudget,
			IncludeThoughts: true,
		}
	}
	if gen.Temperature != nil || gen.MaxOutputTokens > 0 || gen.ThinkingConfig != nil {
		req.GenerationConfig = gen
	}
	return req
}

// mapMessages converts messages to Gemini contents; assistant turns use
// the "model" role.
func mapMessages(msgs []core.Message) []geminiContent {
	contents := make([]geminiContent, 0, len(msgs))
	for _, msg := range msgs {
		role := "user"
		if msg.Role == core.RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: mapParts(msg.Content)})
	}
	return contents
}

func mapParts(blocks []core.ContentBlock) []geminiPart {
	parts := make([]geminiPart, 0, len(blocks))
	for _, b := range blocks {
		switch {
		case b.Type == core.BlockText:
			parts = append(parts, geminiPart{Text: b.Text})
		case b.Type == core.BlockImage && b.Image != nil:
			parts = append(parts, geminiPart{InlineData: &geminiInlineData{
				MimeType: b.Image.MediaType,
				Data:     b.Image.Data,
			}})
		}
	}
	return parts
}

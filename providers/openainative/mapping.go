package openainative

import "github.com/petal-labs/prism/core"

const defaultReasoningEffort = "medium"

// buildRequest creates a streaming Responses API request.
// With a previous response id only the turns after the last assistant
// message are sent; the server already holds the rest.
func (h *Handler) buildRequest(systemPrompt string, messages []core.Message, previousID string, store bool) *responsesRequest {
	req := &responsesRequest{
		Model:              h.model.ID,
		Instructions:       systemPrompt,
		PreviousResponseID: previousID,
		ServiceTier:        h.config.ServiceTier,
		Store:              store,
		Stream:             true,
	}
	if previousID != "" {
		messages = sinceLastAssistant(messages)
	}
	req.Input = buildInput(messages)

	if h.config.MaxTokens > 0 {
		req.MaxOutputTokens = h.config.MaxTokens
	}
	if h.model.Info.SupportsReasoning {
		effort := h.config.ReasoningEffort
		if effort == "" {
			effort = defaultReasoningEffort
		}
		req.Reasoning = &reasoningParam{Effort: effort, Summary: "auto"}
	} else if h.config.Temperature != nil {
		req.Temperature = h.config.Temperature
	}
	return req
}

func sinceLastAssistant(messages []core.Message) []core.Message {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == core.RoleAssistant {
			return messages[i+1:]
		}
	}
	return messages
}

// buildInput converts messages to Responses input items. Assistant turns
// are replayed as output_text.
func buildInput(msgs []core.Message) []responsesInput {
	out := make([]responsesInput, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Role == core.RoleAssistant {
			out = append(out, responsesInput{
				Role:    string(core.RoleAssistant),
				Content: []responsesContent{{Type: "output_text", Text: msg.PlainText()}},
			})
			continue
		}
		parts := make([]responsesContent, 0, len(msg.Content))
		for _, b := range msg.Content {
			switch {
			case b.Type == core.BlockText:
				parts = append(parts, responsesContent{Type: "input_text", Text: b.Text})
			case b.Type == core.BlockImage && b.Image != nil:
				parts = append(parts, responsesContent{Type: "input_image", ImageURL: b.Image.DataURL()})
			}
		}
		out = append(out, responsesInput{Role: string(core.RoleUser), Content: parts})
	}
	return out
}

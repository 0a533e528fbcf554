package ollama

import "github.com/petal-labs/prism/core"

// buildRequest maps a neutral conversation to an Ollama chat request.
// The system prompt becomes a leading system message; images travel as
// raw base64 alongside the text.
func (h *Handler) buildRequest(systemPrompt string, messages []core.Message) *ollamaRequest {
	req := &ollamaRequest{
		Model:    h.model.ID,
		Messages: make([]ollamaMessage, 0, len(messages)+1),
		Stream:   true,
		Options: &ollamaOptions{
			Temperature: h.config.Temperature,
			NumPredict:  h.config.MaxTokens,
		},
	}
	if systemPrompt != "" {
		req.Messages = append(req.Messages, ollamaMessage{Role: "system", Content: systemPrompt})
	}
	for _, m := range messages {
		msg := ollamaMessage{Role: string(m.Role), Content: m.PlainText()}
		for _, b := range m.Content {
			if b.Type == core.BlockImage && b.Image != nil {
				msg.Images = append(msg.Images, b.Image.Data)
			}
		}
		req.Messages = append(req.Messages, msg)
	}
	return req
}

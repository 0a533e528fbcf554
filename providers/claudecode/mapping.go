package claudecode

import "github.com/petal-labs/prism/core"

// cliMessage is the Anthropic-style message shape the CLI reads on stdin.
type cliMessage struct {
	Role    string     `json:"role"`
	Content []cliBlock `json:"content"`
}

type cliBlock struct {
	Type   string     `json:"type"`
	Text   string     `json:"text,omitempty"`
	Source *cliSource `json:"source,omitempty"`
}

type cliSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

func mapMessages(msgs []core.Message) []cliMessage {
	out := make([]cliMessage, 0, len(msgs))
	for _, m := range msgs {
		blocks := make([]cliBlock, 0, len(m.Content))
		for _, b := range m.Content {
			switch {
			case b.Type == core.BlockText:
				blocks = append(blocks, cliBlock{Type: "text", Text: b.Text})
			case b.Type == core.BlockImage && b.Image != nil:
				blocks = append(blocks, cliBlock{Type: "image", Source: &cliSource{
					Type:      "base64",
					MediaType: b.Image.MediaType,
					Data:      b.Image.Data,
				}})
			}
		}
		out = append(out, cliMessage{Role: string(m.Role), Content: blocks})
	}
	return out
}

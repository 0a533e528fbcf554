package core

// Role represents a message participant role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation in backend-neutral form.
// The system prompt travels separately and never appears as a Message.
type Message struct {
	Role    Role           `json:"role" yaml:"role"`
	Content []ContentBlock `json:"content" yaml:"content"`
}

// UserText is a shorthand for a single-block user message.
func UserText(text string) Message {
	return Message{Role: RoleUser, Content: []ContentBlock{Text(text)}}
}

// AssistantText is a shorthand for a single-block assistant message.
func AssistantText(text string) Message {
	return Message{Role: RoleAssistant, Content: []ContentBlock{Text(text)}}
}

// PlainText concatenates the text blocks of a message.
// Non-text blocks are skipped.
func (m Message) PlainText() string {
	if len(m.Content) == 1 {
		return m.Content[0].Text
	}
	var n int
	for _, b := range m.Content {
		n += len(b.Text)
	}
	buf := make([]byte, 0, n)
	for _, b := range m.Content {
		if b.Type == BlockText {
			buf = append(buf, b.Text...)
		}
	}
	return string(buf)
}

// ModelInfo is the static metadata an adapter reports for its active model.
type ModelInfo struct {
	MaxTokens           int     `json:"maxTokens,omitempty"`
	ContextWindow       int     `json:"contextWindow"`
	SupportsImages      bool    `json:"supportsImages,omitempty"`
	SupportsPromptCache bool    `json:"supportsPromptCache"`
	SupportsReasoning   bool    `json:"supportsReasoning,omitempty"`
	InputPrice          float64 `json:"inputPrice,omitempty"`
	OutputPrice         float64 `json:"outputPrice,omitempty"`
	CacheWritesPrice    float64 `json:"cacheWritesPrice,omitempty"`
	CacheReadsPrice     float64 `json:"cacheReadsPrice,omitempty"`
	Description         string  `json:"description,omitempty"`
}

// DefaultModelInfo is reported for model ids an adapter has no metadata for.
var DefaultModelInfo = ModelInfo{
	MaxTokens:     8192,
	ContextWindow: 128_000,
}

// ModelRef identifies the model a handler is configured for.
type ModelRef struct {
	ID   string    `json:"id"`
	Info ModelInfo `json:"info"`
}

// Usage reports token consumption for one response.
// Counts are cumulative for the response that emitted them.
type Usage struct {
	InputTokens      int      `json:"inputTokens"`
	OutputTokens     int      `json:"outputTokens"`
	CacheWriteTokens int      `json:"cacheWriteTokens,omitempty"`
	CacheReadTokens  int      `json:"cacheReadTokens,omitempty"`
	ReasoningTokens  int      `json:"reasoningTokens,omitempty"`
	TotalCost        *float64 `json:"totalCost,omitempty"`
}

// Add folds another usage report into u.
func (u *Usage) Add(o Usage) {
	u.InputTokens += o.InputTokens
	u.OutputTokens += o.OutputTokens
	u.CacheWriteTokens += o.CacheWriteTokens
	u.CacheReadTokens += o.CacheReadTokens
	u.ReasoningTokens += o.ReasoningTokens
	if o.TotalCost != nil {
		total := *o.TotalCost
		if u.TotalCost != nil {
			total += *u.TotalCost
		}
		u.TotalCost = &total
	}
}

// Cost computes the price of a usage report in USD given per-million prices.
func (m ModelInfo) Cost(u Usage) float64 {
	const perMillion = 1_000_000.0
	return (float64(u.InputTokens)*m.InputPrice +
		float64(u.OutputTokens)*m.OutputPrice +
		float64(u.CacheWriteTokens)*m.CacheWritesPrice +
		float64(u.CacheReadTokens)*m.CacheReadsPrice) / perMillion
}

// Metadata carries per-request context from the caller.
type Metadata struct {
	TaskID string `json:"taskId,omitempty"`
	Mode   string `json:"mode,omitempty"`

	// PreviousResponseID links this request to an earlier response on
	// backends that support server-side conversation state.
	PreviousResponseID string `json:"previousResponseId,omitempty"`

	// SuppressPreviousResponseID forces a fresh context for this call only.
	SuppressPreviousResponseID bool `json:"suppressPreviousResponseId,omitempty"`

	// Store controls server-side retention where supported. Nil means true.
	Store *bool `json:"store,omitempty"`
}

// StoreEnabled reports whether the response should be retained server-side.
func (m *Metadata) StoreEnabled() bool {
	return m == nil || m.Store == nil || *m.Store
}

package openainative

// Responses API request/response types.

type responsesRequest struct {
	Model              string           `json:"model"`
	Input              []responsesInput `json:"input"`
	Instructions       string           `json:"instructions,omitempty"`
	MaxOutputTokens    int              `json:"max_output_tokens,omitempty"`
	Temperature        *float64         `json:"temperature,omitempty"`
	Reasoning          *reasoningParam  `json:"reasoning,omitempty"`
	PreviousResponseID string           `json:"previous_response_id,omitempty"`
	ServiceTier        string           `json:"service_tier,omitempty"`
	Store              bool             `json:"store"`
	Stream             bool             `json:"stream"`
}

// reasoningParam configures reasoning behavior.
type reasoningParam struct {
	Effort  string `json:"effort,omitempty"`
	Summary string `json:"summary,omitempty"` // "auto", "concise", "detailed"
}

// responsesInput is one message of the input array.
type responsesInput struct {
	Role    string             `json:"role"`
	Content []responsesContent `json:"content"`
}

// responsesContent is one content part: input_text, input_image or output_text.
type responsesContent struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// responsesStreamEvent is one SSE payload. Fields are populated per type.
type responsesStreamEvent struct {
	Type     string             `json:"type"`
	Delta    string             `json:"delta,omitempty"`
	Response *responsesResponse `json:"response,omitempty"`

	// Set on "error" events.
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type responsesResponse struct {
	ID     string          `json:"id"`
	Model  string          `json:"model"`
	Status string          `json:"status"`
	Usage  *responsesUsage `json:"usage,omitempty"`
	Error  *responsesError `json:"error,omitempty"`
}

type responsesUsage struct {
	InputTokens         int                 `json:"input_tokens"`
	OutputTokens        int                 `json:"output_tokens"`
	TotalTokens         int                 `json:"total_tokens"`
	InputTokensDetails  inputTokensDetails  `json:"input_tokens_details"`
	OutputTokensDetails outputTokensDetails `json:"output_tokens_details"`
}

type inputTokensDetails struct {
	CachedTokens int `json:"cached_tokens"`
}

type outputTokensDetails struct {
	ReasoningTokens int `json:"reasoning_tokens"`
}

type responsesError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

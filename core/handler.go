package core

import "context"

// Handler is the uniform contract every backend adapter satisfies.
type Handler interface {
	// CreateMessage prepares a streaming completion. No I/O happens until the
	// returned stream is iterated. meta may be nil.
	CreateMessage(ctx context.Context, systemPrompt string, messages []Message, meta *Metadata) *Stream

	// Model reports the configured model id and its metadata without I/O.
	Model() ModelRef

	// CountTokens estimates the token count of content. Adapters with a
	// native counting endpoint use it and fall back to EstimateTokens.
	// The only error returned is context cancellation.
	CountTokens(ctx context.Context, content []ContentBlock) (int, error)
}

// EstimatingCounter provides the default CountTokens for adapters
// without a native counting endpoint.
type EstimatingCounter struct{}

// CountTokens implements the fallback half of Handler.
func (EstimatingCounter) CountTokens(ctx context.Context, content []ContentBlock) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return EstimateTokens(content), nil
}

package gemini

import (
	"github.com/petal-labs/prism/providers/internal/normalize"
)

// newNetworkError creates a ProviderError for network-related failures.
func (h *Handler) newNetworkError(err error) error {
	return normalize.NetworkError(h.id, err)
}

// newDecodeError creates a ProviderError for JSON decode failures.
func (h *Handler) newDecodeError(err error) error {
	return normalize.DecodeError(h.id, err)
}

// newStreamError reports an error object sent mid-stream.
func (h *Handler) newStreamError(e *geminiError) error {
	return normalize.StreamError(h.id, e.Status, e.Message)
}

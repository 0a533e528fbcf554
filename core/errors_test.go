package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderErrorMessage(t *testing.T) {
	err := &ProviderError{
		Provider:  "openrouter",
		Status:    401,
		RequestID: "req_123",
		Code:      "invalid_api_key",
		Message:   "No auth credentials found",
	}
	msg := err.Error()
	for _, want := range []string{"openrouter", "401", "req_123", "invalid_api_key"} {
		assert.Contains(t, msg, want)
	}

	err.RequestID = ""
	assert.NotContains(t, err.Error(), "request_id")
}

func TestProviderErrorClassification(t *testing.T) {
	sentinels := []error{
		ErrUnauthorized, ErrRateLimited, ErrBadRequest, ErrNotFound,
		ErrServer, ErrNetwork, ErrDecode, ErrNotSupported,
	}
	for _, sentinel := range sentinels {
		t.Run(sentinel.Error(), func(t *testing.T) {
			err := fmt.Errorf("create message: %w", &ProviderError{Provider: "test", Err: sentinel})
			assert.ErrorIs(t, err, sentinel)

			var pe *ProviderError
			assert.True(t, errors.As(err, &pe))
			assert.Equal(t, "test", pe.Provider)
		})
	}
	assert.Nil(t, (&ProviderError{}).Unwrap())
}

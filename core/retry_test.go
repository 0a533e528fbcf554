package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicyClassification(t *testing.T) {
	policy := DefaultRetryPolicy()

	tests := []struct {
		name      string
		err       error
		wantRetry bool
	}{
		{"network", ErrNetwork, true},
		{"rate limited", &ProviderError{Provider: "groq", Err: ErrRateLimited}, true},
		{"server", &ProviderError{Provider: "groq", Err: ErrServer}, true},
		{"status 503", &ProviderError{Provider: "groq", Status: 503}, true},
		{"unauthorized", &ProviderError{Provider: "groq", Err: ErrUnauthorized}, false},
		{"bad request", ErrBadRequest, false},
		{"decode", ErrDecode, false},
		{"status 403", &ProviderError{Provider: "groq", Status: 403}, false},
		{"cancelled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"unknown", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := policy.NextDelay(0, tt.err)
			assert.Equal(t, tt.wantRetry, ok)
		})
	}
}

func TestRetryPolicyBackoff(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxRetries: 3,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   250 * time.Millisecond,
		Jitter:     0,
	})

	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 250 * time.Millisecond}
	for attempt, w := range want {
		d, ok := policy.NextDelay(attempt, ErrServer)
		require.True(t, ok)
		assert.Equal(t, w, d)
	}
	_, ok := policy.NextDelay(3, ErrServer)
	assert.False(t, ok, "max retries exceeded")
}

func TestRetryPolicyZeroDisables(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{MaxRetries: 0})
	_, ok := policy.NextDelay(0, ErrNetwork)
	assert.False(t, ok)
}

func TestRetry(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond})

	var calls int
	v, err := Retry(context.Background(), policy, func() (string, error) {
		calls++
		if calls < 3 {
			return "", ErrNetwork
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 3, calls)

	calls = 0
	_, err = Retry(context.Background(), policy, func() (int, error) {
		calls++
		return 0, ErrUnauthorized
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, calls)

	calls = 0
	_, err = Retry(context.Background(), nil, func() (int, error) {
		calls++
		return 0, ErrNetwork
	})
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, 1, calls)
}

func TestRetryStopsOnContext(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Retry(ctx, policy, func() (int, error) { return 0, ErrNetwork })
	assert.ErrorIs(t, err, context.Canceled)
}

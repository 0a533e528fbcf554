package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretRedaction(t *testing.T) {
	s := NewSecret("sk-ant-abc123")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", s))
	assert.Equal(t, "core.Secret{[REDACTED]}", fmt.Sprintf("%#v", s))

	b, err := json.Marshal(struct {
		Key Secret `json:"key"`
	}{s})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"[REDACTED]"}`, string(b))

	text, err := s.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "[REDACTED]", string(text))

	assert.Equal(t, "sk-ant-abc123", s.Expose())
}

func TestSecretLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("resolved", "key", NewSecret("sk-ant-abc123"), "empty", NewSecret(""))

	assert.NotContains(t, buf.String(), "sk-ant-abc123")
	assert.Contains(t, buf.String(), `"key":"[REDACTED]"`)
	assert.Contains(t, buf.String(), `"empty":""`)
}

func TestSecretIsEmpty(t *testing.T) {
	assert.True(t, NewSecret("").IsEmpty())
	assert.False(t, NewSecret("  ").IsEmpty())
	assert.True(t, Secret{}.IsEmpty())
}

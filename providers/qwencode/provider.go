// Package qwencode serves Qwen Code models with the OAuth login of the Qwen
// CLI. Requests go through the OpenAI-compatible handler; this package
// only supplies rotating credentials.
package qwencode

import (
	"log/slog"
	"net/http"

	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/openai"
)

// Config holds configuration for the Qwen Code handler.
type Config struct {
	OAuthPath   string
	ModelID     string
	MaxTokens   int
	Temperature *float64
	HTTPClient  *http.Client
	Logger      *slog.Logger
	Telemetry   core.TelemetryHook
}

// New creates a handler. The credentials file is read on first use.
func New(cfg Config) *openai.Handler {
	creds := NewCredentials(cfg.OAuthPath, cfg.HTTPClient)
	opts := []openai.Option{
		openai.WithProvider("qwen-code"),
		openai.WithBaseURL(DefaultBaseURL),
		openai.WithModel(cfg.ModelID),
		openai.WithMaxTokens(cfg.MaxTokens),
		openai.WithTemperature(cfg.Temperature),
		openai.WithThinkTags(true),
		openai.WithCredentials(creds.Token),
		openai.WithHTTPClient(cfg.HTTPClient),
		openai.WithLogger(cfg.Logger),
		openai.WithTelemetry(cfg.Telemetry),
	}
	return openai.New(opts...)
}

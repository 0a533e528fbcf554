package openai

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/openai/openai-go/option"
	"github.com/petal-labs/prism/providers/internal/normalize"
	"github.com/tidwall/gjson"
)

// streamErrorPrefix marks errors the SDK builds from in-stream error payloads.
const streamErrorPrefix = "received error while streaming: "

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// failure records the last non-2xx response of one call. The SDK only
// decodes OpenAI-shaped error bodies; capturing the raw response lets
// every envelope go through the shared normalizer.
type failure struct {
	provider string
	err      error
}

func (f *failure) middleware() option.RequestOption {
	return option.WithMiddleware(func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		resp, err := next(req)
		if err != nil || resp.StatusCode < 300 {
			f.err = nil
			return resp, err
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(body))
		f.err = normalize.Body(f.provider, resp.StatusCode, body, normalize.RequestID(resp.Header))
		return resp, nil
	})
}

// mapError converts SDK failures into normalized provider errors.
func (h *Handler) mapError(ctx context.Context, f *failure, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if f.err != nil {
		return f.err
	}

	if raw, ok := strings.CutPrefix(err.Error(), streamErrorPrefix); ok {
		e := gjson.Parse(raw)
		message := e.Get("message").String()
		if message == "" {
			message = raw
			if e.Type == gjson.String {
				message = e.Str
			}
		}
		code := e.Get("code").String()
		if code == "" {
			code = e.Get("type").String()
		}
		return normalize.StreamError(h.config.Provider, code, message)
	}

	return normalize.NetworkError(h.config.Provider, err)
}

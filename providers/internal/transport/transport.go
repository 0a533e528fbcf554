// Package transport sends JSON requests to backend HTTP APIs.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/internal/normalize"
)

// Request describes one JSON POST.
type Request struct {
	Provider string
	Client   *http.Client
	URL      string
	Header   http.Header
	Body     any

	// Retry governs reconnect attempts; nil means a single attempt.
	Retry core.RetryPolicy

	// Authorize, when set, is called on every attempt before sending.
	Authorize func(ctx context.Context, req *http.Request) error
}

// Post sends r and returns the response with its body open.
// Non-2xx responses are closed and returned as normalized errors.
func Post(ctx context.Context, r Request) (*http.Response, error) {
	body, err := json.Marshal(r.Body)
	if err != nil {
		return nil, normalize.DecodeError(r.Provider, fmt.Errorf("encode request: %w", err))
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	return core.Retry(ctx, r.Retry, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(body))
		if err != nil {
			return nil, normalize.NetworkError(r.Provider, err)
		}
		for k, vs := range r.Header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		req.Header.Set("Content-Type", "application/json")
		if r.Authorize != nil {
			if err := r.Authorize(ctx, req); err != nil {
				return nil, &core.ProviderError{Provider: r.Provider, Message: err.Error(), Err: core.ErrUnauthorized}
			}
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, normalize.NetworkError(r.Provider, err)
		}
		if resp.StatusCode >= 300 {
			defer resp.Body.Close()
			return nil, normalize.Response(r.Provider, resp)
		}
		return resp, nil
	})
}

// Bearer returns a header set carrying an Authorization bearer token.
// An empty token yields no Authorization header.
func Bearer(token core.Secret) http.Header {
	h := make(http.Header)
	if !token.IsEmpty() {
		h.Set("Authorization", "Bearer "+token.Expose())
	}
	return h
}

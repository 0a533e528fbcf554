// Package normalize turns backend HTTP failures into core.ProviderError values.
package normalize

import (
	"io"
	"net/http"
	"strconv"

	"github.com/petal-labs/prism/core"
	"github.com/tidwall/gjson"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// requestIDHeaders are checked in order for a request id.
var requestIDHeaders = []string{"x-request-id", "request-id", "x-goog-request-id", "cf-ray"}

// Response reads a non-2xx response and normalizes it.
// The body is drained but not closed.
func Response(provider string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return Body(provider, resp.StatusCode, body, RequestID(resp.Header))
}

// RequestID extracts a request id from response headers.
func RequestID(h http.Header) string {
	for _, name := range requestIDHeaders {
		if v := h.Get(name); v != "" {
			return v
		}
	}
	return ""
}

// Body normalizes an error payload. It understands the envelopes used by
// OpenAI-compatible APIs {"error":{"message","type","code"}}, Anthropic
// {"type":"error","error":{"type","message"}}, Google
// {"error":{"code":400,"message","status"}} and bare {"error":"..."}.
func Body(provider string, status int, body []byte, requestID string) error {
	var message, code string
	if gjson.ValidBytes(body) {
		e := gjson.GetBytes(body, "error")
		switch {
		case e.Type == gjson.String:
			message = e.String()
		case e.IsObject():
			message = e.Get("message").String()
			code = firstString(e.Get("code"), e.Get("type"), e.Get("status"))
		default:
			message = gjson.GetBytes(body, "message").String()
		}
	}
	return ProviderError(provider, status, requestID, code, message, nil)
}

func firstString(results ...gjson.Result) string {
	for _, r := range results {
		switch r.Type {
		case gjson.String:
			if r.Str != "" {
				return r.Str
			}
		case gjson.Number:
			return strconv.FormatInt(r.Int(), 10)
		}
	}
	return ""
}

// NetworkError wraps transport failures as provider-specific network errors.
func NetworkError(provider string, err error) error {
	return &core.ProviderError{
		Provider: provider,
		Message:  err.Error(),
		Err:      core.ErrNetwork,
	}
}

// DecodeError wraps decode/parsing failures as provider-specific decode errors.
func DecodeError(provider string, err error) error {
	return &core.ProviderError{
		Provider: provider,
		Message:  err.Error(),
		Err:      core.ErrDecode,
	}
}

// StreamError reports an error the backend sent inside an otherwise
// successful stream.
func StreamError(provider, code, message string) error {
	return &core.ProviderError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Err:      core.ErrServer,
	}
}

// ProviderError constructs a normalized ProviderError.
// If message is empty, HTTP status text is used.
// If sentinel is nil, default status-based mapping is applied.
func ProviderError(provider string, status int, requestID, code, message string, sentinel error) error {
	if message == "" {
		message = http.StatusText(status)
	}
	if sentinel == nil {
		sentinel = SentinelForStatus(status)
	}
	return &core.ProviderError{
		Provider:  provider,
		Status:    status,
		RequestID: requestID,
		Code:      code,
		Message:   message,
		Err:       sentinel,
	}
}

// SentinelForStatus maps an HTTP status code to a core sentinel error.
func SentinelForStatus(status int) error {
	return SentinelForStatusWithOverrides(status, nil)
}

// SentinelForStatusWithOverrides maps an HTTP status code to a core sentinel error,
// then applies any exact status overrides from the provided map.
func SentinelForStatusWithOverrides(status int, overrides map[int]error) error {
	if override, ok := overrides[status]; ok && override != nil {
		return override
	}

	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return core.ErrBadRequest
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return core.ErrUnauthorized
	case status == http.StatusNotFound:
		return core.ErrNotFound
	case status == http.StatusTooManyRequests:
		return core.ErrRateLimited
	default:
		return core.ErrServer
	}
}

package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/internal/gcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const sampleStream = `data: {"candidates":[{"content":{"role":"model","parts":[{"text":"Weighing options.","thought":true}]}}],"usageMetadata":{"promptTokenCount":10,"candidatesTokenCount":0}}

data: {"candidates":[{"content":{"role":"model","parts":[{"text":"Hello"}]}}],"usageMetadata":{"promptTokenCount":10,"candidatesTokenCount":1}}

data: {"candidates":[{"content":{"role":"model","parts":[{"text":" world"}]},"finishReason":"STOP"}],"usageMetadata":{"promptTokenCount":10,"candidatesTokenCount":3,"thoughtsTokenCount":4,"cachedContentTokenCount":2}}

`

func TestCreateMessageStreams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "/v1beta/models/gemini-2.5-pro:streamGenerateContent", r.URL.Path)
		assert.Equal(t, "sse", r.URL.Query().Get("alt"))
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "Be brief.", gjson.GetBytes(body, "systemInstruction.parts.0.text").String())
		assert.Equal(t, "user", gjson.GetBytes(body, "contents.0.role").String())
		assert.Equal(t, "model", gjson.GetBytes(body, "contents.1.role").String())
		assert.Equal(t, "image/png", gjson.GetBytes(body, "contents.2.parts.1.inlineData.mimeType").String())
		assert.Equal(t, int64(2048), gjson.GetBytes(body, "generationConfig.thinkingConfig.thinkingBudget").Int())
		assert.True(t, gjson.GetBytes(body, "generationConfig.thinkingConfig.includeThoughts").Bool())
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, sampleStream)
	}))
	defer server.Close()

	h := New(WithAPIKey("g-key"), WithBaseURL(server.URL), WithModel("gemini-2.5-pro"), WithThinkingBudget(2048))
	msgs := []core.Message{
		core.UserText("hi"),
		core.AssistantText("hello"),
		{Role: core.RoleUser, Content: []core.ContentBlock{core.Text("see"), core.Image("image/png", "AAAA")}},
	}

	var events []core.StreamEvent
	for ev, err := range h.CreateMessage(context.Background(), "Be brief.", msgs, nil).Events() {
		require.NoError(t, err)
		events = append(events, ev)
	}
	require.Len(t, events, 4)
	assert.Equal(t, core.ReasoningEvent("Weighing options."), events[0])
	assert.Equal(t, core.TextEvent("Hello"), events[1])
	assert.Equal(t, core.TextEvent(" world"), events[2])

	u := events[3].Usage
	require.NotNil(t, u)
	assert.Equal(t, 8, u.InputTokens)
	assert.Equal(t, 2, u.CacheReadTokens)
	assert.Equal(t, 3, u.OutputTokens)
	assert.Equal(t, 4, u.ReasoningTokens)
}

func TestCreateMessageRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
	}))
	defer server.Close()

	h := New(WithAPIKey("bad"), WithBaseURL(server.URL))
	_, err := core.Collect(h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrBadRequest)

	var perr *core.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "gemini", perr.Provider)
	assert.Equal(t, "API key not valid", perr.Message)
}

func TestCreateMessageMidStreamError(t *testing.T) {
	stream := "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"part\"}]}}]}\n\n" +
		"data: {\"error\":{\"code\":503,\"message\":\"overloaded\",\"status\":\"UNAVAILABLE\"}}\n\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, stream)
	}))
	defer server.Close()

	h := New(WithBaseURL(server.URL))
	resp, err := core.Collect(h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil))
	require.Error(t, err)
	assert.Equal(t, "part", resp.Text)
	assert.ErrorIs(t, err, core.ErrServer)
}

type recordingTransport struct {
	seen    []*http.Request
	payload string
}

func (rt *recordingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	rt.seen = append(rt.seen, r)
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(rt.payload)),
		Request:    r,
	}, nil
}

func TestVertexRequest(t *testing.T) {
	rt := &recordingTransport{payload: `{"totalTokens":42}`}
	h := New(
		WithHTTPClient(&http.Client{Transport: rt}),
		WithVertex(VertexConfig{ProjectID: "proj", Region: "us-central1", Credentials: gcp.StaticToken("ya29.tok")}),
	)
	assert.Equal(t, "gemini-2.5-flash", h.Model().ID)

	n, err := h.CountTokens(context.Background(), []core.ContentBlock{core.Text("hello")})
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	require.Len(t, rt.seen, 1)
	assert.Equal(t,
		"https://us-central1-aiplatform.googleapis.com/v1/projects/proj/locations/us-central1/publishers/google/models/gemini-2.5-flash:countTokens",
		rt.seen[0].URL.String())
	assert.Equal(t, "Bearer ya29.tok", rt.seen[0].Header.Get("Authorization"))
	assert.Empty(t, rt.seen[0].Header.Get("x-goog-api-key"))
}

func TestCountTokensFallsBackToEstimate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	h := New(WithBaseURL(server.URL), WithRetry(core.NoRetry{}))
	content := []core.ContentBlock{core.Text("abcd")}
	n, err := h.CountTokens(context.Background(), content)
	require.NoError(t, err)
	assert.Equal(t, core.EstimateTokens(content), n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = h.CountTokens(ctx, content)
	assert.ErrorIs(t, err, context.Canceled)
}

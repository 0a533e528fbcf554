package anthropic

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/petal-labs/prism/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const sampleStream = `event: message_start
data: {"type":"message_start","message":{"id":"msg_1","model":"claude-sonnet-4-20250514","usage":{"input_tokens":12,"output_tokens":1,"cache_creation_input_tokens":4,"cache_read_input_tokens":2}}}

event: content_block_start
data: {"type":"content_block_start","index":0,"content_block":{"type":"thinking","thinking":""}}

event: content_block_delta
data: {"type":"content_block_delta","index":0,"delta":{"type":"thinking_delta","thinking":"Let me think."}}

event: content_block_start
data: {"type":"content_block_start","index":1,"content_block":{"type":"text","text":""}}

event: ping
data: {"type":"ping"}

event: content_block_delta
data: {"type":"content_block_delta","index":1,"delta":{"type":"text_delta","text":"Hello"}}

event: content_block_delta
data: {"type":"content_block_delta","index":1,"delta":{"type":"text_delta","text":", world"}}

event: message_delta
data: {"type":"message_delta","delta":{"stop_reason":"end_turn"},"usage":{"output_tokens":7}}

event: message_stop
data: {"type":"message_stop"}

`

func newTestServer(t *testing.T, check func(r *http.Request, body []byte), stream string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if check != nil {
			check(r, body)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, stream)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCreateMessageStreams(t *testing.T) {
	server := newTestServer(t, func(r *http.Request, body []byte) {
		assert.Equal(t, messagesPath, r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		assert.Equal(t, DefaultVersion, r.Header.Get("anthropic-version"))
		assert.Equal(t, "claude-sonnet-4-20250514", gjson.GetBytes(body, "model").String())
		assert.True(t, gjson.GetBytes(body, "stream").Bool())
		assert.Equal(t, "Be brief.", gjson.GetBytes(body, "system.0.text").String())
		assert.Equal(t, "ephemeral", gjson.GetBytes(body, "system.0.cache_control.type").String())
		assert.Equal(t, "hi", gjson.GetBytes(body, "messages.0.content.0.text").String())
	}, sampleStream)

	h := New(WithAPIKey("sk-ant-test"), WithBaseURL(server.URL))
	stream := h.CreateMessage(context.Background(), "Be brief.", []core.Message{core.UserText("hi")}, nil)

	var events []core.StreamEvent
	for ev, err := range stream.Events() {
		require.NoError(t, err)
		events = append(events, ev)
	}

	require.Len(t, events, 5)
	assert.Equal(t, core.UsageEvent(core.Usage{InputTokens: 12, CacheWriteTokens: 4, CacheReadTokens: 2}), events[0])
	assert.Equal(t, core.ReasoningEvent("Let me think."), events[1])
	assert.Equal(t, core.TextEvent("Hello"), events[2])
	assert.Equal(t, core.TextEvent(", world"), events[3])
	assert.Equal(t, core.UsageEvent(core.Usage{OutputTokens: 7}), events[4])
}

func TestCreateMessageIsLazy(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	h := New(WithAPIKey("k"), WithBaseURL(server.URL))
	_ = h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil)
	assert.Zero(t, hits)
}

func TestCreateMessageRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	}))
	defer server.Close()

	h := New(WithBaseURL(server.URL))
	_, err := core.Collect(h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid x-api-key")
}

func TestCreateMessageMidStreamError(t *testing.T) {
	stream := "event: content_block_delta\n" +
		`data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"partial"}}` + "\n\n" +
		"event: error\n" +
		`data: {"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}` + "\n\n"
	server := newTestServer(t, nil, stream)

	h := New(WithAPIKey("k"), WithBaseURL(server.URL))
	var events []core.StreamEvent
	for ev, err := range h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil).Events() {
		require.NoError(t, err)
		events = append(events, ev)
	}
	require.Len(t, events, 2)
	assert.Equal(t, core.TextEvent("partial"), events[0])
	assert.Equal(t, core.EventError, events[1].Type)
	assert.ErrorIs(t, events[1].Err, core.ErrServer)
}

func TestCreateMessageEarlyStop(t *testing.T) {
	var requests atomic.Int32
	server := newTestServer(t, func(*http.Request, []byte) { requests.Add(1) }, sampleStream)
	h := New(WithAPIKey("k"), WithBaseURL(server.URL))

	var n int
	for _, err := range h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil).Events() {
		require.NoError(t, err)
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)

	// The abandoned stream must leave the handler usable.
	resp, err := core.Collect(h.CreateMessage(context.Background(), "", []core.Message{core.UserText("again")}, nil))
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", resp.Text)
	assert.Equal(t, "Let me think.", resp.Reasoning)
	assert.Equal(t, int32(2), requests.Load())
}

func TestAuthTokenAndBetaHeaders(t *testing.T) {
	server := newTestServer(t, func(r *http.Request, body []byte) {
		assert.Equal(t, "Bearer proxy-token", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("x-api-key"))
		assert.Equal(t, beta1MContext, r.Header.Get("anthropic-beta"))
		assert.Equal(t, "1", r.Header.Get("X-Extra"))
	}, "event: message_stop\ndata: {\"type\":\"message_stop\"}\n\n")

	h := New(
		WithAPIKey("proxy-token"),
		WithAuthToken(true),
		WithBaseURL(server.URL+"/"),
		With1MContext(true),
		WithHeader("X-Extra", "1"),
	)
	_, err := core.Collect(h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil))
	require.NoError(t, err)
}

func TestThinkingRequest(t *testing.T) {
	temp := 0.3
	server := newTestServer(t, func(r *http.Request, body []byte) {
		assert.Equal(t, "enabled", gjson.GetBytes(body, "thinking.type").String())
		assert.Equal(t, int64(2048), gjson.GetBytes(body, "thinking.budget_tokens").Int())
		assert.False(t, gjson.GetBytes(body, "temperature").Exists())
		assert.Equal(t, int64(16000), gjson.GetBytes(body, "max_tokens").Int())
	}, "")

	h := New(WithAPIKey("k"), WithBaseURL(server.URL), WithThinkingBudget(2048), WithMaxTokens(16000), WithTemperature(&temp))
	_, err := core.Collect(h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil))
	require.NoError(t, err)
}

func TestPromptCacheBreakpoints(t *testing.T) {
	h := New(WithModel("claude-3-7-sonnet-20250219"))
	req := h.buildRequest("sys", []core.Message{
		core.UserText("one"),
		core.AssistantText("two"),
		core.UserText("three"),
		core.AssistantText("four"),
		core.UserText("five"),
	})
	var marked []string
	for _, m := range req.Messages {
		if m.Content[len(m.Content)-1].CacheControl != nil {
			marked = append(marked, m.Content[0].Text)
		}
	}
	assert.Equal(t, []string{"three", "five"}, marked)

	h = New(WithModel("claude-unknown"))
	req = h.buildRequest("sys", []core.Message{core.UserText("one")})
	assert.Nil(t, req.System[0].CacheControl)
	assert.Nil(t, req.Messages[0].Content[0].CacheControl)
}

func TestMapMessagesDropsEmpty(t *testing.T) {
	msgs := mapMessages([]core.Message{
		{Role: core.RoleUser, Content: []core.ContentBlock{core.Text("")}},
		{Role: core.RoleUser, Content: []core.ContentBlock{core.Text("look"), core.Image("image/png", "iVBOR")}},
	})
	require.Len(t, msgs, 1)
	require.Len(t, msgs[0].Content, 2)
	assert.Equal(t, "image", msgs[0].Content[1].Type)
	assert.Equal(t, "base64", msgs[0].Content[1].Source.Type)
	assert.Equal(t, "image/png", msgs[0].Content[1].Source.MediaType)
}

func TestModel(t *testing.T) {
	ref := New().Model()
	assert.Equal(t, "claude-sonnet-4-20250514", ref.ID)
	assert.Equal(t, 64_000, ref.Info.MaxTokens)

	ref = New(WithModel("claude-opus-4-1-20250805")).Model()
	assert.Equal(t, 15.0, ref.Info.InputPrice)
}

func TestCountTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, countTokensPath, r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "count me", gjson.GetBytes(body, "messages.0.content.0.text").String())
		_, _ = io.WriteString(w, `{"input_tokens":42}`)
	}))
	defer server.Close()

	n, err := New(WithAPIKey("k"), WithBaseURL(server.URL)).CountTokens(context.Background(), []core.ContentBlock{core.Text("count me")})
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestCountTokensFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	content := []core.ContentBlock{core.Text(strings.Repeat("a", 40))}
	n, err := New(WithAPIKey("k"), WithBaseURL(server.URL)).CountTokens(context.Background(), content)
	require.NoError(t, err)
	assert.Equal(t, core.EstimateTokens(content), n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New().CountTokens(ctx, content)
	assert.ErrorIs(t, err, context.Canceled)
}

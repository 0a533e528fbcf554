package openainative

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/petal-labs/prism/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func completedStream(id string) string {
	return fmt.Sprintf(`event: response.created
data: {"type":"response.created","response":{"id":%[1]q,"status":"in_progress"}}

event: response.reasoning_summary_text.delta
data: {"type":"response.reasoning_summary_text.delta","delta":"Considering."}

event: response.output_text.delta
data: {"type":"response.output_text.delta","delta":"Hi"}

event: response.output_text.delta
data: {"type":"response.output_text.delta","delta":" there"}

event: response.completed
data: {"type":"response.completed","response":{"id":%[1]q,"status":"completed","usage":{"input_tokens":20,"output_tokens":6,"total_tokens":26,"input_tokens_details":{"cached_tokens":8},"output_tokens_details":{"reasoning_tokens":2}}}}

`, id)
}

// recorder serves numbered responses and keeps every request body.
type recorder struct {
	mu     sync.Mutex
	bodies [][]byte
}

func (rec *recorder) server(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, responsesPath, r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.bodies = append(rec.bodies, body)
		n := len(rec.bodies)
		rec.mu.Unlock()
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, completedStream(fmt.Sprintf("resp_%d", n)))
	}))
	t.Cleanup(server.Close)
	return server
}

func (rec *recorder) body(i int) []byte {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.bodies[i]
}

func TestCreateMessageStreams(t *testing.T) {
	rec := &recorder{}
	server := rec.server(t)
	h := New(WithAPIKey("sk-test"), WithBaseURL(server.URL), WithServiceTier("flex"))

	var events []core.StreamEvent
	for ev, err := range h.CreateMessage(context.Background(), "Be brief.", []core.Message{core.UserText("hi")}, nil).Events() {
		require.NoError(t, err)
		events = append(events, ev)
	}
	require.Len(t, events, 4)
	assert.Equal(t, core.ReasoningEvent("Considering."), events[0])
	assert.Equal(t, core.TextEvent("Hi"), events[1])
	assert.Equal(t, core.TextEvent(" there"), events[2])

	u := events[3].Usage
	require.NotNil(t, u)
	assert.Equal(t, 12, u.InputTokens)
	assert.Equal(t, 8, u.CacheReadTokens)
	assert.Equal(t, 6, u.OutputTokens)
	assert.Equal(t, 2, u.ReasoningTokens)
	require.NotNil(t, u.TotalCost)
	assert.Greater(t, *u.TotalCost, 0.0)

	body := rec.body(0)
	assert.Equal(t, "gpt-5-2025-08-07", gjson.GetBytes(body, "model").String())
	assert.Equal(t, "Be brief.", gjson.GetBytes(body, "instructions").String())
	assert.Equal(t, "flex", gjson.GetBytes(body, "service_tier").String())
	assert.Equal(t, "medium", gjson.GetBytes(body, "reasoning.effort").String())
	assert.True(t, gjson.GetBytes(body, "store").Bool())
	assert.False(t, gjson.GetBytes(body, "previous_response_id").Exists())
	assert.Equal(t, "input_text", gjson.GetBytes(body, "input.0.content.0.type").String())

	assert.Equal(t, "resp_1", h.LastResponseID())
}

func TestContinuity(t *testing.T) {
	rec := &recorder{}
	server := rec.server(t)
	h := New(WithAPIKey("sk-test"), WithBaseURL(server.URL))

	history := []core.Message{core.UserText("first")}
	run := func(meta *core.Metadata) {
		t.Helper()
		_, err := core.Collect(h.CreateMessage(context.Background(), "", history, meta))
		require.NoError(t, err)
	}

	// fresh
	run(nil)
	assert.False(t, gjson.GetBytes(rec.body(0), "previous_response_id").Exists())

	// continuing: only the turns after the last assistant reply are sent
	history = append(history, core.AssistantText("reply"), core.UserText("second"))
	run(nil)
	assert.Equal(t, "resp_1", gjson.GetBytes(rec.body(1), "previous_response_id").String())
	input := gjson.GetBytes(rec.body(1), "input").Array()
	require.Len(t, input, 1)
	assert.Equal(t, "second", input[0].Get("content.0.text").String())

	// suppressed for this call only; the full history is sent
	run(&core.Metadata{SuppressPreviousResponseID: true})
	assert.False(t, gjson.GetBytes(rec.body(2), "previous_response_id").Exists())
	assert.Len(t, gjson.GetBytes(rec.body(2), "input").Array(), 3)

	// the suppressed call still completed and is remembered
	run(nil)
	assert.Equal(t, "resp_3", gjson.GetBytes(rec.body(3), "previous_response_id").String())

	// explicit id wins
	run(&core.Metadata{PreviousResponseID: "resp_explicit", SuppressPreviousResponseID: true})
	assert.Equal(t, "resp_explicit", gjson.GetBytes(rec.body(4), "previous_response_id").String())
}

func TestStoreDisabledIsNotRemembered(t *testing.T) {
	rec := &recorder{}
	server := rec.server(t)
	h := New(WithBaseURL(server.URL))

	store := false
	_, err := core.Collect(h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, &core.Metadata{Store: &store}))
	require.NoError(t, err)

	assert.False(t, gjson.GetBytes(rec.body(0), "store").Bool())
	assert.Empty(t, h.LastResponseID())
}

func TestStreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		code   string
		msg    string
	}{
		{
			name:   "error event",
			stream: "data: {\"type\":\"response.output_text.delta\",\"delta\":\"x\"}\n\ndata: {\"type\":\"error\",\"code\":\"server_error\",\"message\":\"boom\"}\n\n",
			code:   "server_error",
			msg:    "boom",
		},
		{
			name:   "failed response",
			stream: "data: {\"type\":\"response.output_text.delta\",\"delta\":\"x\"}\n\ndata: {\"type\":\"response.failed\",\"response\":{\"id\":\"r\",\"status\":\"failed\",\"error\":{\"code\":\"rate_limit_exceeded\",\"message\":\"slow down\"}}}\n\n",
			code:   "rate_limit_exceeded",
			msg:    "slow down",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/event-stream")
				_, _ = io.WriteString(w, tt.stream)
			}))
			defer server.Close()

			h := New(WithBaseURL(server.URL))
			resp, err := core.Collect(h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil))
			require.Error(t, err)
			assert.Equal(t, "x", resp.Text)

			var perr *core.ProviderError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.code, perr.Code)
			assert.Equal(t, tt.msg, perr.Message)
			assert.Empty(t, h.LastResponseID())
		})
	}
}

func TestNonReasoningModelSendsTemperature(t *testing.T) {
	temp := 0.3
	h := New(WithModel("gpt-4.1"), WithTemperature(&temp), WithMaxTokens(100))
	req := h.buildRequest("", []core.Message{core.UserText("hi")}, "", true)

	assert.Nil(t, req.Reasoning)
	require.NotNil(t, req.Temperature)
	assert.InDelta(t, 0.3, *req.Temperature, 1e-9)
	assert.Equal(t, 100, req.MaxOutputTokens)
}

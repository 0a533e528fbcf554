package ollama

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/petal-labs/prism/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const sampleStream = `{"model":"qwen3","message":{"role":"assistant","content":"","thinking":"Hmm."},"done":false}
{"model":"qwen3","message":{"role":"assistant","content":"Hello"},"done":false}
{"model":"qwen3","message":{"role":"assistant","content":"!"},"done":false}
{"model":"qwen3","message":{"role":"assistant","content":""},"done":true,"done_reason":"stop","prompt_eval_count":9,"eval_count":3}
`

func newTestServer(t *testing.T, check func(r *http.Request, body []byte), status int, payload string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if check != nil {
			check(r, body)
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, payload)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCreateMessageStreams(t *testing.T) {
	server := newTestServer(t, func(r *http.Request, body []byte) {
		assert.Equal(t, chatPath, r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "qwen3", gjson.GetBytes(body, "model").String())
		assert.True(t, gjson.GetBytes(body, "stream").Bool())
		assert.Equal(t, "system", gjson.GetBytes(body, "messages.0.role").String())
		assert.Equal(t, "look", gjson.GetBytes(body, "messages.1.content").String())
		assert.Equal(t, "AAAA", gjson.GetBytes(body, "messages.1.images.0").String())
		assert.Equal(t, int64(256), gjson.GetBytes(body, "options.num_predict").Int())
	}, http.StatusOK, sampleStream)

	h := New(WithBaseURL(server.URL), WithModel("qwen3"), WithMaxTokens(256))
	msgs := []core.Message{{Role: core.RoleUser, Content: []core.ContentBlock{core.Text("look"), core.Image("image/png", "AAAA")}}}

	var events []core.StreamEvent
	for ev, err := range h.CreateMessage(context.Background(), "sys", msgs, nil).Events() {
		require.NoError(t, err)
		events = append(events, ev)
	}
	require.Len(t, events, 4)
	assert.Equal(t, core.ReasoningEvent("Hmm."), events[0])
	assert.Equal(t, core.TextEvent("Hello"), events[1])
	assert.Equal(t, core.TextEvent("!"), events[2])
	assert.Equal(t, core.Usage{InputTokens: 9, OutputTokens: 3}, *events[3].Usage)
}

func TestCloudSendsBearer(t *testing.T) {
	server := newTestServer(t, func(r *http.Request, _ []byte) {
		assert.Equal(t, "Bearer ol-key", r.Header.Get("Authorization"))
	}, http.StatusOK, `{"message":{"role":"assistant","content":"ok"},"done":true}`+"\n")

	h := New(WithBaseURL(server.URL), WithAPIKey("ol-key"))
	resp, err := core.Collect(h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil))
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
}

func TestModelNotFound(t *testing.T) {
	server := newTestServer(t, nil, http.StatusNotFound, `{"error":"model 'nope' not found"}`)

	h := New(WithBaseURL(server.URL), WithModel("nope"))
	_, err := core.Collect(h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)

	var perr *core.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "model 'nope' not found", perr.Message)
}

func TestInlineStreamError(t *testing.T) {
	server := newTestServer(t, nil, http.StatusOK,
		`{"message":{"role":"assistant","content":"par"},"done":false}`+"\n"+`{"error":"out of memory"}`+"\n")

	h := New(WithBaseURL(server.URL))
	resp, err := core.Collect(h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil))
	require.Error(t, err)
	assert.Equal(t, "par", resp.Text)
	assert.ErrorIs(t, err, core.ErrServer)
}

func TestUnknownModelUsesDefaultInfo(t *testing.T) {
	h := New(WithModel("my-finetune"))
	assert.Equal(t, "my-finetune", h.Model().ID)
	assert.Equal(t, core.DefaultModelInfo, h.Model().Info)
}

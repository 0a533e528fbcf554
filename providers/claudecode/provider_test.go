package claudecode

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/petal-labs/prism/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// fakeClaude writes an executable script that records its arguments,
// environment and stdin next to itself, then runs body.
func fakeClaude(t *testing.T, body string) (path, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture")
	}
	dir = t.TempDir()
	path = filepath.Join(dir, "claude")
	script := "#!/bin/sh\n" +
		`printf '%s\n' "$@" > "` + dir + `/args"` + "\n" +
		`echo "$CLAUDE_CODE_MAX_OUTPUT_TOKENS" > "` + dir + `/env"` + "\n" +
		`cat > "` + dir + `/stdin"` + "\n" +
		body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path, dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

const sampleOutput = `cat <<'JSON'
{"type":"system","subtype":"init","session_id":"s1"}
{"type":"assistant","message":{"content":[{"type":"thinking","thinking":"Considering."},{"type":"text","text":"Hello there."}],"usage":{"input_tokens":12,"output_tokens":4,"cache_read_input_tokens":2}}}
{"type":"result","subtype":"success","is_error":false,"result":"Hello there.","total_cost_usd":0.0123}
JSON`

func TestCreateMessageStreams(t *testing.T) {
	path, dir := fakeClaude(t, sampleOutput)
	h := New(WithPath(path), WithModel("claude-opus-4-1-20250805"), WithMaxOutputTokens(4096))

	var events []core.StreamEvent
	for ev, err := range h.CreateMessage(context.Background(), "Be brief.", []core.Message{
		{Role: core.RoleUser, Content: []core.ContentBlock{core.Text("hi"), core.Image("image/png", "AAAA")}},
	}, nil).Events() {
		require.NoError(t, err)
		events = append(events, ev)
	}

	require.Len(t, events, 3)
	assert.Equal(t, core.ReasoningEvent("Considering."), events[0])
	assert.Equal(t, core.TextEvent("Hello there."), events[1])
	require.Equal(t, core.EventUsage, events[2].Type)
	assert.Equal(t, 12, events[2].Usage.InputTokens)
	assert.Equal(t, 4, events[2].Usage.OutputTokens)
	assert.Equal(t, 2, events[2].Usage.CacheReadTokens)
	require.NotNil(t, events[2].Usage.TotalCost)
	assert.InDelta(t, 0.0123, *events[2].Usage.TotalCost, 1e-9)

	args := strings.Split(strings.TrimSpace(readFile(t, filepath.Join(dir, "args"))), "\n")
	assert.Equal(t, "-p", args[0])
	assert.Contains(t, args, "Be brief.")
	assert.Contains(t, args, "stream-json")
	assert.Contains(t, args, "claude-opus-4-1-20250805")
	assert.Contains(t, args, "Bash")
	assert.Equal(t, "4096", strings.TrimSpace(readFile(t, filepath.Join(dir, "env"))))

	stdin := readFile(t, filepath.Join(dir, "stdin"))
	assert.Equal(t, "user", gjson.Get(stdin, "0.role").String())
	assert.Equal(t, "hi", gjson.Get(stdin, "0.content.0.text").String())
	assert.Equal(t, "base64", gjson.Get(stdin, "0.content.1.source.type").String())
	assert.Equal(t, "image/png", gjson.Get(stdin, "0.content.1.source.media_type").String())
}

func TestCreateMessageResultError(t *testing.T) {
	path, _ := fakeClaude(t, `cat <<'JSON'
{"type":"assistant","message":{"content":[{"type":"text","text":"partial"}]}}
{"type":"result","subtype":"error_max_turns","is_error":true,"result":"turn limit"}
JSON`)
	h := New(WithPath(path))

	var events []core.StreamEvent
	for ev, err := range h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil).Events() {
		require.NoError(t, err)
		events = append(events, ev)
	}
	require.Len(t, events, 2)
	assert.Equal(t, core.EventError, events[1].Type)

	var perr *core.ProviderError
	require.ErrorAs(t, events[1].Err, &perr)
	assert.Equal(t, "error_max_turns", perr.Code)
	assert.Equal(t, "turn limit", perr.Message)
}

func TestCreateMessageAPIErrorText(t *testing.T) {
	path, _ := fakeClaude(t, `cat <<'JSON'
{"type":"assistant","message":{"content":[{"type":"text","text":"API Error: 429 {\"type\":\"error\",\"error\":{\"type\":\"rate_limit_error\",\"message\":\"slow down\"}}"}]}}
JSON`)
	h := New(WithPath(path))

	_, err := core.Collect(h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrRateLimited)
}

func TestCreateMessageExitFailure(t *testing.T) {
	path, _ := fakeClaude(t, `echo "not logged in" >&2; exit 3`)
	h := New(WithPath(path))

	_, err := core.Collect(h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil))
	require.Error(t, err)

	var perr *core.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "exit_3", perr.Code)
	assert.Equal(t, "not logged in", perr.Message)
}

func TestCreateMessageMissingExecutable(t *testing.T) {
	h := New(WithPath(filepath.Join(t.TempDir(), "missing")))
	_, err := core.Collect(h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotSupported)
}

func TestCreateMessageEarlyStopKillsProcess(t *testing.T) {
	path, _ := fakeClaude(t, `echo '{"type":"assistant","message":{"content":[{"type":"text","text":"one"}]}}'
exec sleep 30`)
	h := New(WithPath(path))

	start := time.Now()
	for ev, err := range h.CreateMessage(context.Background(), "", []core.Message{core.UserText("hi")}, nil).Events() {
		require.NoError(t, err)
		assert.Equal(t, core.TextEvent("one"), ev)
		break
	}
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestCreateMessageDrainsOutputAfterResult(t *testing.T) {
	// The trailing output is larger than a pipe buffer, so the process
	// only exits if stdout keeps being read after the result line.
	path, dir := fakeClaude(t, sampleOutput+`
yes '{"type":"system","subtype":"trailer"}' | head -n 5000
touch "$(dirname "$0")/exited"`)
	h := New(WithPath(path))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	start := time.Now()
	resp, err := core.Collect(h.CreateMessage(ctx, "", []core.Message{core.UserText("hi")}, nil))
	require.NoError(t, err)
	assert.Equal(t, "Hello there.", resp.Text)
	assert.Less(t, time.Since(start), 10*time.Second)
	assert.FileExists(t, filepath.Join(dir, "exited"))
}

func TestModelDefaultsToCatalog(t *testing.T) {
	h := New()
	assert.Equal(t, "claude-sonnet-4-20250514", h.Model().ID)
	assert.Equal(t, DefaultPath, h.config.Path)

	n, err := h.CountTokens(context.Background(), []core.ContentBlock{core.Text("abcdefgh")})
	require.NoError(t, err)
	assert.Equal(t, core.EstimateTokens([]core.ContentBlock{core.Text("abcdefgh")}), n)
}

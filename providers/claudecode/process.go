package claudecode

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/internal/normalize"
	"github.com/tidwall/gjson"
)

// maxLine bounds one stream-json line; assistant messages can be large.
const maxLine = 16 << 20

// apiErrorPrefix marks backend failures the CLI reports as message text.
const apiErrorPrefix = "API Error: "

// run starts the subprocess, feeds the conversation on stdin and
// translates its output. Cancelling ctx kills the process.
func (h *Handler) run(ctx context.Context, systemPrompt string, messages []core.Message, emit core.Emit) error {
	input, err := json.Marshal(mapMessages(messages))
	if err != nil {
		return normalize.DecodeError(providerID, fmt.Errorf("encode messages: %w", err))
	}

	procCtx, kill := context.WithCancel(ctx)
	defer kill()

	cmd := exec.CommandContext(procCtx, h.config.Path, h.args(systemPrompt)...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.WaitDelay = h.config.KillDelay
	if env := h.env(); len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return normalize.NetworkError(providerID, err)
	}
	if err := cmd.Start(); err != nil {
		return &core.ProviderError{Provider: providerID, Code: "spawn_failed", Message: err.Error(), Err: core.ErrNotSupported}
	}
	h.log.Debug("started claude", "pid", cmd.Process.Pid, "model", h.model.ID)

	streamErr := h.read(stdout, emit)
	switch {
	case streamErr != nil:
		kill()
	case ctx.Err() == nil:
		// Wait must not run before the pipe is read to EOF.
		_, _ = io.Copy(io.Discard, stdout)
	}
	waitErr := cmd.Wait()

	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case streamErr != nil:
		return streamErr
	case waitErr != nil:
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = waitErr.Error()
			}
			return &core.ProviderError{Provider: providerID, Code: fmt.Sprintf("exit_%d", exitErr.ExitCode()), Message: msg, Err: core.ErrServer}
		}
		return normalize.NetworkError(providerID, waitErr)
	}
	return nil
}

// read consumes stream-json lines. It returns nil when the consumer stops.
func (h *Handler) read(stdout io.Reader, emit core.Emit) error {
	sc := bufio.NewScanner(stdout)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var usage core.Usage
	for sc.Scan() {
		line := sc.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			h.log.Debug("skipping non-json output", "line", string(line))
			continue
		}
		msg := gjson.ParseBytes(line)

		switch msg.Get("type").String() {
		case "assistant":
			for _, block := range msg.Get("message.content").Array() {
				var ev core.StreamEvent
				switch block.Get("type").String() {
				case "text":
					text := block.Get("text").String()
					if strings.HasPrefix(text, apiErrorPrefix) {
						return apiError(strings.TrimPrefix(text, apiErrorPrefix))
					}
					ev = core.TextEvent(text)
				case "thinking":
					ev = core.ReasoningEvent(block.Get("thinking").String())
				default:
					continue
				}
				if (ev.Text != "" || ev.Reasoning != "") && !emit(ev) {
					return nil
				}
			}
			u := msg.Get("message.usage")
			usage.InputTokens += int(u.Get("input_tokens").Int())
			usage.OutputTokens += int(u.Get("output_tokens").Int())
			usage.CacheWriteTokens += int(u.Get("cache_creation_input_tokens").Int())
			usage.CacheReadTokens += int(u.Get("cache_read_input_tokens").Int())

		case "result":
			if msg.Get("is_error").Bool() {
				return normalize.StreamError(providerID, msg.Get("subtype").String(), msg.Get("result").String())
			}
			if cost := msg.Get("total_cost_usd"); cost.Exists() {
				c := cost.Float()
				usage.TotalCost = &c
			}
			emit(core.UsageEvent(usage))
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return normalize.NetworkError(providerID, err)
	}
	return nil
}

// apiError converts "API Error: 429 {...}" text into a provider error.
func apiError(rest string) error {
	status, body, _ := strings.Cut(rest, " ")
	code, err := strconv.Atoi(status)
	if err != nil || code < 300 {
		return normalize.StreamError(providerID, "", rest)
	}
	return normalize.Body(providerID, code, []byte(body), "")
}

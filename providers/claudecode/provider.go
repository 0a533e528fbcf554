// Package claudecode drives the Claude Code CLI as a completion backend.
// Each request runs one `claude -p` subprocess whose stream-json output is
// read line by line.
package claudecode

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers/catalog"
)

const providerID = "claude-code"

// disallowedTools keeps the CLI from acting on the workspace; only the
// model's text is wanted.
var disallowedTools = []string{
	"Task", "Bash", "Glob", "Grep", "LS", "exit_plan_mode", "Read", "Edit",
	"MultiEdit", "Write", "NotebookRead", "NotebookEdit", "WebFetch",
	"TodoRead", "TodoWrite", "WebSearch",
}

// Handler runs completions through the Claude Code CLI.
// Handler is safe for concurrent use; every call owns its subprocess.
type Handler struct {
	core.EstimatingCounter

	config Config
	model  core.ModelRef
	log    *slog.Logger
}

// New creates a handler. The executable is not looked up until first use.
func New(opts ...Option) *Handler {
	cfg := Config{
		Path:      DefaultPath,
		KillDelay: 2 * time.Second,
		Logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{
		config: cfg,
		model:  catalog.Resolve(providerID, cfg.ModelID),
		log:    cfg.Logger.With("provider", providerID),
	}
}

// Model reports the configured model.
func (h *Handler) Model() core.ModelRef {
	return h.model
}

// args builds the CLI arguments for one request.
func (h *Handler) args(systemPrompt string) []string {
	args := []string{
		"-p",
		"--system-prompt", systemPrompt,
		"--verbose",
		"--output-format", "stream-json",
		"--max-turns", "1",
	}
	for _, tool := range disallowedTools {
		args = append(args, "--disallowedTools", tool)
	}
	if h.model.ID != "" {
		args = append(args, "--model", h.model.ID)
	}
	return args
}

func (h *Handler) env() []string {
	env := append([]string(nil), h.config.Env...)
	if h.config.MaxOutputTokens > 0 {
		env = append(env, "CLAUDE_CODE_MAX_OUTPUT_TOKENS="+strconv.Itoa(h.config.MaxOutputTokens))
	}
	return env
}

// CreateMessage streams a completion.
func (h *Handler) CreateMessage(ctx context.Context, systemPrompt string, messages []core.Message, meta *core.Metadata) *core.Stream {
	return core.NewStream(ctx, func(ctx context.Context, emit core.Emit) error {
		return h.run(ctx, systemPrompt, messages, emit)
	}, core.WithTelemetry(providerID, h.model.ID, h.config.Telemetry))
}

var _ core.Handler = (*Handler)(nil)

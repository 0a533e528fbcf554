package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/providers"
	"github.com/petal-labs/prism/settings"
)

type chatFlags struct {
	prompt     string
	system     string
	taskID     string
	mode       string
	previousID string
	fresh      bool
	noStore    bool
	markdown   bool
	reasoning  bool
}

func (a *App) newChatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [prompt]",
		Short: "Stream a completion from the configured provider",
		Long: `Send one user message to the configured provider and stream the reply.

The prompt comes from --prompt, the positional arguments, or stdin when
neither is given.

Examples:
  prism chat "Hello"
  prism chat --provider openrouter --model anthropic/claude-sonnet-4 "Hello"
  echo "Summarize this" | prism chat --system "Be brief."
  prism chat --json --prompt "Hello"`,
		RunE: a.runChat,
	}

	cmd.Flags().StringVar(&a.chat.prompt, "prompt", "", "user message")
	cmd.Flags().StringVar(&a.chat.system, "system", "", "system prompt")
	cmd.Flags().StringVar(&a.chat.taskID, "task-id", "", "task id sent as request metadata (default: random)")
	cmd.Flags().StringVar(&a.chat.mode, "mode", "", "mode sent as request metadata")
	cmd.Flags().StringVar(&a.chat.previousID, "previous-response-id", "", "continue from a stored response (openai-native)")
	cmd.Flags().BoolVar(&a.chat.fresh, "fresh", false, "do not continue from any previous response")
	cmd.Flags().BoolVar(&a.chat.noStore, "no-store", false, "ask the provider not to retain the response")
	cmd.Flags().BoolVar(&a.chat.markdown, "markdown", false, "render the reply as markdown on terminals")
	cmd.Flags().BoolVar(&a.chat.reasoning, "reasoning", true, "print reasoning deltas")

	return cmd
}

// readPrompt takes the text from a flag, the positional arguments or stdin,
// in that order.
func (a *App) readPrompt(flag string, args []string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (a *App) metadata() *core.Metadata {
	meta := &core.Metadata{
		TaskID:                     a.chat.taskID,
		Mode:                       a.chat.mode,
		PreviousResponseID:         a.chat.previousID,
		SuppressPreviousResponseID: a.chat.fresh,
	}
	if meta.TaskID == "" {
		meta.TaskID = uuid.NewString()
	}
	if a.chat.noStore {
		store := false
		meta.Store = &store
	}
	return meta
}

func (a *App) runChat(cmd *cobra.Command, args []string) error {
	if a.chat.prompt == "" && len(args) == 0 {
		// The relay reads its reply from stdin, so stdin cannot also carry the prompt.
		if name, _ := providers.ResolveOptions(a.cfg, providers.WithEnvironment(a.env)); name == settings.HumanRelay {
			return exitWithCode(ExitValidation, errors.New("human-relay reads the reply from stdin: pass the prompt as an argument or with --prompt"))
		}
	}
	prompt, err := a.readPrompt(a.chat.prompt, args)
	if err != nil {
		return exitWithCode(ExitValidation, fmt.Errorf("read prompt: %w", err))
	}
	if prompt == "" {
		return exitWithCode(ExitValidation, errors.New("prompt required: pass it as an argument, with --prompt, or on stdin"))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	h := a.handler()
	meta := a.metadata()
	a.log.Debug("sending chat", "model", h.Model().ID, "task_id", meta.TaskID)

	stream := h.CreateMessage(ctx, a.chat.system, []core.Message{core.UserText(prompt)}, meta)

	if a.jsonOutput {
		return a.chatJSON(h, stream)
	}
	if a.chat.markdown && a.isTerminal(a.stdout) {
		return a.chatMarkdown(stream)
	}
	return a.chatText(stream)
}

func (a *App) chatText(stream *core.Stream) error {
	faint := a.colorFor(a.stdout, color.Faint)

	var (
		usage     core.Usage
		reasoning bool
		wrote     bool
	)
	for ev, err := range stream.Events() {
		if err != nil {
			return a.reportError(err)
		}
		switch ev.Type {
		case core.EventReasoning:
			if a.chat.reasoning {
				faint.Fprint(a.stdout, ev.Reasoning)
				reasoning = true
			}
		case core.EventText:
			if reasoning {
				fmt.Fprint(a.stdout, "\n\n")
				reasoning = false
			}
			fmt.Fprint(a.stdout, ev.Text)
			wrote = true
		case core.EventUsage:
			usage.Add(*ev.Usage)
		case core.EventError:
			fmt.Fprintln(a.stdout)
			return a.reportError(ev.Err)
		}
	}
	if wrote || reasoning {
		fmt.Fprintln(a.stdout)
	}
	if a.verbose {
		a.printUsage(usage)
	}
	return nil
}

func (a *App) printUsage(u core.Usage) {
	fmt.Fprintf(a.stderr, "Usage: %d input + %d output tokens", u.InputTokens, u.OutputTokens)
	if u.CacheReadTokens > 0 || u.CacheWriteTokens > 0 {
		fmt.Fprintf(a.stderr, " (cache read %d, write %d)", u.CacheReadTokens, u.CacheWriteTokens)
	}
	if u.TotalCost != nil {
		fmt.Fprintf(a.stderr, ", $%.6f", *u.TotalCost)
	}
	fmt.Fprintln(a.stderr)
}

func (a *App) chatMarkdown(stream *core.Stream) error {
	resp, err := core.Collect(stream)
	if err != nil {
		return a.reportError(err)
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		fmt.Fprintln(a.stdout, resp.Text)
		return nil
	}
	out, err := r.Render(resp.Text)
	if err != nil {
		out = resp.Text + "\n"
	}
	fmt.Fprint(a.stdout, out)
	if a.verbose {
		a.printUsage(resp.Usage)
	}
	return nil
}

func (a *App) chatJSON(h core.Handler, stream *core.Stream) error {
	resp, err := core.Collect(stream)
	if err != nil {
		return a.reportError(err)
	}
	output := map[string]any{
		"model":     h.Model().ID,
		"output":    resp.Text,
		"reasoning": resp.Reasoning,
		"usage":     resp.Usage,
	}
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

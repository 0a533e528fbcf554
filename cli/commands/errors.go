package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"

	"github.com/petal-labs/prism/core"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitProvider   = 2
	ExitNetwork    = 3
)

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// exitCode classifies a completion failure.
func exitCode(err error) int {
	switch {
	case errors.Is(err, core.ErrNetwork), errors.Is(err, context.DeadlineExceeded):
		return ExitNetwork
	case errors.Is(err, core.ErrNoHost), errors.Is(err, core.ErrStreamConsumed):
		return ExitValidation
	default:
		return ExitProvider
	}
}

// reportError prints a completion failure and returns it with its exit code.
func (a *App) reportError(err error) error {
	if a.jsonOutput {
		body := map[string]any{"type": "error", "message": err.Error()}
		var perr *core.ProviderError
		if errors.As(err, &perr) {
			body = map[string]any{
				"type":       perr.Code,
				"message":    perr.Message,
				"provider":   perr.Provider,
				"status":     perr.Status,
				"request_id": perr.RequestID,
			}
		}
		enc := json.NewEncoder(a.stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{"error": body})
		return exitWithCode(exitCode(err), err)
	}

	red := a.colorFor(a.stderr, color.FgRed)

	var perr *core.ProviderError
	if errors.As(err, &perr) {
		red.Fprintf(a.stderr, "Error: %s\n", perr.Message)
		if perr.RequestID != "" {
			fmt.Fprintf(a.stderr, "  Provider: %s, Request ID: %s\n", perr.Provider, perr.RequestID)
		}
	} else {
		red.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return exitWithCode(exitCode(err), err)
}

// colorFor returns a color that is only applied when w is a terminal.
func (a *App) colorFor(w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if a.isTerminal(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

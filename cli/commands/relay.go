package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// relay implements the human-relay provider on the terminal: the prompt is
// printed to stderr and the answer is read from stdin until a line holding
// a single "." or EOF.
func (a *App) relay(ctx context.Context, id, prompt string) (string, error) {
	bold := a.colorFor(a.stderr, color.Bold)
	bold.Fprintf(a.stderr, "--- relay %s: paste this into your chat assistant ---\n", id)
	fmt.Fprintln(a.stderr, prompt)
	bold.Fprintln(a.stderr, `--- type the reply, end with a line containing "." ---`)

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	// A blocked read cannot be interrupted; after cancellation the reader
	// exits at the next line or EOF and its result is dropped.
	go func() {
		var lines []string
		sc := bufio.NewScanner(a.stdin)
		for sc.Scan() {
			if sc.Text() == "." {
				break
			}
			lines = append(lines, sc.Text())
		}
		done <- result{strings.Join(lines, "\n"), sc.Err()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.text, r.err
	}
}

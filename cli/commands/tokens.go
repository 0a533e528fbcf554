package commands

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/petal-labs/prism/core"
)

func (a *App) newTokensCommand() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "tokens [text]",
		Short: "Count the tokens of a text with the configured provider",
		Long: `Count tokens using the provider's counting endpoint where one exists,
falling back to a local estimate otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readPrompt(prompt, args)
			if err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("read text: %w", err))
			}
			if text == "" {
				return exitWithCode(ExitValidation, errors.New("text required"))
			}

			h := a.handler()
			n, err := h.CountTokens(cmd.Context(), []core.ContentBlock{core.Text(text)})
			if err != nil {
				return a.reportError(err)
			}

			if a.jsonOutput {
				return json.NewEncoder(a.stdout).Encode(map[string]any{"model": h.Model().ID, "tokens": n})
			}
			fmt.Fprintln(a.stdout, n)
			return nil
		},
	}
	cmd.Flags().StringVar(&prompt, "text", "", "text to count")
	return cmd
}

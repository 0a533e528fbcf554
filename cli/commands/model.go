package commands

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func (a *App) newModelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Show the model the configured provider resolves to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := a.handler().Model()
			if a.jsonOutput {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(m)
			}

			fmt.Fprintf(a.stdout, "Model:          %s\n", m.ID)
			fmt.Fprintf(a.stdout, "Context window: %d\n", m.Info.ContextWindow)
			if m.Info.MaxTokens > 0 {
				fmt.Fprintf(a.stdout, "Max output:     %d\n", m.Info.MaxTokens)
			}
			fmt.Fprintf(a.stdout, "Images:         %t\n", m.Info.SupportsImages)
			fmt.Fprintf(a.stdout, "Prompt cache:   %t\n", m.Info.SupportsPromptCache)
			if m.Info.InputPrice > 0 || m.Info.OutputPrice > 0 {
				fmt.Fprintf(a.stdout, "Price:          $%.2f in / $%.2f out per 1M tokens\n", m.Info.InputPrice, m.Info.OutputPrice)
			}
			if m.Info.Description != "" {
				fmt.Fprintln(a.stdout, m.Info.Description)
			}
			return nil
		},
	}
}

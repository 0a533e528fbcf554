package commands

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/petal-labs/prism/providers"
	"github.com/petal-labs/prism/settings"
)

func (a *App) newProvidersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List provider tags and which credential variables are set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := providers.List()
			avail := providers.EnvVarAvailability(a.env)

			if a.jsonOutput {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"providers":   names,
					"default":     settings.DefaultProvider,
					"environment": avail,
				})
			}

			fmt.Fprintln(a.stdout, "Providers:")
			for _, name := range names {
				marker := " "
				if name == string(a.cfg.APIProvider) {
					marker = "*"
				}
				fmt.Fprintf(a.stdout, "  %s %s\n", marker, name)
			}

			vars := make([]string, 0, len(avail))
			for name := range avail {
				vars = append(vars, name)
			}
			sort.Strings(vars)

			green := a.colorFor(a.stdout, color.FgGreen)
			faint := a.colorFor(a.stdout, color.Faint)
			fmt.Fprintln(a.stdout, "\nEnvironment:")
			for _, name := range vars {
				if avail[name] {
					green.Fprintf(a.stdout, "  %-28s set\n", name)
				} else {
					faint.Fprintf(a.stdout, "  %-28s -\n", name)
				}
			}
			return nil
		},
	}
}

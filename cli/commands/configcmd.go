package commands

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/petal-labs/prism/cli/config"
	"github.com/petal-labs/prism/settings"
)

func (a *App) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and edit the settings file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <field>",
		Short: "Print one settings field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.cfg.Get(args[0])
			if err != nil {
				return exitWithCode(ExitValidation, err)
			}
			if v == nil {
				return nil
			}
			if s, ok := v.(string); ok && !a.jsonOutput {
				fmt.Fprintln(a.stdout, s)
				return nil
			}
			return json.NewEncoder(a.stdout).Encode(v)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <field> <value>",
		Short: "Update one settings field and save the file",
		Long: `Update one settings field and save the file. Values that parse as JSON
keep their type; use "null" to clear a field.

Examples:
  prism config set apiProvider openrouter
  prism config set openRouterApiKeyUseEnvVar true
  prism config set openAiHeaders '{"X-Team":"ml"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Save the file as stored, without per-invocation overrides.
			cfg, err := a.loadConfig(a.configPath())
			if err != nil {
				return exitWithCode(ExitValidation, err)
			}
			if err := cfg.SetField(args[0], parseValue(args[1])); err != nil {
				return exitWithCode(ExitValidation, err)
			}
			if err := config.SaveConfig(a.configPath(), cfg); err != nil {
				return exitWithCode(ExitValidation, err)
			}
			a.log.Debug("settings saved", "path", a.configPath(), "field", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "fields",
		Short: "List every settings field",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, f := range settings.Fields() {
				fmt.Fprintln(a.stdout, f)
			}
		},
	})

	return cmd
}

// Package commands implements the prism command line using Cobra.
package commands

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/petal-labs/prism/cli/config"
	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/credentials"
	"github.com/petal-labs/prism/providers"
	"github.com/petal-labs/prism/settings"
)

// ConfigLoader loads CLI settings from a path.
type ConfigLoader func(path string) (settings.ProviderSettings, error)

// HandlerFactory builds a handler from resolved settings.
type HandlerFactory func(cfg settings.ProviderSettings, opts ...providers.Option) core.Handler

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig ConfigLoader
	build      HandlerFactory
	env        credentials.Environment
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func(w io.Writer) bool
	log        *slog.Logger

	cfgFile    string
	envFiles   []string
	provider   string
	model      string
	sets       []string
	jsonOutput bool
	verbose    bool
	cfg        settings.ProviderSettings

	chat chatFlags
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithHandlerFactory injects the handler factory.
func WithHandlerFactory(factory HandlerFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.build = factory
		}
	}
}

// WithEnvironment replaces the process environment.
func WithEnvironment(env credentials.Environment) AppOption {
	return func(a *App) {
		if env != nil {
			a.env = env
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig: config.LoadConfig,
		build:      providers.Build,
		env:        credentials.Process(),
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		isTerminal: isTerminal,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "prism",
		Short: "Prism - one streaming interface for many LLM providers",
		Long: `Prism turns a provider configuration into a streaming completion handler.

Settings are read from ~/.prism/settings.yaml by default. Any field can be
overridden per invocation with --set, and credentials marked "use environment"
are read from the process environment or --env-file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.initLogger()
			return a.initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "settings file (default is ~/.prism/settings.yaml)")
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "dotenv file layered over the environment (repeatable)")
	root.PersistentFlags().StringVar(&a.provider, "provider", "", "provider tag, e.g. anthropic, openrouter, ollama")
	root.PersistentFlags().StringVar(&a.model, "model", "", "model ID (sets apiModelId)")
	root.PersistentFlags().StringArrayVar(&a.sets, "set", nil, "override a settings field, e.g. --set openAiBaseUrl=http://localhost:8080/v1")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newChatCommand())
	root.AddCommand(a.newTokensCommand())
	root.AddCommand(a.newModelCommand())
	root.AddCommand(a.newProvidersCommand())
	root.AddCommand(a.newConfigCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.root.Execute()
}

// SetArgs replaces the command line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

func (a *App) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	return config.DefaultConfigPath()
}

func (a *App) initConfig() error {
	cfg, err := a.loadConfig(a.configPath())
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}

	if len(a.envFiles) > 0 {
		env, err := credentials.Dotenv(a.env, a.envFiles...)
		if err != nil {
			return exitWithCode(ExitValidation, err)
		}
		a.env = env
	}

	if a.provider != "" {
		cfg.APIProvider = settings.ProviderName(a.provider)
	}
	if a.model != "" {
		cfg.APIModelID = a.model
	}
	for _, kv := range a.sets {
		if err := applySet(&cfg, kv); err != nil {
			return exitWithCode(ExitValidation, err)
		}
	}

	a.cfg = cfg
	return nil
}

// initLogger routes slog through a zerolog console writer on stderr.
func (a *App) initLogger() {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	output := zerolog.ConsoleWriter{Out: a.stderr, TimeFormat: time.Stamp, NoColor: !a.isTerminal(a.stderr)}
	zl := zerolog.New(output).With().Timestamp().Logger()
	a.log = slog.New(zeroslog.NewHandler(zl, &zeroslog.HandlerOptions{Level: level}))
}

// handler builds the configured handler.
func (a *App) handler() core.Handler {
	return a.build(a.cfg,
		providers.WithEnvironment(a.env),
		providers.WithLogger(a.log),
		providers.WithHumanRelay(a.relay),
	)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var defaultApp = NewApp()

// Execute runs the default app root command.
func Execute() error {
	return defaultApp.Execute()
}

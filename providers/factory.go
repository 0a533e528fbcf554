package providers

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/petal-labs/prism/core"
	"github.com/petal-labs/prism/credentials"
	"github.com/petal-labs/prism/providers/host"
	"github.com/petal-labs/prism/settings"
)

// builder carries the collaborators shared by every table constructor.
type builder struct {
	env        credentials.Environment
	httpClient *http.Client
	log        *slog.Logger
	relay      host.RelayFunc
	lm         host.LanguageModel
	telemetry  core.TelemetryHook
}

// Option configures Build and ResolveOptions.
type Option func(*builder)

// WithEnvironment sets the environment credential overrides are read from.
// Defaults to the process environment.
func WithEnvironment(env credentials.Environment) Option {
	return func(b *builder) {
		if env != nil {
			b.env = env
		}
	}
}

// WithHTTPClient sets the HTTP client for network backends.
func WithHTTPClient(client *http.Client) Option {
	return func(b *builder) {
		b.httpClient = client
	}
}

// WithLogger sets the logger passed to handlers.
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.log = l
		}
	}
}

// WithHumanRelay supplies the collaborator for human-relay.
func WithHumanRelay(relay host.RelayFunc) Option {
	return func(b *builder) {
		b.relay = relay
	}
}

// WithLanguageModel supplies the host model for vscode-lm.
func WithLanguageModel(lm host.LanguageModel) Option {
	return func(b *builder) {
		b.lm = lm
	}
}

// WithTelemetry reports stream lifecycle of built handlers to hook.
func WithTelemetry(hook core.TelemetryHook) Option {
	return func(b *builder) {
		b.telemetry = hook
	}
}

func newBuilder(opts []Option) *builder {
	b := &builder{
		env: credentials.Process(),
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the handler for cfg. It never fails and never modifies cfg.
func Build(cfg settings.ProviderSettings, opts ...Option) core.Handler {
	b := newBuilder(opts)
	name, o, fallback := b.resolve(cfg)

	attrs := []any{"provider", string(name), "fallback", fallback}
	if fallback {
		attrs = append(attrs, "requested", string(cfg.APIProvider))
	}
	for _, bind := range table[name].creds {
		if bind.flag(&cfg.Options) {
			_, present := b.env.LookupEnv(bind.envVar)
			attrs = append(attrs, "env_override."+bind.envVar, present)
		}
	}
	b.log.Debug("building handler", attrs...)

	return table[name].build(b, &o)
}

// ResolveOptions performs the pure half of Build: it returns the tag that
// will be dispatched on and a copy of the options with credential
// overrides applied.
func ResolveOptions(cfg settings.ProviderSettings, opts ...Option) (settings.ProviderName, settings.Options) {
	name, o, _ := newBuilder(opts).resolve(cfg)
	return name, o
}

func (b *builder) resolve(cfg settings.ProviderSettings) (settings.ProviderName, settings.Options, bool) {
	name, o := cfg.Split()
	_, ok := table[name]
	if !ok {
		name = settings.DefaultProvider
	}
	for _, bind := range table[name].creds {
		field := bind.field(&o)
		*field = credentials.Resolve(b.env, *field, bind.envVar, bind.flag(&o))
	}
	return name, o, !ok
}

// List returns every tag with a dedicated adapter in sorted order.
func List() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, string(name))
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether name has a dedicated adapter.
func IsRegistered(name string) bool {
	_, ok := table[settings.ProviderName(strings.TrimSpace(name))]
	return ok
}

// EnvVarAvailability reports, for each canonical credential variable,
// whether env holds a non-empty value for it.
func EnvVarAvailability(env credentials.Environment) map[string]bool {
	if env == nil {
		env = credentials.Process()
	}
	return credentials.Available(env)
}

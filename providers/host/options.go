package host

import "github.com/petal-labs/prism/core"

// Option configures a host adapter.
type Option func(*config)

type config struct {
	telemetry core.TelemetryHook
}

// WithTelemetry reports each stream's lifecycle to hook.
func WithTelemetry(hook core.TelemetryHook) Option {
	return func(c *config) {
		c.telemetry = hook
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

package core

import "time"

// TelemetryHook receives notifications about stream lifecycle.
//
// Events never carry credentials, prompt content or response content;
// only provider, model, timing and token counts are exposed.
type TelemetryHook interface {
	// OnStreamStart is called when a stream begins producing.
	OnStreamStart(e StreamStartEvent)

	// OnStreamEnd is called once the producer returns.
	OnStreamEnd(e StreamEndEvent)
}

// StreamStartEvent contains metadata about a starting stream.
type StreamStartEvent struct {
	Provider string
	Model    string
	Start    time.Time
}

// StreamEndEvent contains metadata about a finished stream.
// Err is nil when the stream completed or the consumer stopped early.
type StreamEndEvent struct {
	Provider string
	Model    string
	Start    time.Time
	End      time.Time
	Events   int
	Usage    Usage
	Err      error
}

// Duration returns the elapsed time for the stream.
func (e StreamEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is a no-op implementation of TelemetryHook.
type NoopTelemetryHook struct{}

// OnStreamStart does nothing.
func (NoopTelemetryHook) OnStreamStart(StreamStartEvent) {}

// OnStreamEnd does nothing.
func (NoopTelemetryHook) OnStreamEnd(StreamEndEvent) {}

var _ TelemetryHook = NoopTelemetryHook{}

package core

import (
	"context"
	"errors"
	"iter"
	"strings"
	"sync/atomic"
	"time"
)

// EventType discriminates StreamEvent variants.
type EventType string

const (
	EventText      EventType = "text"
	EventReasoning EventType = "reasoning"
	EventUsage     EventType = "usage"
	EventError     EventType = "error"
)

// StreamEvent is one item of a completion stream.
// Exactly one payload field is set, matching Type.
type StreamEvent struct {
	Type      EventType
	Text      string
	Reasoning string
	Usage     *Usage
	Err       error
}

// TextEvent builds an EventText.
func TextEvent(s string) StreamEvent { return StreamEvent{Type: EventText, Text: s} }

// ReasoningEvent builds an EventReasoning.
func ReasoningEvent(s string) StreamEvent { return StreamEvent{Type: EventReasoning, Reasoning: s} }

// UsageEvent builds an EventUsage.
func UsageEvent(u Usage) StreamEvent { return StreamEvent{Type: EventUsage, Usage: &u} }

// Emit hands one event to the consumer. It returns false once the consumer
// has stopped reading; producers must return promptly when that happens.
type Emit func(StreamEvent) bool

// Producer performs the backend call and emits events in backend order.
// ctx is cancelled as soon as the consumer stops.
type Producer func(ctx context.Context, emit Emit) error

// Stream is a lazy, single-use sequence of StreamEvents.
//
// Nothing happens until Events is ranged over. Breaking out of the range
// loop cancels the producer's context so transports and subprocesses are
// released. A producer failure after at least one event is delivered as a
// terminal EventError; a failure before any event is returned as the
// iterator's error value.
type Stream struct {
	ctx      context.Context
	produce  Producer
	used     atomic.Bool
	hook     TelemetryHook
	provider string
	model    string
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithTelemetry reports stream lifecycle to hook.
func WithTelemetry(provider, model string, hook TelemetryHook) StreamOption {
	return func(s *Stream) {
		if hook != nil {
			s.hook = hook
		}
		s.provider = provider
		s.model = model
	}
}

// NewStream wraps a producer. ctx bounds the whole stream.
func NewStream(ctx context.Context, produce Producer, opts ...StreamOption) *Stream {
	if ctx == nil {
		ctx = context.Background()
	}
	s := &Stream{ctx: ctx, produce: produce, hook: NoopTelemetryHook{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ErrorStream returns a stream that fails with err before yielding anything.
func ErrorStream(err error) *Stream {
	return NewStream(context.Background(), func(context.Context, Emit) error { return err })
}

// Events returns the event sequence. It may be ranged over once.
func (s *Stream) Events() iter.Seq2[StreamEvent, error] {
	return func(yield func(StreamEvent, error) bool) {
		if !s.used.CompareAndSwap(false, true) {
			yield(StreamEvent{}, ErrStreamConsumed)
			return
		}

		ctx, cancel := context.WithCancel(s.ctx)
		defer cancel()

		start := time.Now()
		s.hook.OnStreamStart(StreamStartEvent{Provider: s.provider, Model: s.model, Start: start})

		var (
			delivered int
			stopped   bool
			usage     Usage
		)
		emit := func(ev StreamEvent) bool {
			if stopped || ctx.Err() != nil {
				return false
			}
			if ev.Type == EventUsage && ev.Usage != nil {
				usage.Add(*ev.Usage)
			}
			delivered++
			if !yield(ev, nil) {
				stopped = true
				cancel()
				return false
			}
			return true
		}

		err := s.produce(ctx, emit)
		switch {
		case stopped && errors.Is(err, context.Canceled):
			err = nil
		case !stopped && err == nil && s.ctx.Err() != nil:
			// The caller's context ended the producer; the output is truncated.
			err = s.ctx.Err()
		}
		s.hook.OnStreamEnd(StreamEndEvent{
			Provider: s.provider,
			Model:    s.model,
			Start:    start,
			End:      time.Now(),
			Events:   delivered,
			Usage:    usage,
			Err:      err,
		})

		switch {
		case stopped || err == nil:
		case delivered > 0:
			yield(StreamEvent{Type: EventError, Err: err}, nil)
		default:
			yield(StreamEvent{}, err)
		}
	}
}

// Response is a fully collected stream.
type Response struct {
	Text      string
	Reasoning string
	Usage     Usage
}

// Collect drains a stream into a Response.
// Both rejected requests and terminal error events are returned as err,
// together with whatever had been collected.
func Collect(s *Stream) (*Response, error) {
	if s == nil {
		return nil, ErrBadRequest
	}

	var text, reasoning strings.Builder
	resp := &Response{}
	for ev, err := range s.Events() {
		if err != nil {
			return resp, err
		}
		switch ev.Type {
		case EventText:
			text.WriteString(ev.Text)
		case EventReasoning:
			reasoning.WriteString(ev.Reasoning)
		case EventUsage:
			if ev.Usage != nil {
				resp.Usage.Add(*ev.Usage)
			}
		case EventError:
			resp.Text = text.String()
			resp.Reasoning = reasoning.String()
			return resp, ev.Err
		}
	}
	resp.Text = text.String()
	resp.Reasoning = reasoning.String()
	return resp, nil
}

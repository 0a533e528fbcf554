// Package core defines the contract shared by every completion backend.
//
// A [Handler] turns a system prompt and a conversation into a lazy [Stream]
// of [StreamEvent] values:
//
//	stream := handler.CreateMessage(ctx, "You are terse.", []core.Message{core.UserText("hi")}, nil)
//	for ev, err := range stream.Events() {
//	    if err != nil {
//	        return err // request rejected before any output
//	    }
//	    switch ev.Type {
//	    case core.EventText:
//	        fmt.Print(ev.Text)
//	    case core.EventError:
//	        return ev.Err // failed mid-stream
//	    }
//	}
//
// Breaking out of the loop cancels the underlying request. A Stream can be
// ranged over once; later iterations yield [ErrStreamConsumed].
//
// # Errors
//
// Backend failures are reported as [*ProviderError] wrapping one of the
// sentinel errors ([ErrUnauthorized], [ErrRateLimited], ...) so callers can
// classify them with errors.Is.
//
// # Secrets
//
// Credentials are carried as [Secret], which redacts itself in fmt, slog,
// JSON and text output.
package core

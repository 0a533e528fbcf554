// Package sse decodes text/event-stream bodies.
package sse

import (
	"bufio"
	"bytes"
	"io"
)

// Event is one dispatched server-sent event.
type Event struct {
	// Name is the "event:" field, empty for unnamed events.
	Name string
	// Data is the concatenation of the event's data lines joined by "\n".
	Data []byte
}

// Decoder reads events from a stream.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder wraps r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next event. Events with neither a name nor data are
// skipped, as are comment lines. It returns io.EOF once the stream ends.
func (d *Decoder) Next() (Event, error) {
	var (
		name string
		data [][]byte
	)
	flush := func() (Event, bool) {
		if name == "" && len(data) == 0 {
			return Event{}, false
		}
		return Event{Name: name, Data: bytes.Join(data, []byte("\n"))}, true
	}

	for {
		line, err := d.r.ReadBytes('\n')
		if err != nil {
			line = bytes.TrimRight(line, "\r\n")
			if len(line) > 0 {
				name, data = applyField(name, data, line)
			}
			if ev, ok := flush(); ok {
				return ev, nil
			}
			return Event{}, err
		}

		line = bytes.TrimRight(line, "\r\n")
		if len(line) == 0 {
			if ev, ok := flush(); ok {
				return ev, nil
			}
			continue
		}
		if line[0] == ':' {
			continue
		}
		name, data = applyField(name, data, line)
	}
}

func applyField(name string, data [][]byte, line []byte) (string, [][]byte) {
	field, val, found := bytes.Cut(line, []byte(":"))
	if found && len(val) > 0 && val[0] == ' ' {
		val = val[1:]
	}
	switch string(field) {
	case "event":
		name = string(val)
	case "data":
		data = append(data, append([]byte(nil), val...))
	}
	return name, data
}

// Done reports whether data is the OpenAI-style "[DONE]" terminator.
func Done(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("[DONE]"))
}

// Package thinktags separates <think>...</think> sections of streamed text
// into reasoning events. Several open-weight reasoning models emit their
// chain of thought inline this way.
package thinktags

import (
	"strings"

	"github.com/petal-labs/prism/core"
)

const (
	openTag  = "<think>"
	closeTag = "</think>"
)

// Splitter is fed text deltas in order and returns the events they produce.
// Tags may be split across deltas. Not safe for concurrent use.
type Splitter struct {
	thinking bool
	pending  string
}

// Feed consumes one delta.
func (s *Splitter) Feed(delta string) []core.StreamEvent {
	buf := s.pending + delta
	s.pending = ""

	var out []core.StreamEvent
	for buf != "" {
		tag := openTag
		if s.thinking {
			tag = closeTag
		}
		if i := strings.Index(buf, tag); i >= 0 {
			out = s.appendEvent(out, buf[:i])
			buf = buf[i+len(tag):]
			s.thinking = !s.thinking
			continue
		}
		// Hold back a suffix that could be the start of the tag.
		keep := partialSuffix(buf, tag)
		out = s.appendEvent(out, buf[:len(buf)-keep])
		s.pending = buf[len(buf)-keep:]
		break
	}
	return out
}

// Flush returns any held-back text once the stream has ended.
func (s *Splitter) Flush() []core.StreamEvent {
	rest := s.pending
	s.pending = ""
	return s.appendEvent(nil, rest)
}

func (s *Splitter) appendEvent(out []core.StreamEvent, text string) []core.StreamEvent {
	if text == "" {
		return out
	}
	if s.thinking {
		return append(out, core.ReasoningEvent(text))
	}
	return append(out, core.TextEvent(text))
}

// partialSuffix returns the length of the longest suffix of s that is a
// proper prefix of tag.
func partialSuffix(s, tag string) int {
	n := min(len(tag)-1, len(s))
	for ; n > 0; n-- {
		if strings.HasSuffix(s, tag[:n]) {
			return n
		}
	}
	return 0
}

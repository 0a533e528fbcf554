package sse

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder(t *testing.T) {
	stream := ": keep-alive\n" +
		"event: message_start\n" +
		"data: {\"type\":\"message_start\"}\n\n" +
		"data: line one\r\n" +
		"data: line two\r\n\r\n" +
		"\n\n" +
		"event: ping\n\n" +
		"data:no-space\n" +
		"data: [DONE]"

	d := NewDecoder(strings.NewReader(stream))

	ev, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, "message_start", ev.Name)
	assert.JSONEq(t, `{"type":"message_start"}`, string(ev.Data))

	ev, err = d.Next()
	require.NoError(t, err)
	assert.Empty(t, ev.Name)
	assert.Equal(t, "line one\nline two", string(ev.Data))

	ev, err = d.Next()
	require.NoError(t, err)
	assert.Equal(t, "ping", ev.Name)
	assert.Empty(t, ev.Data)

	ev, err = d.Next()
	require.NoError(t, err)
	assert.Equal(t, "no-space\n[DONE]", string(ev.Data))

	_, err = d.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDone(t *testing.T) {
	assert.True(t, Done([]byte("[DONE]")))
	assert.True(t, Done([]byte(" [DONE]\n")))
	assert.False(t, Done([]byte(`{"done":true}`)))
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextBlock(t *testing.T) {
	b := Text("hello")
	assert.Equal(t, BlockText, b.Type)
	assert.Equal(t, "hello", b.Text)
	assert.Nil(t, b.Image)
}

func TestImageBlock(t *testing.T) {
	b := Image("image/jpeg", "/9j/4AAQ")
	assert.Equal(t, BlockImage, b.Type)
	assert.Empty(t, b.Text)
	require.NotNil(t, b.Image)
	assert.Equal(t, "image/jpeg", b.Image.MediaType)
	assert.Equal(t, "data:image/jpeg;base64,/9j/4AAQ", b.Image.DataURL())
}

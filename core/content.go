package core

import "strings"

// BlockType identifies the kind of a ContentBlock.
type BlockType string

const (
	BlockText  BlockType = "text"
	BlockImage BlockType = "image"
)

// ContentBlock is one piece of message content.
type ContentBlock struct {
	Type BlockType `json:"type" yaml:"type"`

	// Text is set for BlockText.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Image is set for BlockImage.
	Image *ImageSource `json:"image,omitempty" yaml:"image,omitempty"`
}

// ImageSource holds inline base64 image data.
type ImageSource struct {
	// MediaType is the MIME type, e.g. image/png.
	MediaType string `json:"mediaType" yaml:"mediaType"`
	// Data is base64-encoded image bytes.
	Data string `json:"data" yaml:"data"`
}

// DataURL renders the image as a data: URL.
func (s ImageSource) DataURL() string {
	var b strings.Builder
	b.Grow(len(s.MediaType) + len(s.Data) + 13)
	b.WriteString("data:")
	b.WriteString(s.MediaType)
	b.WriteString(";base64,")
	b.WriteString(s.Data)
	return b.String()
}

// Text builds a text block.
func Text(s string) ContentBlock {
	return ContentBlock{Type: BlockText, Text: s}
}

// Image builds an inline image block.
func Image(mediaType, base64Data string) ContentBlock {
	return ContentBlock{Type: BlockImage, Image: &ImageSource{MediaType: mediaType, Data: base64Data}}
}

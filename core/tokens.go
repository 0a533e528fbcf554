package core

import (
	"math"
	"unicode/utf8"
)

const (
	charsPerToken    = 4.0
	tokenFudgeFactor = 1.5
	// unknownImageTokens is charged for images without inline data.
	unknownImageTokens = 300
)

// EstimateTokens approximates the token count of content.
//
// Text costs one token per four characters; images cost the square root of
// their encoded size. The total is padded by a fudge factor so estimates
// err on the high side.
func EstimateTokens(content []ContentBlock) int {
	if len(content) == 0 {
		return 0
	}
	var total float64
	for _, b := range content {
		switch b.Type {
		case BlockText:
			total += math.Ceil(float64(utf8.RuneCountInString(b.Text)) / charsPerToken)
		case BlockImage:
			if b.Image == nil || b.Image.Data == "" {
				total += unknownImageTokens
				continue
			}
			total += math.Ceil(math.Sqrt(float64(len(b.Image.Data))))
		}
	}
	return int(math.Ceil(total * tokenFudgeFactor))
}

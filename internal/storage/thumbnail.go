package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	thumbSize    = 400
	thumbQuality = 80
)

// Thumbnail center-crops and resizes the image to a fixed 400x400 square and
// re-encodes it as JPEG at quality 80.
func Thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("storage: decode image: %w", err)
	}
	thumb := imaging.Fill(img, thumbSize, thumbSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(thumbQuality)); err != nil {
		return nil, fmt.Errorf("storage: encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

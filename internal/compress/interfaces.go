package compress

import (
	"image"
)

// Compressor defines the interface for the image codec.
type Compressor interface {
	Decode(data []byte) (image.Image, string, error)
	EncodePNG(img image.Image) ([]byte, error)
	EncodeJPEG(img image.Image, quality int) ([]byte, error)
	Compress(data []byte) (*Result, error)
}

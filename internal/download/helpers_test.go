package download

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"testing"
)

// testPNG returns a PNG with a noisy gradient, large enough to span several KB
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	rng := rand.New(rand.NewPCG(7, 11))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x*255/w) ^ uint8(rng.IntN(8)),
				G: uint8(y*255/h) ^ uint8(rng.IntN(8)),
				B: uint8(rng.IntN(256)),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

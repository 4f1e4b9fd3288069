package compress

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/ytget/image-downloader/internal/model"
)

// Encoding settings
const (
	// JPEGQuality is the fixed lossy quality used for saved images
	JPEGQuality = 70

	MinQuality = 1
	MaxQuality = 100

	// DefaultMaxPixels caps the decoded raster at 50 megapixels
	DefaultMaxPixels = 50_000_000
)

var (
	ErrEmptyImage     = errors.New("empty image data")
	ErrInvalidQuality = errors.New("invalid jpeg quality")
	ErrTooManyPixels  = errors.New("image dimensions exceed limit")
)

// Result is the outcome of Compress
type Result struct {
	Format string           // source format reported by the decoder
	Width  int              // raster size that was encoded
	Height int
	JPEG   []byte           // bytes to write
	Sizes  model.SizeReport // PNG baseline vs JPEG sizes
}

// Service re-encodes downloaded images
type Service struct {
	maxDimension uint
	maxPixels    int64
	background   color.Color
}

// NewService creates a new codec service. maxDimension > 0 downscales images
// whose longest side exceeds it. maxPixels > 0 rejects images whose header
// declares more pixels, before any raster is allocated.
func NewService(maxDimension uint, maxPixels int64) *Service {
	return &Service{
		maxDimension: maxDimension,
		maxPixels:    maxPixels,
		background:   color.White,
	}
}

// Decode decodes PNG, JPEG, GIF, BMP or WebP data
func (s *Service) Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}
	if err := s.checkPixels(data); err != nil {
		return nil, "", err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// checkPixels reads only the image header and enforces maxPixels
func (s *Service) checkPixels(data []byte) error {
	if s.maxPixels <= 0 {
		return nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > s.maxPixels {
		return fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}
	return nil
}

// EncodePNG encodes img losslessly; used as the size baseline
func (s *Service) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJPEG encodes img at the given quality, flattening transparency onto
// the service background first
func (s *Service) EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality < MinQuality || quality > MaxQuality {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, s.flatten(img), &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// Compress decodes data, optionally downscales it, and measures the PNG
// baseline against the JPEG encoding of the same raster
func (s *Service) Compress(data []byte) (*Result, error) {
	img, format, err := s.Decode(data)
	if err != nil {
		return nil, err
	}

	img = s.downscale(img)

	original, err := s.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	compressed, err := s.EncodeJPEG(img, JPEGQuality)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	result := &Result{
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		JPEG:   compressed,
		Sizes: model.SizeReport{
			OriginalBytes:   int64(len(original)),
			CompressedBytes: int64(len(compressed)),
		},
	}

	slog.Debug("image compressed",
		"format", format,
		"width", result.Width,
		"height", result.Height,
		"pngBytes", result.Sizes.OriginalBytes,
		"jpegBytes", result.Sizes.CompressedBytes)

	return result, nil
}

// downscale keeps the aspect ratio and fits the longest side into maxDimension
func (s *Service) downscale(img image.Image) image.Image {
	if s.maxDimension == 0 {
		return img
	}
	b := img.Bounds()
	w, h := uint(b.Dx()), uint(b.Dy())
	if w <= s.maxDimension && h <= s.maxDimension {
		return img
	}
	if w >= h {
		return resize.Resize(s.maxDimension, 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, s.maxDimension, img, resize.Lanczos3)
}

// flatten draws img over an opaque background; opaque sources pass through
func (s *Service) flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(s.background), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/ytget/image-downloader/internal/platform"
)

// Environment keys
const (
	KeySaveFolder    = "IMGDL_SAVE_FOLDER"
	KeyHTTPTimeout   = "IMGDL_HTTP_TIMEOUT"
	KeyMaxImageBytes = "IMGDL_MAX_IMAGE_BYTES"
	KeyMaxDimension  = "IMGDL_MAX_DIMENSION"
	KeyMaxPixels     = "IMGDL_MAX_PIXELS"
	KeyAutoReveal    = "IMGDL_AUTO_REVEAL"
	KeyLanguage      = "IMGDL_LANGUAGE"
	KeyLogLevel      = "LOG_LEVEL"
	KeyLogPlaintext  = "LOG_PLAINTEXT"
)

// Default values
const (
	DefaultFolderName    = "DownloadedImages"
	DefaultHTTPTimeout   = 60 * time.Second
	DefaultMaxImageBytes = 64 << 20
	DefaultMaxDimension  = 0
	DefaultMaxPixels     = 50_000_000
	DefaultAutoReveal    = false
	DefaultLanguage      = "system"
	DefaultLogLevel      = slog.LevelInfo
	DefaultLogPlaintext  = true

	// MaxDimensionLimit caps IMGDL_MAX_DIMENSION
	MaxDimensionLimit = 16384
)

// Logger configures the default slog logger
type Logger struct {
	Level     slog.Level
	Plaintext bool
}

// Settings holds the application configuration. It is read once at startup
// and never written back.
type Settings struct {
	SaveFolder    string        // initial destination folder
	HTTPTimeout   time.Duration // whole-request timeout of the HTTP client
	MaxImageBytes int64         // responses larger than this are rejected
	MaxDimension  uint          // longest side after downscale, 0 keeps the original size
	MaxPixels     int64         // images declaring more pixels are rejected before decoding
	AutoReveal    bool          // reveal the written file in the file manager
	Language      string        // UI language code or "system"
	Logger        Logger
}

// Load reads an optional .env file and then the process environment.
// All invalid values are reported together; the returned settings hold
// defaults in their place.
func Load(envFiles ...string) (Settings, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return Settings{}, fmt.Errorf("load env files: %w", err)
	}

	var ge getenv
	s := Settings{
		SaveFolder:    ge.String(KeySaveFolder, false, defaultSaveFolder()),
		HTTPTimeout:   ge.Duration(KeyHTTPTimeout, false, DefaultHTTPTimeout),
		MaxImageBytes: ge.Int64(KeyMaxImageBytes, false, DefaultMaxImageBytes),
		MaxPixels:     ge.Int64(KeyMaxPixels, false, DefaultMaxPixels),
		AutoReveal:    ge.Bool(KeyAutoReveal, false, DefaultAutoReveal),
		Language:      ge.String(KeyLanguage, false, DefaultLanguage),
		Logger: Logger{
			Level:     ge.LogLevel(KeyLogLevel, false, DefaultLogLevel),
			Plaintext: ge.Bool(KeyLogPlaintext, false, DefaultLogPlaintext),
		},
	}

	dim := ge.Int(KeyMaxDimension, false, DefaultMaxDimension)
	s.MaxDimension = clampDimension(dim)

	errs := []error{ge.Err()}
	if s.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", KeyHTTPTimeout, s.HTTPTimeout))
		s.HTTPTimeout = DefaultHTTPTimeout
	}
	if s.MaxImageBytes <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyMaxImageBytes, s.MaxImageBytes))
		s.MaxImageBytes = DefaultMaxImageBytes
	}
	if s.MaxPixels <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyMaxPixels, s.MaxPixels))
		s.MaxPixels = DefaultMaxPixels
	}

	return s, errors.Join(errs...)
}

// clampDimension keeps the downscale limit within 0..MaxDimensionLimit
func clampDimension(dim int) uint {
	if dim < 0 {
		return 0
	}
	if dim > MaxDimensionLimit {
		return MaxDimensionLimit
	}
	return uint(dim)
}

// defaultSaveFolder returns <Downloads>/DownloadedImages, or a relative folder
// when the home directory cannot be resolved
func defaultSaveFolder() string {
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return DefaultFolderName
	}
	return filepath.Join(dir, DefaultFolderName)
}

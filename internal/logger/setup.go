package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/ytget/image-downloader/internal/config"
)

// SetupDefault installs the default slog logger writing to stderr
func SetupDefault(cfg config.Logger) {
	slog.SetDefault(New(os.Stderr, cfg))
}

// New builds a text or JSON logger according to cfg
func New(w io.Writer, cfg config.Logger) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Plaintext {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

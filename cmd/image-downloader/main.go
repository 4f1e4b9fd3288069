package main

import (
	"log/slog"
	"net/http"
	"time"

	"fyne.io/fyne/v2/app"

	"github.com/ytget/image-downloader/internal/compress"
	"github.com/ytget/image-downloader/internal/config"
	"github.com/ytget/image-downloader/internal/download"
	"github.com/ytget/image-downloader/internal/logger"
	"github.com/ytget/image-downloader/internal/model"
	"github.com/ytget/image-downloader/internal/state"
	"github.com/ytget/image-downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	settings, err := config.Load()
	logger.SetupDefault(settings.Logger)
	if err != nil {
		// defaults stand in for the invalid values
		slog.Warn("invalid configuration", "error", err)
	}
	slog.Info("image downloader starting", "version", version, "folder", settings.SaveFolder)

	myApp := app.NewWithID(ui.AppID)

	session := state.NewSession(settings.SaveFolder)
	client := download.NewClient(&http.Client{Timeout: settings.HTTPTimeout}, settings.MaxImageBytes)
	downloadSvc := download.NewService(client, compress.NewService(settings.MaxDimension, settings.MaxPixels), session)
	downloadSvc.SetAutoReveal(settings.AutoReveal)
	downloadSvc.SetUpdateCallback(func(job *model.DownloadJob) {
		if !job.Status.IsFinished() {
			slog.Debug("job updated", "job", job.ID, "status", job.Status, "progress", job.Progress)
			return
		}
		slog.Info("job finished",
			"job", job.ID,
			"name", job.GetDisplayName(),
			"status", job.Status,
			"elapsed", job.Elapsed(time.Now()))
	})

	localization := ui.NewLocalization()
	localization.SetLanguage(settings.Language)
	if _, ok := localization.GetAvailableLanguages()[settings.Language]; !ok && settings.Language != config.DefaultLanguage {
		slog.Warn("unsupported language", "language", settings.Language)
	}
	slog.Debug("ui language", "language", localization.GetCurrentLanguage())

	launcher := ui.NewLauncher(myApp, session, downloadSvc, localization)
	launcher.Register()
	launcher.ShowWindow()

	myApp.Run()
}

package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	AppIcon = "image-downloader.png"
)

// LoadAppIcon loads the icon shipped next to the binary, falling back to the
// theme's download icon
func LoadAppIcon() fyne.Resource {
	if res, err := fyne.LoadResourceFromPath(AppIcon); err == nil {
		return res
	}
	return theme.DownloadIcon()
}

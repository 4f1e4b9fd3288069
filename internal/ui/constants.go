package ui

import "time"

// Window and menu registration
const (
	AppID        = "com.ytget.image-downloader"
	WindowWidth  = 560
	WindowHeight = 420
)

// IconInfo prefixes the usage hint
const IconInfo = "📖"

// Render loop
const (
	// RenderInterval is how often the window redraws while a toast is visible
	RenderInterval = 100 * time.Millisecond
)

// Layout sizing
const SavedListMinHeight float32 = 120

package ui

// Package ui contains the Fyne-based tool window. It renders the session
// state (folder, URL, progress, toast), forwards the trigger to the download
// service and registers the window in the app menu and system tray. UI labels
// are localized via Localization.

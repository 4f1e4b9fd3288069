package ui

import (
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/ytget/image-downloader/internal/download"
	"github.com/ytget/image-downloader/internal/state"
)

// Launcher owns the single tool window and the entry points that open it
type Launcher struct {
	app          fyne.App
	session      *state.Session
	downloadSvc  download.Downloader
	localization *Localization

	mu     sync.Mutex
	window fyne.Window
	root   *RootUI
	tray   bool
}

// NewLauncher creates a launcher; no window is created until ShowWindow
func NewLauncher(app fyne.App, session *state.Session, downloadSvc download.Downloader, localization *Localization) *Launcher {
	return &Launcher{
		app:          app,
		session:      session,
		downloadSvc:  downloadSvc,
		localization: localization,
	}
}

// Register installs the system tray menu when the driver supports one.
// Reports whether a tray was installed.
func (l *Launcher) Register() bool {
	desk, ok := l.app.(desktop.App)
	if !ok {
		return false
	}

	desk.SetSystemTrayMenu(l.trayMenu())
	desk.SetSystemTrayIcon(LoadAppIcon())

	l.mu.Lock()
	l.tray = true
	l.mu.Unlock()

	slog.Debug("system tray registered")
	return true
}

// ShowWindow opens the tool window, or shows and focuses it when it already exists
func (l *Launcher) ShowWindow() fyne.Window {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.window != nil {
		l.window.Show()
		l.window.RequestFocus()
		return l.window
	}

	w := l.app.NewWindow(l.localization.GetText(KeyAppTitle))
	w.SetIcon(LoadAppIcon())
	w.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	w.SetMainMenu(l.mainMenu())

	l.root = NewRootUI(w, l.session, l.downloadSvc, l.localization)
	l.root.StartRenderLoop()

	if l.tray {
		w.SetCloseIntercept(w.Hide)
	} else {
		w.SetOnClosed(l.onClosed)
	}

	l.window = w
	w.Show()
	slog.Info("tool window opened")
	return w
}

// Root returns the window content, nil until ShowWindow is called
func (l *Launcher) Root() *RootUI {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.root
}

func (l *Launcher) mainMenu() *fyne.MainMenu {
	tools := fyne.NewMenu(l.localization.GetText(KeyTools),
		fyne.NewMenuItem(l.localization.GetText(KeyToolMenuItem), func() {
			l.ShowWindow()
		}),
	)
	return fyne.NewMainMenu(tools)
}

func (l *Launcher) trayMenu() *fyne.Menu {
	return fyne.NewMenu(l.localization.GetText(KeyAppTitle),
		fyne.NewMenuItem(l.localization.GetText(KeyShowWindow), func() {
			l.ShowWindow()
		}),
	)
}

func (l *Launcher) onClosed() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.root != nil {
		l.root.StopRenderLoop()
	}
	l.window = nil
	l.root = nil
}

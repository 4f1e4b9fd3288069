package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/image-downloader/internal/download"
	"github.com/ytget/image-downloader/internal/platform"
	"github.com/ytget/image-downloader/internal/state"
)

// RootUI represents the tool window content
type RootUI struct {
	window       fyne.Window
	session      *state.Session
	downloadSvc  download.Downloader
	localization *Localization

	folderEntry *widget.Entry
	browseBtn   *widget.Button
	urlEntry    *widget.Entry
	downloadBtn *widget.Button
	progressBar *widget.ProgressBar

	// Toast panel
	toastLabel     *widget.Label
	toastContainer *fyne.Container

	// Saved images, refreshed after each written file
	savedList   *widget.List
	savedEmpty  *widget.Label
	savedImages []string
	savedMutex  sync.Mutex

	stopRender chan struct{}
	stopOnce   sync.Once
}

// NewRootUI creates the window content and wires it to the session and the download service
func NewRootUI(window fyne.Window, session *state.Session, downloadSvc download.Downloader, localization *Localization) *RootUI {
	ui := &RootUI{
		window:       window,
		session:      session,
		downloadSvc:  downloadSvc,
		localization: localization,
		stopRender:   make(chan struct{}),
	}

	ui.setupUI()

	session.OnChange(ui.requestRender)
	downloadSvc.SetRefreshHook(ui.refreshSavedImages)

	ui.refreshSavedImages()
	ui.render()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	l := ui.localization

	ui.toastLabel = widget.NewLabel("")
	ui.toastLabel.Wrapping = fyne.TextWrapWord
	ui.toastContainer = container.NewPadded(widget.NewCard("", "", ui.toastLabel))
	ui.toastContainer.Hide()

	guide := widget.NewLabel(IconInfo + " " + l.GetText(KeyGuide))
	guide.Wrapping = fyne.TextWrapWord

	ui.folderEntry = widget.NewEntry()
	ui.folderEntry.SetText(ui.session.Folder())
	ui.folderEntry.OnChanged = func(text string) {
		ui.session.SetFolder(strings.TrimSpace(text))
		ui.refreshSavedImages()
	}
	ui.browseBtn = widget.NewButtonWithIcon(l.GetText(KeySelectFolder), theme.FolderOpenIcon(), ui.onBrowseFolder)

	folderLabel := widget.NewLabel(l.GetText(KeySaveFolder))
	folderRow := container.NewBorder(nil, nil, folderLabel, ui.browseBtn, ui.folderEntry)

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.urlEntry.OnChanged = ui.session.SetURL
	// Trigger download when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}
	urlRow := container.NewBorder(nil, nil, widget.NewLabel(l.GetText(KeyImageURL)), nil, ui.urlEntry)

	ui.downloadBtn = widget.NewButtonWithIcon(l.GetText(KeyDownloadImport), theme.DownloadIcon(), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.TextFormatter = func() string {
		return fmt.Sprintf(l.GetText(KeyProgressFormat), int(ui.progressBar.Value*100+0.5))
	}
	ui.progressBar.Hide()

	ui.savedList = widget.NewList(
		func() int {
			ui.savedMutex.Lock()
			defer ui.savedMutex.Unlock()
			return len(ui.savedImages)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			ui.savedMutex.Lock()
			defer ui.savedMutex.Unlock()
			if id < len(ui.savedImages) {
				obj.(*widget.Label).SetText(ui.savedImages[id])
			}
		},
	)
	ui.savedEmpty = widget.NewLabel(l.GetText(KeyNoSavedImages))
	savedScroll := container.NewVScroll(ui.savedList)
	savedScroll.SetMinSize(fyne.NewSize(0, SavedListMinHeight))

	top := container.NewVBox(
		ui.toastContainer,
		guide,
		widget.NewSeparator(),
		folderRow,
		urlRow,
		ui.downloadBtn,
		ui.progressBar,
		widget.NewLabelWithStyle(l.GetText(KeySavedImages), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		ui.savedEmpty,
	)

	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, savedScroll))
}

// onBrowseFolder shows the folder picker; cancelling keeps the current folder
func (ui *RootUI) onBrowseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.folderEntry.SetText(uri.Path())
	}, ui.window)
}

// onDownloadClick handles the download button click
func (ui *RootUI) onDownloadClick() {
	url := strings.TrimSpace(ui.urlEntry.Text)
	if url == "" {
		ui.session.SetToast(download.MsgEnterURL)
		return
	}

	folder := strings.TrimSpace(ui.folderEntry.Text)
	ui.session.SetURL(url)
	ui.session.SetFolder(folder)

	job, err := ui.downloadSvc.Start(url, folder)
	switch {
	case err == nil:
		slog.Info("download triggered", "job", job.ID, "url", url, "folder", folder)
	case errors.Is(err, download.ErrJobInProgress), errors.Is(err, download.ErrEmptyURL):
		// the service already reported it in the toast
		slog.Debug("download rejected", "error", err)
	default:
		ui.session.SetToast(err.Error())
	}
}

// refreshSavedImages re-reads the destination folder; used as the refresh hook
func (ui *RootUI) refreshSavedImages() {
	names, err := platform.ListImages(ui.session.Folder())
	if err != nil {
		slog.Warn(ui.localization.GetText(KeyErrorListFolder), "folder", ui.session.Folder(), "error", err)
	}

	ui.savedMutex.Lock()
	ui.savedImages = names
	ui.savedMutex.Unlock()

	fyne.Do(func() {
		if len(names) == 0 {
			ui.savedEmpty.Show()
		} else {
			ui.savedEmpty.Hide()
		}
		ui.savedList.Refresh()
	})
}

// SavedImages returns the names currently listed
func (ui *RootUI) SavedImages() []string {
	ui.savedMutex.Lock()
	defer ui.savedMutex.Unlock()
	return append([]string(nil), ui.savedImages...)
}

// requestRender schedules a redraw on the UI thread
func (ui *RootUI) requestRender() {
	fyne.Do(ui.render)
}

// render applies the session snapshot to the widgets. Must run on the UI thread.
func (ui *RootUI) render() {
	snap := ui.session.Snapshot()

	if snap.ProgressVisible {
		ui.progressBar.SetValue(snap.Progress)
		ui.progressBar.Show()
	} else {
		ui.progressBar.Hide()
	}

	if snap.Toast != "" {
		ui.toastLabel.SetText(snap.Toast)
		ui.toastContainer.Show()
	} else if ui.toastContainer.Visible() {
		ui.toastLabel.SetText("")
		ui.toastContainer.Hide()
	}
}

// tick redraws while a toast is shown so it can expire. Must run on the UI thread.
func (ui *RootUI) tick() {
	if ui.toastContainer.Visible() || ui.session.ToastActive() {
		ui.render()
	}
}

// StartRenderLoop drives tick every RenderInterval until StopRenderLoop
func (ui *RootUI) StartRenderLoop() {
	go func() {
		ticker := time.NewTicker(RenderInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fyne.Do(ui.tick)
			case <-ui.stopRender:
				return
			}
		}
	}()
}

// StopRenderLoop stops the render ticker
func (ui *RootUI) StopRenderLoop() {
	ui.stopOnce.Do(func() {
		close(ui.stopRender)
	})
}

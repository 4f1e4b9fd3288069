package download

import (
	"github.com/ytget/image-downloader/internal/model"
)

// Downloader defines the interface the window uses to trigger the pipeline.
type Downloader interface {
	// Start launches the pipeline without blocking and returns a copy of the new job
	Start(url, folder string) (*model.DownloadJob, error)

	// Current returns a copy of the job in flight, if any
	Current() (*model.DownloadJob, bool)

	// SetUpdateCallback sets the function receiving a copy of the job on every status or progress change
	SetUpdateCallback(func(*model.DownloadJob))

	// SetRefreshHook sets the function called once after each successfully written file
	SetRefreshHook(func())
}

package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/image-downloader/internal/compress"
	"github.com/ytget/image-downloader/internal/logger"
	"github.com/ytget/image-downloader/internal/model"
	"github.com/ytget/image-downloader/internal/platform"
	"github.com/ytget/image-downloader/internal/state"
)

// Pipeline timing
const (
	DefaultPollInterval = 50 * time.Millisecond
	DefaultHoldDelay    = 2000 * time.Millisecond

	// DownloadShare is the part of the progress bar covered by the transfer
	DownloadShare = 0.5

	JobIDPrefix = "job-"
)

// Toast texts
const (
	MsgEnterURL               = "Please enter a valid Image URL"
	MsgDownloading            = "Downloading image..."
	MsgJobInProgress          = "A download is already in progress"
	MsgDownloadFailedPrefix   = "Download Failed: "
	MsgProcessingFailedPrefix = "Processing Failed: "
)

var (
	ErrEmptyURL      = errors.New("empty url")
	ErrJobInProgress = errors.New("download already in progress")
)

// Service runs the download-compress-save pipeline, one job at a time
type Service struct {
	client  *Client
	codec   compress.Compressor
	session *state.Session

	pollInterval time.Duration
	holdDelay    time.Duration
	autoReveal   bool

	mu       sync.Mutex
	current  *model.DownloadJob
	onUpdate func(*model.DownloadJob) // callback for UI updates
	refresh  func()                   // called after each written file
}

// NewService creates a new pipeline service writing its progress and toasts to session
func NewService(client *Client, codec compress.Compressor, session *state.Session) *Service {
	return &Service{
		client:       client,
		codec:        codec,
		session:      session,
		pollInterval: DefaultPollInterval,
		holdDelay:    DefaultHoldDelay,
	}
}

// SetUpdateCallback sets the callback function for job updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadJob)) {
	s.mu.Lock()
	s.onUpdate = callback
	s.mu.Unlock()
}

// SetRefreshHook sets the function called once after each successful write
func (s *Service) SetRefreshHook(hook func()) {
	s.mu.Lock()
	s.refresh = hook
	s.mu.Unlock()
}

// SetAutoReveal enables revealing written files in the file manager
func (s *Service) SetAutoReveal(autoReveal bool) {
	s.autoReveal = autoReveal
}

// SetTimings overrides the transfer poll interval and the post-success hold
func (s *Service) SetTimings(pollInterval, holdDelay time.Duration) {
	if pollInterval > 0 {
		s.pollInterval = pollInterval
	}
	if holdDelay >= 0 {
		s.holdDelay = holdDelay
	}
}

// Current returns a copy of the job in flight
func (s *Service) Current() (*model.DownloadJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, false
	}
	job := *s.current
	return &job, true
}

// Start validates the URL and launches the pipeline in the background.
// Only one job runs at a time; a second call while one is in flight,
// including its post-success hold, is rejected.
func (s *Service) Start(url, folder string) (*model.DownloadJob, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		s.session.SetToast(MsgEnterURL)
		return nil, ErrEmptyURL
	}

	s.mu.Lock()
	if s.current != nil {
		s.mu.Unlock()
		s.session.SetToast(MsgJobInProgress)
		return nil, ErrJobInProgress
	}
	job := &model.DownloadJob{
		ID:        generateJobID(),
		URL:       url,
		Folder:    folder,
		Status:    model.TaskStatusPending,
		StartedAt: time.Now(),
	}
	s.current = job
	snapshot := *job
	s.mu.Unlock()

	ctx := logger.Context(context.Background(), slog.With("job", job.ID))
	go func() {
		if err := s.Run(ctx, job); err != nil {
			logger.FromContext(ctx).Debug("job finished with error", "error", err)
		}
	}()

	return &snapshot, nil
}

// Run executes the pipeline for job synchronously
func (s *Service) Run(ctx context.Context, job *model.DownloadJob) error {
	log := logger.FromContext(ctx).With("op", "run", "url", job.URL)
	defer s.release(job)

	if err := platform.CreateDirectoryIfNotExists(job.Folder); err != nil {
		return s.fail(log, job, MsgProcessingFailedPrefix, err)
	}

	s.setProgress(job, 0)
	s.session.SetToast(MsgDownloading)
	s.setStatus(job, model.TaskStatusDownloading)
	log.Info("download started", "folder", job.Folder)

	data, err := s.transfer(ctx, job)
	if err != nil {
		return s.fail(log, job, MsgDownloadFailedPrefix, err)
	}
	s.setProgress(job, DownloadShare)

	s.setStatus(job, model.TaskStatusEncoding)
	result, err := s.codec.Compress(data)
	if err != nil {
		return s.fail(log, job, MsgProcessingFailedPrefix, err)
	}

	outputPath := platform.OutputPath(job.Folder, job.URL)
	if err := platform.WriteFile(outputPath, result.JPEG); err != nil {
		return s.fail(log, job, MsgProcessingFailedPrefix, err)
	}

	s.mu.Lock()
	job.OutputPath = outputPath
	job.Sizes = result.Sizes
	refresh := s.refresh
	s.mu.Unlock()

	s.setProgress(job, 1)
	if refresh != nil {
		refresh()
	}

	s.session.SetToast(SuccessMessage(result.Sizes))
	s.setStatus(job, model.TaskStatusCompleted)
	log.Info("image saved",
		"path", outputPath,
		"originalKB", result.Sizes.OriginalKB(),
		"compressedKB", result.Sizes.CompressedKB(),
		"reduction", result.Sizes.ReductionString())

	if s.autoReveal {
		if err := platform.OpenFileInManager(outputPath); err != nil {
			log.Warn("reveal failed", "error", err)
		}
	}

	select {
	case <-time.After(s.holdDelay):
	case <-ctx.Done():
	}
	s.setProgress(job, 0)
	return nil
}

// transfer starts the GET and mirrors its fraction onto the first half of
// the progress bar until it finishes
func (s *Service) transfer(ctx context.Context, job *model.DownloadJob) ([]byte, error) {
	t := s.client.Start(ctx, job.URL)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-t.Done():
			return t.Result()
		case <-ticker.C:
			s.setProgress(job, t.Progress()*DownloadShare)
		}
	}
}

// SuccessMessage formats the toast shown after a file was written
func SuccessMessage(sizes model.SizeReport) string {
	reduction := sizes.ReductionString()
	if reduction != model.ReductionUnavailable {
		reduction += "%"
	}
	return fmt.Sprintf("Image optimized!\nOriginal: %d KB, Compressed: %d KB, Reduced: %s",
		sizes.OriginalKB(), sizes.CompressedKB(), reduction)
}

// fail surfaces err in a toast, resets progress and marks the job failed
func (s *Service) fail(log *slog.Logger, job *model.DownloadJob, prefix string, err error) error {
	log.Warn("job failed", "error", err)
	s.session.SetToast(prefix + err.Error())
	s.setProgress(job, 0)

	s.mu.Lock()
	job.LastError = err.Error()
	s.mu.Unlock()
	s.setStatus(job, model.TaskStatusError)
	return err
}

// release frees the single-flight slot held by job
func (s *Service) release(job *model.DownloadJob) {
	s.mu.Lock()
	if s.current == job {
		s.current = nil
	}
	s.mu.Unlock()
}

func (s *Service) setProgress(job *model.DownloadJob, progress float64) {
	s.mu.Lock()
	job.Progress = progress
	s.mu.Unlock()

	s.session.SetProgress(progress)
	s.notifyUpdate(job)
}

func (s *Service) setStatus(job *model.DownloadJob, status model.TaskStatus) {
	s.mu.Lock()
	job.Status = status
	if status.IsFinished() {
		job.FinishedAt = time.Now()
	}
	s.mu.Unlock()

	s.notifyUpdate(job)
}

// notifyUpdate calls the update callback with a copy of job
func (s *Service) notifyUpdate(job *model.DownloadJob) {
	s.mu.Lock()
	callback := s.onUpdate
	snapshot := *job
	s.mu.Unlock()

	if callback != nil {
		callback(&snapshot)
	}
}

// generateJobID generates a unique, time-ordered job ID
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}

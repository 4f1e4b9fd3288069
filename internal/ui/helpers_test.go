package ui

import (
	"sync"
	"time"

	"github.com/ytget/image-downloader/internal/download"
	"github.com/ytget/image-downloader/internal/model"
)

// fakeDownloader records Start calls instead of running the pipeline
type fakeDownloader struct {
	mu      sync.Mutex
	calls   []startCall
	err     error
	refresh func()
}

type startCall struct {
	url    string
	folder string
}

var _ download.Downloader = (*fakeDownloader)(nil)

func (f *fakeDownloader) Start(url, folder string) (*model.DownloadJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, startCall{url: url, folder: folder})
	if f.err != nil {
		return nil, f.err
	}
	return &model.DownloadJob{ID: "job-test", URL: url, Folder: folder, Status: model.TaskStatusPending}, nil
}

func (f *fakeDownloader) Current() (*model.DownloadJob, bool) {
	return nil, false
}

func (f *fakeDownloader) SetUpdateCallback(func(*model.DownloadJob)) {}

func (f *fakeDownloader) SetRefreshHook(hook func()) {
	f.mu.Lock()
	f.refresh = hook
	f.mu.Unlock()
}

func (f *fakeDownloader) Calls() []startCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]startCall(nil), f.calls...)
}

func (f *fakeDownloader) Refresh() {
	f.mu.Lock()
	hook := f.refresh
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// fakeClock is advanced manually by tests
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

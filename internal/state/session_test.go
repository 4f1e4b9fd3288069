package state

import (
	"sync"
	"testing"
	"time"

	"github.com/nalgeon/be"
)

// fakeClock is advanced manually by tests
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
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

func newTestSession() (*Session, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewSession("/tmp/images", WithClock(clock.Now)), clock
}

func TestToastExpiry(t *testing.T) {
	s, clock := newTestSession()

	s.SetToast("Downloading image...")
	be.Equal(t, s.Toast(), "Downloading image...")

	clock.Advance(ToastDuration - time.Millisecond)
	be.Equal(t, s.Toast(), "Downloading image...")
	be.True(t, s.ToastActive())

	clock.Advance(time.Millisecond)
	be.Equal(t, s.Toast(), "")
	be.True(t, !s.ToastActive())
}

func TestToastOverwriteRestartsTimer(t *testing.T) {
	s, clock := newTestSession()

	s.SetToast("first")
	clock.Advance(2 * time.Second)
	s.SetToast("second")
	clock.Advance(2 * time.Second)

	be.Equal(t, s.Toast(), "second")

	clock.Advance(500 * time.Millisecond)
	be.Equal(t, s.Toast(), "")
}

func TestProgressVisibility(t *testing.T) {
	tests := []struct {
		progress float64
		stored   float64
		visible  bool
	}{
		{-0.5, 0, false},
		{0, 0, false},
		{0.01, 0.01, true},
		{0.5, 0.5, true},
		{0.99, 0.99, true},
		{1, 1, false},
		{1.5, 1, false},
	}

	s, _ := newTestSession()
	for _, test := range tests {
		s.SetProgress(test.progress)
		be.Equal(t, s.Progress(), test.stored)
		be.Equal(t, s.ProgressVisible(), test.visible)
	}
}

func TestSnapshot(t *testing.T) {
	s, clock := newTestSession()
	s.SetURL("http://example.com/img.png")
	s.SetProgress(0.25)
	s.SetToast("hello")

	snap := s.Snapshot()
	be.Equal(t, snap.URL, "http://example.com/img.png")
	be.Equal(t, snap.Folder, "/tmp/images")
	be.Equal(t, snap.Progress, 0.25)
	be.True(t, snap.ProgressVisible)
	be.Equal(t, snap.Toast, "hello")

	clock.Advance(ToastDuration)
	be.Equal(t, s.Snapshot().Toast, "")
}

func TestOnChange(t *testing.T) {
	s, _ := newTestSession()

	calls := 0
	s.OnChange(func() { calls++ })

	s.SetProgress(0.5)
	s.SetToast("x")
	s.SetURL("ignored by callback")

	be.Equal(t, calls, 2)
}

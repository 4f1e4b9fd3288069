// Package state holds the session state shared between the pipeline and the
// window: the form fields, the progress value and the toast. The pipeline
// writes it from its own goroutine and the renderer reads it on every tick.
package state

import (
	"sync"
	"time"
)

// ToastDuration is how long a toast stays visible after it was last set
const ToastDuration = 2500 * time.Millisecond

// Clock returns the current time
type Clock func() time.Time

// Snapshot is a consistent copy of the session used for rendering
type Snapshot struct {
	URL             string
	Folder          string
	Progress        float64
	ProgressVisible bool
	Toast           string
}

// Session is the explicit state of one tool window
type Session struct {
	mu         sync.Mutex
	url        string
	folder     string
	progress   float64
	toast      string
	toastSetAt time.Time
	now        Clock
	onChange   func()
}

// Option configures a Session
type Option func(*Session)

// WithClock replaces time.Now, used by tests to drive toast expiry
func WithClock(clock Clock) Option {
	return func(s *Session) {
		s.now = clock
	}
}

// NewSession creates a session with the given destination folder
func NewSession(folder string, opts ...Option) *Session {
	s := &Session{
		folder: folder,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange sets the callback fired after every mutation
func (s *Session) OnChange(callback func()) {
	s.mu.Lock()
	s.onChange = callback
	s.mu.Unlock()
}

// SetURL stores the URL field
func (s *Session) SetURL(url string) {
	s.mu.Lock()
	s.url = url
	s.mu.Unlock()
}

// URL returns the URL field
func (s *Session) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// SetFolder stores the destination folder field
func (s *Session) SetFolder(folder string) {
	s.mu.Lock()
	s.folder = folder
	s.mu.Unlock()
}

// Folder returns the destination folder field
func (s *Session) Folder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.folder
}

// SetProgress stores the progress value clamped to [0, 1]
func (s *Session) SetProgress(p float64) {
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	s.mu.Lock()
	s.progress = p
	s.mu.Unlock()
	s.notify()
}

// Progress returns the progress value
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// ProgressVisible reports whether the progress bar should be drawn: only
// strictly between 0 and 1.
func (s *Session) ProgressVisible() bool {
	p := s.Progress()
	return p > 0 && p < 1
}

// SetToast replaces the current toast, expired or not, and restarts its timer
func (s *Session) SetToast(message string) {
	s.mu.Lock()
	s.toast = message
	s.toastSetAt = s.now()
	s.mu.Unlock()
	s.notify()
}

// Toast returns the current toast, clearing it first if it has expired
func (s *Session) Toast() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked()
	return s.toast
}

// ToastActive reports whether a toast is still visible
func (s *Session) ToastActive() bool {
	return s.Toast() != ""
}

// Snapshot returns a consistent copy for the renderer
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked()
	return Snapshot{
		URL:             s.url,
		Folder:          s.folder,
		Progress:        s.progress,
		ProgressVisible: s.progress > 0 && s.progress < 1,
		Toast:           s.toast,
	}
}

func (s *Session) expireLocked() {
	if s.toast != "" && s.now().Sub(s.toastSetAt) >= ToastDuration {
		s.toast = ""
	}
}

func (s *Session) notify() {
	s.mu.Lock()
	callback := s.onChange
	s.mu.Unlock()
	if callback != nil {
		callback()
	}
}

package model

import (
	"strings"
	"time"
)

// DownloadJob represents a single download-compress-save run
type DownloadJob struct {
	ID         string
	URL        string
	Folder     string     // destination folder
	Status     TaskStatus
	Progress   float64    // 0.0 to 1.0
	OutputPath string     // path to written .jpg file
	Sizes      SizeReport // filled once the image is re-encoded
	LastError  string     // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetDisplayName returns the output file name, or the URL when nothing was written yet
func (j *DownloadJob) GetDisplayName() string {
	if j.OutputPath != "" {
		parts := strings.FieldsFunc(j.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}
	return j.URL
}

// Elapsed returns how long the job ran, or has been running so far
func (j *DownloadJob) Elapsed(now time.Time) time.Duration {
	if j.StartedAt.IsZero() {
		return 0
	}
	if !j.FinishedAt.IsZero() {
		return j.FinishedAt.Sub(j.StartedAt)
	}
	return now.Sub(j.StartedAt)
}

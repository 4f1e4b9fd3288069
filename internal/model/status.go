package model

// TaskStatus represents the status of a download job
type TaskStatus string

const (
	// TaskStatusPending means the job is created but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusDownloading means the transfer is in progress
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusEncoding means the payload is being decoded, re-encoded and written
	TaskStatusEncoding TaskStatus = "Encoding"

	// TaskStatusCompleted means the file was written successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the job failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the job is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusDownloading || ts == TaskStatusEncoding
}

// IsFinished returns true if the job is in a finished state (completed or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}

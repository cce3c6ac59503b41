package model

// TaskStatus represents the status of a download job
type TaskStatus string

const (
	// TaskStatusPending means the job is built but the runner has not picked it up
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusStarting means the runner is preparing the first command
	TaskStatusStarting TaskStatus = "Starting"

	// TaskStatusDownloading means a child process is running
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusStopping means cancellation was requested and the child is being stopped
	TaskStatusStopping TaskStatus = "Stopping"

	// TaskStatusStopped means the job was stopped by user
	TaskStatusStopped TaskStatus = "Stopped"

	// TaskStatusCompleted means every URL was attempted; individual URLs may still have failed
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the job aborted on an internal error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the job is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusStarting || ts == TaskStatusDownloading || ts == TaskStatusStopping
}

// IsFinished returns true if the job is in a finished state (completed, stopped, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusStopped || ts == TaskStatusError
}

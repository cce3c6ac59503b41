package download

import (
	"context"

	"github.com/ytget/ytdlp-gui/internal/model"
)

// Listener receives asynchronous notifications from a running job.
// Calls arrive from the runner's goroutines; implementations that touch UI
// state must hop to the UI thread themselves.
type Listener interface {
	// OnOutput receives raw output chunks and runner status lines
	OnOutput(text string)
	// OnProgress receives 0-100 values parsed from "[download] NN.N%" lines
	OnProgress(percent int)
	// OnError reports a per-URL failure or an internal error
	OnError(message string)
	// OnFinished is delivered exactly once when the job ends for any reason
	OnFinished()
}

// JobRunner defines the interface for the job runner.
type JobRunner interface {
	Run(ctx context.Context, req model.JobRequest, listener Listener) error
	Stop()
	State() model.JobState
}

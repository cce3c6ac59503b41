package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobIDPrefix is prepended to every generated job ID
const JobIDPrefix = "job-"

// ErrNoURLs is returned when a job request has nothing to download
var ErrNoURLs = errors.New("no URLs to download")

// JobRequest is an ordered URL list plus one option set, submitted as a unit
type JobRequest struct {
	ID      string
	URLs    []string
	Options JobOptions
}

// NewJobRequest trims the URL list, drops blank entries and normalizes options
func NewJobRequest(urls []string, opts JobOptions) (JobRequest, error) {
	cleaned := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		cleaned = append(cleaned, u)
	}
	if len(cleaned) == 0 {
		return JobRequest{}, ErrNoURLs
	}

	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return JobRequest{}, fmt.Errorf("invalid job options: %w", err)
	}

	return JobRequest{
		ID:      generateJobID(),
		URLs:    cleaned,
		Options: opts,
	}, nil
}

// JobState is the runner-owned execution state of one job.
// The UI only ever sees copies.
type JobState struct {
	JobID      string
	Status     TaskStatus
	Index      int // 0-based index of the URL being processed, -1 before the first
	Total      int
	Cancelled  bool
	Percent    int // last reported percentage for the current URL
	Completed  int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewJobState returns the initial state for a request
func NewJobState(req JobRequest) JobState {
	return JobState{
		JobID:     req.ID,
		Status:    TaskStatusPending,
		Index:     -1,
		Total:     len(req.URLs),
		StartedAt: time.Now(),
	}
}

// Current returns the 1-based position of the URL being processed
func (s JobState) Current() int {
	return s.Index + 1
}

// OverallPercent folds the per-URL percentage into a whole-job value
func (s JobState) OverallPercent() int {
	if s.Total == 0 {
		return 0
	}
	if s.Status == TaskStatusCompleted {
		return 100
	}
	done := s.Completed + s.Failed
	p := (done*100 + s.Percent) / s.Total
	return min(max(p, 0), 100)
}

// generateJobID uses UUID v7 so IDs sort chronologically
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}

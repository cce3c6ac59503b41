package download

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alessio/shellescape"

	"github.com/ytget/ytdlp-gui/internal/model"
)

// Runner defaults
const (
	DefaultBinary      = "yt-dlp"
	DefaultGracePeriod = 5 * time.Second
)

// Scanner buffer limits for child output
const (
	initialLineBuffer = 64 * 1024
	maxLineBuffer     = 1024 * 1024
)

// Log messages sent to the listener
const (
	MsgDownloading   = "\nDownloading %d/%d: %s\n"
	MsgCommand       = "Command: %s\n"
	MsgCompleted     = "\nCompleted: %s\n"
	MsgStopped       = "Stopped: %s\n"
	MsgCancelled     = "\nDownload cancelled by user\n"
	MsgAllCompleted  = "\nAll downloads completed!\n"
	MsgExitFailure   = "Download failed for %s with exit code: %d"
	MsgStartFailure  = "Download failed for %s: %v"
	MsgInternalError = "Error: %v"
)

// ErrInternal marks a job that aborted on an unexpected panic
var ErrInternal = errors.New("internal runner error")

// commandFunc creates the child process; replaced in tests
type commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Runner executes the URLs of a job one at a time through yt-dlp
type Runner struct {
	binary      string
	gracePeriod time.Duration
	newCommand  commandFunc

	cancelled atomic.Bool

	mu          sync.RWMutex
	state       model.JobState
	cancelChild context.CancelFunc
}

var _ JobRunner = (*Runner)(nil)

// NewRunner creates a runner that invokes yt-dlp from the search path
func NewRunner() *Runner {
	return &Runner{
		binary:      DefaultBinary,
		gracePeriod: DefaultGracePeriod,
		newCommand:  exec.CommandContext,
		state:       model.JobState{Index: -1},
	}
}

// SetBinary overrides the yt-dlp executable name or path
func (r *Runner) SetBinary(binary string) {
	if binary != "" {
		r.binary = binary
	}
}

// SetGracePeriod sets how long a child may take to exit after the terminate signal
func (r *Runner) SetGracePeriod(d time.Duration) {
	if d > 0 {
		r.gracePeriod = d
	}
}

// State returns a snapshot of the current job execution state
func (r *Runner) State() model.JobState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Stop requests cancellation: no further URL is started and the running child
// is asked to terminate, then killed after the grace period.
func (r *Runner) Stop() {
	r.cancelled.Store(true)

	r.mu.Lock()
	r.state.Cancelled = true
	if r.state.Status.IsActive() {
		r.state.Status = model.TaskStatusStopping
	}
	cancel := r.cancelChild
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Run executes the job synchronously. Per-URL failures are reported to the
// listener and do not abort the job; only a recovered panic yields an error.
func (r *Runner) Run(ctx context.Context, req model.JobRequest, listener Listener) (err error) {
	r.cancelled.Store(false)
	r.mu.Lock()
	r.state = model.NewJobState(req)
	r.state.Status = model.TaskStatusStarting
	r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			log.Printf("Job %s aborted: %v", req.ID, p)
			err = fmt.Errorf("%w: %v", ErrInternal, p)
			r.finish(model.TaskStatusError)
			safeNotify(func() { listener.OnError(fmt.Sprintf(MsgInternalError, p)) })
		}
		safeNotify(listener.OnFinished)
	}()

	opts := req.Options.Normalize()
	total := len(req.URLs)
	log.Printf("Job %s started: %d URL(s)", req.ID, total)

	for i, url := range req.URLs {
		if r.isCancelled(ctx) {
			break
		}

		r.beginURL(i)
		listener.OnOutput(fmt.Sprintf(MsgDownloading, i+1, total, url))

		args := BuildArgs(opts, url)
		cmdline := append([]string{r.binary}, args...)
		listener.OnOutput(fmt.Sprintf(MsgCommand, shellescape.QuoteCommand(cmdline)))

		exitCode, runErr := r.runOne(ctx, args, listener)

		switch {
		case r.isCancelled(ctx):
			listener.OnOutput(fmt.Sprintf(MsgStopped, url))
		case runErr != nil:
			log.Printf("Job %s: %s failed to start: %v", req.ID, url, runErr)
			r.endURL(false)
			listener.OnError(fmt.Sprintf(MsgStartFailure, url, runErr))
		case exitCode != 0:
			log.Printf("Job %s: %s exited with code %d", req.ID, url, exitCode)
			r.endURL(false)
			listener.OnError(fmt.Sprintf(MsgExitFailure, url, exitCode))
		default:
			r.endURL(true)
			listener.OnOutput(fmt.Sprintf(MsgCompleted, url))
		}
	}

	if r.isCancelled(ctx) {
		r.finish(model.TaskStatusStopped)
		listener.OnOutput(MsgCancelled)
	} else {
		r.finish(model.TaskStatusCompleted)
		listener.OnOutput(MsgAllCompleted)
	}

	state := r.State()
	log.Printf("Job %s finished: status=%s completed=%d failed=%d", req.ID, state.Status, state.Completed, state.Failed)
	return nil
}

// runOne runs a single child process to completion and returns its exit code.
// A non-nil error means the process could not be started.
func (r *Runner) runOne(ctx context.Context, args []string, listener Listener) (int, error) {
	childCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !r.attachChild(cancel) {
		return -1, context.Canceled
	}
	defer r.detachChild()

	// stdout and stderr share one pipe so lines keep their relative order
	pr, pw, err := os.Pipe()
	if err != nil {
		return -1, fmt.Errorf("failed to create output pipe: %w", err)
	}
	defer pr.Close()

	cmd := r.newCommand(childCtx, r.binary, args...)
	cmd.Stdout = pw
	cmd.Stderr = pw
	cmd.Cancel = func() error { return terminate(cmd.Process) }
	cmd.WaitDelay = r.gracePeriod

	if err := cmd.Start(); err != nil {
		pw.Close()
		return -1, fmt.Errorf("failed to start %s: %w", r.binary, err)
	}
	pw.Close()

	done := make(chan any, 1)
	go func() {
		done <- r.pumpOutput(pr, listener, cancel)
	}()

	waitErr := cmd.Wait()

	var panicked any
	select {
	case panicked = <-done:
	case <-time.After(r.gracePeriod):
		// a grandchild (ffmpeg) may still hold the write end
		pr.Close()
		panicked = <-done
	}
	if panicked != nil {
		panic(panicked)
	}

	// Wait may report context or WaitDelay errors for a process that did
	// exit; the exit status is what decides success.
	if cmd.ProcessState == nil {
		return -1, waitErr
	}
	return cmd.ProcessState.ExitCode(), nil
}

// pumpOutput forwards child output line by line and emits progress updates.
// A panicking listener aborts the child; the panic value is handed back to Run.
func (r *Runner) pumpOutput(rd io.Reader, listener Listener, abort context.CancelFunc) (panicked any) {
	defer func() {
		if p := recover(); p != nil {
			panicked = p
			abort()
			_, _ = io.Copy(io.Discard, rd)
		}
	}()

	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, initialLineBuffer), maxLineBuffer)
	scanner.Split(scanOutputLines)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		listener.OnOutput(line + "\n")

		if percent, ok := ParseProgress(line); ok {
			r.mu.Lock()
			r.state.Percent = percent
			r.mu.Unlock()
			listener.OnProgress(percent)
		}
	}
	return nil
}

// isCancelled reports whether Stop was called or the parent context ended
func (r *Runner) isCancelled(ctx context.Context) bool {
	if ctx.Err() != nil && !r.cancelled.Load() {
		r.cancelled.Store(true)
		r.mu.Lock()
		r.state.Cancelled = true
		r.mu.Unlock()
	}
	return r.cancelled.Load()
}

// attachChild registers the cancel func for the in-flight child.
// It returns false when cancellation already happened.
func (r *Runner) attachChild(cancel context.CancelFunc) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelled.Load() {
		return false
	}
	r.cancelChild = cancel
	return true
}

func (r *Runner) detachChild() {
	r.mu.Lock()
	r.cancelChild = nil
	r.mu.Unlock()
}

func (r *Runner) beginURL(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Index = index
	r.state.Percent = 0
	if !r.state.Cancelled {
		r.state.Status = model.TaskStatusDownloading
	}
}

func (r *Runner) endURL(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ok {
		r.state.Completed++
		r.state.Percent = 100
	} else {
		r.state.Failed++
	}
}

func (r *Runner) finish(status model.TaskStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Status = status
	r.state.FinishedAt = time.Now()
	r.cancelChild = nil
}

// safeNotify shields the finishing path from a misbehaving listener
func safeNotify(fn func()) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("Listener panicked: %v", p)
		}
	}()
	fn()
}

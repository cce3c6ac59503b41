package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ytget/ytdlp-gui/internal/model"
)

// TestHelperProcess stands in for yt-dlp. The last argument is the URL and
// decides how the fake download behaves.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 {
		if args[0] == "--" {
			args = args[1:]
			break
		}
		args = args[1:]
	}
	url := args[len(args)-1]

	switch {
	case strings.Contains(url, "fail"):
		fmt.Println("[generic] Extracting URL")
		fmt.Fprintln(os.Stderr, "ERROR: Unsupported URL")
		os.Exit(2)
	case strings.Contains(url, "slow"):
		fmt.Println("[download]  10.0% of 1.00MiB at 10.00KiB/s ETA 01:40")
		time.Sleep(30 * time.Second)
		os.Exit(0)
	case strings.Contains(url, "stubborn"):
		ignoreTerminate()
		fmt.Println("[download]  10.0% of 1.00MiB at 10.00KiB/s ETA 01:40")
		time.Sleep(30 * time.Second)
		os.Exit(0)
	default:
		fmt.Println("[download] Destination: /tmp/video.mp4")
		fmt.Println("[download]  42.0% of 10.00MiB at 1.00MiB/s ETA 00:05")
		fmt.Print("[download] 100% of 10.00MiB in 00:03\r\n")
		os.Exit(0)
	}
}

// recordingListener collects every notification
type recordingListener struct {
	mu         sync.Mutex
	output     []string
	progress   []int
	errors     []string
	finished   int
	onProgress func(int)
	onOutput   func(string)
}

func (l *recordingListener) OnOutput(text string) {
	l.mu.Lock()
	l.output = append(l.output, text)
	hook := l.onOutput
	l.mu.Unlock()
	if hook != nil {
		hook(text)
	}
}

func (l *recordingListener) OnProgress(percent int) {
	l.mu.Lock()
	l.progress = append(l.progress, percent)
	hook := l.onProgress
	l.mu.Unlock()
	if hook != nil {
		hook(percent)
	}
}

func (l *recordingListener) OnError(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, message)
}

func (l *recordingListener) OnFinished() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.finished++
}

func (l *recordingListener) joinedOutput() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.output, "")
}

// fakeYTDLP records the URL of each invocation and re-executes the test binary
type fakeYTDLP struct {
	mu      sync.Mutex
	started []string
}

func (f *fakeYTDLP) command(ctx context.Context, name string, args ...string) *exec.Cmd {
	f.mu.Lock()
	f.started = append(f.started, args[len(args)-1])
	f.mu.Unlock()

	cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
	cmd := exec.CommandContext(ctx, os.Args[0], cs...)
	cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
	return cmd
}

func (f *fakeYTDLP) invocations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.started...)
}

func newTestRunner(fake *fakeYTDLP) *Runner {
	r := NewRunner()
	r.newCommand = fake.command
	r.SetGracePeriod(2 * time.Second)
	return r
}

func newTestRequest(t *testing.T, urls ...string) model.JobRequest {
	t.Helper()
	req, err := model.NewJobRequest(urls, model.DefaultJobOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	return req
}

func TestNewRunner(t *testing.T) {
	r := NewRunner()

	if r.binary != DefaultBinary {
		t.Errorf("Expected binary %s, got %s", DefaultBinary, r.binary)
	}
	if r.gracePeriod != DefaultGracePeriod {
		t.Errorf("Expected grace period %v, got %v", DefaultGracePeriod, r.gracePeriod)
	}
	if r.State().Index != -1 {
		t.Errorf("Expected idle index -1, got %d", r.State().Index)
	}
}

func TestRun_InvokesInInputOrder(t *testing.T) {
	fake := &fakeYTDLP{}
	r := newTestRunner(fake)
	listener := &recordingListener{}

	urls := []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"}
	if err := r.Run(context.Background(), newTestRequest(t, urls...), listener); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	started := fake.invocations()
	if len(started) != len(urls) {
		t.Fatalf("Expected %d invocations, got %d", len(urls), len(started))
	}
	for i, u := range urls {
		if started[i] != u {
			t.Errorf("Invocation %d: expected %s, got %s", i, u, started[i])
		}
	}

	state := r.State()
	if state.Status != model.TaskStatusCompleted {
		t.Errorf("Expected status Completed, got %s", state.Status)
	}
	if state.Completed != 3 || state.Failed != 0 {
		t.Errorf("Expected 3 completed / 0 failed, got %d / %d", state.Completed, state.Failed)
	}
	if listener.finished != 1 {
		t.Errorf("Expected OnFinished once, got %d", listener.finished)
	}
	if !strings.Contains(listener.joinedOutput(), strings.TrimSpace(MsgAllCompleted)) {
		t.Error("Expected completion message in output")
	}
}

func TestRun_ReportsProgress(t *testing.T) {
	fake := &fakeYTDLP{}
	r := newTestRunner(fake)
	listener := &recordingListener{}

	if err := r.Run(context.Background(), newTestRequest(t, "https://example.com/ok"), listener); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []int{42, 100}
	if len(listener.progress) != len(expected) {
		t.Fatalf("Expected progress %v, got %v", expected, listener.progress)
	}
	for i := range expected {
		if listener.progress[i] != expected[i] {
			t.Errorf("Progress %d: expected %d, got %d", i, expected[i], listener.progress[i])
		}
	}

	out := listener.joinedOutput()
	if !strings.Contains(out, "[download] Destination: /tmp/video.mp4\n") {
		t.Errorf("Expected raw child output to be forwarded, got:\n%s", out)
	}
	if !strings.Contains(out, "Command: ") {
		t.Error("Expected the command line to be echoed")
	}
}

func TestRun_FailureDoesNotStopLaterURLs(t *testing.T) {
	fake := &fakeYTDLP{}
	r := newTestRunner(fake)
	listener := &recordingListener{}

	urls := []string{"https://example.com/fail", "https://example.com/ok"}
	if err := r.Run(context.Background(), newTestRequest(t, urls...), listener); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := fake.invocations(); len(got) != 2 {
		t.Fatalf("Expected both URLs to be attempted, got %v", got)
	}
	if len(listener.errors) != 1 {
		t.Fatalf("Expected 1 error, got %v", listener.errors)
	}
	if !strings.Contains(listener.errors[0], "exit code: 2") {
		t.Errorf("Expected exit code in error, got %s", listener.errors[0])
	}
	if !strings.Contains(listener.joinedOutput(), "ERROR: Unsupported URL") {
		t.Error("Expected stderr to be forwarded")
	}

	state := r.State()
	if state.Completed != 1 || state.Failed != 1 {
		t.Errorf("Expected 1 completed / 1 failed, got %d / %d", state.Completed, state.Failed)
	}
	if state.Status != model.TaskStatusCompleted {
		t.Errorf("Expected status Completed, got %s", state.Status)
	}
}

func TestRun_MissingBinaryFailsEachURL(t *testing.T) {
	r := NewRunner()
	r.SetBinary("ytdlp-gui-missing-binary-for-test")
	listener := &recordingListener{}

	urls := []string{"https://example.com/1", "https://example.com/2"}
	if err := r.Run(context.Background(), newTestRequest(t, urls...), listener); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(listener.errors) != 2 {
		t.Fatalf("Expected one error per URL, got %v", listener.errors)
	}
	if r.State().Failed != 2 {
		t.Errorf("Expected 2 failed, got %d", r.State().Failed)
	}
	if listener.finished != 1 {
		t.Errorf("Expected OnFinished once, got %d", listener.finished)
	}
}

func TestRun_StopDuringURLSkipsTheRest(t *testing.T) {
	fake := &fakeYTDLP{}
	r := newTestRunner(fake)

	var once sync.Once
	listener := &recordingListener{}
	listener.onProgress = func(p int) {
		if p == 10 {
			once.Do(r.Stop)
		}
	}

	urls := []string{"https://example.com/ok", "https://example.com/slow", "https://example.com/never"}
	start := time.Now()
	if err := r.Run(context.Background(), newTestRequest(t, urls...), listener); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("Stop took too long: %v", elapsed)
	}

	started := fake.invocations()
	if len(started) != 2 {
		t.Fatalf("Expected 2 invocations, got %v", started)
	}
	for _, u := range started {
		if strings.Contains(u, "never") {
			t.Error("URL after the cancelled one must not start")
		}
	}

	out := listener.joinedOutput()
	if !strings.Contains(out, "Stopped: https://example.com/slow") {
		t.Errorf("Expected stop line for the running URL, got:\n%s", out)
	}
	if !strings.Contains(out, strings.TrimSpace(MsgCancelled)) {
		t.Error("Expected cancellation message")
	}
	if strings.Contains(out, strings.TrimSpace(MsgAllCompleted)) {
		t.Error("Cancelled job must not report completion")
	}
	if len(listener.errors) != 0 {
		t.Errorf("Cancellation must not be reported as failure, got %v", listener.errors)
	}

	state := r.State()
	if !state.Cancelled {
		t.Error("Expected Cancelled flag")
	}
	if state.Status != model.TaskStatusStopped {
		t.Errorf("Expected status Stopped, got %s", state.Status)
	}
}

func TestRun_StopBeforeNextURL(t *testing.T) {
	fake := &fakeYTDLP{}
	r := newTestRunner(fake)

	listener := &recordingListener{}
	listener.onOutput = func(text string) {
		if strings.HasPrefix(text, "\nCompleted: https://example.com/1") {
			r.Stop()
		}
	}

	urls := []string{"https://example.com/1", "https://example.com/2"}
	if err := r.Run(context.Background(), newTestRequest(t, urls...), listener); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := fake.invocations(); len(got) != 1 {
		t.Errorf("Expected only the first URL to run, got %v", got)
	}
	if r.State().Completed != 1 {
		t.Errorf("Expected 1 completed, got %d", r.State().Completed)
	}
}

func TestRun_ContextCancelActsAsStop(t *testing.T) {
	fake := &fakeYTDLP{}
	r := newTestRunner(fake)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := &recordingListener{}
	listener.onProgress = func(p int) {
		if p == 10 {
			cancel()
		}
	}

	urls := []string{"https://example.com/slow", "https://example.com/never"}
	if err := r.Run(ctx, newTestRequest(t, urls...), listener); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := fake.invocations(); len(got) != 1 {
		t.Errorf("Expected 1 invocation, got %v", got)
	}
	if r.State().Status != model.TaskStatusStopped {
		t.Errorf("Expected status Stopped, got %s", r.State().Status)
	}
}

func TestRun_ListenerPanicIsReported(t *testing.T) {
	fake := &fakeYTDLP{}
	r := newTestRunner(fake)

	listener := &recordingListener{}
	listener.onOutput = func(text string) {
		if strings.HasPrefix(text, "Command: ") {
			panic("boom")
		}
	}

	err := r.Run(context.Background(), newTestRequest(t, "https://example.com/1"), listener)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("Expected ErrInternal, got %v", err)
	}
	if len(fake.invocations()) != 0 {
		t.Error("No child should start after the panic")
	}
	if listener.finished != 1 {
		t.Errorf("Expected OnFinished once, got %d", listener.finished)
	}
	if len(listener.errors) != 1 || !strings.Contains(listener.errors[0], "boom") {
		t.Errorf("Expected generic error with panic value, got %v", listener.errors)
	}
	if r.State().Status != model.TaskStatusError {
		t.Errorf("Expected status Error, got %s", r.State().Status)
	}
}

func TestRun_ListenerPanicInOutputStream(t *testing.T) {
	fake := &fakeYTDLP{}
	r := newTestRunner(fake)

	listener := &recordingListener{}
	listener.onProgress = func(p int) {
		panic("progress handler failed")
	}

	err := r.Run(context.Background(), newTestRequest(t, "https://example.com/slow", "https://example.com/never"), listener)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("Expected ErrInternal, got %v", err)
	}
	if got := fake.invocations(); len(got) != 1 {
		t.Errorf("Expected job to abort after the first URL, got %v", got)
	}
	if listener.finished != 1 {
		t.Errorf("Expected OnFinished once, got %d", listener.finished)
	}
}

func TestStop_Idle(t *testing.T) {
	r := NewRunner()
	r.Stop()

	if !r.State().Cancelled {
		t.Error("Expected Cancelled flag after Stop")
	}

	// a new run clears the previous cancellation
	fake := &fakeYTDLP{}
	r.newCommand = fake.command
	listener := &recordingListener{}
	if err := r.Run(context.Background(), newTestRequest(t, "https://example.com/1"), listener); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(fake.invocations()) != 1 {
		t.Errorf("Expected the new job to run, got %v", fake.invocations())
	}
}

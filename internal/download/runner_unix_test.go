//go:build !windows

package download

import (
	"context"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/ytget/ytdlp-gui/internal/model"
)

func ignoreTerminate() {
	signal.Ignore(syscall.SIGTERM)
}

func TestRun_StopKillsUnresponsiveChild(t *testing.T) {
	fake := &fakeYTDLP{}
	r := newTestRunner(fake)
	r.SetGracePeriod(300 * time.Millisecond)

	var once sync.Once
	listener := &recordingListener{}
	listener.onProgress = func(p int) {
		if p == 10 {
			once.Do(r.Stop)
		}
	}

	start := time.Now()
	err := r.Run(context.Background(), newTestRequest(t, "https://example.com/stubborn", "https://example.com/never"), listener)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("Unresponsive child was not killed in time: %v", elapsed)
	}

	if got := fake.invocations(); len(got) != 1 {
		t.Errorf("Expected 1 invocation, got %v", got)
	}
	if !strings.Contains(listener.joinedOutput(), "Stopped: https://example.com/stubborn") {
		t.Error("Expected stop line for the killed URL")
	}
	if r.State().Status != model.TaskStatusStopped {
		t.Errorf("Expected status Stopped, got %s", r.State().Status)
	}
}

package ui

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestLogView_Append(t *testing.T) {
	test.NewApp()
	v := NewLogView()

	v.Append("first\n")
	v.Append("")
	v.Append("second\n")
	if got := v.Text(); got != "first\nsecond\n" {
		t.Errorf("Text() = %q", got)
	}

	v.AppendError("boom\n")
	if !strings.HasSuffix(v.Text(), LogErrorPrefix+"boom\n") {
		t.Errorf("error line not appended: %q", v.Text())
	}

	v.Clear()
	if v.Text() != "" {
		t.Errorf("Clear() left %q", v.Text())
	}
}

func TestLogView_TrimsOldestLines(t *testing.T) {
	test.NewApp()
	v := NewLogView()
	v.maxBytes = 16

	v.Append("line-one\n")
	v.Append("line-two\n")
	v.Append("line-three\n")

	got := v.Text()
	if len(got) > v.maxBytes {
		t.Errorf("log exceeds limit: %d bytes", len(got))
	}
	if got != "line-three\n" {
		t.Errorf("expected whole newest line, got %q", got)
	}
}

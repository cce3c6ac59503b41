package platform

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCheckTool_Missing(t *testing.T) {
	status := CheckTool(context.Background(), "definitely-not-a-real-tool-xyz", "--version")
	if status.Available() {
		t.Fatal("Expected missing tool to be unavailable")
	}
	if !strings.HasPrefix(status.String(), "✗") {
		t.Errorf("unexpected summary %q", status.String())
	}
}

func TestToolStatusString(t *testing.T) {
	s := ToolStatus{Name: "yt-dlp", Version: "2025.01.01"}
	if got := s.String(); got != "✓ yt-dlp version: 2025.01.01" {
		t.Errorf("String() = %q", got)
	}
}

func TestDependencyWarning(t *testing.T) {
	tests := []struct {
		name     string
		statuses []ToolStatus
		contains []string
		empty    bool
	}{
		{
			name: "all present",
			statuses: []ToolStatus{
				{Name: "yt-dlp", Version: "1"},
				{Name: "ffmpeg", Version: "2"},
			},
			empty: true,
		},
		{
			name: "ytdlp missing",
			statuses: []ToolStatus{
				{Name: "yt-dlp", Hint: YTDLPInstallHint, Err: errors.New("not found")},
				{Name: "ffmpeg", Version: "2"},
			},
			contains: []string{"pip install yt-dlp"},
		},
		{
			name: "both missing",
			statuses: []ToolStatus{
				{Name: "yt-dlp", Hint: YTDLPInstallHint, Err: errors.New("not found")},
				{Name: "ffmpeg", Hint: FFmpegInstallHint, Err: errors.New("not found")},
			},
			contains: []string{"pip install yt-dlp", "brew install ffmpeg"},
		},
		{
			name: "no hint",
			statuses: []ToolStatus{
				{Name: "custom", Err: errors.New("not found")},
			},
			contains: []string{"custom was not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DependencyWarning(tt.statuses)
			if tt.empty && got != "" {
				t.Fatalf("expected empty warning, got %q", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("warning %q does not contain %q", got, want)
				}
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2025.01.01\n", "2025.01.01"},
		{"ffmpeg version 6.1 Copyright\r\nbuilt with gcc\n", "ffmpeg version 6.1 Copyright"},
		{"  \n", ""},
	}
	for _, tt := range tests {
		if got := firstLine(tt.in); got != tt.want {
			t.Errorf("firstLine(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

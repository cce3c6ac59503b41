package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// External tools
const (
	YTDLPCommand  = "yt-dlp"
	FFmpegCommand = "ffmpeg"

	YTDLPVersionFlag  = "--version"
	FFmpegVersionFlag = "-version"

	DefaultToolCheckTimeout = 10 * time.Second
)

// Install hints shown when a tool is missing
const (
	YTDLPInstallHint = "yt-dlp is not installed. Please install it using:\n\n" +
		"pip install yt-dlp\n\n" +
		"or download from https://github.com/yt-dlp/yt-dlp"
	FFmpegInstallHint = "ffmpeg is required for format conversion.\n\n" +
		"Please install ffmpeg:\n" +
		"• Windows: Download from https://ffmpeg.org\n" +
		"• Mac: brew install ffmpeg\n" +
		"• Linux: sudo apt install ffmpeg"
)

// ToolStatus is the result of probing one external executable
type ToolStatus struct {
	Name    string
	Version string
	Hint    string
	Err     error
}

// Available reports whether the tool answered its version query
func (t ToolStatus) Available() bool {
	return t.Err == nil
}

// String renders a one-line summary for the log view
func (t ToolStatus) String() string {
	if t.Available() {
		return fmt.Sprintf("✓ %s version: %s", t.Name, t.Version)
	}
	return fmt.Sprintf("✗ %s not found!", t.Name)
}

// CheckTool runs "<name> <versionFlag>" and keeps the first line of its output
func CheckTool(ctx context.Context, name, versionFlag string) ToolStatus {
	status := ToolStatus{Name: name}

	ctx, cancel := context.WithTimeout(ctx, DefaultToolCheckTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, versionFlag).Output()
	if err != nil {
		status.Err = fmt.Errorf("failed to run %s %s: %w", name, versionFlag, err)
		return status
	}

	status.Version = firstLine(string(out))
	return status
}

// CheckDependencies probes yt-dlp and ffmpeg on the search path
func CheckDependencies(ctx context.Context) []ToolStatus {
	return CheckDependenciesFor(ctx, YTDLPCommand)
}

// CheckDependenciesFor probes the given yt-dlp executable and ffmpeg
func CheckDependenciesFor(ctx context.Context, ytdlpBinary string) []ToolStatus {
	if ytdlpBinary == "" {
		ytdlpBinary = YTDLPCommand
	}
	ytdlp := CheckTool(ctx, ytdlpBinary, YTDLPVersionFlag)
	ytdlp.Hint = YTDLPInstallHint

	ffmpeg := CheckTool(ctx, FFmpegCommand, FFmpegVersionFlag)
	ffmpeg.Hint = FFmpegInstallHint

	return []ToolStatus{ytdlp, ffmpeg}
}

// DependencyWarning joins the install hints of missing tools; empty when all are present
func DependencyWarning(statuses []ToolStatus) string {
	var parts []string
	for _, s := range statuses {
		if s.Available() {
			continue
		}
		hint := s.Hint
		if hint == "" {
			hint = fmt.Sprintf("%s was not found on the search path.", s.Name)
		}
		parts = append(parts, hint)
	}
	return strings.Join(parts, "\n\n")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

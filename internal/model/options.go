package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Quality selects which stream tier yt-dlp should pick
type Quality string

const (
	QualityBest      Quality = "best"
	Quality2160p     Quality = "2160p"
	Quality1440p     Quality = "1440p"
	Quality1080p     Quality = "1080p"
	Quality720p      Quality = "720p"
	Quality480p      Quality = "480p"
	Quality360p      Quality = "360p"
	QualityWorst     Quality = "worst"
	QualityBestAudio Quality = "bestaudio"
)

// OutputFormat is the container or codec the download is converted to
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatMP4     OutputFormat = "mp4"
	FormatWebM    OutputFormat = "webm"
	FormatMKV     OutputFormat = "mkv"
	FormatAVI     OutputFormat = "avi"
	FormatMP3     OutputFormat = "mp3"
	FormatWAV     OutputFormat = "wav"
	FormatFLAC    OutputFormat = "flac"
	FormatM4A     OutputFormat = "m4a"
	FormatOpus    OutputFormat = "opus"
)

// DefaultSubtitleLangs is passed to --sub-lang when no list is configured
const DefaultSubtitleLangs = "en,es,fr,de,ja"

// Qualities returns the selectable quality values in display order
func Qualities() []Quality {
	return []Quality{
		QualityBest,
		Quality2160p,
		Quality1440p,
		Quality1080p,
		Quality720p,
		Quality480p,
		Quality360p,
		QualityWorst,
		QualityBestAudio,
	}
}

// OutputFormats returns the selectable output formats in display order
func OutputFormats() []OutputFormat {
	return []OutputFormat{
		FormatDefault,
		FormatMP4,
		FormatWebM,
		FormatMKV,
		FormatAVI,
		FormatMP3,
		FormatWAV,
		FormatFLAC,
		FormatM4A,
		FormatOpus,
	}
}

// String returns the string representation of Quality
func (q Quality) String() string {
	return string(q)
}

// Height returns the maximum video height for tiers like "1080p"
func (q Quality) Height() (int, bool) {
	s := string(q)
	if !strings.HasSuffix(s, "p") {
		return 0, false
	}
	h, err := strconv.Atoi(strings.TrimSuffix(s, "p"))
	if err != nil || h <= 0 {
		return 0, false
	}
	return h, true
}

// IsValid reports whether q is one of the known quality values
func (q Quality) IsValid() bool {
	for _, known := range Qualities() {
		if q == known {
			return true
		}
	}
	return false
}

// String returns the string representation of OutputFormat
func (f OutputFormat) String() string {
	return string(f)
}

// IsAudio reports whether the format is an audio-only target
func (f OutputFormat) IsAudio() bool {
	switch f {
	case FormatMP3, FormatWAV, FormatFLAC, FormatM4A, FormatOpus:
		return true
	}
	return false
}

// IsValid reports whether f is one of the known output formats
func (f OutputFormat) IsValid() bool {
	for _, known := range OutputFormats() {
		if f == known {
			return true
		}
	}
	return false
}

// JobOptions is the flat set of user choices applied to every URL of a job
type JobOptions struct {
	Quality           Quality
	OutputFormat      OutputFormat
	OutputDir         string
	DownloadPlaylist  bool
	Subtitles         bool
	EmbedSubtitles    bool
	SubtitleLangs     string
	Thumbnail         bool
	EmbedThumbnail    bool
	KeepOriginal      bool
	PreferFreeFormats bool
}

// DefaultJobOptions returns the options a fresh install starts with
func DefaultJobOptions(outputDir string) JobOptions {
	return JobOptions{
		Quality:          QualityBest,
		OutputFormat:     FormatDefault,
		OutputDir:        outputDir,
		DownloadPlaylist: true,
		SubtitleLangs:    DefaultSubtitleLangs,
	}
}

// Normalize returns a copy with dependent fields made consistent.
// Audio formats never request a video quality tier.
func (o JobOptions) Normalize() JobOptions {
	if o.Quality == "" {
		o.Quality = QualityBest
	}
	if o.OutputFormat == "" {
		o.OutputFormat = FormatDefault
	}
	if o.OutputFormat.IsAudio() {
		o.Quality = QualityBestAudio
	}
	if !o.Subtitles {
		o.EmbedSubtitles = false
	}
	if !o.Thumbnail {
		o.EmbedThumbnail = false
	}
	o.SubtitleLangs = strings.TrimSpace(o.SubtitleLangs)
	if o.SubtitleLangs == "" {
		o.SubtitleLangs = DefaultSubtitleLangs
	}
	o.OutputDir = strings.TrimSpace(o.OutputDir)
	return o
}

// Validate checks that the options can be turned into a command line
func (o JobOptions) Validate() error {
	if !o.Quality.IsValid() {
		return fmt.Errorf("unknown quality: %q", o.Quality)
	}
	if !o.OutputFormat.IsValid() {
		return fmt.Errorf("unknown output format: %q", o.OutputFormat)
	}
	if strings.TrimSpace(o.OutputDir) == "" {
		return fmt.Errorf("output directory is empty")
	}
	return nil
}

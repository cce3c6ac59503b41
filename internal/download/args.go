package download

import (
	"fmt"
	"path/filepath"

	"github.com/ytget/ytdlp-gui/internal/model"
)

// yt-dlp format selectors
const (
	FormatBestMP4   = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	FormatBestFree  = "bv*+ba/b"
	FormatWorst     = "worstvideo+worstaudio/worst"
	FormatBestAudio = "bestaudio/best"
	FormatByHeight  = "bestvideo[height<=%d]+bestaudio/best[height<=%d]"
)

// Output templates
const (
	TitleTemplate    = "%(title)s.%(ext)s"
	PlaylistTemplate = "%(playlist)s/%(playlist_index)s - %(title)s.%(ext)s"
)

// Audio settings
const (
	BestAudioQuality = "0"
)

// BuildArgs builds the yt-dlp arguments for a single URL.
// The URL is always the last argument.
func BuildArgs(opts model.JobOptions, url string) []string {
	opts = opts.Normalize()

	args := []string{"--newline", "--progress"}
	args = append(args, "-f", formatSelector(opts))

	if opts.OutputFormat != model.FormatDefault {
		if opts.OutputFormat.IsAudio() {
			args = append(args, "-x", "--audio-format", opts.OutputFormat.String())
			if opts.OutputFormat == model.FormatMP3 {
				args = append(args, "--audio-quality", BestAudioQuality)
			}
		} else {
			args = append(args, "--remux-video", opts.OutputFormat.String())
		}
	}

	if !opts.DownloadPlaylist {
		args = append(args, "--no-playlist")
	}

	args = append(args, "-o", OutputTemplate(opts))

	if opts.Subtitles {
		args = append(args, "--write-sub", "--write-auto-sub", "--sub-lang", opts.SubtitleLangs)
		if opts.EmbedSubtitles {
			args = append(args, "--embed-subs")
		}
	}

	if opts.Thumbnail {
		args = append(args, "--write-thumbnail")
		if opts.EmbedThumbnail {
			args = append(args, "--embed-thumbnail")
		}
	}

	if opts.KeepOriginal {
		args = append(args, "-k")
	}

	return append(args, url)
}

// OutputTemplate returns the -o value for the options' directory and playlist mode
func OutputTemplate(opts model.JobOptions) string {
	if opts.DownloadPlaylist {
		return filepath.Join(opts.OutputDir, PlaylistTemplate)
	}
	return filepath.Join(opts.OutputDir, TitleTemplate)
}

// formatSelector maps a quality tier to a yt-dlp -f expression
func formatSelector(opts model.JobOptions) string {
	switch opts.Quality {
	case model.QualityBest:
		if opts.PreferFreeFormats {
			return FormatBestFree
		}
		return FormatBestMP4
	case model.QualityWorst:
		return FormatWorst
	case model.QualityBestAudio:
		return FormatBestAudio
	}

	if h, ok := opts.Quality.Height(); ok {
		return fmt.Sprintf(FormatByHeight, h, h)
	}
	return FormatBestMP4
}

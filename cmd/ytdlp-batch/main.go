package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-colorable"

	"github.com/ytget/ytdlp-gui/internal/download"
	"github.com/ytget/ytdlp-gui/internal/model"
	"github.com/ytget/ytdlp-gui/internal/platform"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ANSI colors for the error log
const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

type cliConfig struct {
	listFile    string
	binary      string
	gracePeriod time.Duration
	expand      bool
	check       bool
	showVersion bool
	options     model.JobOptions
	urls        []string
}

func main() {
	colorable.EnableColorsStdout(nil)
	log.SetOutput(colorable.NewColorableStderr())
	log.SetFlags(log.Ltime)

	os.Exit(run(os.Args[1:], colorable.NewColorableStdout()))
}

func run(args []string, stdout io.Writer) int {
	cfg, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		log.Printf("%v", err)
		return ExitUsage
	}

	if cfg.showVersion {
		fmt.Fprintf(stdout, "ytdlp-batch v%s\n", version)
		return ExitOK
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.check {
		return checkTools(ctx, cfg.binary, stdout)
	}

	urls, err := collectURLs(cfg)
	if err != nil {
		log.Printf("%v", err)
		return ExitUsage
	}

	if cfg.expand {
		urls, err = platform.NewPlaylistExpander().ExpandURLs(ctx, urls)
		if err != nil {
			log.Printf("Playlist expansion failed: %v", err)
			return ExitFailure
		}
	}

	req, err := model.NewJobRequest(urls, cfg.options)
	if err != nil {
		log.Printf("%v", err)
		return ExitUsage
	}
	if err := platform.CreateDirectoryIfNotExists(req.Options.OutputDir); err != nil {
		log.Printf("Failed to create output directory: %v", err)
		return ExitFailure
	}

	runner := download.NewRunner()
	runner.SetBinary(cfg.binary)
	runner.SetGracePeriod(cfg.gracePeriod)

	go func() {
		<-ctx.Done()
		runner.Stop()
	}()

	if err := runner.Run(ctx, req, &cliListener{out: stdout}); err != nil {
		log.Printf("%v", err)
		return ExitFailure
	}

	return exitCode(runner.State())
}

// exitCode is non-zero unless every URL completed
func exitCode(state model.JobState) int {
	if state.Status != model.TaskStatusCompleted || state.Failed > 0 {
		return ExitFailure
	}
	return ExitOK
}

func parseFlags(args []string) (cliConfig, error) {
	var cfg cliConfig

	outputDir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		outputDir = "."
	}
	defaults := model.DefaultJobOptions(outputDir)

	var quality, format string
	opts := &cfg.options

	fs := flag.NewFlagSet("ytdlp-batch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: ytdlp-batch [options] [URL...]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.listFile, "f", "", "Read URLs from a `file`, one per line")
	fs.StringVar(&cfg.binary, "yt-dlp", platform.YTDLPCommand, "yt-dlp executable")
	fs.DurationVar(&cfg.gracePeriod, "grace", download.DefaultGracePeriod, "Time a stopped download gets to exit before it is killed")
	fs.BoolVar(&cfg.expand, "expand", false, "Expand playlist URLs into single videos before downloading")
	fs.BoolVar(&cfg.check, "check", false, "Check that yt-dlp and ffmpeg are installed and exit")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print the version and exit")

	fs.StringVar(&opts.OutputDir, "o", defaults.OutputDir, "Output `directory`")
	fs.StringVar(&quality, "q", string(defaults.Quality), "Quality: best, 2160p, 1440p, 1080p, 720p, 480p, 360p, worst, bestaudio")
	fs.StringVar(&format, "format", string(defaults.OutputFormat), "Output format: default, mp4, webm, mkv, avi, mp3, wav, flac, m4a, opus")
	fs.BoolVar(&opts.DownloadPlaylist, "playlist", defaults.DownloadPlaylist, "Download whole playlists")
	fs.BoolVar(&opts.Subtitles, "subs", false, "Download subtitles")
	fs.BoolVar(&opts.EmbedSubtitles, "embed-subs", false, "Embed subtitles into the video")
	fs.StringVar(&opts.SubtitleLangs, "sub-langs", defaults.SubtitleLangs, "Comma separated subtitle languages")
	fs.BoolVar(&opts.Thumbnail, "thumbnail", false, "Download the thumbnail")
	fs.BoolVar(&opts.EmbedThumbnail, "embed-thumbnail", false, "Embed the thumbnail into the file")
	fs.BoolVar(&opts.KeepOriginal, "k", false, "Keep the original file after conversion")
	fs.BoolVar(&opts.PreferFreeFormats, "free-formats", false, "Prefer free formats for best quality")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	opts.Quality = model.Quality(quality)
	opts.OutputFormat = model.OutputFormat(format)
	cfg.options = opts.Normalize()
	if err := cfg.options.Validate(); err != nil {
		return cfg, err
	}

	cfg.urls = fs.Args()
	return cfg, nil
}

// collectURLs merges the list file with positional arguments, file first
func collectURLs(cfg cliConfig) ([]string, error) {
	var urls []string
	if cfg.listFile != "" {
		fromFile, err := platform.ReadURLList(cfg.listFile)
		if err != nil {
			return nil, err
		}
		urls = append(urls, fromFile...)
	}
	urls = append(urls, cfg.urls...)
	if len(urls) == 0 {
		return nil, model.ErrNoURLs
	}
	return urls, nil
}

func checkTools(ctx context.Context, binary string, stdout io.Writer) int {
	statuses := platform.CheckDependenciesFor(ctx, binary)
	for _, s := range statuses {
		fmt.Fprintln(stdout, s.String())
	}
	if warning := platform.DependencyWarning(statuses); warning != "" {
		log.Printf("%s%s%s", colorRed, warning, colorReset)
		return ExitFailure
	}
	return ExitOK
}

// cliListener prints runner output to stdout and errors to the log
type cliListener struct {
	out io.Writer
}

func (l *cliListener) OnOutput(text string) {
	fmt.Fprint(l.out, text)
}

// OnProgress is a no-op: progress lines are already part of the output
func (l *cliListener) OnProgress(int) {}

func (l *cliListener) OnError(message string) {
	log.Printf("%s%s%s", colorRed, message, colorReset)
}

func (l *cliListener) OnFinished() {}

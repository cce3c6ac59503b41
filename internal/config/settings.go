package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/ytdlp-gui/internal/model"
	"github.com/ytget/ytdlp-gui/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir       = "download_directory"
	KeyQuality           = "quality"
	KeyOutputFormat      = "output_format"
	KeyDownloadPlaylist  = "download_playlist"
	KeySubtitles         = "subtitles"
	KeyEmbedSubtitles    = "embed_subtitles"
	KeySubtitleLangs     = "subtitle_languages"
	KeyThumbnail         = "thumbnail"
	KeyEmbedThumbnail    = "embed_thumbnail"
	KeyKeepOriginal      = "keep_original"
	KeyPreferFreeFormats = "prefer_free_formats"
	KeyLanguage          = "app_language"
	KeyYTDLPPath         = "ytdlp_path"
	KeyLastBatchFile     = "last_batch_file"
)

// Default values
const (
	DefaultQuality          = model.QualityBest
	DefaultOutputFormat     = model.FormatDefault
	DefaultDownloadPlaylist = true
	DefaultLanguage         = "system"
	DefaultYTDLPPath        = platform.YTDLPCommand
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = filepath.Join(os.TempDir(), platform.DownloadsDirName)
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetQuality returns the last selected quality
func (s *Settings) GetQuality() model.Quality {
	q := model.Quality(s.app.Preferences().StringWithFallback(KeyQuality, string(DefaultQuality)))
	if !q.IsValid() {
		return DefaultQuality
	}
	return q
}

// SetQuality stores the selected quality
func (s *Settings) SetQuality(q model.Quality) {
	s.app.Preferences().SetString(KeyQuality, string(q))
}

// GetOutputFormat returns the last selected output format
func (s *Settings) GetOutputFormat() model.OutputFormat {
	f := model.OutputFormat(s.app.Preferences().StringWithFallback(KeyOutputFormat, string(DefaultOutputFormat)))
	if !f.IsValid() {
		return DefaultOutputFormat
	}
	return f
}

// SetOutputFormat stores the selected output format
func (s *Settings) SetOutputFormat(f model.OutputFormat) {
	s.app.Preferences().SetString(KeyOutputFormat, string(f))
}

// GetSubtitleLangs returns the comma separated subtitle languages
func (s *Settings) GetSubtitleLangs() string {
	return s.app.Preferences().StringWithFallback(KeySubtitleLangs, model.DefaultSubtitleLangs)
}

// SetSubtitleLangs stores the subtitle languages
func (s *Settings) SetSubtitleLangs(langs string) {
	s.app.Preferences().SetString(KeySubtitleLangs, langs)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}

// GetYTDLPPath returns the yt-dlp executable used by the runner
func (s *Settings) GetYTDLPPath() string {
	return s.app.Preferences().StringWithFallback(KeyYTDLPPath, DefaultYTDLPPath)
}

// SetYTDLPPath sets the yt-dlp executable; empty restores the search path lookup
func (s *Settings) SetYTDLPPath(path string) {
	if path == "" {
		path = DefaultYTDLPPath
	}
	s.app.Preferences().SetString(KeyYTDLPPath, path)
}

// GetLastBatchFile returns the last loaded or saved URL list
func (s *Settings) GetLastBatchFile() string {
	return s.app.Preferences().String(KeyLastBatchFile)
}

// SetLastBatchFile remembers the URL list path
func (s *Settings) SetLastBatchFile(path string) {
	s.app.Preferences().SetString(KeyLastBatchFile, path)
}

// JobOptions assembles the persisted option form into normalized job options
func (s *Settings) JobOptions() model.JobOptions {
	p := s.app.Preferences()
	opts := model.JobOptions{
		Quality:           s.GetQuality(),
		OutputFormat:      s.GetOutputFormat(),
		OutputDir:         s.GetDownloadDirectory(),
		DownloadPlaylist:  p.BoolWithFallback(KeyDownloadPlaylist, DefaultDownloadPlaylist),
		Subtitles:         p.Bool(KeySubtitles),
		EmbedSubtitles:    p.Bool(KeyEmbedSubtitles),
		SubtitleLangs:     s.GetSubtitleLangs(),
		Thumbnail:         p.Bool(KeyThumbnail),
		EmbedThumbnail:    p.Bool(KeyEmbedThumbnail),
		KeepOriginal:      p.Bool(KeyKeepOriginal),
		PreferFreeFormats: p.Bool(KeyPreferFreeFormats),
	}
	return opts.Normalize()
}

// SaveJobOptions persists the option form after normalizing it
func (s *Settings) SaveJobOptions(opts model.JobOptions) {
	opts = opts.Normalize()
	p := s.app.Preferences()

	s.SetQuality(opts.Quality)
	s.SetOutputFormat(opts.OutputFormat)
	if opts.OutputDir != "" {
		s.SetDownloadDirectory(opts.OutputDir)
	}
	p.SetBool(KeyDownloadPlaylist, opts.DownloadPlaylist)
	p.SetBool(KeySubtitles, opts.Subtitles)
	p.SetBool(KeyEmbedSubtitles, opts.EmbedSubtitles)
	s.SetSubtitleLangs(opts.SubtitleLangs)
	p.SetBool(KeyThumbnail, opts.Thumbnail)
	p.SetBool(KeyEmbedThumbnail, opts.EmbedThumbnail)
	p.SetBool(KeyKeepOriginal, opts.KeepOriginal)
	p.SetBool(KeyPreferFreeFormats, opts.PreferFreeFormats)
}

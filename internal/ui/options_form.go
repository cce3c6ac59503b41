package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytdlp-gui/internal/model"
)

// OptionsForm is the shared job option panel used by the Single and Batch tabs
type OptionsForm struct {
	window       fyne.Window
	localization *Localization

	qualitySelect *widget.Select
	formatSelect  *widget.Select
	dirEntry      *widget.Entry
	browseBtn     *widget.Button

	playlistCheck   *widget.Check
	subsCheck       *widget.Check
	embedSubsCheck  *widget.Check
	subLangsEntry   *widget.Entry
	thumbCheck      *widget.Check
	embedThumbCheck *widget.Check
	keepCheck       *widget.Check
	freeCheck       *widget.Check

	qualityLabel  *widget.Label
	formatLabel   *widget.Label
	dirLabel      *widget.Label
	subLangsLabel *widget.Label

	// quality picked before an audio format forced bestaudio
	videoQuality model.Quality
	enabled      bool

	content *fyne.Container
}

// NewOptionsForm builds the form and fills it with opts
func NewOptionsForm(window fyne.Window, localization *Localization, opts model.JobOptions) *OptionsForm {
	f := &OptionsForm{
		window:       window,
		localization: localization,
		videoQuality: model.QualityBest,
		enabled:      true,
	}
	f.createUI()
	f.SetOptions(opts)
	return f
}

func (f *OptionsForm) createUI() {
	qualities := make([]string, 0, len(model.Qualities()))
	for _, q := range model.Qualities() {
		qualities = append(qualities, q.String())
	}
	f.qualitySelect = widget.NewSelect(qualities, nil)

	formats := make([]string, 0, len(model.OutputFormats()))
	for _, of := range model.OutputFormats() {
		formats = append(formats, of.String())
	}
	f.formatSelect = widget.NewSelect(formats, func(string) { f.applyDependencies() })

	f.dirEntry = widget.NewEntry()
	f.browseBtn = widget.NewButton("", f.onBrowseDirectory)

	f.playlistCheck = widget.NewCheck("", nil)
	f.subsCheck = widget.NewCheck("", func(bool) { f.applyDependencies() })
	f.embedSubsCheck = widget.NewCheck("", nil)
	f.subLangsEntry = widget.NewEntry()
	f.subLangsEntry.SetPlaceHolder(model.DefaultSubtitleLangs)
	f.thumbCheck = widget.NewCheck("", func(bool) { f.applyDependencies() })
	f.embedThumbCheck = widget.NewCheck("", nil)
	f.keepCheck = widget.NewCheck("", nil)
	f.freeCheck = widget.NewCheck("", nil)

	f.qualityLabel = widget.NewLabel("")
	f.formatLabel = widget.NewLabel("")
	f.dirLabel = widget.NewLabel("")
	f.subLangsLabel = widget.NewLabel("")

	selectors := container.NewHBox(f.qualityLabel, f.qualitySelect, f.formatLabel, f.formatSelect)
	dirRow := container.NewBorder(nil, nil, f.dirLabel, f.browseBtn, f.dirEntry)
	toggles := container.NewGridWithColumns(4,
		f.playlistCheck, f.subsCheck, f.embedSubsCheck, f.keepCheck,
		f.freeCheck, f.thumbCheck, f.embedThumbCheck,
	)
	subsRow := container.NewBorder(nil, nil, f.subLangsLabel, nil, f.subLangsEntry)

	f.content = container.NewVBox(selectors, dirRow, toggles, subsRow)
	f.RefreshTexts()
}

// Container returns the form layout
func (f *OptionsForm) Container() fyne.CanvasObject {
	return f.content
}

// RefreshTexts re-applies localized labels
func (f *OptionsForm) RefreshTexts() {
	l := f.localization
	f.qualityLabel.SetText(l.GetText(KeyQuality))
	f.formatLabel.SetText(l.GetText(KeyOutputFormat))
	f.dirLabel.SetText(l.GetText(KeyDownloadDirectory))
	f.subLangsLabel.SetText(l.GetText(KeySubtitleLangs))
	f.browseBtn.SetText(l.GetText(KeyBrowse))
	f.playlistCheck.SetText(l.GetText(KeyDownloadPlaylist))
	f.subsCheck.SetText(l.GetText(KeySubtitles))
	f.embedSubsCheck.SetText(l.GetText(KeyEmbedSubtitles))
	f.thumbCheck.SetText(l.GetText(KeyThumbnail))
	f.embedThumbCheck.SetText(l.GetText(KeyEmbedThumbnail))
	f.keepCheck.SetText(l.GetText(KeyKeepOriginal))
	f.freeCheck.SetText(l.GetText(KeyPreferFreeFormats))
}

// SetOptions loads opts into the widgets
func (f *OptionsForm) SetOptions(opts model.JobOptions) {
	opts = opts.Normalize()
	if opts.Quality != model.QualityBestAudio {
		f.videoQuality = opts.Quality
	}

	f.qualitySelect.SetSelected(opts.Quality.String())
	f.dirEntry.SetText(opts.OutputDir)
	f.playlistCheck.SetChecked(opts.DownloadPlaylist)
	f.subsCheck.SetChecked(opts.Subtitles)
	f.embedSubsCheck.SetChecked(opts.EmbedSubtitles)
	f.subLangsEntry.SetText(opts.SubtitleLangs)
	f.thumbCheck.SetChecked(opts.Thumbnail)
	f.embedThumbCheck.SetChecked(opts.EmbedThumbnail)
	f.keepCheck.SetChecked(opts.KeepOriginal)
	f.freeCheck.SetChecked(opts.PreferFreeFormats)
	// last: the format callback reconciles quality and embed toggles
	f.formatSelect.SetSelected(opts.OutputFormat.String())
	f.applyDependencies()
}

// SetOutputDir replaces the target directory
func (f *OptionsForm) SetOutputDir(dir string) {
	f.dirEntry.SetText(dir)
}

// JobOptions reads the widgets into normalized options
func (f *OptionsForm) JobOptions() model.JobOptions {
	opts := model.JobOptions{
		Quality:           model.Quality(f.qualitySelect.Selected),
		OutputFormat:      model.OutputFormat(f.formatSelect.Selected),
		OutputDir:         f.dirEntry.Text,
		DownloadPlaylist:  f.playlistCheck.Checked,
		Subtitles:         f.subsCheck.Checked,
		EmbedSubtitles:    f.embedSubsCheck.Checked,
		SubtitleLangs:     f.subLangsEntry.Text,
		Thumbnail:         f.thumbCheck.Checked,
		EmbedThumbnail:    f.embedThumbCheck.Checked,
		KeepOriginal:      f.keepCheck.Checked,
		PreferFreeFormats: f.freeCheck.Checked,
	}
	return opts.Normalize()
}

// SetEnabled locks the form while a job runs
func (f *OptionsForm) SetEnabled(enabled bool) {
	f.enabled = enabled
	for _, w := range f.widgets() {
		if enabled {
			w.Enable()
		} else {
			w.Disable()
		}
	}
	f.applyDependencies()
}

// applyDependencies enforces the audio-only quality and the embed toggles
func (f *OptionsForm) applyDependencies() {
	if f.qualitySelect == nil || f.embedThumbCheck == nil {
		return
	}

	if model.OutputFormat(f.formatSelect.Selected).IsAudio() {
		if q := model.Quality(f.qualitySelect.Selected); q != model.QualityBestAudio && q != "" {
			f.videoQuality = q
		}
		f.qualitySelect.SetSelected(model.QualityBestAudio.String())
		f.qualitySelect.Disable()
	} else {
		if model.Quality(f.qualitySelect.Selected) == model.QualityBestAudio && f.videoQuality != "" {
			f.qualitySelect.SetSelected(f.videoQuality.String())
		}
		setEnabled(f.qualitySelect, f.enabled)
	}

	setEnabled(f.embedSubsCheck, f.enabled && f.subsCheck.Checked)
	setEnabled(f.subLangsEntry, f.enabled && f.subsCheck.Checked)
	setEnabled(f.embedThumbCheck, f.enabled && f.thumbCheck.Checked)
	if !f.subsCheck.Checked {
		f.embedSubsCheck.SetChecked(false)
	}
	if !f.thumbCheck.Checked {
		f.embedThumbCheck.SetChecked(false)
	}
}

func (f *OptionsForm) widgets() []fyne.Disableable {
	return []fyne.Disableable{
		f.qualitySelect, f.formatSelect, f.dirEntry, f.browseBtn,
		f.playlistCheck, f.subsCheck, f.embedSubsCheck, f.subLangsEntry,
		f.thumbCheck, f.embedThumbCheck, f.keepCheck, f.freeCheck,
	}
}

// onBrowseDirectory handles directory browsing
func (f *OptionsForm) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		f.dirEntry.SetText(uri.Path())
	}, f.window)
}

func setEnabled(w fyne.Disableable, enabled bool) {
	if enabled {
		w.Enable()
	} else {
		w.Disable()
	}
}

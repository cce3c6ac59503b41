package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/download"
	"github.com/ytget/ytdlp-gui/internal/model"
	"github.com/ytget/ytdlp-gui/internal/platform"
)

// ErrJobRunning is returned when a job is submitted while another one runs
var ErrJobRunning = errors.New("a download job is already running")

// ProjectURL is linked from the About tab
const ProjectURL = "https://github.com/yt-dlp/yt-dlp"

// binarySetter is implemented by runners whose yt-dlp executable can be changed
type binarySetter interface {
	SetBinary(binary string)
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	version      string
	runner       download.JobRunner
	settings     *config.Settings
	localization *Localization

	tabs       *container.AppTabs
	singleItem *container.TabItem
	batchItem  *container.TabItem
	aboutItem  *container.TabItem

	urlLabel    *widget.Label
	urlEntry    *widget.Entry
	batch       *BatchTab
	options     *OptionsForm
	logView     *LogView
	progress    *widget.ProgressBar
	statusLabel *widget.Label
	aboutLabel  *widget.Label
	toolsLabel  *widget.Label

	downloadBtn *widget.Button
	stopBtn     *widget.Button
	openBtn     *widget.Button

	running  atomic.Bool
	depsOnce sync.Once
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, runner download.JobRunner, expander URLExpander, version string) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		version:      version,
		runner:       runner,
		settings:     settings,
		localization: localization,
	}
	ui.applyBinary()

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI(expander)
	window.SetCloseIntercept(ui.onCloseRequest)

	log.Printf("RootUI initialized, language=%s", localization.GetCurrentLanguage())
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI(expander URLExpander) {
	ui.createMenu()

	// Single tab
	ui.urlLabel = widget.NewLabel("")
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.Validator = validateURL
	ui.urlEntry.OnSubmitted = func(string) { ui.onDownloadClick() }
	singleContent := container.NewBorder(nil, nil, ui.urlLabel, nil, ui.urlEntry)

	// Batch tab
	ui.batch = NewBatchTab(ui.window, ui.localization, ui.settings, expander, func(text string) {
		ui.logView.Append(text)
	})

	// About tab
	ui.aboutLabel = widget.NewLabel("")
	ui.aboutLabel.Wrapping = fyne.TextWrapWord
	ui.toolsLabel = widget.NewLabel("")
	ui.toolsLabel.TextStyle = fyne.TextStyle{Monospace: true}
	link := widget.NewHyperlink(ProjectURL, parseURL(ProjectURL))
	aboutContent := container.NewVBox(ui.aboutLabel, link, ui.toolsLabel)

	ui.singleItem = container.NewTabItem("", singleContent)
	ui.batchItem = container.NewTabItem("", ui.batch.Container())
	ui.aboutItem = container.NewTabItem("", aboutContent)
	ui.tabs = container.NewAppTabs(ui.singleItem, ui.batchItem, ui.aboutItem)

	ui.options = NewOptionsForm(ui.window, ui.localization, ui.settings.JobOptions())

	ui.logView = NewLogView()

	ui.progress = widget.NewProgressBar()
	ui.progress.Max = ProgressMaximum
	ui.statusLabel = widget.NewLabel("")

	ui.downloadBtn = widget.NewButton("", ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButton("", ui.onStopClick)
	ui.stopBtn.Importance = widget.DangerImportance
	ui.stopBtn.Disable()
	ui.openBtn = widget.NewButton("", ui.onOpenFolder)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	top := container.NewVBox(ui.tabs, ui.options.Container(), widget.NewSeparator())
	controls := container.NewHBox(settingsBtn, ui.statusLabel, layout.NewSpacer(), ui.openBtn, ui.stopBtn, ui.downloadBtn)
	bottom := container.NewVBox(ui.progress, controls)

	ui.window.SetContent(container.NewBorder(top, bottom, nil, nil, ui.logView.Widget()))
	ui.refreshUITexts()

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))

	ui.singleItem.Text = l.GetText(KeyTabSingle)
	ui.batchItem.Text = l.GetText(KeyTabBatch)
	ui.aboutItem.Text = l.GetText(KeyTabAbout)
	ui.tabs.Refresh()

	ui.urlLabel.SetText(l.GetText(KeyURL))
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.aboutLabel.SetText(fmt.Sprintf("%s v%s\n\n%s", l.GetText(KeyAppTitle), ui.version, l.GetText(KeyAboutText)))
	ui.downloadBtn.SetText(l.GetText(KeyDownload))
	ui.stopBtn.SetText(l.GetText(KeyStop))
	ui.openBtn.SetText(IconFolder + " " + l.GetText(KeyOpenFolder))
	if !ui.IsRunning() {
		ui.statusLabel.SetText(l.GetText(KeyReady))
	}

	ui.options.RefreshTexts()
	ui.batch.RefreshTexts()
}

// onShowSettings opens the preferences dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window, ui.localization, ui.onSettingsSaved).Show()
}

// onSettingsSaved pushes saved preferences into the live UI
func (ui *RootUI) onSettingsSaved() {
	ui.options.SetOutputDir(ui.settings.GetDownloadDirectory())
	ui.applyBinary()
	if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
		ui.onLanguageChange(lang)
	}
}

func (ui *RootUI) applyBinary() {
	if bs, ok := ui.runner.(binarySetter); ok {
		bs.SetBinary(ui.settings.GetYTDLPPath())
	}
}

// validateURL validates the entered URL
func validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	return nil
}

func parseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}

// currentURLs returns the URLs of the selected input tab
func (ui *RootUI) currentURLs() []string {
	if ui.tabs.Selected() == ui.batchItem {
		return ui.batch.URLs()
	}
	return []string{ui.urlEntry.Text}
}

// onDownloadClick handles the download button click
func (ui *RootUI) onDownloadClick() {
	err := ui.StartJob(ui.currentURLs())
	switch {
	case err == nil:
	case errors.Is(err, ErrJobRunning):
		dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), ui.localization.GetText(KeyJobRunning), ui.window)
	case errors.Is(err, model.ErrNoURLs):
		dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), ui.localization.GetText(KeyPleaseEnterURL), ui.window)
	default:
		log.Printf("Failed to start job: %v", err)
		dialog.ShowError(err, ui.window)
	}
}

// StartJob submits urls with the current form options.
// Only one job runs at a time; a second submission returns ErrJobRunning.
func (ui *RootUI) StartJob(urls []string) error {
	if ui.IsRunning() {
		return ErrJobRunning
	}

	req, err := model.NewJobRequest(urls, ui.options.JobOptions())
	if err != nil {
		return err
	}

	if !ui.running.CompareAndSwap(false, true) {
		return ErrJobRunning
	}
	if err := platform.CreateDirectoryIfNotExists(req.Options.OutputDir); err != nil {
		ui.running.Store(false)
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ui.settings.SaveJobOptions(req.Options)
	ui.logView.Clear()
	ui.progress.SetValue(0)
	ui.setRunningControls(true)
	log.Printf("Starting job %s with %d URL(s)", req.ID, len(req.URLs))

	go func() {
		if err := ui.runner.Run(context.Background(), req, &jobListener{ui: ui}); err != nil {
			log.Printf("Job %s ended with error: %v", req.ID, err)
		}
		ui.running.Store(false)
		fyne.Do(func() { ui.setRunningControls(false) })
	}()
	return nil
}

// IsRunning reports whether a job is in flight
func (ui *RootUI) IsRunning() bool {
	return ui.running.Load()
}

// onStopClick asks for confirmation before stopping
func (ui *RootUI) onStopClick() {
	if !ui.IsRunning() {
		return
	}
	dialog.ShowConfirm(
		ui.localization.GetText(KeyConfirmStop),
		ui.localization.GetText(KeyConfirmStopMessage),
		func(ok bool) {
			if ok {
				ui.StopJob()
			}
		},
		ui.window,
	)
}

// StopJob cancels the running job without confirmation
func (ui *RootUI) StopJob() {
	if !ui.IsRunning() {
		return
	}
	log.Printf("Stop requested by user")
	ui.statusLabel.SetText(ui.localization.GetText(KeyStoppingDownload))
	ui.stopBtn.Disable()
	ui.runner.Stop()
}

// onCloseRequest confirms closing the window while a job runs
func (ui *RootUI) onCloseRequest() {
	if !ui.IsRunning() {
		ui.window.Close()
		return
	}
	dialog.ShowConfirm(
		ui.localization.GetText(KeyConfirmStop),
		ui.localization.GetText(KeyConfirmExit),
		func(ok bool) {
			if !ok {
				return
			}
			ui.runner.Stop()
			ui.window.Close()
		},
		ui.window,
	)
}

// onOpenFolder reveals the output directory
func (ui *RootUI) onOpenFolder() {
	dir := ui.options.JobOptions().OutputDir
	if err := platform.OpenFolder(dir); err != nil {
		log.Printf("Failed to open folder %s: %v", dir, err)
		dialog.ShowError(err, ui.window)
	}
}

// setRunningControls toggles buttons and inputs for a running job
func (ui *RootUI) setRunningControls(running bool) {
	setEnabled(ui.downloadBtn, !running)
	setEnabled(ui.stopBtn, running)
	setEnabled(ui.urlEntry, !running)
	ui.options.SetEnabled(!running)
	ui.batch.SetEnabled(!running)
}

// CheckDependencies probes yt-dlp and ffmpeg once and warns about missing tools
func (ui *RootUI) CheckDependencies() {
	ui.depsOnce.Do(func() {
		ui.toolsLabel.SetText(ui.localization.GetText(KeyCheckingTools))
		binary := ui.settings.GetYTDLPPath()

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), DependencyCheckTimeout)
			defer cancel()

			statuses := platform.CheckDependenciesFor(ctx, binary)
			warning := platform.DependencyWarning(statuses)

			lines := make([]string, 0, len(statuses))
			for _, s := range statuses {
				log.Printf("Dependency check: %s", s)
				lines = append(lines, s.String())
			}

			fyne.Do(func() {
				ui.toolsLabel.SetText(strings.Join(lines, "\n"))
				ui.logView.Append(strings.Join(lines, "\n") + "\n")
				if warning != "" {
					dialog.ShowInformation(ui.localization.GetText(KeyMissingTools), warning, ui.window)
				}
			})
		}()
	})
}

// jobListener forwards runner events to the UI goroutine
type jobListener struct {
	ui *RootUI
}

var _ download.Listener = (*jobListener)(nil)

func (l *jobListener) OnOutput(text string) {
	fyne.Do(func() { l.ui.logView.Append(text) })
}

func (l *jobListener) OnProgress(percent int) {
	state := l.ui.runner.State()
	fyne.Do(func() {
		l.ui.progress.SetValue(float64(percent))
		l.ui.statusLabel.SetText(fmt.Sprintf(l.ui.localization.GetText(KeyProgressStatus), state.Current(), state.Total, percent))
	})
}

func (l *jobListener) OnError(message string) {
	fyne.Do(func() { l.ui.logView.AppendError(message) })
}

func (l *jobListener) OnFinished() {
	state := l.ui.runner.State()
	fyne.Do(func() {
		if state.Status == model.TaskStatusCompleted && state.Failed == 0 {
			l.ui.progress.SetValue(ProgressMaximum)
		}
		l.ui.statusLabel.SetText(fmt.Sprintf(l.ui.localization.GetText(KeyFinishedStatus), state.Status, state.Completed, state.Failed))
	})
}

package ui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/platform"
)

// URLExpander replaces playlist URLs with the URLs of their videos
type URLExpander interface {
	ExpandURLs(ctx context.Context, urls []string) ([]string, error)
}

// BatchTab holds the multi-URL list with its file and playlist actions
type BatchTab struct {
	window       fyne.Window
	localization *Localization
	settings     *config.Settings
	expander     URLExpander
	notify       func(string)

	hintLabel *widget.Label
	entry     *widget.Entry
	loadBtn   *widget.Button
	saveBtn   *widget.Button
	clearBtn  *widget.Button
	expandBtn *widget.Button

	content *fyne.Container
}

// NewBatchTab creates the batch tab; notify receives status lines for the log view
func NewBatchTab(window fyne.Window, localization *Localization, settings *config.Settings, expander URLExpander, notify func(string)) *BatchTab {
	b := &BatchTab{
		window:       window,
		localization: localization,
		settings:     settings,
		expander:     expander,
		notify:       notify,
	}
	b.createUI()
	return b
}

func (b *BatchTab) createUI() {
	b.hintLabel = widget.NewLabel("")
	b.entry = widget.NewMultiLineEntry()
	b.entry.SetMinRowsVisible(BatchMinRows)
	b.entry.Wrapping = fyne.TextWrapOff

	b.loadBtn = widget.NewButton("", b.onLoad)
	b.saveBtn = widget.NewButton("", b.onSave)
	b.clearBtn = widget.NewButton("", b.Clear)
	b.expandBtn = widget.NewButton("", b.onExpand)

	actions := container.NewHBox(b.loadBtn, b.saveBtn, b.clearBtn, b.expandBtn)
	b.content = container.NewBorder(b.hintLabel, actions, nil, nil, b.entry)
	b.RefreshTexts()
}

// Container returns the tab layout
func (b *BatchTab) Container() fyne.CanvasObject {
	return b.content
}

// RefreshTexts re-applies localized labels
func (b *BatchTab) RefreshTexts() {
	l := b.localization
	b.hintLabel.SetText(l.GetText(KeyBatchHint))
	b.loadBtn.SetText(l.GetText(KeyLoadList))
	b.saveBtn.SetText(l.GetText(KeySaveList))
	b.clearBtn.SetText(l.GetText(KeyClearList))
	b.expandBtn.SetText(l.GetText(KeyExpandPlaylists))
}

// URLs returns the non-blank, non-comment lines in order
func (b *BatchTab) URLs() []string {
	return platform.ParseURLList(b.entry.Text)
}

// SetURLs replaces the list content
func (b *BatchTab) SetURLs(urls []string) {
	b.entry.SetText(strings.Join(urls, "\n"))
}

// Clear empties the list
func (b *BatchTab) Clear() {
	b.entry.SetText("")
}

// SetEnabled locks the list while a job runs
func (b *BatchTab) SetEnabled(enabled bool) {
	for _, w := range []fyne.Disableable{b.entry, b.loadBtn, b.clearBtn, b.expandBtn} {
		setEnabled(w, enabled)
	}
}

// LoadFile replaces the list with the URLs of a batch file
func (b *BatchTab) LoadFile(path string) error {
	urls, err := platform.ReadURLList(path)
	if err != nil {
		return err
	}
	b.SetURLs(urls)
	b.settings.SetLastBatchFile(path)
	b.notify(fmt.Sprintf(b.localization.GetText(KeyListLoaded), len(urls), path) + "\n")
	return nil
}

// SaveFile writes the current list to a batch file
func (b *BatchTab) SaveFile(path string) error {
	urls := b.URLs()
	if err := platform.WriteURLList(path, urls); err != nil {
		return err
	}
	b.settings.SetLastBatchFile(path)
	b.notify(fmt.Sprintf(b.localization.GetText(KeyListSaved), len(urls), path) + "\n")
	return nil
}

// Expand resolves playlist URLs in the list; it blocks and must run off the UI goroutine
func (b *BatchTab) Expand(ctx context.Context, urls []string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, ExpandTimeout)
	defer cancel()
	return b.expander.ExpandURLs(ctx, urls)
}

func (b *BatchTab) onLoad() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()

		if err := b.LoadFile(path); err != nil {
			log.Printf("Failed to load URL list %s: %v", path, err)
			dialog.ShowError(err, b.window)
		}
	}, b.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".txt", ".list"}))
	b.startIn(d)
	d.Show()
}

func (b *BatchTab) onSave() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		path := w.URI().Path()
		w.Close()

		if err := b.SaveFile(path); err != nil {
			log.Printf("Failed to save URL list %s: %v", path, err)
			dialog.ShowError(err, b.window)
		}
	}, b.window)
	d.SetFileName("urls.txt")
	b.startIn(d)
	d.Show()
}

// startIn opens file dialogs next to the last used batch file
func (b *BatchTab) startIn(d *dialog.FileDialog) {
	last := b.settings.GetLastBatchFile()
	if last == "" {
		return
	}
	dir, err := storage.Parent(storage.NewFileURI(last))
	if err != nil {
		return
	}
	if lister, err := storage.ListerForURI(dir); err == nil {
		d.SetLocation(lister)
	}
}

func (b *BatchTab) onExpand() {
	urls := b.URLs()
	if len(urls) == 0 {
		return
	}

	b.expandBtn.Disable()
	b.notify(b.localization.GetText(KeyExpanding) + "\n")

	go func() {
		expanded, err := b.Expand(context.Background(), urls)
		fyne.Do(func() {
			b.expandBtn.Enable()
			if err != nil {
				log.Printf("Playlist expansion failed: %v", err)
				b.notify(fmt.Sprintf("%s: %v\n", b.localization.GetText(KeyExpandFailed), err))
				return
			}
			log.Printf("Expanded %d URL(s) into %d", len(urls), len(expanded))
			b.SetURLs(expanded)
		})
	}()
}

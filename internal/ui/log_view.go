package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// LogView is the monospace output pane. It must only be touched from the UI goroutine.
type LogView struct {
	entry    *widget.Entry
	maxBytes int
}

// NewLogView creates an empty log view
func NewLogView() *LogView {
	entry := widget.NewMultiLineEntry()
	entry.TextStyle = fyne.TextStyle{Monospace: true}
	entry.Wrapping = fyne.TextWrapOff
	entry.SetMinRowsVisible(LogMinRows)

	return &LogView{entry: entry, maxBytes: LogMaxBytes}
}

// Widget returns the canvas object to place in a layout
func (v *LogView) Widget() fyne.CanvasObject {
	return v.entry
}

// Append adds text at the end, dropping the oldest whole lines past the size limit,
// and keeps the cursor on the last line
func (v *LogView) Append(text string) {
	if text == "" {
		return
	}
	content := v.entry.Text + text
	if len(content) > v.maxBytes {
		cut := len(content) - v.maxBytes
		if i := strings.IndexByte(content[cut:], '\n'); i >= 0 {
			cut += i + 1
		}
		content = content[cut:]
	}
	v.entry.SetText(content)
	v.entry.CursorRow = strings.Count(content, "\n")
	v.entry.CursorColumn = 0
	v.entry.Refresh()
}

// AppendError adds a highlighted error line
func (v *LogView) AppendError(message string) {
	v.Append(LogErrorPrefix + strings.TrimRight(message, "\n") + "\n")
}

// Clear empties the log
func (v *LogView) Clear() {
	v.entry.SetText("")
}

// Text returns the current log content
func (v *LogView) Text() string {
	return v.entry.Text
}

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// lyricsEntry is a multi-line entry that passes the window's action
// shortcuts through. A focused widget.Entry consumes every shortcut, so
// without this Ctrl+S would not save while typing.
type lyricsEntry struct {
	widget.Entry

	onShortcut func(*desktop.CustomShortcut) bool
}

func newLyricsEntry(onShortcut func(*desktop.CustomShortcut) bool) *lyricsEntry {
	e := &lyricsEntry{onShortcut: onShortcut}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.PlaceHolder = "No lyrics"
	e.ExtendBaseWidget(e)
	return e
}

// TypedShortcut implements fyne.Shortcutable.
func (e *lyricsEntry) TypedShortcut(s fyne.Shortcut) {
	if cs, ok := s.(*desktop.CustomShortcut); ok && e.onShortcut != nil && e.onShortcut(cs) {
		return
	}
	e.Entry.TypedShortcut(s)
}

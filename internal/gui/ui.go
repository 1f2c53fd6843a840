package gui

import (
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/handiism/lyrics-editor/internal/config"
	"github.com/handiism/lyrics-editor/internal/editor"
	ioutils "github.com/handiism/lyrics-editor/internal/io"
	"github.com/handiism/lyrics-editor/internal/library"
	nativedialog "github.com/sqweek/dialog"
	"go.uber.org/zap"
)

// ArtworkReader returns the embedded cover of a file. *audio.Tagger
// implements it.
type ArtworkReader interface {
	ReadArtwork(path string) ([]byte, error)
}

// UI is the main window content.
type UI struct {
	window   fyne.Window
	session  *editor.Session
	artwork  ArtworkReader
	images   *ioutils.ImageService
	settings *config.Settings
	logger   *zap.Logger

	actions map[fyne.KeyName]func()

	folderLabel *widget.Label
	statusLabel *widget.Label
	list        *widget.List
	entry       *lyricsEntry
	cover       *canvas.Image

	browseButton *widget.Button
	saveButton   *widget.Button
	clearButton  *widget.Button
	prevButton   *widget.Button
	nextButton   *widget.Button

	// syncing is set while the UI itself updates the entry, so OnChanged
	// does not report the change as a user edit.
	syncing bool
	busy    bool
}

// NewUI builds the editor UI into window.
func NewUI(window fyne.Window, session *editor.Session, artwork ArtworkReader, settings *config.Settings, logger *zap.Logger) *UI {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ui := &UI{
		window:   window,
		session:  session,
		artwork:  artwork,
		images:   ioutils.NewImageService(),
		settings: settings,
		logger:   logger,
	}

	ui.actions = map[fyne.KeyName]func(){
		fyne.KeyO: ui.Browse,
		fyne.KeyS: ui.Save,
		fyne.KeyL: ui.Clear,
		fyne.KeyN: ui.Next,
		fyne.KeyP: ui.Previous,
	}

	window.SetContent(ui.build())
	ui.registerShortcuts()
	window.SetCloseIntercept(ui.confirmClose)
	ui.refresh()

	return ui
}

func (ui *UI) build() fyne.CanvasObject {
	ui.folderLabel = widget.NewLabel("No folder selected")
	ui.folderLabel.Truncation = fyne.TextTruncateEllipsis
	ui.statusLabel = widget.NewLabel("")

	ui.list = widget.NewList(
		func() int {
			return ui.session.Len()
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			entries := ui.session.Entries()
			if id < len(entries) {
				obj.(*widget.Label).SetText(entries[id].Label)
			}
		},
	)
	ui.list.OnSelected = func(id widget.ListItemID) {
		if !ui.busy && id != ui.session.Index() {
			ui.show(ui.session.Select(id))
			ui.loadSelection()
		}
	}

	ui.entry = newLyricsEntry(ui.handleShortcut)
	ui.entry.OnChanged = func(text string) {
		if ui.syncing {
			return
		}
		ui.session.Edit(text)
		ui.refreshStatus()
	}

	ui.cover = canvas.NewImageFromResource(nil)
	ui.cover.FillMode = canvas.ImageFillContain
	size := float32(ui.settings.ArtworkMaxSize)
	ui.cover.SetMinSize(fyne.NewSize(size, size))
	ui.cover.Hide()

	ui.browseButton = widget.NewButtonWithIcon("Browse", theme.FolderOpenIcon(), ui.Browse)
	ui.saveButton = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), ui.Save)
	ui.saveButton.Importance = widget.HighImportance
	ui.clearButton = widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), ui.Clear)
	ui.prevButton = widget.NewButtonWithIcon("Previous", theme.NavigateBackIcon(), ui.Previous)
	ui.nextButton = widget.NewButtonWithIcon("Next", theme.NavigateNextIcon(), ui.Next)

	top := container.NewBorder(nil, nil, nil, ui.browseButton, ui.folderLabel)
	buttons := container.NewHBox(ui.prevButton, ui.nextButton, ui.clearButton, ui.saveButton)
	bottom := container.NewBorder(nil, nil, ui.statusLabel, buttons)

	editorPane := container.NewBorder(container.NewCenter(ui.cover), nil, nil, nil, ui.entry)
	split := container.NewHSplit(ui.list, editorPane)
	split.Offset = 0.45

	return container.NewBorder(top, bottom, nil, nil, split)
}

func (ui *UI) registerShortcuts() {
	for key, action := range ui.actions {
		ui.window.Canvas().AddShortcut(
			&desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault},
			func(fyne.Shortcut) { action() },
		)
	}
}

func (ui *UI) handleShortcut(s *desktop.CustomShortcut) bool {
	if s.Modifier != fyne.KeyModifierShortcutDefault {
		return false
	}
	action, ok := ui.actions[s.KeyName]
	if !ok {
		return false
	}
	action()
	return true
}

// Browse asks for a folder and opens it.
//
// The native OS dialog is tried first when enabled; Fyne's own folder
// dialog is the fallback when it is disabled or fails.
func (ui *UI) Browse() {
	if ui.busy {
		return
	}

	start := ui.session.Folder()
	if start == "" {
		start = ui.settings.StartFolder
	}

	if ui.settings.NativeDialog {
		go func() {
			dir, err := nativedialog.Directory().Title("Select Folder").SetStartDir(start).Browse()
			fyne.Do(func() {
				switch {
				case err == nil && dir != "":
					ui.OpenFolder(dir)
				case errors.Is(err, nativedialog.ErrCancelled):
				default:
					ui.logger.Debug("native folder dialog failed, using fyne dialog", zap.Error(err))
					ui.browseFyne(start)
				}
			})
		}()
		return
	}

	ui.browseFyne(start)
}

func (ui *UI) browseFyne(start string) {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			ui.show(err)
			return
		}
		if uri != nil {
			ui.OpenFolder(uri.Path())
		}
	}, ui.window)

	if start != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(start)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}

// OpenFolder scans dir in the background and shows its files.
// Controls are disabled until the scan finishes.
//
// Only the scan runs off the UI goroutine; the session is updated in
// folderScanned, on the UI goroutine.
func (ui *UI) OpenFolder(dir string) {
	ui.busy = true
	ui.refresh()

	progress := dialog.NewCustomWithoutButtons("Reading metadata",
		container.NewVBox(widget.NewLabel(dir), widget.NewProgressBarInfinite()), ui.window)
	progress.Show()

	go func() {
		entries, err := ui.session.Scan(context.Background(), dir)
		fyne.Do(func() {
			progress.Hide()
			ui.folderScanned(dir, entries, err)
		})
	}()
}

// folderScanned applies a finished scan to the session and the widgets.
func (ui *UI) folderScanned(dir string, entries []library.Entry, err error) {
	if err == nil {
		err = ui.session.Load(dir, entries)
	}
	ui.folderOpened(err)
}

// folderOpened updates the widgets after the session's folder changed.
func (ui *UI) folderOpened(err error) {
	ui.busy = false

	ui.list.UnselectAll()
	ui.list.Refresh()
	ui.loadSelection()
	ui.show(err)

	if folder := ui.session.Folder(); folder != "" {
		ui.window.SetTitle("Lyrics Editor - " + folder)
	}
}

// Save writes the edited lyrics to the selected file.
func (ui *UI) Save() {
	if ui.busy {
		return
	}
	if err := ui.session.Save(); err != nil {
		ui.show(err)
		ui.refreshStatus()
		return
	}

	ui.syncEntry()
	ui.refreshStatus()
	if entry, ok := ui.session.Current(); ok {
		ui.showNotice(editor.SavedNotice(entry.Track.Name()))
	}
}

// Clear empties the editor. The file keeps its lyrics until Save.
func (ui *UI) Clear() {
	if ui.busy {
		return
	}
	ui.show(ui.session.Clear())
	ui.syncEntry()
	ui.refreshStatus()
}

// Next selects the following file.
func (ui *UI) Next() {
	if ui.busy {
		return
	}
	ui.show(ui.session.Next())
	ui.loadSelection()
}

// Previous selects the preceding file.
func (ui *UI) Previous() {
	if ui.busy {
		return
	}
	ui.show(ui.session.Previous())
	ui.loadSelection()
}

// loadSelection brings the list, entry and cover in line with the
// session's selection.
func (ui *UI) loadSelection() {
	if i := ui.session.Index(); i >= 0 {
		ui.list.Select(i)
		ui.list.ScrollTo(i)
	}
	ui.syncEntry()
	ui.loadCover()
	ui.refresh()
}

func (ui *UI) syncEntry() {
	ui.syncing = true
	ui.entry.SetText(ui.session.Pending())
	ui.syncing = false
}

func (ui *UI) loadCover() {
	entry, ok := ui.session.Current()
	if !ok || !ui.settings.ShowArtwork || ui.artwork == nil {
		ui.cover.Hide()
		return
	}

	data, err := ui.artwork.ReadArtwork(entry.Track.Path)
	if err != nil || len(data) == 0 {
		ui.cover.Hide()
		return
	}

	size := ui.settings.ArtworkMaxSize * 2 // room for HiDPI scaling
	if resized, err := ui.images.ResizeImage(context.Background(), data, size, size); err == nil {
		data = resized
	} else {
		ui.logger.Debug("cover resize failed", zap.String("file", entry.Track.Path), zap.Error(err))
	}

	ui.cover.Resource = fyne.NewStaticResource("cover-"+entry.Track.Name(), data)
	ui.cover.Show()
	ui.cover.Refresh()
}

// refresh enables the controls that apply to the current state.
func (ui *UI) refresh() {
	loaded := ui.session.Len() > 0 && !ui.busy

	if folder := ui.session.Folder(); folder != "" {
		ui.folderLabel.SetText(folder)
	}

	setEnabled(ui.browseButton, !ui.busy)
	setEnabled(ui.saveButton, loaded)
	setEnabled(ui.clearButton, loaded)
	setEnabled(ui.prevButton, loaded)
	setEnabled(ui.nextButton, loaded)
	if loaded {
		ui.entry.Enable()
	} else {
		ui.entry.Disable()
	}

	ui.refreshStatus()
}

func (ui *UI) refreshStatus() {
	if ui.session.Len() == 0 {
		ui.statusLabel.SetText("")
		return
	}
	status := fmt.Sprintf("%d / %d", ui.session.Index()+1, ui.session.Len())
	if ui.session.Dirty() {
		status += " • unsaved changes"
	}
	ui.statusLabel.SetText(status)
}

// show displays the notice for err, if any.
func (ui *UI) show(err error) {
	if n, ok := editor.NoticeFor(err); ok {
		if n.Level == editor.LevelError {
			ui.logger.Warn(n.Title, zap.Error(err))
		}
		ui.showNotice(n)
	}
}

func (ui *UI) showNotice(n editor.Notice) {
	dialog.ShowInformation(n.Title, n.Message, ui.window)
}

// confirmClose asks before discarding unsaved edits.
func (ui *UI) confirmClose() {
	if !ui.session.Dirty() {
		ui.window.Close()
		return
	}
	dialog.ShowConfirm("Unsaved changes",
		"The lyrics of the selected file have not been saved. Quit anyway?",
		func(quit bool) {
			if quit {
				ui.window.Close()
			}
		}, ui.window)
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

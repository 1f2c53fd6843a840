package editor

import (
	"context"
	"errors"
	"strings"

	"github.com/handiism/lyrics-editor/internal/library"
	"go.uber.org/zap"
)

// Navigation and selection errors. They carry no file and are reported as
// informational notices.
var (
	ErrNoAudioFiles = errors.New("no supported audio files found in the selected folder")
	ErrNoSelection  = errors.New("no file selected")
	ErrLastFile     = errors.New("this is the last file")
	ErrFirstFile    = errors.New("this is the first file")
)

// State is the editing state of the selected file.
type State int

const (
	// Unselected means no file is selected.
	Unselected State = iota
	// Loaded means the lyrics shown are the ones read from the file.
	Loaded
	// Edited means the pending text differs from what was read or saved.
	Edited
	// Saved means the pending text was just written to the file.
	Saved
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Edited:
		return "edited"
	case Saved:
		return "saved"
	default:
		return "unselected"
	}
}

// LyricsStore reads and writes the lyrics of one file. *audio.Tagger
// implements it.
type LyricsStore interface {
	ReadLyrics(path string) (string, error)
	WriteLyrics(path, text string) error
}

// FolderScanner produces the sorted entries of a folder.
// *library.Scanner implements it.
type FolderScanner interface {
	Scan(ctx context.Context, dir string) ([]library.Entry, error)
}

// Session is the application state of one editor window.
type Session struct {
	scanner FolderScanner
	store   LyricsStore
	logger  *zap.Logger

	folder  string
	entries []library.Entry
	index   int
	state   State

	// payload is the lyrics value as last read from or written to the file.
	payload string
	// pending is the text in the editor.
	pending string
}

// NewSession creates an empty Session. logger may be nil.
func NewSession(scanner FolderScanner, store LyricsStore, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		scanner: scanner,
		store:   store,
		logger:  logger,
		index:   -1,
	}
}

// Folder returns the currently opened folder, or "" if none.
func (s *Session) Folder() string { return s.folder }

// Entries returns the sorted entries of the opened folder.
// The slice must not be modified.
func (s *Session) Entries() []library.Entry { return s.entries }

// Len returns the number of entries.
func (s *Session) Len() int { return len(s.entries) }

// Index returns the selected entry index, or -1 if nothing is selected.
func (s *Session) Index() int { return s.index }

// Current returns the selected entry.
func (s *Session) Current() (library.Entry, bool) {
	if s.index < 0 || s.index >= len(s.entries) {
		return library.Entry{}, false
	}
	return s.entries[s.index], true
}

// State returns the editing state of the selected file.
func (s *Session) State() State { return s.state }

// Payload returns the lyrics as last read from or saved to the file.
func (s *Session) Payload() string { return s.payload }

// Pending returns the text currently being edited.
func (s *Session) Pending() string { return s.pending }

// Dirty reports whether there is edited text that has not been saved.
func (s *Session) Dirty() bool { return s.state == Edited }

// OpenFolder scans dir and selects its first entry. It is Scan followed
// by Load.
func (s *Session) OpenFolder(ctx context.Context, dir string) error {
	entries, err := s.Scan(ctx, dir)
	if err != nil {
		return err
	}
	return s.Load(dir, entries)
}

// Scan reads the sorted entries of dir without touching the session state,
// so it may run off the goroutine that owns the session. Pass the result
// to Load on the owning goroutine.
func (s *Session) Scan(ctx context.Context, dir string) ([]library.Entry, error) {
	return s.scanner.Scan(ctx, dir)
}

// Load replaces the folder with dir and its scanned entries and selects the
// first entry.
//
// If entries is empty the previous folder and selection are kept and
// ErrNoAudioFiles is returned. A lyrics read failure on the first entry
// does not undo the load; it is returned after the folder has been
// replaced.
func (s *Session) Load(dir string, entries []library.Entry) error {
	if len(entries) == 0 {
		return ErrNoAudioFiles
	}

	s.folder = dir
	s.entries = entries
	s.index = -1
	s.state = Unselected
	s.payload, s.pending = "", ""

	s.logger.Info("opened folder", zap.String("dir", dir), zap.Int("files", len(entries)))
	return s.Select(0)
}

// Select makes entry i current and loads its lyrics.
//
// Unsaved edits are discarded. On a read failure the session still moves
// to Loaded with empty lyrics, and the error is returned for display.
func (s *Session) Select(i int) error {
	if i < 0 || i >= len(s.entries) {
		return ErrNoSelection
	}

	s.index = i
	s.state = Loaded

	path := s.entries[i].Track.Path
	lyrics, err := s.store.ReadLyrics(path)
	if err != nil {
		lyrics = ""
	}
	s.payload, s.pending = lyrics, lyrics
	return err
}

// Edit replaces the pending text. It is ignored when nothing is selected.
func (s *Session) Edit(text string) {
	if s.state == Unselected {
		return
	}
	s.pending = text
	s.state = Edited
}

// Clear empties the pending text. The file is not modified until Save.
func (s *Session) Clear() error {
	if s.state == Unselected {
		return ErrNoSelection
	}
	s.Edit("")
	return nil
}

// Save writes the pending text to the selected file.
//
// On success the session moves to Saved and Payload holds the text as
// stored, trimmed of surrounding whitespace. On failure it stays Edited.
func (s *Session) Save() error {
	entry, ok := s.Current()
	if !ok || s.state == Unselected {
		return ErrNoSelection
	}

	if err := s.store.WriteLyrics(entry.Track.Path, s.pending); err != nil {
		s.state = Edited
		return err
	}

	s.payload = strings.TrimSpace(s.pending)
	s.state = Saved
	return nil
}

// Next selects the following entry.
func (s *Session) Next() error {
	if s.index < 0 {
		return ErrNoSelection
	}
	if s.index+1 >= len(s.entries) {
		return ErrLastFile
	}
	return s.Select(s.index + 1)
}

// Previous selects the preceding entry.
func (s *Session) Previous() error {
	if s.index < 0 {
		return ErrNoSelection
	}
	if s.index == 0 {
		return ErrFirstFile
	}
	return s.Select(s.index - 1)
}

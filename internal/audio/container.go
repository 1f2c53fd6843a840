package audio

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/handiism/lyrics-editor/internal/model"
)

// Container reads and writes the single lyrics value of one audio file.
//
// The concrete variant is chosen once, when the container is opened:
//   - frame-based (ID3v2 USLT frame) for MP3
//   - key-value ("LYRICS" key) for FLAC, OGG, M4A and WAV
//
// Implementations perform their own file I/O on each call and hold no open
// file handles between calls.
type Container interface {
	// ReadLyrics returns the stored lyrics, or "" if none are stored.
	ReadLyrics() (string, error)

	// WriteLyrics replaces the stored lyrics with text, leaving every other
	// tag in the file untouched.
	WriteLyrics(text string) error
}

// OpenContainer returns the Container variant for path.
//
// Only the extension is inspected here; unreadable files are reported by
// the first ReadLyrics or WriteLyrics call. Unsupported extensions return
// an error of kind ContainerUnreadable.
func OpenContainer(path string, cfg *TagConfig) (Container, error) {
	if cfg == nil {
		cfg = DefaultTagConfig()
	}

	switch model.FormatFromPath(path) {
	case model.FormatMP3:
		return &id3Container{path: path, language: cfg.Language, description: cfg.Description}, nil
	case model.FormatFLAC:
		return &flacContainer{path: path, key: cfg.LyricsKey}, nil
	case model.FormatOGG, model.FormatM4A, model.FormatWAV:
		return &taglibContainer{path: path, key: cfg.LyricsKey}, nil
	default:
		return nil, errorf(ContainerUnreadable, "open", path, "unsupported file type %q", filepath.Ext(path))
	}
}

// ContainerKindOf reports which container variant OpenContainer picks for path.
func ContainerKindOf(path string) model.ContainerKind {
	return model.FormatFromPath(path).Container()
}

// classifyOpenError maps an error from opening or parsing a file to an
// ErrorKind: missing or unreadable files are FileNotAccessible, anything
// else means the container itself could not be parsed.
func classifyOpenError(op, path string, err error) *Error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return newError(FileNotAccessible, op, path, err)
	}
	return newError(ContainerUnreadable, op, path, err)
}

// lookupKey returns the first value stored under key, ignoring key case as
// Vorbis comments and TagLib property maps do.
func lookupKey(values map[string][]string, key string) (string, bool) {
	if v, ok := values[strings.ToUpper(key)]; ok && len(v) > 0 {
		return v[0], true
	}
	for k, v := range values {
		if strings.EqualFold(k, key) && len(v) > 0 {
			return v[0], true
		}
	}
	return "", false
}

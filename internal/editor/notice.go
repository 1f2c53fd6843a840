package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/handiism/lyrics-editor/internal/audio"
)

// Level is the severity of a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a message for the user, shown as a dialog or status line.
type Notice struct {
	Title   string
	Message string
	Level   Level
}

// NoticeFor turns an error returned by a Session operation into a Notice.
// It returns false for a nil error.
func NoticeFor(err error) (Notice, bool) {
	if err == nil {
		return Notice{}, false
	}

	switch {
	case errors.Is(err, ErrLastFile), errors.Is(err, ErrFirstFile):
		return Notice{Title: "Info", Message: capitalize(err.Error()) + ".", Level: LevelInfo}, true
	case errors.Is(err, ErrNoAudioFiles), errors.Is(err, ErrNoSelection):
		return Notice{Title: "Warning", Message: capitalize(err.Error()) + ".", Level: LevelWarning}, true
	case errors.Is(err, context.Canceled):
		return Notice{Title: "Info", Message: "Operation cancelled.", Level: LevelInfo}, true
	}

	var aerr *audio.Error
	if !errors.As(err, &aerr) {
		return Notice{Title: "Error", Message: fmt.Sprintf("An unexpected error occurred: %v", err), Level: LevelError}, true
	}

	switch aerr.Kind {
	case audio.FileNotAccessible:
		return Notice{
			Title:   "File Error",
			Message: fmt.Sprintf("The file %s does not exist or cannot be written.", aerr.Path),
			Level:   LevelError,
		}, true
	case audio.ContainerUnreadable:
		return Notice{
			Title:   "Metadata Error",
			Message: fmt.Sprintf("Could not read the tags of %s. The file may be corrupt or unsupported.", aerr.Path),
			Level:   LevelError,
		}, true
	case audio.MetadataWriteFailure:
		return Notice{
			Title:   "Metadata Error",
			Message: fmt.Sprintf("Failed to save lyrics to %s: %v", aerr.Path, aerr.Err),
			Level:   LevelError,
		}, true
	default:
		return Notice{Title: "Error", Message: fmt.Sprintf("An unexpected error occurred: %v", err), Level: LevelError}, true
	}
}

// SavedNotice is shown after a successful Save.
func SavedNotice(path string) Notice {
	return Notice{Title: "Success", Message: fmt.Sprintf("Lyrics saved to %s.", path), Level: LevelInfo}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

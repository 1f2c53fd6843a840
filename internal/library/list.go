package library

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/handiism/lyrics-editor/internal/audio"
	"github.com/handiism/lyrics-editor/internal/model"
)

// ListAudioFiles returns the paths of the supported audio files directly
// inside dir, in lexical order of file name.
//
// Sub-directories are not descended into. Extension matching ignores case.
// If dir cannot be read the error is an *audio.Error of kind
// FileNotAccessible.
func ListAudioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &audio.Error{Kind: audio.FileNotAccessible, Op: "list folder", Path: dir, Err: err}
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !model.IsSupported(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	// os.ReadDir already sorts by name; keep the guarantee explicit.
	sort.Strings(paths)
	return paths, nil
}

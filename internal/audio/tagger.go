package audio

import (
	"strings"

	ioutils "github.com/handiism/lyrics-editor/internal/io"
	"go.uber.org/zap"
)

// TagConfig holds the tag conventions used to locate the lyrics value.
//
// Example:
//
//	cfg := &TagConfig{
//	    Language:    "eng", // USLT language code (ISO 639-2)
//	    Description: "",    // USLT content descriptor
//	    LyricsKey:   "LYRICS",
//	}
type TagConfig struct {
	// Language is the three-letter language code of the USLT frame.
	Language string

	// Description is the content descriptor of the USLT frame.
	Description string

	// LyricsKey is the key used by key-value containers. Matching ignores case.
	LyricsKey string
}

// DefaultTagConfig returns the default tag conventions: USLT frame with
// language "eng" and an empty description, and the "LYRICS" key.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		Language:    "eng",
		Description: "",
		LyricsKey:   "LYRICS",
	}
}

// Tagger reads and writes lyrics and reads the metadata used for sorting
// and labelling.
//
// Tagger dispatches on the file's container kind:
//   - MP3: ID3v2 USLT frame (bogem/id3v2)
//   - FLAC: Vorbis comment (go-flac, flacvorbis)
//   - OGG, M4A, WAV: TagLib property map (go.senan.xyz/taglib)
//
// Every error it returns is an *Error carrying an ErrorKind.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig(), logger)
//
//	lyrics, err := tagger.ReadLyrics(path)
//	if err != nil {
//	    log.Printf("reading %s: %v", path, err) // lyrics == ""
//	}
//	err = tagger.WriteLyrics(path, "new lyrics")
type Tagger struct {
	config *TagConfig
	logger *zap.Logger
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used. If logger is nil, logging
// is disabled.
func NewTagger(config *TagConfig, logger *zap.Logger) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tagger{config: config, logger: logger}
}

// Open returns the lyrics Container for path.
func (t *Tagger) Open(path string) (Container, error) {
	return OpenContainer(path, t.config)
}

// ReadLyrics returns the lyrics stored in path, or "" if there are none.
// On error the returned lyrics are always "".
func (t *Tagger) ReadLyrics(path string) (string, error) {
	c, err := t.Open(path)
	if err != nil {
		return "", err
	}

	lyrics, err := c.ReadLyrics()
	if err != nil {
		t.logger.Warn("failed to read lyrics", zap.String("file", path), zap.Error(err))
		return "", err
	}

	t.logger.Debug("read lyrics",
		zap.String("file", path),
		zap.Stringer("container", ContainerKindOf(path)),
		zap.Int("length", len(lyrics)))
	return lyrics, nil
}

// WriteLyrics stores text as the lyrics of path.
//
// Leading and trailing whitespace is trimmed; an empty string clears the
// lyrics. Before anything is modified the file must exist and be writable,
// otherwise an error of kind FileNotAccessible is returned and the file is
// left untouched. Failures while saving return MetadataWriteFailure.
func (t *Tagger) WriteLyrics(path, text string) error {
	if err := ioutils.CheckWritable(path); err != nil {
		return newError(FileNotAccessible, "write lyrics", path, err)
	}

	c, err := t.Open(path)
	if err != nil {
		return err
	}

	text = strings.TrimSpace(text)
	if err := c.WriteLyrics(text); err != nil {
		t.logger.Error("failed to write lyrics", zap.String("file", path), zap.Error(err))
		return err
	}

	t.logger.Info("wrote lyrics",
		zap.String("file", path),
		zap.Stringer("container", ContainerKindOf(path)),
		zap.Int("length", len(text)))
	return nil
}

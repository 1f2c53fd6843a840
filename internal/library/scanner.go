package library

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/handiism/lyrics-editor/internal/audio"
	"github.com/handiism/lyrics-editor/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a scan progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// FieldReader reads the metadata fields of one file. *audio.Tagger
// implements it.
type FieldReader interface {
	ReadFields(path string) (model.Fields, error)
}

// Entry is one file of a scanned folder.
type Entry struct {
	Track model.Track
	Key   model.SortKey
	Label string

	// Err is the metadata read failure, if any. Such entries carry the
	// all-sentinel key and a fallback label.
	Err error
}

// Options configures a Scanner.
type Options struct {
	// Workers bounds the number of files read concurrently. Values below
	// 1 mean 1.
	Workers int
}

// Scanner reads and orders the audio files of a folder.
type Scanner struct {
	reader     FieldReader
	workers    int
	logger     *zap.Logger
	onProgress func(ProgressEvent)
}

// NewScanner creates a new Scanner. logger and onProgress may be nil.
// onProgress is called from the scan workers and must be safe for
// concurrent use.
func NewScanner(reader FieldReader, opts Options, logger *zap.Logger, onProgress func(ProgressEvent)) *Scanner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		reader:     reader,
		workers:    opts.Workers,
		logger:     logger,
		onProgress: onProgress,
	}
}

// Scan lists dir and returns its entries sorted ascending by SortKey.
//
// Reads run on a bounded pool, but every result is stored at the index of
// its file in the listing and the sort is stable, so the order is the one
// a sequential scan would produce: ties keep file name order.
//
// A failure to read one file never aborts the scan. Only an unreadable
// folder or a cancelled ctx return an error.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]Entry, error) {
	paths, err := ListAudioFiles(dir)
	if err != nil {
		s.progress(ProgressEvent{Message: fmt.Sprintf("Cannot open folder %s: %v", dir, err), Level: LevelError})
		return nil, err
	}

	s.progress(ProgressEvent{Message: fmt.Sprintf("Found %d audio files in %s", len(paths), dir), Level: LevelInfo})

	entries := make([]Entry, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries[i] = s.readEntry(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Key.Less(entries[j].Key)
	})

	var failed int
	for _, e := range entries {
		if e.Err != nil {
			failed++
		}
	}
	s.progress(ProgressEvent{
		Message: fmt.Sprintf("Scanned %d files (%d unreadable)", len(entries), failed),
		Level:   LevelSuccess,
	})

	s.logger.Info("scanned folder", zap.String("dir", dir), zap.Int("files", len(entries)), zap.Int("failed", failed))
	return entries, nil
}

func (s *Scanner) readEntry(path string) Entry {
	entry := Entry{Track: model.NewTrack(path)}

	fields, err := s.reader.ReadFields(path)
	if err != nil {
		entry.Key = model.UnreadableSortKey()
		entry.Err = err

		if errors.Is(err, audio.ErrContainerUnreadable) {
			entry.Label = model.UnsupportedLabel(path)
		} else {
			entry.Label = model.ErrorLabel(path)
		}

		s.logger.Warn("failed to read metadata", zap.String("file", path), zap.Error(err))
		s.progress(ProgressEvent{Message: fmt.Sprintf("Could not read %s: %v", entry.Track.Name(), err), Level: LevelWarning})
		return entry
	}

	entry.Key = model.NewSortKey(fields)
	entry.Label = model.Label(fields)
	s.progress(ProgressEvent{Message: fmt.Sprintf("Read %s", entry.Track.Name()), Level: LevelVerbose})
	return entry
}

func (s *Scanner) progress(event ProgressEvent) {
	if s.onProgress != nil {
		s.onProgress(event)
	}
}

package model

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Sentinel values substituted for missing or unparseable metadata so that
// such files sort after every well-tagged file.
const (
	SentinelText   = "zzzzzz"
	SentinelNumber = 9999
)

// Placeholders used by Label when a field is absent.
const (
	UnknownArtist = "(Unknown Artist)"
	UnknownAlbum  = "(Unknown Album)"
	UnknownTitle  = "(Unknown Title)"
	UnknownNumber = "?"
)

// Fields holds the raw metadata strings a file's tag container exposes.
//
// An empty string means the field is absent. Values are kept exactly as
// stored: Date may be "1977", "1977-01-14" or garbage, TrackNumber may be
// "3" or "3/12".
type Fields struct {
	Artist      string
	Album       string
	Title       string
	Date        string
	TrackNumber string
}

// Year returns the integer in the first four characters of Date.
// ok is false if Date is empty or does not parse.
func (f Fields) Year() (year int, ok bool) {
	s := f.Date
	if len(s) > 4 {
		s = s[:4]
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Track returns the track number, taking the numerator of "N/total" forms.
// ok is false if TrackNumber is empty or does not parse.
func (f Fields) Track() (track int, ok bool) {
	s := f.TrackNumber
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// SortKey orders files by artist, year, album and track number.
//
// Text components are lower-cased. Each component falls back to its
// sentinel independently, so a file missing only its year still sorts
// among the artist's other albums.
type SortKey struct {
	Artist string
	Year   int
	Album  string
	Track  int
}

// NewSortKey derives the SortKey for a file's Fields.
func NewSortKey(f Fields) SortKey {
	key := UnreadableSortKey()

	if f.Artist != "" {
		key.Artist = strings.ToLower(f.Artist)
	}
	if f.Album != "" {
		key.Album = strings.ToLower(f.Album)
	}
	if year, ok := f.Year(); ok {
		key.Year = year
	}
	if track, ok := f.Track(); ok {
		key.Track = track
	}

	return key
}

// UnreadableSortKey is the key of a file whose metadata could not be read:
// every component holds its sentinel.
func UnreadableSortKey() SortKey {
	return SortKey{
		Artist: SentinelText,
		Year:   SentinelNumber,
		Album:  SentinelText,
		Track:  SentinelNumber,
	}
}

// Less reports whether k sorts before other, comparing components in
// declaration order.
func (k SortKey) Less(other SortKey) bool {
	if k.Artist != other.Artist {
		return k.Artist < other.Artist
	}
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Album != other.Album {
		return k.Album < other.Album
	}
	return k.Track < other.Track
}

// Label builds the one-line description shown in file lists:
//
//	Bowie | 1977 Low | Track 1. Speed of Life
//
// Absent fields are replaced by placeholders.
func Label(f Fields) string {
	artist := orDefault(f.Artist, UnknownArtist)
	album := orDefault(f.Album, UnknownAlbum)
	title := orDefault(f.Title, UnknownTitle)

	year := UnknownNumber
	if f.Date != "" {
		year = f.Date
		if r := []rune(year); len(r) > 4 {
			year = string(r[:4])
		}
	}

	track := orDefault(f.TrackNumber, UnknownNumber)

	return fmt.Sprintf("%s | %s %s | Track %s. %s", artist, year, album, track, title)
}

// UnsupportedLabel labels a file whose tag container could not be opened.
func UnsupportedLabel(path string) string {
	return filepath.Base(path) + " (Unsupported/Corrupt)"
}

// ErrorLabel labels a file whose metadata read failed for any other reason.
func ErrorLabel(path string) string {
	return filepath.Base(path) + " (Error reading metadata)"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines carrying the display label.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS
)

// ParsePlaylistFormat maps a settings value ("m3u", "pls") to a
// PlaylistFormat. Unknown values fall back to FormatM3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	if strings.EqualFold(s, "pls") {
		return FormatPLS
	}
	return FormatM3U
}

// Extension returns the file extension for the playlist format, including the dot.
func (f PlaylistFormat) Extension() string {
	if f == FormatPLS {
		return ".pls"
	}
	return ".m3u"
}

// PlaylistEntry is one line of a playlist.
type PlaylistEntry struct {
	// Path is written as given. Use EntryPath to make it relative to the
	// playlist file.
	Path string

	// Title is the human-readable label for the entry.
	Title string
}

// PlaylistCreator renders a folder listing, in its sorted order, as a
// playlist.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(entries)
//	os.WriteFile(filepath.Join(dir, "folder.m3u"), []byte(content), 0644)
//
//	// with entries built as
//	// PlaylistEntry{Path: EntryPath(filepath.Join(dir, "folder.m3u"), track), Title: label}
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Bowie | 1977 Low | Track 1. Speed of Life
//	// 01 Speed of Life.flac
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with the entry title
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended only affects FormatM3U.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates playlist content for entries, keeping their order.
func (p *PlaylistCreator) CreatePlaylist(entries []PlaylistEntry) string {
	if p.format == FormatPLS {
		return p.createPLS(entries)
	}
	return p.createM3U(entries)
}

// createM3U generates an M3U playlist. The duration field of EXTINF is -1
// because durations are never read.
func (p *PlaylistCreator) createM3U(entries []PlaylistEntry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, entry := range entries {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", oneLine(entry.Title)))
		}
		sb.WriteString(entry.Path + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=filename1.mp3
//	Title1=Song Title
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(entries []PlaylistEntry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, entry := range entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, entry.Path))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, oneLine(entry.Title)))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// EntryPath returns track as a playlist entry for a playlist saved at
// playlist: relative to the playlist's directory with forward slashes, or
// the absolute track path when no relative path exists.
func EntryPath(playlist, track string) string {
	absTrack, err := filepath.Abs(track)
	if err != nil {
		return track
	}
	absPlaylist, err := filepath.Abs(playlist)
	if err != nil {
		return absTrack
	}
	rel, err := filepath.Rel(filepath.Dir(absPlaylist), absTrack)
	if err != nil {
		return absTrack
	}
	return filepath.ToSlash(rel)
}

// oneLine replaces line breaks, which would split a playlist record.
func oneLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

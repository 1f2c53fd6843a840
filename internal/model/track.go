package model

import (
	"path/filepath"
	"strings"
)

// Format identifies the audio container of a file, inferred from its extension.
//
// Each format maps to one tag container kind:
//   - MP3: ID3v2 frames (frame-based)
//   - FLAC, OGG: Vorbis comments (key-value)
//   - M4A: MP4 atoms exposed as a property map (key-value)
//   - WAV: RIFF INFO / ID3 chunk exposed as a property map (key-value)
type Format int

const (
	// FormatUnknown is any extension outside the supported allow-list.
	FormatUnknown Format = iota

	// FormatFLAC is a .flac file.
	FormatFLAC

	// FormatMP3 is a .mp3 file.
	FormatMP3

	// FormatM4A is a .m4a file.
	FormatM4A

	// FormatOGG is a .ogg file.
	FormatOGG

	// FormatWAV is a .wav file.
	FormatWAV
)

// formats lists every supported Format.
var formats = []Format{FormatFLAC, FormatMP3, FormatM4A, FormatOGG, FormatWAV}

// FormatFromPath infers the Format from the file extension, ignoring case.
//
// Example:
//
//	FormatFromPath("/music/01 Song.MP3") // FormatMP3
//	FormatFromPath("/music/cover.jpg")   // FormatUnknown
func FormatFromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range formats {
		if f.Extension() == ext {
			return f
		}
	}
	return FormatUnknown
}

// IsSupported returns true if the path has the extension of a supported Format.
func IsSupported(path string) bool {
	return FormatFromPath(path) != FormatUnknown
}

// Extension returns the canonical extension for the format, including the dot.
// FormatUnknown returns an empty string.
func (f Format) Extension() string {
	switch f {
	case FormatFLAC:
		return ".flac"
	case FormatMP3:
		return ".mp3"
	case FormatM4A:
		return ".m4a"
	case FormatOGG:
		return ".ogg"
	case FormatWAV:
		return ".wav"
	default:
		return ""
	}
}

func (f Format) String() string {
	switch f {
	case FormatFLAC:
		return "FLAC"
	case FormatMP3:
		return "MP3"
	case FormatM4A:
		return "M4A"
	case FormatOGG:
		return "OGG"
	case FormatWAV:
		return "WAV"
	default:
		return "unknown"
	}
}

// Container returns the tag container kind used to store lyrics for the format.
func (f Format) Container() ContainerKind {
	if f == FormatMP3 {
		return ContainerFrame
	}
	return ContainerKeyValue
}

// ContainerKind distinguishes how a tag container stores lyrics.
type ContainerKind int

const (
	// ContainerKeyValue stores lyrics under a "LYRICS" key in a
	// key to value-list map (Vorbis comments, TagLib property maps).
	ContainerKeyValue ContainerKind = iota

	// ContainerFrame stores lyrics in a typed frame identified by code,
	// language and description (ID3v2 USLT).
	ContainerFrame
)

func (k ContainerKind) String() string {
	if k == ContainerFrame {
		return "frame"
	}
	return "key-value"
}

// Track identifies one audio file on disk.
//
// A Track is cheap to build and carries no metadata: sort keys and labels
// are derived from the file each time a folder is scanned.
type Track struct {
	// Path is the full path to the audio file.
	Path string

	// Format is inferred from the extension of Path.
	Format Format
}

// NewTrack creates a Track for path, inferring its Format.
func NewTrack(path string) Track {
	return Track{
		Path:   path,
		Format: FormatFromPath(path),
	}
}

// Name returns the base file name of the track.
func (t Track) Name() string {
	return filepath.Base(t.Path)
}

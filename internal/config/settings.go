package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/handiism/lyrics-editor/internal/audio"
	ioutils "github.com/handiism/lyrics-editor/internal/io"
	"github.com/handiism/lyrics-editor/internal/library"
	"github.com/handiism/lyrics-editor/internal/logging"
)

// AppName names the settings directory under the user config dir.
const AppName = "lyrics-editor"

// Settings holds all configuration options.
type Settings struct {
	// Logging
	LogLevel string `json:"log_level"` // debug, info, warn, error
	LogFile  string `json:"log_file"`  // empty logs to stderr

	// Folder scanning
	ScanWorkers int    `json:"scan_workers"`
	StartFolder string `json:"start_folder"`

	// Tag conventions
	LyricsLanguage string `json:"lyrics_language"` // USLT language code
	LyricsKey      string `json:"lyrics_key"`      // key-value containers

	// Window settings
	ShowArtwork    bool `json:"show_artwork"`
	ArtworkMaxSize int  `json:"artwork_max_size"`
	NativeDialog   bool `json:"native_dialog"`
	WindowWidth    int  `json:"window_width"`
	WindowHeight   int  `json:"window_height"`

	// Playlist export
	PlaylistFormat string `json:"playlist_format"` // m3u, pls
	M3UExtended    bool   `json:"m3u_extended"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		LogLevel: "info",

		ScanWorkers: 4,
		StartFolder: filepath.Join(homeDir, "Music"),

		LyricsLanguage: "eng",
		LyricsKey:      "LYRICS",

		ShowArtwork:    true,
		ArtworkMaxSize: 160,
		NativeDialog:   true,
		WindowWidth:    900,
		WindowHeight:   600,

		PlaylistFormat: "m3u",
		M3UExtended:    true,
	}
}

// DefaultPath returns the settings file location:
// <user config dir>/lyrics-editor/settings.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, AppName, "settings.json"), nil
}

// LoadFrom loads the settings at path, or at DefaultPath() when path is
// empty. It returns the path it used.
func LoadFrom(path string) (*Settings, string, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return DefaultSettings(), "", nil
		}
		path = p
	}

	settings, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return settings, path, nil
}

// Load reads settings from a JSON file.
// Missing keys keep their defaults; a missing file yields DefaultSettings().
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return ioutils.WriteFileAtomic(path, data)
}

// ToTagConfig converts settings to audio.TagConfig.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	cfg := audio.DefaultTagConfig()
	if s.LyricsLanguage != "" {
		cfg.Language = s.LyricsLanguage
	}
	if s.LyricsKey != "" {
		cfg.LyricsKey = s.LyricsKey
	}
	return cfg
}

// ToScanOptions converts settings to library.Options.
func (s *Settings) ToScanOptions() library.Options {
	return library.Options{Workers: s.ScanWorkers}
}

// ToLogOptions converts settings to logging.Options.
func (s *Settings) ToLogOptions() logging.Options {
	return logging.Options{Level: s.LogLevel, File: s.LogFile}
}

// ToPlaylistCreator builds the playlist creator for the configured format.
func (s *Settings) ToPlaylistCreator() *audio.PlaylistCreator {
	return audio.NewPlaylistCreator(audio.ParsePlaylistFormat(s.PlaylistFormat), s.M3UExtended)
}

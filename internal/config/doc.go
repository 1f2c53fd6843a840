// Package config provides configuration management for lyrics-editor.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to the option types of other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Folder picker starts in ~/Music
//	// Four metadata reads in parallel while scanning
//	// Lyrics in the "eng" USLT frame or the LYRICS key
//
// # Loading from File
//
//	path, _ := config.DefaultPath() // ~/.config/lyrics-editor/settings.json
//	settings, err := config.Load(path)
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.StartFolder = "/srv/music"
//	err := settings.Save(path)
//
// # Configuration Options
//
// Settings includes options for:
//   - Log level and destination
//   - Scan worker count and start folder
//   - Lyrics tag conventions
//   - Window size and cover art preview
//   - Playlist export format
package config

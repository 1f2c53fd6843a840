// Package model defines the core data structures used throughout
// the lyrics-editor application.
//
// # Track
//
// Track identifies an audio file and the container format inferred from
// its extension:
//
//	track := model.NewTrack("/music/Low/01 Speed of Life.flac")
//	fmt.Println(track.Format)             // FLAC
//	fmt.Println(track.Format.Container()) // key-value
//
// # Sort keys and labels
//
// Fields holds the raw metadata read from a file. SortKey and Label are
// derived from it:
//
//	fields := model.Fields{Artist: "Bowie", Album: "Low", Date: "1977-01-14", TrackNumber: "1/11"}
//	key := model.NewSortKey(fields) // {bowie 1977 low 1}
//	label := model.Label(fields)    // "Bowie | 1977 Low | Track 1/11. (Unknown Title)"
//
// Missing or unparseable fields fall back to SentinelText and
// SentinelNumber, so badly tagged files sort last.
package model

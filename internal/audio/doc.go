// Package audio reads and writes audio file metadata: the lyrics value,
// the fields used for sorting and labelling, and embedded cover art.
//
// # Lyrics
//
// Each file is served by one Container variant, decided from its
// extension:
//
//	MP3              ID3v2 USLT frame, language "eng", empty description
//	FLAC             Vorbis comment "LYRICS"
//	OGG, M4A, WAV    TagLib property "LYRICS"
//
// Use the Tagger for all access:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig(), logger)
//	lyrics, err := tagger.ReadLyrics(path)
//	err = tagger.WriteLyrics(path, "new lyrics")
//
// Errors are *audio.Error values with an ErrorKind:
//
//	if errors.Is(err, audio.ErrFileNotAccessible) {
//	    // missing file or no write permission; nothing was written
//	}
//
// # Metadata
//
// ReadFields returns the raw artist, album, title, date and track number
// used by model.NewSortKey and model.Label. ReadArtwork returns the
// embedded front cover, if any.
//
// # Playlist Generation
//
// A sorted folder listing can be exported as M3U or PLS:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true)
//	content := creator.CreatePlaylist(entries)
package audio

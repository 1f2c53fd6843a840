// Package library enumerates the audio files of a folder and orders them
// for display.
//
// A folder is scanned non-recursively. Each supported file gets a SortKey
// and a display label derived from its metadata, and the entries are
// returned sorted by artist, year, album and track number:
//
//	scanner := library.NewScanner(tagger, library.Options{Workers: 4}, logger, nil)
//	entries, err := scanner.Scan(ctx, "/music/Bowie")
//	for _, e := range entries {
//	    fmt.Println(e.Label)
//	}
//
// Files whose metadata cannot be read are never dropped. They get the
// all-sentinel SortKey, which places them after every tagged file, and a
// fallback label naming the file.
package library

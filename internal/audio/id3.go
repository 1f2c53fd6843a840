package audio

import (
	"strings"

	"github.com/bogem/id3v2"
)

// usltDescription is the id3v2 common name of the USLT frame.
const usltDescription = "Unsynchronised lyrics/text transcription"

// id3Container stores lyrics in the ID3v2 USLT frame matching a language
// and content descriptor. USLT frames for other languages or descriptors
// are preserved on write.
type id3Container struct {
	path        string
	language    string
	description string
}

func (c *id3Container) ReadLyrics() (string, error) {
	tag, err := id3v2.Open(c.path, id3v2.Options{Parse: true})
	if err != nil {
		return "", classifyOpenError("read lyrics", c.path, err)
	}
	defer tag.Close()

	for _, frame := range tag.GetFrames(tag.CommonID(usltDescription)) {
		uslf, ok := frame.(id3v2.UnsynchronisedLyricsFrame)
		if ok && c.matches(uslf) {
			return uslf.Lyrics, nil
		}
	}

	return "", nil
}

// WriteLyrics replaces the matching USLT frame.
//
// A file without an ID3v2 tag gets a new empty one (id3v2.Open creates it
// when parsing finds no header). id3v2 saves through a temporary file that
// is renamed over the original, so a failed save leaves the file intact.
func (c *id3Container) WriteLyrics(text string) error {
	tag, err := id3v2.Open(c.path, id3v2.Options{Parse: true})
	if err != nil {
		return classifyOpenError("write lyrics", c.path, err)
	}
	defer tag.Close()

	id := tag.CommonID(usltDescription)

	// Drop all USLT frames and put back the ones for other languages.
	var keep []id3v2.Framer
	for _, frame := range tag.GetFrames(id) {
		if uslf, ok := frame.(id3v2.UnsynchronisedLyricsFrame); ok && c.matches(uslf) {
			continue
		}
		keep = append(keep, frame)
	}
	tag.DeleteFrames(id)
	for _, frame := range keep {
		tag.AddFrame(id, frame)
	}

	tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
		Encoding:          unicodeEncoding(tag.Version()),
		Language:          c.language,
		ContentDescriptor: c.description,
		Lyrics:            text,
	})

	if err := tag.Save(); err != nil {
		return newError(MetadataWriteFailure, "write lyrics", c.path, err)
	}
	return nil
}

func (c *id3Container) matches(uslf id3v2.UnsynchronisedLyricsFrame) bool {
	return strings.EqualFold(uslf.Language, c.language) && uslf.ContentDescriptor == c.description
}

// unicodeEncoding picks a text encoding that can hold any Unicode text and
// is valid for the tag version: UTF-8 exists only in ID3v2.4.
func unicodeEncoding(version byte) id3v2.Encoding {
	if version >= 4 {
		return id3v2.EncodingUTF8
	}
	return id3v2.EncodingUTF16
}

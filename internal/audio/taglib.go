package audio

import (
	"os"

	"go.senan.xyz/taglib"
)

// taglibContainer stores lyrics under a property-map key through TagLib.
// It serves OGG (Vorbis comments), M4A (the ©lyr atom) and WAV (the ID3
// chunk), which have no pure-Go writer in the dependency set.
type taglibContainer struct {
	path string
	key  string
}

func (c *taglibContainer) ReadLyrics() (string, error) {
	values, err := readTaglib("read lyrics", c.path)
	if err != nil {
		return "", err
	}

	lyrics, _ := lookupKey(values, c.key)
	return lyrics, nil
}

// WriteLyrics sets key to the single value text. Without the taglib.Clear
// option TagLib only touches the keys present in the map.
func (c *taglibContainer) WriteLyrics(text string) error {
	if _, err := readTaglib("write lyrics", c.path); err != nil {
		return err
	}

	// A nil value removes the key.
	var value []string
	if text != "" {
		value = []string{text}
	}
	tags := map[string][]string{
		c.key: value,
	}
	if err := taglib.WriteTags(c.path, tags, 0); err != nil {
		return newError(MetadataWriteFailure, "write lyrics", c.path, err)
	}
	return nil
}

// readTaglib reads the TagLib property map of path. TagLib reports missing
// files and unparseable files the same way, so the file is stat'ed first to
// tell them apart.
func readTaglib(op, path string) (map[string][]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, classifyOpenError(op, path, err)
	}

	values, err := taglib.ReadTags(path)
	if err != nil {
		return nil, newError(ContainerUnreadable, op, path, err)
	}
	return values, nil
}

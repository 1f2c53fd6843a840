package audio

import (
	"bytes"
	"os"
	"strings"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
	ioutils "github.com/handiism/lyrics-editor/internal/io"
)

// flacContainer stores lyrics as a Vorbis comment in the FLAC
// VORBIS_COMMENT metadata block.
type flacContainer struct {
	path string
	key  string
}

func (c *flacContainer) ReadLyrics() (string, error) {
	_, _, cmt, err := c.load("read lyrics")
	if err != nil {
		return "", err
	}
	if cmt == nil {
		return "", nil
	}

	lyrics, _ := lookupKey(vorbisValues(cmt), c.key)
	return lyrics, nil
}

// WriteLyrics replaces every comment named key (in any case) with a single
// key=text comment. A VORBIS_COMMENT block is appended if the file has none.
//
// The whole file is re-marshalled in memory and committed with
// ioutils.WriteFileAtomic, so a failed write leaves the original bytes.
func (c *flacContainer) WriteLyrics(text string) error {
	file, idx, cmt, err := c.load("write lyrics")
	if err != nil {
		return err
	}

	if cmt == nil {
		cmt = flacvorbis.New()
	}

	var kept []string
	for _, comment := range cmt.Comments {
		if name, _, _ := strings.Cut(comment, "="); strings.EqualFold(name, c.key) {
			continue
		}
		kept = append(kept, comment)
	}
	cmt.Comments = kept

	if err := cmt.Add(c.key, text); err != nil {
		return newError(MetadataWriteFailure, "write lyrics", c.path, err)
	}

	block := cmt.Marshal()
	if idx >= 0 {
		file.Meta[idx] = &block
	} else {
		file.Meta = append(file.Meta, &block)
	}

	if err := ioutils.WriteFileAtomic(c.path, file.Marshal()); err != nil {
		return newError(MetadataWriteFailure, "write lyrics", c.path, err)
	}
	return nil
}

// load parses the FLAC file and returns its Vorbis comment block and the
// block's index in file.Meta. cmt is nil and idx is -1 when the file has no
// VORBIS_COMMENT block.
func (c *flacContainer) load(op string) (file *flac.File, idx int, cmt *flacvorbis.MetaDataBlockVorbisComment, err error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, -1, nil, classifyOpenError(op, c.path, err)
	}

	file, err = flac.ParseBytes(bytes.NewReader(data))
	if err != nil {
		return nil, -1, nil, newError(ContainerUnreadable, op, c.path, err)
	}

	idx = -1
	for i, meta := range file.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}
		cmt, err = flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return nil, -1, nil, newError(ContainerUnreadable, op, c.path, err)
		}
		idx = i
		break
	}

	return file, idx, cmt, nil
}

// vorbisValues converts raw "KEY=value" comments into a key to values map.
// Field names are case-insensitive, so keys are upper-cased.
func vorbisValues(cmt *flacvorbis.MetaDataBlockVorbisComment) map[string][]string {
	values := make(map[string][]string, len(cmt.Comments))
	for _, comment := range cmt.Comments {
		name, value, ok := strings.Cut(comment, "=")
		if !ok {
			continue
		}
		name = strings.ToUpper(name)
		values[name] = append(values[name], value)
	}
	return values
}

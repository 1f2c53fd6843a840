package audio

import (
	"os"
	"strconv"

	"github.com/dhowden/tag"
	"github.com/handiism/lyrics-editor/internal/model"
	"go.senan.xyz/taglib"
	"go.uber.org/zap"
)

// Raw keys holding the date and track number, per tag format.
// ID3v2.2 uses three-letter IDs, ID3v2.3/2.4 four-letter IDs, Vorbis
// comments lower-cased names and MP4 the ©day atom.
var (
	rawDateKeys  = []string{"TDRC", "TYER", "TYE", "date", "year", "\xa9day"}
	rawTrackKeys = []string{"TRCK", "TRK", "tracknumber"}
)

// ReadFields reads the artist, album, title, date and track number of path.
//
// dhowden/tag is tried first; it is pure Go and reads ID3, Vorbis comment
// and MP4 tags without decoding audio. Files it cannot handle (WAV, tagless
// MP3, unusual OGG streams) fall back to TagLib. If both fail the error is
// of kind ContainerUnreadable. Absent fields are returned as "".
func (t *Tagger) ReadFields(path string) (model.Fields, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Fields{}, classifyOpenError("read fields", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err == nil {
		return fieldsFromMetadata(m), nil
	}

	t.logger.Debug("dhowden/tag could not read file, falling back to taglib",
		zap.String("file", path),
		zap.Error(err))

	values, tlErr := taglib.ReadTags(path)
	if tlErr != nil {
		return model.Fields{}, newError(ContainerUnreadable, "read fields", path, tlErr)
	}
	return fieldsFromTaglib(values), nil
}

// ReadArtwork returns the embedded cover picture of path, or nil if the
// file has none.
func (t *Tagger) ReadArtwork(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, classifyOpenError("read artwork", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if err == tag.ErrNoTagsFound {
			return nil, nil
		}
		return nil, newError(ContainerUnreadable, "read artwork", path, err)
	}

	if pic := m.Picture(); pic != nil && len(pic.Data) > 0 {
		return pic.Data, nil
	}
	return nil, nil
}

func fieldsFromMetadata(m tag.Metadata) model.Fields {
	fields := model.Fields{
		Artist: m.Artist(),
		Album:  m.Album(),
		Title:  m.Title(),
	}

	raw := m.Raw()

	fields.Date = rawString(raw, rawDateKeys...)
	if fields.Date == "" {
		if year := m.Year(); year > 0 {
			fields.Date = strconv.Itoa(year)
		}
	}

	fields.TrackNumber = rawString(raw, rawTrackKeys...)
	if fields.TrackNumber == "" {
		if n, total := m.Track(); n > 0 {
			fields.TrackNumber = strconv.Itoa(n)
			if total > 0 {
				fields.TrackNumber += "/" + strconv.Itoa(total)
			}
		}
	}

	return fields
}

func fieldsFromTaglib(values map[string][]string) model.Fields {
	get := func(key string) string {
		v, _ := lookupKey(values, key)
		return v
	}

	return model.Fields{
		Artist:      get(taglib.Artist),
		Album:       get(taglib.Album),
		Title:       get(taglib.Title),
		Date:        get(taglib.Date),
		TrackNumber: get(taglib.TrackNumber),
	}
}

// rawString returns the first non-empty string value among keys.
func rawString(raw map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := raw[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

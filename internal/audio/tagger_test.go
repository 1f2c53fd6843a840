package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/go-flac/flacvorbis"
	"go.senan.xyz/taglib"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeAudio stands in for MPEG audio frames; the taggers never decode it.
var fakeAudio = []byte{0xff, 0xfb, 0x90, 0x44, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

func TestTagger_MP3RoundTrip(t *testing.T) {
	path := writeMP3(t, func(tag *id3v2.Tag) {
		tag.SetTitle("Speed of Life")
		tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding: id3v2.EncodingUTF8,
			Language: "eng",
			Lyrics:   "Hello",
		})
	})
	tagger := NewTagger(nil, nil)

	got, err := tagger.ReadLyrics(path)
	if err != nil {
		t.Fatalf("ReadLyrics() error = %v", err)
	}
	if got != "Hello" {
		t.Fatalf("ReadLyrics() = %q, want %q", got, "Hello")
	}

	if err := tagger.WriteLyrics(path, "Goodbye"); err != nil {
		t.Fatalf("WriteLyrics() error = %v", err)
	}

	got, err = tagger.ReadLyrics(path)
	if err != nil {
		t.Fatalf("ReadLyrics() after write error = %v", err)
	}
	if got != "Goodbye" {
		t.Errorf("ReadLyrics() after write = %q, want %q", got, "Goodbye")
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("id3v2.Open() error = %v", err)
	}
	defer tag.Close()
	if tag.Title() != "Speed of Life" {
		t.Errorf("title = %q, other frames must be preserved", tag.Title())
	}
	if n := len(tag.GetFrames(tag.CommonID(usltDescription))); n != 1 {
		t.Errorf("USLT frame count = %d, want 1", n)
	}
}

func TestTagger_MP3WithoutTag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.mp3")
	if err := os.WriteFile(path, fakeAudio, 0644); err != nil {
		t.Fatal(err)
	}
	tagger := NewTagger(nil, nil)

	got, err := tagger.ReadLyrics(path)
	if err != nil || got != "" {
		t.Fatalf("ReadLyrics() = %q, %v; want empty, nil", got, err)
	}

	if err := tagger.WriteLyrics(path, "First verse"); err != nil {
		t.Fatalf("WriteLyrics() error = %v", err)
	}
	if got, _ := tagger.ReadLyrics(path); got != "First verse" {
		t.Errorf("ReadLyrics() = %q, want %q", got, "First verse")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(data, fakeAudio) {
		t.Error("audio data must follow the new tag unchanged")
	}
}

func TestTagger_MP3KeepsOtherLanguages(t *testing.T) {
	path := writeMP3(t, func(tag *id3v2.Tag) {
		tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding: id3v2.EncodingUTF8,
			Language: "deu",
			Lyrics:   "Hallo",
		})
	})
	tagger := NewTagger(nil, nil)

	if got, _ := tagger.ReadLyrics(path); got != "" {
		t.Errorf("ReadLyrics() = %q, a German frame is not the lyrics value", got)
	}
	if err := tagger.WriteLyrics(path, "Hello"); err != nil {
		t.Fatalf("WriteLyrics() error = %v", err)
	}

	german := NewTagger(&TagConfig{Language: "deu", LyricsKey: "LYRICS"}, nil)
	if got, _ := german.ReadLyrics(path); got != "Hallo" {
		t.Errorf("German lyrics = %q, want %q", got, "Hallo")
	}
	if got, _ := tagger.ReadLyrics(path); got != "Hello" {
		t.Errorf("English lyrics = %q, want %q", got, "Hello")
	}
}

func TestTagger_TrimsAndClears(t *testing.T) {
	path := writeMP3(t, nil)
	tagger := NewTagger(nil, nil)

	if err := tagger.WriteLyrics(path, "\n  Line one\nLine two  \n\n"); err != nil {
		t.Fatalf("WriteLyrics() error = %v", err)
	}
	if got, _ := tagger.ReadLyrics(path); got != "Line one\nLine two" {
		t.Errorf("ReadLyrics() = %q, want trimmed text", got)
	}

	if err := tagger.WriteLyrics(path, "   "); err != nil {
		t.Fatalf("WriteLyrics() clear error = %v", err)
	}
	if got, _ := tagger.ReadLyrics(path); got != "" {
		t.Errorf("ReadLyrics() after clear = %q, want empty", got)
	}
}

func TestTagger_FLACRoundTrip(t *testing.T) {
	path := writeFLAC(t, "ARTIST=Bowie", "lyrics=old words")
	tagger := NewTagger(nil, nil)

	got, err := tagger.ReadLyrics(path)
	if err != nil {
		t.Fatalf("ReadLyrics() error = %v", err)
	}
	if got != "old words" {
		t.Fatalf("ReadLyrics() = %q, key lookup should ignore case", got)
	}

	if err := tagger.WriteLyrics(path, "new words"); err != nil {
		t.Fatalf("WriteLyrics() error = %v", err)
	}

	_, _, cmt, err := (&flacContainer{path: path, key: "LYRICS"}).load("test")
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	values := vorbisValues(cmt)
	if v := values["LYRICS"]; len(v) != 1 || v[0] != "new words" {
		t.Errorf("LYRICS = %v, want exactly [new words]", v)
	}
	if v := values["ARTIST"]; len(v) != 1 || v[0] != "Bowie" {
		t.Errorf("ARTIST = %v, other comments must be preserved", v)
	}
}

func TestTagger_TaglibRoundTrip(t *testing.T) {
	path := writeWAV(t, map[string][]string{
		taglib.Title:  {"Song"},
		taglib.Artist: {"Bowie"},
	})
	tagger := NewTagger(nil, nil)

	if got, err := tagger.ReadLyrics(path); err != nil || got != "" {
		t.Fatalf("ReadLyrics() = %q, %v; want empty, nil", got, err)
	}

	tests := []struct {
		name  string
		write string
		want  string
	}{
		{name: "first write", write: "Hello", want: "Hello"},
		{name: "overwrite", write: "Goodbye", want: "Goodbye"},
		{name: "clear", write: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tagger.WriteLyrics(path, tt.write); err != nil {
				t.Fatalf("WriteLyrics(%q) error = %v", tt.write, err)
			}
			got, err := tagger.ReadLyrics(path)
			if err != nil {
				t.Fatalf("ReadLyrics() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadLyrics() = %q, want %q", got, tt.want)
			}

			tags, err := taglib.ReadTags(path)
			if err != nil {
				t.Fatalf("taglib.ReadTags() error = %v", err)
			}
			if v := tags[taglib.Title]; len(v) != 1 || v[0] != "Song" {
				t.Errorf("TITLE = %q, other tags must be preserved", v)
			}
			if v := tags[taglib.Artist]; len(v) != 1 || v[0] != "Bowie" {
				t.Errorf("ARTIST = %q, other tags must be preserved", v)
			}
		})
	}

	fields, err := tagger.ReadFields(path)
	if err != nil {
		t.Fatalf("ReadFields(wav) error = %v", err)
	}
	if fields.Title != "Song" || fields.Artist != "Bowie" {
		t.Errorf("ReadFields(wav) = %+v, want TagLib fields", fields)
	}
}

func TestTagger_FLACWithoutComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.flac")
	if err := os.WriteFile(path, flacBytes(nil), 0644); err != nil {
		t.Fatal(err)
	}
	tagger := NewTagger(nil, nil)

	if got, err := tagger.ReadLyrics(path); err != nil || got != "" {
		t.Fatalf("ReadLyrics() = %q, %v; want empty, nil", got, err)
	}
	if err := tagger.WriteLyrics(path, "added"); err != nil {
		t.Fatalf("WriteLyrics() error = %v", err)
	}
	if got, _ := tagger.ReadLyrics(path); got != "added" {
		t.Errorf("ReadLyrics() = %q, want %q", got, "added")
	}
}

func TestTagger_Errors(t *testing.T) {
	dir := t.TempDir()

	corrupt := filepath.Join(dir, "broken.flac")
	if err := os.WriteFile(corrupt, []byte("definitely not flac"), 0644); err != nil {
		t.Fatal(err)
	}
	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	before, _ := os.ReadFile(corrupt)

	tests := []struct {
		name  string
		path  string
		write bool
		want  ErrorKind
	}{
		{"missing read", filepath.Join(dir, "missing.mp3"), false, FileNotAccessible},
		{"missing write", filepath.Join(dir, "missing.flac"), true, FileNotAccessible},
		{"corrupt read", corrupt, false, ContainerUnreadable},
		{"corrupt write", corrupt, true, ContainerUnreadable},
		{"unsupported", text, false, ContainerUnreadable},
	}

	tagger := NewTagger(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.write {
				err = tagger.WriteLyrics(tt.path, "x")
			} else {
				var got string
				got, err = tagger.ReadLyrics(tt.path)
				if got != "" {
					t.Errorf("lyrics = %q on error, want empty", got)
				}
			}
			if KindOf(err) != tt.want {
				t.Errorf("error = %v, want kind %v", err, tt.want)
			}
		})
	}

	after, _ := os.ReadFile(corrupt)
	if !bytes.Equal(before, after) {
		t.Error("failed write modified the file")
	}
}

func TestTagger_ReadOnlyFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}

	path := writeMP3(t, nil)
	if err := os.Chmod(path, 0444); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(path)

	err := NewTagger(nil, nil).WriteLyrics(path, "nope")
	if !errors.Is(err, ErrFileNotAccessible) {
		t.Fatalf("WriteLyrics() error = %v, want FileNotAccessible", err)
	}

	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Error("file changed after a rejected write")
	}
}

func TestTagger_LogsWrites(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tagger := NewTagger(nil, zap.New(core))

	path := writeMP3(t, nil)
	if err := tagger.WriteLyrics(path, "logged"); err != nil {
		t.Fatal(err)
	}

	entries := logs.FilterMessage("wrote lyrics").All()
	if len(entries) != 1 {
		t.Fatalf("got %d 'wrote lyrics' entries, want 1", len(entries))
	}
	if entries[0].ContextMap()["file"] != path {
		t.Errorf("file field = %v, want %s", entries[0].ContextMap()["file"], path)
	}
}

func TestReadFields(t *testing.T) {
	mp3 := writeMP3(t, func(tag *id3v2.Tag) {
		tag.SetArtist("David Bowie")
		tag.SetAlbum("Low")
		tag.SetTitle("Speed of Life")
		tag.SetYear("1977")
		tag.AddTextFrame(tag.CommonID("Track number/Position in set"), tag.DefaultEncoding(), "1/11")
	})
	flacPath := writeFLAC(t, "ARTIST=David Bowie", "ALBUM=Heroes", "TITLE=Beauty and the Beast", "DATE=1977-10-14", "TRACKNUMBER=1")

	tagger := NewTagger(nil, nil)

	got, err := tagger.ReadFields(mp3)
	if err != nil {
		t.Fatalf("ReadFields(mp3) error = %v", err)
	}
	if got.Artist != "David Bowie" || got.Album != "Low" || got.Title != "Speed of Life" {
		t.Errorf("ReadFields(mp3) = %+v", got)
	}
	if y, ok := got.Year(); !ok || y != 1977 {
		t.Errorf("mp3 year = %d, %v; want 1977", y, ok)
	}
	if n, ok := got.Track(); !ok || n != 1 {
		t.Errorf("mp3 track = %d, %v; want 1", n, ok)
	}

	got, err = tagger.ReadFields(flacPath)
	if err != nil {
		t.Fatalf("ReadFields(flac) error = %v", err)
	}
	if got.Album != "Heroes" || got.Date != "1977-10-14" || got.TrackNumber != "1" {
		t.Errorf("ReadFields(flac) = %+v", got)
	}

	if _, err := tagger.ReadFields(filepath.Join(t.TempDir(), "gone.mp3")); !errors.Is(err, ErrFileNotAccessible) {
		t.Errorf("ReadFields(missing) error = %v, want FileNotAccessible", err)
	}
}

func TestReadArtwork(t *testing.T) {
	picture := []byte{0xff, 0xd8, 0xff, 0xe0, 1, 2, 3, 4}
	path := writeMP3(t, func(tag *id3v2.Tag) {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Picture:     picture,
		})
	})

	got, err := NewTagger(nil, nil).ReadArtwork(path)
	if err != nil {
		t.Fatalf("ReadArtwork() error = %v", err)
	}
	if !bytes.Equal(got, picture) {
		t.Errorf("ReadArtwork() = %v, want %v", got, picture)
	}
}

func TestLookupKey(t *testing.T) {
	values := map[string][]string{"Lyrics": {"a"}, "TITLE": {}}

	if v, ok := lookupKey(values, "LYRICS"); !ok || v != "a" {
		t.Errorf("lookupKey(LYRICS) = %q, %v", v, ok)
	}
	if _, ok := lookupKey(values, "title"); ok {
		t.Error("empty value list should not match")
	}
}

func writeMP3(t *testing.T, build func(tag *id3v2.Tag)) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "track.mp3")
	if err := os.WriteFile(path, fakeAudio, 0644); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	if build != nil {
		build(tag)
	}
	if err := tag.Save(); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeFLAC(t *testing.T, comments ...string) string {
	t.Helper()

	cmt := flacvorbis.New()
	cmt.Comments = append(cmt.Comments, comments...)

	path := filepath.Join(t.TempDir(), "track.flac")
	if err := os.WriteFile(path, flacBytes(cmt), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// flacBytes assembles a minimal FLAC stream: marker, an all-zero
// STREAMINFO block, an optional VORBIS_COMMENT block and a few frame bytes.
func flacBytes(cmt *flacvorbis.MetaDataBlockVorbisComment) []byte {
	var buf bytes.Buffer
	buf.WriteString("fLaC")

	streamInfoHeader := byte(0x00)
	if cmt == nil {
		streamInfoHeader |= 0x80
	}
	writeBlockHeader(&buf, streamInfoHeader, 34)
	buf.Write(make([]byte, 34))

	if cmt != nil {
		block := cmt.Marshal()
		writeBlockHeader(&buf, 0x80|0x04, len(block.Data))
		buf.Write(block.Data)
	}

	buf.Write([]byte{0xff, 0xf8, 0x69, 0x18, 0x00, 0x00})
	return buf.Bytes()
}

func writeBlockHeader(buf *bytes.Buffer, typ byte, length int) {
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(length))
	buf.WriteByte(typ)
	buf.Write(size[1:])
}

// writeWAV writes a short 16-bit mono PCM file and tags it through TagLib.
func writeWAV(t *testing.T, tags map[string][]string) string {
	t.Helper()

	samples := make([]byte, 64)
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(samples)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))     // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1))     // channels
	binary.Write(&buf, binary.LittleEndian, uint32(8000))  // sample rate
	binary.Write(&buf, binary.LittleEndian, uint32(16000)) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))     // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))    // bits per sample
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(samples)))
	buf.Write(samples)

	path := filepath.Join(t.TempDir(), "track.wav")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := taglib.WriteTags(path, tags, 0); err != nil {
		t.Fatalf("taglib.WriteTags() error = %v", err)
	}
	return path
}

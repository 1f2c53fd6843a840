package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/lyrics-editor/internal/audio"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *s != *DefaultSettings() {
		t.Errorf("Load() = %+v, want defaults", s)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"scan_workers": 8, "playlist_format": "pls"}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.ScanWorkers != 8 || s.PlaylistFormat != "pls" {
		t.Errorf("Load() = %+v", s)
	}
	if s.LyricsKey != "LYRICS" || s.LogLevel != "info" {
		t.Errorf("defaults lost: lyrics_key=%q log_level=%q", s.LyricsKey, s.LogLevel)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on invalid JSON")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	s := DefaultSettings()
	s.StartFolder = "/srv/music"
	s.ShowArtwork = false
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *s {
		t.Errorf("Load() = %+v, want %+v", loaded, s)
	}
}

func TestConversions(t *testing.T) {
	s := DefaultSettings()
	s.LyricsLanguage = ""
	s.LyricsKey = "UNSYNCEDLYRICS"
	s.PlaylistFormat = "pls"

	tc := s.ToTagConfig()
	if tc.Language != "eng" || tc.LyricsKey != "UNSYNCEDLYRICS" {
		t.Errorf("ToTagConfig() = %+v", tc)
	}
	if got := s.ToScanOptions().Workers; got != 4 {
		t.Errorf("ToScanOptions().Workers = %d, want 4", got)
	}
	if got := s.ToLogOptions().Level; got != "info" {
		t.Errorf("ToLogOptions().Level = %q", got)
	}

	content := s.ToPlaylistCreator().CreatePlaylist([]audio.PlaylistEntry{{Path: "/m/a.mp3", Title: "A"}})
	if content[:10] != "[playlist]" {
		t.Errorf("ToPlaylistCreator() produced %q, want PLS", content)
	}
}

func TestLoadFrom_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"start_folder": "/tmp/x"}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, used, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if used != path || s.StartFolder != "/tmp/x" {
		t.Errorf("LoadFrom() = %q, %q", used, s.StartFolder)
	}
}

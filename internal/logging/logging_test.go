package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.log")

	logger, closeLog, err := New(Options{Level: "warn", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1:\n%s", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "kept" || entry["level"] != "warn" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNew_Development(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev.log")

	logger, closeLog, err := New(Options{Level: "debug", File: path, Development: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Debug("scanning")
	closeLog()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "DEBUG") || !strings.Contains(string(data), "scanning") {
		t.Errorf("console output = %q", data)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("New() should reject unknown levels")
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/handiism/lyrics-editor/internal/audio"
	"github.com/handiism/lyrics-editor/internal/config"
	"github.com/handiism/lyrics-editor/internal/editor"
	"github.com/handiism/lyrics-editor/internal/library"
	"github.com/handiism/lyrics-editor/internal/logging"
	"github.com/handiism/lyrics-editor/internal/tui"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configFlag := pflag.StringP("config", "c", "", "Path to config file")
	pflag.Parse()

	settings, _, err := config.LoadFrom(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI: log only when a file is configured.
	logger := zap.NewNop()
	if settings.LogFile != "" {
		l, closeLog, err := logging.New(settings.ToLogOptions())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
			os.Exit(1)
		}
		defer closeLog()
		logger = l
	}

	start := settings.StartFolder
	if dir := pflag.Arg(0); dir != "" {
		start = dir
	}

	tagger := audio.NewTagger(settings.ToTagConfig(), logger)
	newSession := func(onProgress func(library.ProgressEvent)) *editor.Session {
		scanner := library.NewScanner(tagger, settings.ToScanOptions(), logger, onProgress)
		return editor.NewSession(scanner, tagger, logger)
	}

	if err := tui.Run(newSession, start); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

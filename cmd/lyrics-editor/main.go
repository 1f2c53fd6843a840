package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/handiism/lyrics-editor/internal/audio"
	"github.com/handiism/lyrics-editor/internal/config"
	"github.com/handiism/lyrics-editor/internal/editor"
	"github.com/handiism/lyrics-editor/internal/gui"
	"github.com/handiism/lyrics-editor/internal/library"
	"github.com/handiism/lyrics-editor/internal/logging"
	"github.com/spf13/pflag"
)

func main() {
	configFlag := pflag.StringP("config", "c", "", "Path to config file")
	debugFlag := pflag.Bool("debug", false, "Log debug output to stderr")
	pflag.Parse()

	settings, _, err := config.LoadFrom(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logOpts := settings.ToLogOptions()
	if *debugFlag {
		logOpts.Level = "debug"
		logOpts.Development = true
	}
	logger, closeLog, err := logging.New(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	tagger := audio.NewTagger(settings.ToTagConfig(), logger)
	scanner := library.NewScanner(tagger, settings.ToScanOptions(), logger, nil)
	session := editor.NewSession(scanner, tagger, logger)

	a := app.NewWithID("com.handiism.lyrics-editor")
	w := a.NewWindow("Lyrics Editor")
	w.Resize(fyne.NewSize(float32(settings.WindowWidth), float32(settings.WindowHeight)))

	ui := gui.NewUI(w, session, tagger, settings, logger)
	if dir := pflag.Arg(0); dir != "" {
		ui.OpenFolder(dir)
	}

	w.ShowAndRun()
}

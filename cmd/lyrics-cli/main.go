package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/handiism/lyrics-editor/internal/audio"
	"github.com/handiism/lyrics-editor/internal/config"
	ioutils "github.com/handiism/lyrics-editor/internal/io"
	"github.com/handiism/lyrics-editor/internal/library"
	"github.com/handiism/lyrics-editor/internal/logging"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	config   string
	dir      string
	playlist string
	file     string
	get      bool
	set      string
	setFrom  string
	clear    bool
	verbose  bool
	setGiven bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := pflag.NewFlagSet("lyrics-cli", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.StringVarP(&o.config, "config", "c", "", "Path to config file")
	fs.StringVarP(&o.dir, "dir", "d", "", "Folder to list in sorted order")
	fs.StringVar(&o.playlist, "playlist", "", "Write the sorted folder as a playlist (.m3u or .pls) to this path")
	fs.StringVarP(&o.file, "file", "f", "", "Audio file to inspect or edit")
	fs.BoolVarP(&o.get, "get", "g", false, "Print the lyrics of --file")
	fs.StringVarP(&o.set, "set", "s", "", "Store TEXT as the lyrics of --file")
	fs.StringVar(&o.setFrom, "set-from", "", "Store the contents of PATH as the lyrics of --file (- for stdin)")
	fs.BoolVar(&o.clear, "clear", false, "Remove the lyrics of --file")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Show verbose output")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Lyrics CLI - view and edit lyrics embedded in audio files")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  lyrics-cli --dir <folder> [--playlist out.m3u]")
		fmt.Fprintln(stderr, "  lyrics-cli --file <audio> --get")
		fmt.Fprintln(stderr, "  lyrics-cli --file <audio> --set <text> | --set-from <path> | --clear")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "For interactive mode, use: lyrics-editor or lyrics-tui")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.setGiven = fs.Changed("set")

	writes := 0
	for _, given := range []bool{o.setGiven, o.setFrom != "", o.clear} {
		if given {
			writes++
		}
	}

	switch {
	case o.dir == "" && o.file == "":
		fs.Usage()
		return nil, errors.New("one of --dir or --file is required")
	case o.dir != "" && o.file != "":
		return nil, errors.New("--dir and --file cannot be combined")
	case o.playlist != "" && o.dir == "":
		return nil, errors.New("--playlist requires --dir")
	case o.file != "" && writes > 1:
		return nil, errors.New("use only one of --set, --set-from and --clear")
	case o.file != "" && writes == 0:
		o.get = true
	}

	return &o, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	settings, _, err := config.LoadFrom(o.config)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	logOpts := settings.ToLogOptions()
	if logOpts.File == "" {
		logOpts.Development = true
		if !o.verbose {
			logOpts.Level = "error"
		}
	}
	if o.verbose {
		logOpts.Level = "debug"
	}
	logger, closeLog, err := logging.New(logOpts)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating logger: %v\n", err)
		return 1
	}
	defer closeLog()

	tagger := audio.NewTagger(settings.ToTagConfig(), logger)

	if o.dir != "" {
		return listFolder(ctx, o, settings, tagger, logger, stdout, stderr)
	}
	return editFile(o, tagger, stdin, stdout, stderr)
}

func listFolder(ctx context.Context, o *options, settings *config.Settings, tagger *audio.Tagger, logger *zap.Logger, stdout, stderr io.Writer) int {
	scanner := library.NewScanner(tagger, settings.ToScanOptions(), logger, func(event library.ProgressEvent) {
		if event.Level == library.LevelVerbose && !o.verbose {
			return
		}
		if event.Level == library.LevelInfo && !o.verbose {
			return
		}
		fmt.Fprintln(stderr, event.Message)
	})

	entries, err := scanner.Scan(ctx, o.dir)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(stderr, "Scan cancelled.")
			return 130
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if len(entries) == 0 {
		fmt.Fprintln(stderr, "No supported audio files found.")
		return 1
	}

	for i, e := range entries {
		fmt.Fprintf(stdout, "%3d  %s\n", i+1, e.Label)
	}

	if o.playlist == "" {
		return 0
	}

	// The extension picks the format; without one the configured format
	// supplies it.
	path := o.playlist
	playlistSettings := *settings
	if ext := filepath.Ext(path); ext != "" {
		playlistSettings.PlaylistFormat = ext[1:]
	} else {
		path += audio.ParsePlaylistFormat(settings.PlaylistFormat).Extension()
	}

	playlistEntries := make([]audio.PlaylistEntry, len(entries))
	for i, e := range entries {
		playlistEntries[i] = audio.PlaylistEntry{Path: audio.EntryPath(path, e.Track.Path), Title: e.Label}
	}
	content := playlistSettings.ToPlaylistCreator().CreatePlaylist(playlistEntries)

	if err := ioutils.WriteFileAtomic(path, []byte(content)); err != nil {
		fmt.Fprintf(stderr, "Error writing playlist: %v\n", err)
		return 1
	}
	fmt.Fprintf(stderr, "Wrote playlist %s (%d entries)\n", path, len(entries))
	return 0
}

func editFile(o *options, tagger *audio.Tagger, stdin io.Reader, stdout, stderr io.Writer) int {
	var text string
	switch {
	case o.clear:
		text = ""
	case o.setGiven:
		text = o.set
	case o.setFrom == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading stdin: %v\n", err)
			return 1
		}
		text = string(data)
	case o.setFrom != "":
		data, err := os.ReadFile(o.setFrom)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		text = string(data)
	default:
		lyrics, err := tagger.ReadLyrics(o.file)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCode(err)
		}
		if lyrics != "" {
			fmt.Fprintln(stdout, lyrics)
		}
		return 0
	}

	if err := tagger.WriteLyrics(o.file, text); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	if o.clear {
		fmt.Fprintf(stderr, "Cleared lyrics of %s\n", o.file)
	} else {
		fmt.Fprintf(stderr, "Saved lyrics to %s\n", o.file)
	}
	return 0
}

// exitCode maps error kinds to distinct exit statuses for scripts.
func exitCode(err error) int {
	switch audio.KindOf(err) {
	case audio.FileNotAccessible:
		return 3
	case audio.ContainerUnreadable:
		return 4
	case audio.MetadataWriteFailure:
		return 5
	default:
		return 1
	}
}

// Package main is the entry point for the graphide editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"graphide/internal/config"
	"graphide/internal/docmanager"
	"graphide/internal/editor"
	"graphide/internal/event"
	"graphide/internal/findreplace"
	"graphide/internal/logging"
	"graphide/internal/project"
	"graphide/internal/statusbar"
	"graphide/internal/ui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	ConfigPath  string
	ProjectPath string
	LogLevel    string
	Files       []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	log, closeLog, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	bus := event.NewBus()

	// Watch-driven reloads go through the app's event loop; before the
	// loop starts everything is single-threaded and Post runs inline.
	var application *ui.App
	proj, err := project.Load(projectFile(opts.ProjectPath), bus,
		project.WithLogger(log),
		project.WithRunner(func(fn func()) {
			application.Post(fn)
		}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load project: %v\n", err)
		return 1
	}

	docs := docmanager.New(bus)
	for _, file := range opts.Files {
		if _, err := docs.OpenFile(file, editor.WithViewHeight(cfg.Editor.ViewHeight)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open %s: %v\n", file, err)
			return 1
		}
	}
	if docs.Count() == 0 {
		docs.Open("untitled", "", findreplace.KindPlainText, editor.WithViewHeight(cfg.Editor.ViewHeight))
	}

	bar := statusbar.New(func(msg string) {
		if application != nil {
			application.SetStatus(msg)
		}
	})

	finder := findreplace.NewFinder(docs, proj, bar, bus)
	defer finder.Close()
	replacer := findreplace.NewReplacer(docs, proj, bar, bus)
	defer replacer.Close()
	applySearchDefaults(finder.Controller, cfg.Search)
	applySearchDefaults(replacer.Controller, cfg.Search)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	application = ui.New(screen, docs, finder, replacer, log)

	// Started after the app exists so the watch runner has its target.
	stopWatch, err := proj.Watch()
	if err != nil {
		log.Warn("project watch unavailable", "error", err)
	} else {
		defer stopWatch()
	}

	// Translate termination signals into a quit keypress so the event
	// loop unwinds and restores the terminal.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		_ = screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModNone))
	}()

	log.Info("starting", "version", version, "documents", docs.Count())
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// applySearchDefaults seeds the configured search options before the
// first session begins.
func applySearchDefaults(c *findreplace.Controller, s config.SearchConfig) {
	c.SetCaseSensitive(s.CaseSensitive)
	c.SetWholeWord(s.WholeWord)
	c.SetRegex(s.Regex)
}

// projectFile resolves the project history file from the project
// directory.
func projectFile(dir string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "graphide.toml")
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ProjectPath, "project", "", "Project directory")
	flag.StringVar(&opts.ProjectPath, "p", "", "Project directory (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "graphide - incremental find and replace editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: graphide [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  graphide                Open with an empty buffer\n")
		fmt.Fprintf(os.Stderr, "  graphide file.py        Open a file\n")
		fmt.Fprintf(os.Stderr, "  graphide -p ./project   Keep search history in ./project\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("graphide %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		switch opts.LogLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			os.Exit(1)
		}
	}

	opts.Files = flag.Args()

	// The project directory defaults to the directory of the first file.
	if opts.ProjectPath == "" && len(opts.Files) > 0 {
		if abs, err := filepath.Abs(opts.Files[0]); err == nil {
			opts.ProjectPath = filepath.Dir(abs)
		}
	}

	return opts
}

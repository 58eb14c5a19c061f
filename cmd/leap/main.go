// Package main is the entry point for the leap command, which runs a
// single leap motion against a file and reports where the cursor lands.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/leap/internal/app"
	leaphandler "github.com/dshills/leap/internal/dispatcher/handlers/leap"
	"github.com/dshills/leap/internal/input"
	"github.com/dshills/leap/internal/logging"
	"github.com/dshills/leap/internal/renderer/viewport"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK      = 0
	exitNoMatch = 1
	exitUsage   = 2
)

type options struct {
	app.Options

	pattern string
	cursor  int
	count   int
	reverse bool
	top     int
	height  int
	width   int
	screen  bool
	script  string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if opts == nil {
		fmt.Fprintf(stdout, "leap %s\nCommit: %s\nBuilt: %s\n", version, commit, date)
		return exitOK
	}

	if opts.screen {
		view, err := screenViewport()
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to read terminal size: %v\n", err)
			return exitUsage
		}
		opts.View = view
	} else if opts.height > 0 {
		opts.View = viewport.NewViewport(opts.width, opts.height)
	}

	application, err := app.New(opts.Options)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return exitUsage
	}
	defer application.Close()

	doc := application.Document()
	doc.Viewport().ScrollTo(opts.top)
	if err := doc.SetCursor(opts.cursor); err != nil {
		fmt.Fprintf(stderr, "Error: -cursor: %v\n", err)
		return exitUsage
	}

	if opts.script != "" {
		if err := application.RunScript(opts.script); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
		fmt.Fprintf(stdout, "cursor=%d\n", doc.CursorOffset())
		return exitOK
	}

	name, command := leaphandler.ActionLeapForward, "leap"
	if opts.reverse {
		name, command = leaphandler.ActionLeapBackward, "reverse_leap"
	}
	action := input.NewAction(name).
		WithPattern(opts.pattern).
		WithExtra(leaphandler.ArgCommand, command).
		WithSource(input.SourceAPI)
	action.Count = opts.count

	result := application.Dispatch(action)
	if result.IsError() {
		fmt.Fprintf(stderr, "Error: %v\n", result.Error)
		return exitUsage
	}

	motion, _ := leaphandler.MotionFrom(result)
	fmt.Fprintf(stdout, "target=%d found=%t wrapped=%t command=%s\n",
		motion.CursorPos, motion.Found, motion.Wrapped, motion.CommandName)
	if !motion.Found {
		return exitNoMatch
	}
	return exitOK
}

// parseFlags returns nil options when only the version was requested.
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var opts options
	var full, showVersion bool

	fs := flag.NewFlagSet("leap", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.pattern, "pattern", "", "Literal text to leap to")
	fs.StringVar(&opts.pattern, "p", "", "Literal text to leap to (shorthand)")
	fs.IntVar(&opts.cursor, "cursor", 0, "Cursor character offset")
	fs.IntVar(&opts.count, "count", 1, "Leap this many occurrences away")
	fs.BoolVar(&opts.reverse, "reverse", false, "Leap to the occurrence at or before the cursor")
	fs.BoolVar(&opts.reverse, "r", false, "Reverse leap (shorthand)")
	fs.BoolVar(&full, "full", false, "Search the whole file instead of the viewport")
	fs.IntVar(&opts.top, "top", 0, "First visible line (0-indexed)")
	fs.IntVar(&opts.height, "height", 0, "Visible lines (0 shows the whole file)")
	fs.IntVar(&opts.width, "width", 80, "Visible columns")
	fs.BoolVar(&opts.screen, "screen", false, "Size the viewport from the terminal")
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.script, "lua", "", "Run a Lua script with the editor modules loaded")
	fs.BoolVar(&showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "leap - jump to the next occurrence of a literal pattern\n\n")
		fmt.Fprintf(stderr, "Usage: leap [options] FILE\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  leap -p foo -cursor 10 notes.txt          Next foo after offset 10\n")
		fmt.Fprintf(stderr, "  leap -p foo -r -top 5 -height 20 a.txt    Reverse leap within lines 5-24\n")
		fmt.Fprintf(stderr, "  leap -p foo -count 3 notes.txt            Third foo after the cursor\n")
		fmt.Fprintf(stderr, "  leap -lua motion.lua notes.txt            Run a motion script\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if showVersion {
		return nil, nil
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "full" {
			opts.FullView = &full
		}
	})

	if opts.LogLevel != "" && !logging.ValidLevel(opts.LogLevel) {
		return nil, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.LogLevel)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("expected exactly one file")
	}
	if opts.pattern == "" && opts.script == "" {
		return nil, errors.New("-pattern is required")
	}
	if opts.top < 0 || opts.height < 0 || opts.cursor < 0 {
		return nil, errors.New("-top, -height and -cursor must not be negative")
	}
	if opts.count < 1 {
		return nil, errors.New("-count must be at least 1")
	}
	opts.File = fs.Arg(0)

	return &opts, nil
}

// screenViewport sizes a viewport from the terminal, leaving the last row
// for the status line.
func screenViewport() (*viewport.Viewport, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	defer s.Fini()
	return viewport.FromScreen(s, 1), nil
}

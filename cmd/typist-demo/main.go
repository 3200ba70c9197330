// typist-demo shows the typewriter component.
//
// Without --text it runs the gallery: a header, then boxes of examples
// from the built-in catalog or from --catalog. With --text it types that
// single text using the flag settings.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/iw2rmb/typist"
	"github.com/iw2rmb/typist/internal/gallery"
	"github.com/iw2rmb/typist/typewriter"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	text          string
	speed         string
	delay         time.Duration
	variance      time.Duration
	startDelay    time.Duration
	backwards     bool
	noReserve     bool
	cursor        string
	cursorChar    string
	keepCursor    bool
	noCursor      bool
	blink         time.Duration
	disappear     time.Duration
	catalog       string
	logOutput     string
	inline        bool
	versionOnly   bool
	showHelpFlags bool
}

func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("typist-demo", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVarP(&opts.text, "text", "t", "", "type this text instead of running the gallery")
	fs.StringVarP(&opts.speed, "speed", "s", string(typewriter.SpeedFast), "speed tier: slow, medium, fast, very_fast, fastest")
	fs.DurationVar(&opts.delay, "delay", 0, "per-character delay (overrides --speed)")
	fs.DurationVar(&opts.variance, "variance", 0, "random delay spread; negative disables (default 100ms)")
	fs.DurationVar(&opts.startDelay, "start-delay", 0, "wait before the first character")
	fs.BoolVarP(&opts.backwards, "backwards", "b", false, "erase the text instead of typing it")
	fs.BoolVar(&opts.noReserve, "no-reserve", false, "do not pad the untyped text with blanks")
	fs.StringVar(&opts.cursor, "cursor", string(typewriter.CursorView), "cursor kind: view or text_simple")
	fs.StringVar(&opts.cursorChar, "cursor-char", "", "glyph of a text_simple cursor (default \"|\")")
	fs.BoolVar(&opts.keepCursor, "keep-cursor", false, "keep blinking after the text is done")
	fs.BoolVar(&opts.noCursor, "no-cursor", false, "disable the cursor")
	fs.DurationVar(&opts.blink, "blink", 0, "blink phase and fade length (default 200ms)")
	fs.DurationVar(&opts.disappear, "disappear", 0, "how long a view cursor blinks after finishing (default 2s)")
	fs.StringVar(&opts.catalog, "catalog", "", "gallery catalog YAML (default: built-in)")
	fs.StringVar(&opts.logOutput, "log-output", "", "write JSON debug log records to this file")
	fs.BoolVar(&opts.inline, "inline", false, "render inline instead of on the alternate screen")
	fs.BoolVar(&opts.versionOnly, "version", false, "print the version and exit")
	fs.BoolVarP(&opts.showHelpFlags, "help", "h", false, "show help")
	return fs
}

func run(args []string) error {
	var opts options
	fs := newFlagSet(&opts)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(fs)
			return nil
		}
		return err
	}
	if opts.showHelpFlags {
		printHelp(fs)
		return nil
	}
	if opts.versionOnly {
		fmt.Println(versionLine(typist.Current()))
		return nil
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	logger, closeLog, err := openLogger(opts.logOutput)
	if err != nil {
		return err
	}
	defer closeLog()

	var model tea.Model
	if fs.Changed("text") {
		cfg, err := opts.config()
		if err != nil {
			return err
		}
		cfg.Logger = logger
		model = newSingle(cfg)
	} else {
		cat := gallery.DefaultCatalog()
		if opts.catalog != "" {
			cat, err = gallery.LoadCatalog(opts.catalog)
			if err != nil {
				return err
			}
		}
		model, err = gallery.New(gallery.Config{Catalog: cat, Logger: logger})
		if err != nil {
			return err
		}
	}

	var progOpts []tea.ProgramOption
	if !opts.inline {
		progOpts = append(progOpts, tea.WithAltScreen(), tea.WithMouseCellMotion())
	}
	logger.Info("typist-demo starting", slog.String("version", typist.Current().Tag()), slog.Bool("gallery", !fs.Changed("text")))
	_, err = tea.NewProgram(model, progOpts...).Run()
	return err
}

func (o options) config() (typewriter.Config, error) {
	speed, err := typewriter.ParseSpeed(o.speed)
	if err != nil {
		return typewriter.Config{}, fmt.Errorf("--speed: %w", err)
	}
	kind, err := typewriter.ParseCursorKind(o.cursor)
	if err != nil {
		return typewriter.Config{}, fmt.Errorf("--cursor: %w", err)
	}
	cfg := typewriter.DefaultConfig()
	cfg.Text = o.text
	cfg.Speed = speed
	cfg.DelayPerChar = o.delay
	cfg.Backwards = o.backwards
	cfg.StartDelay = o.startDelay
	cfg.NoReserveSpace = o.noReserve
	cfg.CursorKind = kind
	cfg.KeepCursorOnFinish = o.keepCursor
	cfg.DisableCursor = o.noCursor
	if o.variance != 0 {
		cfg.DelayVariance = o.variance
	}
	if o.cursorChar != "" {
		cfg.CursorChar = o.cursorChar
	}
	if o.blink != 0 {
		cfg.CursorBlinkTime = o.blink
	}
	if o.disappear != 0 {
		cfg.CursorDisappearDelay = o.disappear
	}
	return cfg, nil
}

func versionLine(r typist.Release) string {
	line := "typist-demo " + r.Tag()
	if r.Prerelease() {
		line += " (pre-release)"
	}
	return line
}

// openLogger returns a JSON logger writing to path, or a discard logger.
// The terminal belongs to Bubble Tea, so records never go to stderr.
func openLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log output: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

func printHelp(fs *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `typist-demo: typewriter text animation for the terminal.

Without --text, runs the example gallery. Select a box with the arrows,
play it with enter, replay with r, pause with p, reverse with b, quit with q.

With --text, types a single text. enter toggles the animation, r replays,
q quits.

Usage:
  typist-demo [flags]

Flags:
%s
Examples:
  typist-demo
  typist-demo --catalog my-examples.yaml
  typist-demo -t "Hello, world" --speed slow --keep-cursor
  typist-demo -t "Goodbye" --backwards --cursor text_simple --cursor-char _
`, fs.FlagUsages())
}

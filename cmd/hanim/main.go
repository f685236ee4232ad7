package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"hanim/internal/config"
	"hanim/internal/engine"
	"hanim/internal/layout"
	"hanim/internal/logger"
	"hanim/internal/types"
)

func main() {
	if err := mainE(); err != nil {
		fmt.Fprintf(os.Stderr, "hanim: %v\n", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand()
	cmd := root.command()
	err := cmd.ParseAndRun(ctx, os.Args[1:], ff.WithEnvVarPrefix("HANIM"))
	if errors.Is(err, ff.ErrHelp) {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Command(cmd.GetSelected()))
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type rootCommand struct {
	flags      *ff.FlagSet
	configPath *string
	layoutName *string
	toggle     *string
	mode       *string
	logLevel   *string
	logFormat  *string
	logFile    *string
}

func newRootCommand() *rootCommand {
	fs := ff.NewFlagSet("hanim")
	return &rootCommand{
		flags:      fs,
		configPath: fs.StringLong("config", "", "path to an INI config file (default ./"+config.DefaultFileName+" if present)"),
		layoutName: fs.StringLong("layout", "", "keyboard layout, overrides the config file"),
		toggle:     fs.StringLong("toggle", "", "key chord that switches Hangul input on and off"),
		mode:       fs.StringLong("mode", "", "initial input mode: latin or hangul"),
		logLevel:   fs.StringLong("log-level", "info", "log level: debug, info, warn, error"),
		logFormat:  fs.StringLong("log-format", logger.FormatPretty, "log format: pretty, text, json"),
		logFile:    fs.StringLong("log-file", "", "write logs to this file; interactive commands log nothing otherwise"),
	}
}

func (r *rootCommand) command() *ff.Command {
	cmd := &ff.Command{
		Name:      "hanim",
		Usage:     "hanim [FLAGS] <SUBCOMMAND>",
		ShortHelp: "dubeolsik Hangul input for the terminal",
		Flags:     r.flags,
		Exec: func(context.Context, []string) error {
			return ff.ErrHelp
		},
	}
	cmd.Subcommands = []*ff.Command{
		r.typeCommand(),
		r.tuiCommand(),
		r.convertCommand(),
		r.serveCommand(),
		r.layoutsCommand(),
	}
	return cmd
}

// app is what every subcommand needs once flags and config are merged.
type app struct {
	cfg    config.Config
	layout *layout.Layout
	log    *slog.Logger
	close  func()
}

func (rt *app) session() *engine.Session {
	return engine.New(rt.layout,
		engine.WithTrigger(rt.cfg.ToggleKey),
		engine.WithMode(rt.cfg.DefaultMode),
		engine.WithLogger(rt.log),
	)
}

// setup resolves config and logging. Interactive commands own the terminal,
// so they only log when --log-file is given.
func (r *rootCommand) setup(interactive bool) (*app, error) {
	level, err := logger.ParseLevel(*r.logLevel)
	if err != nil {
		return nil, err
	}

	var (
		out     io.Writer = os.Stderr
		closeFn           = func() {}
	)
	if *r.logFile != "" {
		f, err := os.OpenFile(*r.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	} else if interactive {
		out = io.Discard
	}
	log := logger.New(out, level, *r.logFormat)

	cfg, err := config.Resolve(*r.configPath)
	if err != nil {
		closeFn()
		return nil, err
	}
	if *r.layoutName != "" {
		cfg.Layout = *r.layoutName
	}
	if *r.toggle != "" {
		cfg.ToggleKey = engine.NormalizeKey(*r.toggle)
	}
	if *r.mode != "" {
		mode, err := types.ParseMode(*r.mode)
		if err != nil {
			closeFn()
			return nil, err
		}
		cfg.DefaultMode = mode
	}

	l, err := cfg.BuildLayout()
	if err != nil {
		closeFn()
		return nil, err
	}
	log.Debug("configuration loaded", "layout", l.Name(), "toggle", cfg.ToggleKey, "mode", cfg.DefaultMode, "overrides", len(cfg.Overrides))

	return &app{cfg: cfg, layout: l, log: log, close: closeFn}, nil
}

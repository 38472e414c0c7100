package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/randalmurphal/rellr/config"
	rellrerrors "github.com/randalmurphal/rellr/errors"
	"github.com/randalmurphal/rellr/msg"
	"github.com/randalmurphal/rellr/notify"
	"github.com/randalmurphal/rellr/release"
)

// app holds the state of one CLI invocation.
type app struct {
	dir     string
	verbose bool
	noColor bool

	out    io.Writer
	errOut io.Writer

	printer  *msg.Printer
	logger   *slog.Logger
	resolver *config.Resolver
	settings *config.Settings

	// configure adjusts the engine before a command runs. Tests use it to
	// inject providers and runners.
	configure func(*release.Engine)
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		dir:    ".",
		out:    out,
		errOut: errOut,
	}
}

// setup resolves settings and builds the printer and logger.
func (a *app) setup() error {
	a.printer = msg.New(a.out, msg.WithNoColor(a.noColor))

	dir, err := filepath.Abs(a.dir)
	if err != nil {
		return fmt.Errorf("resolve directory: %w", err)
	}
	a.dir = dir

	flags := map[string]string{}
	if a.noColor {
		flags[config.KeyNoColor] = "true"
	}
	if a.verbose {
		flags[config.KeyLogLevel] = "debug"
	}

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = newLogger(a.errOut, level)

	a.resolver = config.NewSettingsResolver(dir, a.logger)
	settings, err := config.ParseSettings(a.resolver.ResolveWithFlags(flags))
	if err != nil {
		return err
	}
	a.settings = settings

	a.printer = msg.New(a.out, msg.WithNoColor(settings.NoColor))
	a.logger = newLogger(a.errOut, settings.LogLevel)
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// engine returns a release engine for dir. An empty dir means --dir.
func (a *app) engine(dir string) (*release.Engine, error) {
	if dir == "" {
		dir = a.dir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve directory: %w", err)
	}

	e := release.NewEngine(abs, a.settings, a.logger)
	e.Reporter = &reporter{printer: a.printer}
	e.Notifier = notify.FromSettings(notify.Targets{
		WebhookURL:    a.settings.NotifyWebhook,
		WebhookSecret: a.settings.NotifySecret,
		SlackURL:      a.settings.SlackWebhook,
	}, a.logger)
	if a.configure != nil {
		a.configure(e)
	}
	return e, nil
}

// reporter prints engine progress with the domain wording of each error.
type reporter struct {
	printer *msg.Printer
}

func (r *reporter) Info(format string, args ...any) {
	r.printer.Info(format, args...)
}

func (r *reporter) Warn(err error) {
	r.printer.Print(msg.LevelWarn, warningText(err))
}

// warningText returns the short domain message of err.
func warningText(err error) string {
	var cliErr *rellrerrors.CLIError
	if errors.As(rellrerrors.Wrap(err), &cliErr) && cliErr.Message != "" {
		return cliErr.Message
	}
	return err.Error()
}

// exitCode prints err and returns the process exit status. Warnings exit 0.
func exitCode(err error, p *msg.Printer) int {
	if err == nil {
		return 0
	}
	if rellrerrors.IsWarning(err) {
		p.Print(msg.LevelWarn, warningText(err))
		return 0
	}
	p.Error(rellrerrors.Wrap(err))
	return 1
}

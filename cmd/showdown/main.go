package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/lox/showdown/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every subcommand.
type Globals struct {
	Config   string `short:"c" help:"Path to HCL config file" default:"showdown.hcl" type:"path"`
	LogLevel string `help:"Override log level (debug, info, warn, error)"`
	NoColor  bool   `help:"Disable colored output"`

	out io.Writer `kong:"-"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Eval    EvalCmd          `cmd:"" help:"Evaluate holdings against a complete board"`
	Deal    DealCmd          `cmd:"" help:"Deal showdown rounds to the configured players"`
	Odds    OddsCmd          `cmd:"" help:"Estimate win and tie rates by Monte Carlo simulation"`
	History HistoryCmd       `cmd:"" help:"Render a PHH hand history file"`
	Shell   ShellCmd         `cmd:"" help:"Interactive prompt for eval, odds and deal"`
}

func main() {
	var cli CLI
	cli.out = os.Stdout

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx := kong.Parse(&cli,
		kong.Name("showdown"),
		kong.Description("Texas Hold'em hand evaluator and showdown dealer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":      version,
			"history_file": defaultHistoryFile(),
		},
		kong.Bind(&cli.Globals),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}

// load reads the config file and applies flag overrides.
func (g *Globals) load() (*config.Config, error) {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (g *Globals) stdout() io.Writer {
	if g.out == nil {
		return os.Stdout
	}
	return g.out
}

// logger is the CLI's own logger for diagnostics on stderr.
func (g *Globals) logger(cfg *config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "showdown",
	})
}

// roundLogger is the structured logger handed to the round dealer.
func (g *Globals) roundLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: g.NoColor, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

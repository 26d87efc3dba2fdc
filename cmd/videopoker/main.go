package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Debug   bool   `help:"Enable debug logging"`
	NoColor bool   `help:"Disable colored output"`
	Config  string `default:"videopoker.hcl" help:"Path to HCL config file"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play Jacks or Better in the terminal"`
	Score    ScoreCmd         `cmd:"" help:"Score a five card hand"`
	Advise   AdviseCmd        `cmd:"" help:"Suggest which cards to hold"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate rounds with a hold strategy"`
	Serve    ServeCmd         `cmd:"" help:"Run the WebSocket game server"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("videopoker"),
		kong.Description("Jacks or Better video poker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// newLogger builds the console logger. An explicit level wins over --debug.
func (g *Globals) newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		lvl = parsed
	}
	if g.Debug {
		lvl = log.DebugLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if g.NoColor {
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger, nil
}

func stderrLogger(g *Globals) *log.Logger {
	logger, _ := g.newLogger(os.Stderr, "")
	return logger
}

package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/videopoker/internal/game"
	"github.com/lox/videopoker/internal/tui"
)

type PlayCmd struct {
	Seed    int64  `help:"RNG seed (0 for random)"`
	LogFile string `default:"videopoker.log" help:"Debug log file, written when --debug is set"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	// The terminal belongs to the TUI, so logs only go to a file
	var out io.Writer = io.Discard
	if globals.Debug {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
		if err != nil {
			return fmt.Errorf("failed to create debug log: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Error("Failed to close debug log", "error", err)
			}
		}()
		out = f
	}

	logger, err := globals.newLogger(out, "")
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Starting session", "seed", seed)

	session := game.NewSession(rand.New(rand.NewSource(seed)), game.WithLogger(logger))
	return tui.Run(session, logger)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/videopoker/internal/config"
	"github.com/lox/videopoker/internal/fileutil"
	"github.com/lox/videopoker/internal/simulator"
	"github.com/lox/videopoker/internal/statistics"
)

type SimulateCmd struct {
	Rounds   int    `help:"Number of rounds to simulate (overrides config)"`
	Strategy string `help:"Hold strategy: advisor, pat, draw, rand (overrides config)"`
	Seed     int64  `help:"RNG seed (0 for random)"`
	Workers  int    `help:"Worker goroutines (0 for one per CPU)"`
	Output   string `short:"o" type:"path" help:"Write a JSON report to this file"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	cfg, err := config.Load(globals.Config)
	if err != nil {
		return err
	}
	sim := cfg.Simulation
	if c.Rounds > 0 {
		sim.Rounds = c.Rounds
	}
	if c.Strategy != "" {
		sim.Strategy = c.Strategy
	}
	if c.Seed != 0 {
		sim.Seed = c.Seed
	}
	if c.Workers > 0 {
		sim.Workers = c.Workers
	}
	cfg.Simulation = sim
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if sim.Seed == 0 {
		sim.Seed = time.Now().UnixNano()
	}

	logger := stderrLogger(globals)
	logger.Info("Simulating", "rounds", sim.Rounds, "strategy", sim.Strategy, "seed", sim.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	stats, err := simulator.New(simulator.Config{
		Rounds:   sim.Rounds,
		Strategy: sim.Strategy,
		Seed:     sim.Seed,
		Workers:  sim.Workers,
		Logger:   logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	statistics.PrintSummary(os.Stdout, stats, sim.Strategy)
	fmt.Printf("\nCompleted in %s (seed %d)\n", time.Since(start).Round(time.Millisecond), sim.Seed)

	if c.Output != "" {
		report := statistics.NewReport(stats, sim.Strategy, sim.Seed)
		if err := fileutil.WriteAtomic(c.Output, 0o644, report.WriteJSON); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote report", "path", c.Output)
	}
	return nil
}

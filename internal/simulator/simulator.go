package simulator

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/videopoker/internal/game"
	"github.com/lox/videopoker/internal/statistics"
	"github.com/lox/videopoker/internal/strategy"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds   int
	Strategy string
	Seed     int64
	Workers  int // 0 means runtime.NumCPU()
	Logger   *log.Logger
}

// Simulator plays many independent rounds and tallies the results
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Strategy == "" {
		config.Strategy = "advisor"
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{config: config}
}

// Run executes the simulation and returns results. Every round is seeded
// from Seed plus its index, so results do not depend on the worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", s.config.Rounds)
	}
	if _, err := strategy.New(s.config.Strategy, rand.New(rand.NewSource(s.config.Seed)), s.config.Logger); err != nil {
		return nil, err
	}

	workers := min(s.config.Workers, s.config.Rounds)
	perWorker := s.config.Rounds / workers
	remainder := s.config.Rounds % workers

	s.config.Logger.Info("Starting simulation",
		"rounds", s.config.Rounds,
		"strategy", s.config.Strategy,
		"workers", workers,
		"seed", s.config.Seed)

	g, ctx := errgroup.WithContext(ctx)
	results := make(chan *statistics.Statistics, workers)

	start := 0
	for w := 0; w < workers; w++ {
		count := perWorker
		if w < remainder {
			count++ // Distribute remainder rounds
		}
		first := start
		start += count

		g.Go(func() error {
			stats, err := s.runWorker(ctx, first, count)
			if err != nil {
				return err
			}
			select {
			case results <- stats:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		defer close(results)
		_ = g.Wait()
	}()

	total := &statistics.Statistics{}
	for stats := range results {
		total.Merge(stats)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Validate statistics before returning
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return total, nil
}

func (s *Simulator) runWorker(ctx context.Context, first, count int) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}
	for round := first; round < first+count; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seed := s.config.Seed + int64(round)
		result, err := PlayRound(seed, s.config.Strategy, s.config.Logger)
		if err != nil {
			return nil, fmt.Errorf("round %d (seed %d): %w", round+1, seed, err)
		}
		stats.Add(result)
	}
	return stats, nil
}

// PlayRound plays one complete round from a seed and reports its outcome.
func PlayRound(seed int64, strategyName string, logger *log.Logger) (statistics.RoundResult, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	rng := rand.New(rand.NewSource(seed))
	player, err := strategy.New(strategyName, rng, logger)
	if err != nil {
		return statistics.RoundResult{}, err
	}

	session := game.NewSession(rng, game.WithLogger(logger))
	if err := session.Deal(); err != nil {
		return statistics.RoundResult{}, fmt.Errorf("first deal: %w", err)
	}
	initial := session.HandCategory()

	decision := player.Decide(session.Cards())
	session.ApplyHolds(decision.Holds)
	if err := session.Deal(); err != nil {
		return statistics.RoundResult{}, fmt.Errorf("draw: %w", err)
	}

	replaced := 0
	for _, held := range session.Holds() {
		if !held {
			replaced++
		}
	}

	return statistics.RoundResult{
		Seed:     seed,
		Initial:  initial,
		Final:    session.HandCategory(),
		Replaced: replaced,
	}, nil
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, rounds int, strategyName string, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	config := Config{
		Rounds:   rounds,
		Strategy: strategyName,
		Seed:     seed,
		Logger:   logger,
	}

	simulator := New(config)
	return simulator.Run(ctx)
}

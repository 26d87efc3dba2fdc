package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/videopoker/internal/config"
	"github.com/lox/videopoker/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address, e.g. :8080 (overrides config)"`
}

func (c *ServeCmd) Run(globals *Globals) error {
	cfg, err := config.Load(globals.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := globals.newLogger(os.Stderr, cfg.Server.LogLevel)
	if err != nil {
		return err
	}

	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	registry := server.NewRegistry(
		rand.New(rand.NewSource(time.Now().UnixNano())),
		quartz.NewReal(),
		logger,
		server.RegistryConfig{
			TTL:         cfg.SessionTTL(),
			MaxSessions: cfg.Server.MaxSessions,
		},
	)
	srv := server.NewServer(registry, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("Loaded configuration", "config", globals.Config, "session_ttl", cfg.SessionTTL(), "max_sessions", cfg.Server.MaxSessions)
	return srv.Serve(ctx, addr)
}

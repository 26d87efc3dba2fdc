package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/videopoker/internal/strategy"
)

// Config represents the complete configuration file
type Config struct {
	Server     ServerSettings
	Simulation SimulationSettings
}

// ServerSettings contains network front end configuration
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	LogLevel    string `hcl:"log_level,optional"`
	SessionTTL  string `hcl:"session_ttl,optional"` // Go duration, e.g. "30m"
	MaxSessions int    `hcl:"max_sessions,optional"`
}

// SimulationSettings contains defaults for the simulate command
type SimulationSettings struct {
	Rounds   int    `hcl:"rounds,optional"`
	Workers  int    `hcl:"workers,optional"`
	Seed     int64  `hcl:"seed,optional"`
	Strategy string `hcl:"strategy,optional"`
}

// fileConfig mirrors Config with optional blocks so either may be omitted
type fileConfig struct {
	Server     *ServerSettings     `hcl:"server,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Address:    "localhost",
			Port:       8080,
			LogLevel:   "info",
			SessionTTL: "30m",
		},
		Simulation: SimulationSettings{
			Rounds:   100000,
			Strategy: "advisor",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if raw.Server != nil {
		config.Server = *raw.Server
	}
	if raw.Simulation != nil {
		config.Simulation = *raw.Simulation
	}

	// Apply defaults for missing values
	defaults := Default()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Server.SessionTTL == "" {
		config.Server.SessionTTL = defaults.Server.SessionTTL
	}
	if config.Simulation.Rounds == 0 {
		config.Simulation.Rounds = defaults.Simulation.Rounds
	}
	if config.Simulation.Strategy == "" {
		config.Simulation.Strategy = defaults.Simulation.Strategy
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Server.LogLevel)
	}
	ttl, err := time.ParseDuration(c.Server.SessionTTL)
	if err != nil {
		return fmt.Errorf("invalid session ttl %q: %w", c.Server.SessionTTL, err)
	}
	if ttl <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	if c.Server.MaxSessions < 0 {
		return fmt.Errorf("max sessions must not be negative, got %d", c.Server.MaxSessions)
	}

	if c.Simulation.Rounds <= 0 {
		return fmt.Errorf("simulation rounds must be positive, got %d", c.Simulation.Rounds)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation workers must not be negative, got %d", c.Simulation.Workers)
	}
	if !slices.Contains(strategy.Names(), c.Simulation.Strategy) {
		return fmt.Errorf("invalid strategy %s", c.Simulation.Strategy)
	}

	return nil
}

// ServerAddress returns the full listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// SessionTTL returns the parsed idle expiry. Call Validate first.
func (c *Config) SessionTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Server.SessionTTL)
	return ttl
}

package game

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/videopoker/poker"
)

// SessionOption is a functional option for configuring a session
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	newDeck func() Deck
	logger  *log.Logger
	clock   quartz.Clock
	events  EventBus
}

// WithDeckFactory sets how a fresh deck is acquired at the start of each round.
// The factory must return a new, unshared deck on every call.
func WithDeckFactory(newDeck func() Deck) SessionOption {
	return func(c *sessionConfig) {
		c.newDeck = newDeck
	}
}

// WithLogger sets the logger used for transition logging.
func WithLogger(logger *log.Logger) SessionOption {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// WithClock sets the clock used to timestamp events.
func WithClock(clock quartz.Clock) SessionOption {
	return func(c *sessionConfig) {
		c.clock = clock
	}
}

// WithEventBus sets the bus that round events are published to.
func WithEventBus(bus EventBus) SessionOption {
	return func(c *sessionConfig) {
		c.events = bus
	}
}

func defaultSessionConfig(rng *rand.Rand) *sessionConfig {
	return &sessionConfig{
		// Each deck gets its own RNG derived from the session's, so decks
		// never share random state across rounds.
		newDeck: func() Deck {
			return poker.NewDeck(rand.New(rand.NewSource(rng.Int63())))
		},
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		clock:  quartz.NewReal(),
		events: NewEventBus(),
	}
}

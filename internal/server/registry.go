package server

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/videopoker/internal/game"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrRegistryFull    = errors.New("session registry full")
)

// entry serialises every call into one session.
type entry struct {
	mu       sync.Mutex
	session  *game.Session
	lastSeen time.Time
	attached int
}

// Registry owns the sessions served over the network. Sessions idle for
// longer than the TTL with no attached connection are reaped.
type Registry struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	rng         *rand.Rand
	clock       quartz.Clock
	ttl         time.Duration
	maxSessions int
	logger      *log.Logger
}

// RegistryConfig configures a Registry
type RegistryConfig struct {
	TTL         time.Duration // Idle time before a detached session is reaped
	MaxSessions int           // 0 means unlimited
}

// NewRegistry creates an empty registry. Session decks are seeded from rng.
func NewRegistry(rng *rand.Rand, clock quartz.Clock, logger *log.Logger, cfg RegistryConfig) *Registry {
	if rng == nil {
		panic("NewRegistry requires a non-nil RNG")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	return &Registry{
		sessions:    make(map[string]*entry),
		rng:         rng,
		clock:       clock,
		ttl:         cfg.TTL,
		maxSessions: cfg.MaxSessions,
		logger:      logger.WithPrefix("registry"),
	}
}

// Create starts a new session, attaches the caller to it and returns its id.
func (r *Registry) Create() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxSessions > 0 && len(r.sessions) >= r.maxSessions {
		return "", ErrRegistryFull
	}

	id := uuid.NewString()
	rng := rand.New(rand.NewSource(r.rng.Int63()))
	r.sessions[id] = &entry{
		session:  game.NewSession(rng, game.WithLogger(r.logger.With("session", id)), game.WithClock(r.clock)),
		lastSeen: r.clock.Now(),
		attached: 1,
	}
	r.logger.Debug("Session created", "session", id, "total", len(r.sessions))
	return id, nil
}

// Attach marks a connection as using an existing session.
func (r *Registry) Attach(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	e.attached++
	return nil
}

// Detach releases a connection's hold on a session and starts its idle clock.
func (r *Registry) Detach(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[id]; ok && e.attached > 0 {
		e.attached--
		e.lastSeen = r.clock.Now()
	}
}

// With runs fn with exclusive access to the session.
func (r *Registry) With(id string, fn func(*game.Session) error) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	err := fn(e.session)

	r.mu.Lock()
	e.lastSeen = r.clock.Now()
	r.mu.Unlock()
	return err
}

// Remove deletes a session.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Reap removes detached sessions idle for at least the TTL and returns how
// many were removed.
func (r *Registry) Reap() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	reaped := 0
	for id, e := range r.sessions {
		if e.attached == 0 && now.Sub(e.lastSeen) >= r.ttl {
			delete(r.sessions, id)
			reaped++
		}
	}
	if reaped > 0 {
		r.logger.Info("Reaped idle sessions", "reaped", reaped, "remaining", len(r.sessions))
	}
	return reaped
}

// Run reaps idle sessions every half TTL until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) error {
	w := r.clock.TickerFunc(ctx, r.ttl/2, func() error {
		r.Reap()
		return nil
	}, "registry", "reap")

	err := w.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

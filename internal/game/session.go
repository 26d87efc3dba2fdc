package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/videopoker/poker"
)

// MinDeckSize is the number of cards a deck must hold before a round starts:
// five for the first deal and up to five replacements.
const MinDeckSize = 2 * poker.HandSize

// ErrInsufficientDeck is returned by Deal when a fresh deck has fewer than
// MinDeckSize cards. The session is left unchanged.
var ErrInsufficientDeck = errors.New("insufficient cards in deck")

// Deck is the card source a session consumes. Drawn cards must leave the
// pool so replacement draws cannot duplicate a card still on the table.
type Deck interface {
	Shuffle()
	Remaining() int
	Draw() (poker.Card, error)
}

// Slot is one table position: a card and whether it is held.
type Slot struct {
	Card poker.Card
	Held bool
}

// fillerHand is shown, all held, before the first round.
var fillerHand = [poker.HandSize]poker.Card{
	poker.NewCard(poker.Ten, poker.Spades),
	poker.NewCard(poker.Jack, poker.Spades),
	poker.NewCard(poker.Queen, poker.Spades),
	poker.NewCard(poker.King, poker.Spades),
	poker.NewCard(poker.Ace, poker.Spades),
}

// Session is a single-player Jacks-or-Better game. It is not safe for
// concurrent use; callers sharing a session must serialise access.
type Session struct {
	table    [poker.HandSize]Slot
	state    GameState
	category poker.HandCategory
	round    int

	deck    Deck
	newDeck func() Deck

	logger *log.Logger
	clock  quartz.Clock
	events EventBus
}

// NewSession creates a session in the NewGame state showing the filler hand.
// The RNG seeds each round's deck unless WithDeckFactory overrides it.
func NewSession(rng *rand.Rand, opts ...SessionOption) *Session {
	if rng == nil {
		panic("NewSession requires a non-nil RNG")
	}

	cfg := defaultSessionConfig(rng)
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Session{
		state:   NewGame,
		newDeck: cfg.newDeck,
		logger:  cfg.logger,
		clock:   cfg.clock,
		events:  cfg.events,
	}
	for i, c := range fillerHand {
		s.table[i] = Slot{Card: c, Held: true}
	}
	category, err := poker.ScoreHand(fillerHand[:])
	if err != nil {
		panic(fmt.Sprintf("filler hand does not score: %v", err))
	}
	s.category = category
	return s
}

// Deal advances the session. From NewGame or GameOver it starts a new round
// with a freshly shuffled deck; from FirstDeal it replaces every unheld card
// and ends the round. On error the session is unchanged.
func (s *Session) Deal() error {
	if s.state == FirstDeal {
		return s.draw()
	}
	return s.startRound()
}

func (s *Session) startRound() error {
	deck := s.newDeck()
	deck.Shuffle()
	if remaining := deck.Remaining(); remaining < MinDeckSize {
		return fmt.Errorf("%w: %d remaining, need %d", ErrInsufficientDeck, remaining, MinDeckSize)
	}

	var table [poker.HandSize]Slot
	for i := range table {
		card, err := deck.Draw()
		if err != nil {
			return fmt.Errorf("dealing slot %d: %w", i, err)
		}
		table[i] = Slot{Card: card}
	}

	category, err := scoreSlots(table)
	if err != nil {
		return err
	}

	s.deck = deck
	s.table = table
	s.category = category
	s.state = FirstDeal
	s.round++

	cards := s.Cards()
	s.logger.Debug("Round started", "round", s.round, "cards", poker.FormatCards(cards[:]), "category", category)
	s.events.Publish(NewRoundStartedEvent(s.round, cards, category, s.clock.Now()))
	return nil
}

func (s *Session) draw() error {
	table := s.table
	for i, slot := range table {
		if slot.Held {
			continue
		}
		card, err := s.deck.Draw()
		if err != nil {
			return fmt.Errorf("replacing slot %d: %w", i, err)
		}
		table[i] = Slot{Card: card}
	}

	category, err := scoreSlots(table)
	if err != nil {
		return err
	}

	s.table = table
	s.category = category
	s.state = GameOver

	cards, holds := s.Cards(), s.Holds()
	s.logger.Debug("Draw completed", "round", s.round, "cards", poker.FormatCards(cards[:]), "category", category)
	s.events.Publish(NewDrawCompletedEvent(s.round, cards, holds, category, s.clock.Now()))
	return nil
}

// ToggleHold flips the hold flag at index. It does nothing outside the
// FirstDeal state or when index is not in [0, 5).
func (s *Session) ToggleHold(index int) {
	if s.state != FirstDeal || index < 0 || index >= poker.HandSize {
		return
	}
	slot := s.table[index]
	s.table[index] = Slot{Card: slot.Card, Held: !slot.Held}
}

// ApplyHolds sets every hold flag at once, with the same state restriction
// as ToggleHold.
func (s *Session) ApplyHolds(holds [poker.HandSize]bool) {
	for i, held := range holds {
		if s.table[i].Held != held {
			s.ToggleHold(i)
		}
	}
}

// Cards returns a copy of the five table cards in slot order.
func (s *Session) Cards() [poker.HandSize]poker.Card {
	var cards [poker.HandSize]poker.Card
	for i, slot := range s.table {
		cards[i] = slot.Card
	}
	return cards
}

// Holds returns a copy of the five hold flags in slot order.
func (s *Session) Holds() [poker.HandSize]bool {
	var holds [poker.HandSize]bool
	for i, slot := range s.table {
		holds[i] = slot.Held
	}
	return holds
}

// Slots returns a copy of the table.
func (s *Session) Slots() [poker.HandSize]Slot {
	return s.table
}

// State returns the current game state.
func (s *Session) State() GameState {
	return s.state
}

// HandCategory returns the category of the hand currently on the table.
func (s *Session) HandCategory() poker.HandCategory {
	return s.category
}

// Round returns the number of rounds started, zero before the first deal.
func (s *Session) Round() int {
	return s.round
}

// Events returns the bus this session publishes to.
func (s *Session) Events() EventBus {
	return s.events
}

func scoreSlots(table [poker.HandSize]Slot) (poker.HandCategory, error) {
	var cards [poker.HandSize]poker.Card
	for i, slot := range table {
		cards[i] = slot.Card
	}
	category, err := poker.ScoreHand(cards[:])
	if err != nil {
		return poker.None, fmt.Errorf("scoring table: %w", err)
	}
	return category, nil
}

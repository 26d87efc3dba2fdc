package poker

import (
	"errors"
	"math/rand"
	"time"
)

// ErrEmptyDeck is returned when drawing from a deck with no cards left.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck represents a 52-card deck. Drawn cards leave the pool, so a
// deck never returns the same card twice.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand // Random source owned by this deck
}

// NewDeck creates a new shuffled 52-card deck with explicit RNG.
// A nil rng gets a private time-seeded source; the global source is never used.
func NewDeck(rng *rand.Rand) *Deck {
	d := NewDeckFromCards(StandardCards(), rng)
	d.Shuffle()
	return d
}

// NewDeckFromCards creates a deck that deals cards in the given order until
// Shuffle is called.
func NewDeckFromCards(cards []Card, rng *rand.Rand) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	d := &Deck{
		cards: make([]Card, len(cards)),
		rng:   rng,
	}
	copy(d.cards, cards)
	return d
}

// StandardCards returns the 52 cards in suit-then-rank order.
func StandardCards() []Card {
	cards := make([]Card, 0, 52)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Shuffle shuffles the undealt cards using Fisher-Yates
func (d *Deck) Shuffle() {
	rest := d.cards[d.next:]
	for i := len(rest) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		rest[i], rest[j] = rest[j], rest[i]
	}
}

// Draw deals a single card from the deck
func (d *Deck) Draw() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

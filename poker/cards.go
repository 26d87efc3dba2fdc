package poker

import (
	"errors"
	"fmt"
	"strings"
)

// Suit is one of the four card suits.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Rank is the face value of a card. Ace is stored as the lowest value;
// the scorer treats it as high where the rules require.
type Rank uint8

const (
	Ace   Rank = 1
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// ErrInvalidCard is returned when card notation cannot be parsed.
var ErrInvalidCard = errors.New("invalid card")

const (
	rankChars = "?A23456789TJQK"
	suitChars = "cdhs"
)

var suitSymbols = [...]string{"♣", "♦", "♥", "♠"}

// String returns the single-letter suit ("c", "d", "h", "s").
func (s Suit) String() string {
	if s > Spades {
		return "?"
	}
	return string(suitChars[s])
}

// Symbol returns the suit glyph.
func (s Suit) Symbol() string {
	if s > Spades {
		return "?"
	}
	return suitSymbols[s]
}

// Red reports whether the suit is printed in red.
func (s Suit) Red() bool {
	return s == Diamonds || s == Hearts
}

// String returns the single-character rank ("A", "2".."9", "T", "J", "Q", "K").
func (r Rank) String() string {
	if r < Ace || r > King {
		return "?"
	}
	return string(rankChars[r])
}

// Card is an immutable (suit, rank) pair. Cards compare equal by value.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a card from rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Suit: suit, Rank: rank}
}

// Valid reports whether the card is one of the 52 real cards.
func (c Card) Valid() bool {
	return c.Suit <= Spades && c.Rank >= Ace && c.Rank <= King
}

// String returns the two-character notation, e.g. "As" or "Tc".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank.String() + c.Suit.String()
}

// Symbol returns the card with a suit glyph, e.g. "A♠".
func (c Card) Symbol() string {
	if !c.Valid() {
		return "??"
	}
	return c.Rank.String() + c.Suit.Symbol()
}

// ParseCard parses a string like "As" into a Card
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	var rank Rank
	switch s[0] {
	case 'A', 'a':
		rank = Ace
	case '2':
		rank = Two
	case '3':
		rank = Three
	case '4':
		rank = Four
	case '5':
		rank = Five
	case '6':
		rank = Six
	case '7':
		rank = Seven
	case '8':
		rank = Eight
	case '9':
		rank = Nine
	case 'T', 't':
		rank = Ten
	case 'J', 'j':
		rank = Jack
	case 'Q', 'q':
		rank = Queen
	case 'K', 'k':
		rank = King
	default:
		return Card{}, fmt.Errorf("%w: rank %q", ErrInvalidCard, s[0])
	}

	var suit Suit
	switch s[1] {
	case 'c', 'C':
		suit = Clubs
	case 'd', 'D':
		suit = Diamonds
	case 'h', 'H':
		suit = Hearts
	case 's', 'S':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("%w: suit %q", ErrInvalidCard, s[1])
	}

	return NewCard(rank, suit), nil
}

// ParseCards parses a list of cards such as "As Ks Qs" or "AsKsQs".
// Commas and whitespace are ignored.
func ParseCards(s string) ([]Card, error) {
	s = strings.NewReplacer(" ", "", ",", "", "\t", "").Replace(s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length notation %q", ErrInvalidCard, s)
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i/2+1, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// FormatCards joins cards with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

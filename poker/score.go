package poker

import (
	"errors"
	"fmt"
	"slices"
)

// HandCategory is the Jacks-or-Better classification of a five-card hand,
// ordered from weakest to strongest.
type HandCategory uint8

const (
	None HandCategory = iota
	JacksOrBetter
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// HandSize is the number of cards in a video poker hand.
const HandSize = 5

// ErrInvalidHand is returned by ScoreHand for anything other than five valid cards.
var ErrInvalidHand = errors.New("invalid hand")

var categoryNames = [...]string{
	None:          "Nothing",
	JacksOrBetter: "Jacks or Better",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

var categoryKeys = [...]string{
	None:          "none",
	JacksOrBetter: "jacks_or_better",
	TwoPair:       "two_pair",
	ThreeOfAKind:  "three_of_a_kind",
	Straight:      "straight",
	Flush:         "flush",
	FullHouse:     "full_house",
	FourOfAKind:   "four_of_a_kind",
	StraightFlush: "straight_flush",
	RoyalFlush:    "royal_flush",
}

// Categories lists every category from weakest to strongest.
func Categories() []HandCategory {
	out := make([]HandCategory, 0, len(categoryKeys))
	for c := None; c <= RoyalFlush; c++ {
		out = append(out, c)
	}
	return out
}

// String returns a human-readable category name.
func (c HandCategory) String() string {
	if int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// Key returns the stable snake_case identifier used on the wire.
func (c HandCategory) Key() string {
	if int(c) >= len(categoryKeys) {
		return "unknown"
	}
	return categoryKeys[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c HandCategory) MarshalText() ([]byte, error) {
	if int(c) >= len(categoryKeys) {
		return nil, fmt.Errorf("unknown hand category %d", c)
	}
	return []byte(c.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *HandCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseHandCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseHandCategory accepts either the key ("full_house") or the display name ("Full House").
func ParseHandCategory(s string) (HandCategory, error) {
	for c := None; c <= RoyalFlush; c++ {
		if s == categoryKeys[c] || s == categoryNames[c] {
			return c, nil
		}
	}
	return None, fmt.Errorf("unknown hand category %q", s)
}

// ScoreHand classifies exactly five cards. Duplicate cards are not rejected;
// any length other than five, or an invalid card, returns ErrInvalidHand.
func ScoreHand(cards []Card) (HandCategory, error) {
	if len(cards) != HandSize {
		return None, fmt.Errorf("%w: need %d cards, got %d", ErrInvalidHand, HandSize, len(cards))
	}

	var ranks [HandSize]Rank
	for i, c := range cards {
		if !c.Valid() {
			return None, fmt.Errorf("%w: card %d is not a valid card", ErrInvalidHand, i+1)
		}
		ranks[i] = c.Rank
	}
	slices.Sort(ranks[:])

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}
	straight := consecutive(ranks) || ranks == [HandSize]Rank{Ace, Ten, Jack, Queen, King}

	switch {
	case flush && straight:
		// Ace sorts first, so only T-J-Q-K-A has Ace low and King high.
		if ranks[0] == Ace && ranks[4] == King {
			return RoyalFlush, nil
		}
		return StraightFlush, nil
	case flush:
		return Flush, nil
	case straight:
		return Straight, nil
	}

	groups := make(map[Rank]int, HandSize)
	for _, r := range ranks {
		groups[r]++
	}

	switch len(groups) {
	case 2:
		for _, n := range groups {
			if n == 4 {
				return FourOfAKind, nil
			}
		}
		return FullHouse, nil
	case 3:
		for _, n := range groups {
			if n == 3 {
				return ThreeOfAKind, nil
			}
		}
		return TwoPair, nil
	case 4:
		for r, n := range groups {
			if n == 2 && highRank(r) {
				return JacksOrBetter, nil
			}
		}
	}
	return None, nil
}

// consecutive reports whether sorted ranks form a run of five.
func consecutive(ranks [HandSize]Rank) bool {
	for i := 1; i < len(ranks); i++ {
		if ranks[i] != ranks[i-1]+1 {
			return false
		}
	}
	return true
}

// highRank reports whether a pair of r qualifies for Jacks or Better.
// Ace is stored low, so it is checked explicitly.
func highRank(r Rank) bool {
	return r == Ace || r >= Jack
}

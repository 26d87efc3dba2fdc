package poker

import (
	"errors"
	"testing"
)

func TestScoreHand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cards    string
		expected HandCategory
	}{
		// Nothing
		{"Low pair", "Ac 2c 3c 4c 2s", None},
		{"Pair of tens", "Ac Ts Jc Td 4c", None},
		{"Ace high", "Ac 3d 7h 9s Jc", None},
		{"Broken straight", "2c 3d 4h 5s 7c", None},

		// Jacks or Better
		{"Pair of aces", "Ac 2c 3c 4c As", JacksOrBetter},
		{"Pair of jacks", "Jc Jd 3c 7h 9s", JacksOrBetter},
		{"Pair of queens", "Qh 2c Qs 8d 5c", JacksOrBetter},
		{"Pair of kings", "2d Kc 3h Ks 9c", JacksOrBetter},

		// Groupings
		{"Two pair with duplicate card", "Ac 2c 3c 2c As", TwoPair},
		{"Two low pair", "3c 3d 8h 8s Kc", TwoPair},
		{"Three of a kind", "Ac 2c 2s 2h 5s", ThreeOfAKind},
		{"Four of a kind", "2d 2c 2s 2h 5s", FourOfAKind},
		{"Four aces", "Ad Ac As Ah Ks", FourOfAKind},
		{"Full house", "2d 2c 2s 5h 5s", FullHouse},
		{"Full house aces over", "Ad Ac As 5h 5s", FullHouse},

		// Suits and runs
		{"Flush", "2d 3d 5d 7d 8d", Flush},
		{"Flush with ace", "Ah 4h 9h Jh Kh", Flush},
		{"Straight", "2d 3c 5d 4c 6h", Straight},
		{"Straight ace low", "2d 3c 5d 4c Ah", Straight},
		{"Straight ace low mixed clubs", "Ac 2c 3c 4c 5s", Straight},
		{"Straight ace high", "Td Qc Kd Jc Ah", Straight},
		{"Straight nine to king", "9d Tc Jh Qs Kc", Straight},
		{"No wraparound", "Jc Qd Kh As 2c", None},
		{"Straight flush", "7s 8s 5s 4s 6s", StraightFlush},
		{"Straight flush ace low", "2d 3d 5d 4d Ad", StraightFlush},
		{"Straight flush king high", "9h Th Jh Qh Kh", StraightFlush},
		{"Royal flush", "Tc Qc Kc Jc Ac", RoyalFlush},
		{"Royal flush spades", "As Ks Qs Js Ts", RoyalFlush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, err := ScoreHand(MustParseCards(tt.cards))
			if err != nil {
				t.Fatalf("ScoreHand(%s) returned error: %v", tt.cards, err)
			}
			if result != tt.expected {
				t.Errorf("ScoreHand(%s) = %v, want %v", tt.cards, result, tt.expected)
			}
		})
	}
}

func TestScoreHandOrderIndependent(t *testing.T) {
	t.Parallel()
	hands := []string{"Tc Qc Kc Jc Ac", "2d 2c 2s 5h 5s", "Ac 2c 3c 4c As", "2d 3c 5d 4c Ah"}
	for _, hand := range hands {
		cards := MustParseCards(hand)
		want, err := ScoreHand(cards)
		if err != nil {
			t.Fatalf("ScoreHand(%s): %v", hand, err)
		}
		for shift := 1; shift < len(cards); shift++ {
			rotated := append(append([]Card{}, cards[shift:]...), cards[:shift]...)
			got, _ := ScoreHand(rotated)
			if got != want {
				t.Errorf("Rotation %d of %s scored %v, want %v", shift, hand, got, want)
			}
		}
	}
}

func TestScoreHandRejectsWrongLength(t *testing.T) {
	t.Parallel()
	full := MustParseCards("Ac 2c 3c 4c As 2s")
	for _, n := range []int{0, 1, 2, 3, 4, 6} {
		_, err := ScoreHand(full[:n])
		if !errors.Is(err, ErrInvalidHand) {
			t.Errorf("ScoreHand with %d cards: expected ErrInvalidHand, got %v", n, err)
		}
	}

	if _, err := ScoreHand(nil); !errors.Is(err, ErrInvalidHand) {
		t.Errorf("ScoreHand(nil): expected ErrInvalidHand, got %v", err)
	}
}

func TestScoreHandRejectsInvalidCard(t *testing.T) {
	t.Parallel()
	cards := MustParseCards("Ac 2c 3c 4c")
	cards = append(cards, Card{})
	if _, err := ScoreHand(cards); !errors.Is(err, ErrInvalidHand) {
		t.Errorf("Expected ErrInvalidHand for zero card, got %v", err)
	}
}

// TestScoreHandAllHands walks every distinct five-card hand and checks the
// category counts against the published Jacks-or-Better combinatorics.
func TestScoreHandAllHands(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping exhaustive enumeration in short mode")
	}
	t.Parallel()

	expected := map[HandCategory]int{
		RoyalFlush:    4,
		StraightFlush: 36,
		FourOfAKind:   624,
		FullHouse:     3744,
		Flush:         5108,
		Straight:      10200,
		ThreeOfAKind:  54912,
		TwoPair:       123552,
		JacksOrBetter: 337920,
		None:          2062860,
	}

	deck := StandardCards()
	counts := make(map[HandCategory]int)
	hand := make([]Card, HandSize)
	total := 0
	for a := 0; a < 48; a++ {
		for b := a + 1; b < 49; b++ {
			for c := b + 1; c < 50; c++ {
				for d := c + 1; d < 51; d++ {
					for e := d + 1; e < 52; e++ {
						hand[0], hand[1], hand[2], hand[3], hand[4] = deck[a], deck[b], deck[c], deck[d], deck[e]
						category, err := ScoreHand(hand)
						if err != nil {
							t.Fatalf("ScoreHand(%s): %v", FormatCards(hand), err)
						}
						counts[category]++
						total++
					}
				}
			}
		}
	}

	if total != 2598960 {
		t.Fatalf("Enumerated %d hands, want 2598960", total)
	}
	for category, want := range expected {
		if counts[category] != want {
			t.Errorf("%v: got %d hands, want %d", category, counts[category], want)
		}
	}
}

func TestHandCategoryNames(t *testing.T) {
	t.Parallel()
	if got := RoyalFlush.String(); got != "Royal Flush" {
		t.Errorf("RoyalFlush.String() = %q", got)
	}
	if got := JacksOrBetter.Key(); got != "jacks_or_better" {
		t.Errorf("JacksOrBetter.Key() = %q", got)
	}
	if got := HandCategory(200).String(); got != "Unknown" {
		t.Errorf("out of range String() = %q", got)
	}

	for _, c := range Categories() {
		text, err := c.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", c, err)
		}
		var parsed HandCategory
		if err := parsed.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s): %v", text, err)
		}
		if parsed != c {
			t.Errorf("text round trip %v -> %s -> %v", c, text, parsed)
		}
		byName, err := ParseHandCategory(c.String())
		if err != nil || byName != c {
			t.Errorf("ParseHandCategory(%q) = %v, %v", c.String(), byName, err)
		}
	}

	if _, err := ParseHandCategory("pair"); err == nil {
		t.Error("Expected error for unknown category")
	}
	if len(Categories()) != 10 {
		t.Errorf("Expected 10 categories, got %d", len(Categories()))
	}
}

func BenchmarkScoreHand(b *testing.B) {
	hand := MustParseCards("Ac 2c 3c 4c As")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = ScoreHand(hand)
	}
}

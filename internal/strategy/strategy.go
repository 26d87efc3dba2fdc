package strategy

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/videopoker/poker"
)

// Decision is the set of cards a strategy keeps, with a short explanation.
type Decision struct {
	Holds     [poker.HandSize]bool
	Reasoning string
}

// Strategy chooses holds for a first-deal hand.
type Strategy interface {
	Decide(cards [poker.HandSize]poker.Card) Decision
}

// Names lists the strategies New understands.
func Names() []string {
	return []string{"advisor", "pat", "draw", "rand"}
}

// New creates a strategy by name.
func New(name string, rng *rand.Rand, logger *log.Logger) (Strategy, error) {
	switch name {
	case "advisor":
		return NewAdvisor(logger), nil
	case "pat":
		return PatBot{}, nil
	case "draw":
		return DrawBot{}, nil
	case "rand":
		if rng == nil {
			return nil, fmt.Errorf("strategy %q requires an RNG", name)
		}
		return NewRandBot(rng), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// PatBot keeps every card.
type PatBot struct{}

func (PatBot) Decide([poker.HandSize]poker.Card) Decision {
	return Decision{Holds: [poker.HandSize]bool{true, true, true, true, true}, Reasoning: "pat-bot stands pat"}
}

// DrawBot discards every card.
type DrawBot struct{}

func (DrawBot) Decide([poker.HandSize]poker.Card) Decision {
	return Decision{Reasoning: "draw-bot draws five"}
}

// RandBot holds each card with probability one half.
type RandBot struct {
	rng *rand.Rand
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand) *RandBot {
	return &RandBot{rng: rng}
}

func (r *RandBot) Decide([poker.HandSize]poker.Card) Decision {
	var d Decision
	for i := range d.Holds {
		d.Holds[i] = r.rng.Intn(2) == 1
	}
	d.Reasoning = "rand-bot random holds"
	return d
}

// Advisor plays a simplified Jacks-or-Better hold strategy.
type Advisor struct {
	logger *log.Logger
}

// NewAdvisor creates a new advisor
func NewAdvisor(logger *log.Logger) *Advisor {
	return &Advisor{logger: logger.WithPrefix("advisor")}
}

// Decide picks holds in priority order: pat made hands, four to a royal,
// multi-card made hands, high pair, four to a flush, low pair, four to an
// open-ended straight, up to two high cards, else draw five.
func (a *Advisor) Decide(cards [poker.HandSize]poker.Card) Decision {
	d := Advise(cards)
	a.logger.Debug("Hold decision", "cards", poker.FormatCards(cards[:]), "holds", d.Holds, "reasoning", d.Reasoning)
	return d
}

// Advise returns the advisor's decision without logging.
func Advise(cards [poker.HandSize]poker.Card) Decision {
	category, err := poker.ScoreHand(cards[:])
	if err != nil {
		return Decision{Reasoning: "unscorable hand"}
	}

	if category >= poker.Straight {
		return holdAll("pat " + category.String())
	}
	if holds, ok := fourToRoyal(cards); ok {
		return Decision{Holds: holds, Reasoning: "four to a royal"}
	}

	counts := rankCounts(cards)
	switch category {
	case poker.ThreeOfAKind, poker.TwoPair:
		return Decision{Holds: holdGroups(cards, counts), Reasoning: "keep " + category.String()}
	case poker.JacksOrBetter:
		return Decision{Holds: holdGroups(cards, counts), Reasoning: "keep high pair"}
	}

	if holds, ok := fourToFlush(cards); ok {
		return Decision{Holds: holds, Reasoning: "four to a flush"}
	}
	for _, n := range counts {
		if n == 2 {
			return Decision{Holds: holdGroups(cards, counts), Reasoning: "keep low pair"}
		}
	}
	if holds, ok := fourToOpenStraight(cards); ok {
		return Decision{Holds: holds, Reasoning: "four to an open straight"}
	}
	if holds, ok := highCards(cards); ok {
		return Decision{Holds: holds, Reasoning: "keep high cards"}
	}
	return Decision{Reasoning: "draw five"}
}

func holdAll(reason string) Decision {
	return Decision{Holds: [poker.HandSize]bool{true, true, true, true, true}, Reasoning: reason}
}

func isHigh(r poker.Rank) bool {
	return r == poker.Ace || r >= poker.Jack
}

func rankCounts(cards [poker.HandSize]poker.Card) map[poker.Rank]int {
	counts := make(map[poker.Rank]int, poker.HandSize)
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

func holdGroups(cards [poker.HandSize]poker.Card, counts map[poker.Rank]int) [poker.HandSize]bool {
	var holds [poker.HandSize]bool
	for i, c := range cards {
		holds[i] = counts[c.Rank] >= 2
	}
	return holds
}

func fourToRoyal(cards [poker.HandSize]poker.Card) ([poker.HandSize]bool, bool) {
	for suit := poker.Clubs; suit <= poker.Spades; suit++ {
		var holds [poker.HandSize]bool
		n := 0
		for i, c := range cards {
			if c.Suit == suit && (c.Rank == poker.Ace || c.Rank >= poker.Ten) {
				holds[i] = true
				n++
			}
		}
		if n == 4 {
			return holds, true
		}
	}
	return [poker.HandSize]bool{}, false
}

func fourToFlush(cards [poker.HandSize]poker.Card) ([poker.HandSize]bool, bool) {
	for suit := poker.Clubs; suit <= poker.Spades; suit++ {
		var holds [poker.HandSize]bool
		n := 0
		for i, c := range cards {
			if c.Suit == suit {
				holds[i] = true
				n++
			}
		}
		if n == 4 {
			return holds, true
		}
	}
	return [poker.HandSize]bool{}, false
}

// fourToOpenStraight finds four consecutive ranks that can be completed at
// either end. Runs containing an ace fill from one side only and are skipped.
func fourToOpenStraight(cards [poker.HandSize]poker.Card) ([poker.HandSize]bool, bool) {
	for low := poker.Two; low+3 <= poker.King; low++ {
		var holds [poker.HandSize]bool
		taken := make(map[poker.Rank]bool, 4)
		for i, c := range cards {
			if c.Rank >= low && c.Rank <= low+3 && !taken[c.Rank] {
				taken[c.Rank] = true
				holds[i] = true
			}
		}
		if len(taken) == 4 {
			return holds, true
		}
	}
	return [poker.HandSize]bool{}, false
}

// highCards keeps at most two distinct high cards, lowest first.
func highCards(cards [poker.HandSize]poker.Card) ([poker.HandSize]bool, bool) {
	var idx []int
	for i, c := range cards {
		if isHigh(c.Rank) {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return [poker.HandSize]bool{}, false
	}
	sort.Slice(idx, func(a, b int) bool {
		return highValue(cards[idx[a]].Rank) < highValue(cards[idx[b]].Rank)
	})

	var holds [poker.HandSize]bool
	for _, i := range idx[:min(2, len(idx))] {
		holds[i] = true
	}
	return holds, true
}

func highValue(r poker.Rank) int {
	if r == poker.Ace {
		return 14
	}
	return int(r)
}

package statistics

import (
	"fmt"
	"io"
	"math"

	"github.com/lox/videopoker/poker"
)

const numCategories = int(poker.RoyalFlush) + 1

// RoundResult represents the outcome of a single round
type RoundResult struct {
	Seed     int64              // RNG seed for this round (for replay)
	Initial  poker.HandCategory // Category after the first deal
	Final    poker.HandCategory // Category after the draw
	Replaced int                // Cards replaced on the draw (0-5)
}

// Statistics tracks category tallies across simulated rounds
type Statistics struct {
	Rounds int

	Initial [numCategories]int // Rounds by first-deal category
	Final   [numCategories]int // Rounds by final category

	Improved  int // Final category strictly above initial
	Worsened  int // Final category strictly below initial
	Unchanged int // Final category equal to initial

	Replaced    [poker.HandSize + 1]int // Rounds by number of cards replaced
	SumReplaced int
	SumSquares  int // Sum of squared replacement counts, for variance
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	s.Rounds++
	s.Initial[result.Initial]++
	s.Final[result.Final]++

	switch {
	case result.Final > result.Initial:
		s.Improved++
	case result.Final < result.Initial:
		s.Worsened++
	default:
		s.Unchanged++
	}

	if result.Replaced >= 0 && result.Replaced <= poker.HandSize {
		s.Replaced[result.Replaced]++
	}
	s.SumReplaced += result.Replaced
	s.SumSquares += result.Replaced * result.Replaced
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	for i := range s.Initial {
		s.Initial[i] += other.Initial[i]
		s.Final[i] += other.Final[i]
	}
	s.Improved += other.Improved
	s.Worsened += other.Worsened
	s.Unchanged += other.Unchanged
	for i := range s.Replaced {
		s.Replaced[i] += other.Replaced[i]
	}
	s.SumReplaced += other.SumReplaced
	s.SumSquares += other.SumSquares
}

// Frequency returns the share of rounds that finished in category c
func (s *Statistics) Frequency(c poker.HandCategory) float64 {
	if s.Rounds == 0 || int(c) >= numCategories {
		return 0
	}
	return float64(s.Final[c]) / float64(s.Rounds)
}

// InitialFrequency returns the share of rounds whose first deal was category c
func (s *Statistics) InitialFrequency(c poker.HandCategory) float64 {
	if s.Rounds == 0 || int(c) >= numCategories {
		return 0
	}
	return float64(s.Initial[c]) / float64(s.Rounds)
}

// MeanReplaced returns the average number of cards drawn per round
func (s *Statistics) MeanReplaced() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.SumReplaced) / float64(s.Rounds)
}

// StdDevReplaced returns the sample standard deviation of cards drawn
func (s *Statistics) StdDevReplaced() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.MeanReplaced()
	variance := (float64(s.SumSquares) - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
	return math.Sqrt(math.Max(variance, 0))
}

// StdError returns the standard error of the final frequency of category c
func (s *Statistics) StdError(c poker.HandCategory) float64 {
	if s.Rounds == 0 {
		return 0
	}
	p := s.Frequency(c)
	return math.Sqrt(p * (1 - p) / float64(s.Rounds))
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if total := sum(s.Initial[:]); total != s.Rounds {
		return fmt.Errorf("initial category total (%d) does not match rounds (%d)", total, s.Rounds)
	}
	if total := sum(s.Final[:]); total != s.Rounds {
		return fmt.Errorf("final category total (%d) does not match rounds (%d)", total, s.Rounds)
	}
	if total := s.Improved + s.Worsened + s.Unchanged; total != s.Rounds {
		return fmt.Errorf("improvement total (%d) does not match rounds (%d)", total, s.Rounds)
	}
	if total := sum(s.Replaced[:]); total != s.Rounds {
		return fmt.Errorf("replacement histogram total (%d) does not match rounds (%d)", total, s.Rounds)
	}

	weighted := 0
	for n, count := range s.Replaced {
		weighted += n * count
	}
	if weighted != s.SumReplaced {
		return fmt.Errorf("replacement sum (%d) does not match histogram (%d)", s.SumReplaced, weighted)
	}

	return nil
}

// PrintSummary writes a category table and draw summary
func PrintSummary(w io.Writer, s *Statistics, strategy string) {
	fmt.Fprintf(w, "\n=== FINAL RESULTS with %s strategy ===\n", strategy)
	fmt.Fprintf(w, "Rounds played: %d\n", s.Rounds)

	fmt.Fprintf(w, "\n=== HAND CATEGORIES ===\n")
	fmt.Fprintf(w, "%-16s %10s %9s %10s %9s\n", "Category", "Dealt", "Dealt%", "Final", "Final%")
	categories := poker.Categories()
	for i := len(categories) - 1; i >= 0; i-- {
		c := categories[i]
		fmt.Fprintf(w, "%-16s %10d %8.4f%% %10d %8.4f%%\n",
			c, s.Initial[c], s.InitialFrequency(c)*100, s.Final[c], s.Frequency(c)*100)
	}

	fmt.Fprintf(w, "\n=== DRAW ANALYSIS ===\n")
	fmt.Fprintf(w, "Cards drawn: %.3f per round (std dev %.3f)\n", s.MeanReplaced(), s.StdDevReplaced())
	if s.Rounds > 0 {
		fmt.Fprintf(w, "Improved: %d (%.1f%%), unchanged: %d (%.1f%%), worsened: %d (%.1f%%)\n",
			s.Improved, pct(s.Improved, s.Rounds),
			s.Unchanged, pct(s.Unchanged, s.Rounds),
			s.Worsened, pct(s.Worsened, s.Rounds))
	}
	for n, count := range s.Replaced {
		if count > 0 {
			fmt.Fprintf(w, "Drew %d: %d rounds (%.1f%%)\n", n, count, pct(count, s.Rounds))
		}
	}
}

func pct(n, total int) float64 {
	return float64(n) / float64(total) * 100
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

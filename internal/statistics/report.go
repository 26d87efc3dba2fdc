package statistics

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/lox/videopoker/poker"
)

// CategoryReport summarises one hand category across a run
type CategoryReport struct {
	Initial   int     `json:"initial"`
	Final     int     `json:"final"`
	Frequency float64 `json:"frequency"`
	StdError  float64 `json:"std_error"`
}

// Report is the machine readable summary of a simulation run
type Report struct {
	Strategy       string                    `json:"strategy"`
	Seed           int64                     `json:"seed"`
	Rounds         int                       `json:"rounds"`
	Improved       int                       `json:"improved"`
	Worsened       int                       `json:"worsened"`
	Unchanged      int                       `json:"unchanged"`
	MeanReplaced   float64                   `json:"mean_replaced"`
	StdDevReplaced float64                   `json:"stddev_replaced"`
	Replaced       []int                     `json:"replaced"`
	Categories     map[string]CategoryReport `json:"categories"`
}

// NewReport builds a report keyed by category key, e.g. "two_pair"
func NewReport(s *Statistics, strategy string, seed int64) Report {
	r := Report{
		Strategy:       strategy,
		Seed:           seed,
		Rounds:         s.Rounds,
		Improved:       s.Improved,
		Worsened:       s.Worsened,
		Unchanged:      s.Unchanged,
		MeanReplaced:   s.MeanReplaced(),
		StdDevReplaced: s.StdDevReplaced(),
		Replaced:       append([]int(nil), s.Replaced[:]...),
		Categories:     make(map[string]CategoryReport, numCategories),
	}
	for _, c := range poker.Categories() {
		r.Categories[c.Key()] = CategoryReport{
			Initial:   s.Initial[c],
			Final:     s.Final[c],
			Frequency: s.Frequency(c),
			StdError:  s.StdError(c),
		}
	}
	return r
}

// WriteJSON encodes the report as indented JSON
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

package equity

import (
	"math"
	"time"

	"github.com/lox/holdem-equity/internal/evaluator"
)

// Result holds the counts from one Estimate call. Rates are normalised by
// Completed, so discarded trials never enter any denominator.
type Result struct {
	Opponents []string
	Trials    int
	Completed int
	Discarded int

	Wins         int
	Ties         int
	OpponentWins int

	// PerOpponent counts the trials each opponent held a winning hand the
	// player did not share.
	PerOpponent []int

	// Categories counts the player's final hand category, indexed by
	// Category-1.
	Categories [evaluator.NumCategories]int

	Seed      int64
	Elapsed   time.Duration
	Cancelled bool
}

func (r *Result) rate(n int) float64 {
	if r.Completed == 0 {
		return 0.0
	}
	return float64(n) / float64(r.Completed)
}

// WinRate returns the share of completed trials the player won outright
func (r *Result) WinRate() float64 { return r.rate(r.Wins) }

// TieRate returns the share of completed trials the player split
func (r *Result) TieRate() float64 { return r.rate(r.Ties) }

// LossRate returns the share of completed trials an opponent won
func (r *Result) LossRate() float64 { return r.rate(r.OpponentWins) }

// OpponentWinRate returns the share of completed trials won by opponent i
func (r *Result) OpponentWinRate(i int) float64 {
	if i < 0 || i >= len(r.PerOpponent) {
		return 0.0
	}
	return r.rate(r.PerOpponent[i])
}

// CategoryRate returns how often the player finished with the category
func (r *Result) CategoryRate(c evaluator.Category) float64 {
	if c < evaluator.HighCard || c > evaluator.StraightFlush {
		return 0.0
	}
	return r.rate(r.Categories[c-1])
}

// Equity returns the overall equity (0.0 to 1.0)
// Wins count as 1.0, ties count as 0.5
func (r *Result) Equity() float64 {
	if r.Completed == 0 {
		return 0.0
	}
	return (float64(r.Wins) + float64(r.Ties)*0.5) / float64(r.Completed)
}

// ConfidenceInterval returns the 95% confidence interval for equity
func (r *Result) ConfidenceInterval() (lower, upper float64) {
	equity := r.Equity()
	n := float64(r.Completed)

	if n == 0 {
		return 0.0, 0.0
	}

	// Standard error for binomial proportion
	se := math.Sqrt((equity * (1.0 - equity)) / n)
	margin := 1.96 * se

	lower = math.Max(0.0, equity-margin)
	upper = math.Min(1.0, equity+margin)

	return lower, upper
}

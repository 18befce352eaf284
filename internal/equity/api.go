package equity

import (
	"context"
	"fmt"
	"strings"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/evaluator"
)

// DefaultTrials is used when an Input leaves num_simulations unset.
const DefaultTrials = 10000

// Input is the wire form of an equity question
type Input struct {
	PlayerHand     string   `json:"player_hand"`
	BoardCards     string   `json:"board_cards"`
	OpponentTypes  []string `json:"opponent_types"`
	NumSimulations int      `json:"num_simulations,omitempty"`
}

// Output is the wire form of an equity answer. Percentages run 0 to 100.
type Output struct {
	PlayerWinPercentage     float64            `json:"player_win_percentage"`
	TiePercentage           float64            `json:"tie_percentage"`
	OpponentWinPercentage   float64            `json:"opponent_win_percentage"`
	PlayerSpecificHandOdds  map[string]float64 `json:"player_specific_hand_odds"`
	OpponentEquityBreakdown map[string]float64 `json:"opponent_equity_breakdown,omitempty"`

	Equity          float64 `json:"equity"`
	TrialsCompleted int     `json:"trials_completed"`
	Cancelled       bool    `json:"cancelled,omitempty"`
}

// Request converts the input into a simulator request
func (in Input) Request() (Request, error) {
	hand := strings.ReplaceAll(in.PlayerHand, " ", "")
	if len(hand) != 4 {
		return Request{}, &deck.ParseError{Input: in.PlayerHand, Pos: -1, Reason: "player hand must be exactly two cards, e.g. \"AhKd\""}
	}
	player, err := deck.ParseCards(hand)
	if err != nil {
		return Request{}, err
	}

	boardStr := strings.ReplaceAll(in.BoardCards, " ", "")
	switch len(boardStr) {
	case 0, 6, 8, 10:
	default:
		return Request{}, &deck.ParseError{Input: in.BoardCards, Pos: -1, Reason: "board must be empty or hold 3, 4 or 5 cards"}
	}
	board, err := deck.ParseCards(boardStr)
	if err != nil {
		return Request{}, err
	}

	trials := in.NumSimulations
	if trials == 0 {
		trials = DefaultTrials
	}

	return Request{
		Player:    player,
		Board:     board,
		Opponents: in.OpponentTypes,
		Trials:    trials,
	}, nil
}

// Calculate answers an equity question in its wire form. An unset trial
// count takes the simulator's configured default.
func Calculate(ctx context.Context, sim *Simulator, in Input) (*Output, error) {
	if in.NumSimulations == 0 {
		in.NumSimulations = sim.config.DefaultTrials
	}
	req, err := in.Request()
	if err != nil {
		return nil, err
	}
	result, err := sim.Estimate(ctx, req)
	if err != nil {
		return nil, err
	}
	return NewOutput(result), nil
}

// NewOutput renders a result in wire form. When no trial completed every
// percentage is zero but all keys are still present.
func NewOutput(r *Result) *Output {
	out := &Output{
		PlayerWinPercentage:    percent(r.WinRate()),
		TiePercentage:          percent(r.TieRate()),
		OpponentWinPercentage:  percent(r.LossRate()),
		PlayerSpecificHandOdds: make(map[string]float64, evaluator.NumCategories),
		Equity:                 percent(r.Equity()),
		TrialsCompleted:        r.Completed,
		Cancelled:              r.Cancelled,
	}

	for _, c := range evaluator.Categories() {
		out.PlayerSpecificHandOdds[c.String()] = percent(r.CategoryRate(c))
	}

	if len(r.Opponents) > 1 {
		out.OpponentEquityBreakdown = make(map[string]float64, len(r.Opponents))
		for i, name := range r.Opponents {
			out.OpponentEquityBreakdown[OpponentLabel(i, name)] = percent(r.OpponentWinRate(i))
		}
	}

	return out
}

// OpponentLabel names an opponent the way the breakdown keys do, e.g.
// "Opponent 2 (tight)"
func OpponentLabel(i int, archetype string) string {
	return fmt.Sprintf("Opponent %d (%s)", i+1, archetype)
}

func percent(rate float64) float64 {
	return rate * 100
}

// HandOutput is the wire form of a ranked hand
type HandOutput struct {
	Cards    string `json:"cards"`
	Category string `json:"category"`
	Rank     string `json:"rank"`
	Best     string `json:"best"`
}

// RankHand ranks 5 to 7 cards written as a card string such as "AsKsQsJsTs"
func RankHand(cards string) (*HandOutput, error) {
	parsed, err := deck.ParseCards(cards)
	if err != nil {
		return nil, err
	}
	if err := deck.CheckDistinct(parsed...); err != nil {
		return nil, err
	}
	hand, err := evaluator.Describe(parsed)
	if err != nil {
		return nil, err
	}
	return &HandOutput{
		Cards:    deck.FormatCards(parsed),
		Category: hand.Rank.Category.String(),
		Rank:     hand.Rank.String(),
		Best:     deck.FormatCards(hand.Cards[:]),
	}, nil
}

package equity

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/evaluator"
	"github.com/lox/holdem-equity/internal/ranges"
)

func TestCalculate(t *testing.T) {
	sim := newTestSimulator(t, Config{})

	out, err := Calculate(context.Background(), sim, Input{
		PlayerHand:     "KhKd",
		BoardCards:     "KsKc2h",
		OpponentTypes:  []string{"tight"},
		NumSimulations: 1000,
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, out.PlayerSpecificHandOdds["Four of a Kind"])
	assert.Len(t, out.PlayerSpecificHandOdds, evaluator.NumCategories)
	assert.Nil(t, out.OpponentEquityBreakdown, "single opponent has no breakdown")
	assert.Equal(t, 1000, out.TrialsCompleted)
	assert.InDelta(t, 100.0, out.PlayerWinPercentage+out.TiePercentage+out.OpponentWinPercentage, 1e-9)
}

func TestCalculateMultiway(t *testing.T) {
	sim := newTestSimulator(t, Config{})

	out, err := Calculate(context.Background(), sim, Input{
		PlayerHand:     "As Kd",
		BoardCards:     "",
		OpponentTypes:  []string{"tight", "loose", "tight"},
		NumSimulations: 2000,
	})
	require.NoError(t, err)

	require.Len(t, out.OpponentEquityBreakdown, 3)
	assert.Contains(t, out.OpponentEquityBreakdown, "Opponent 1 (tight)")
	assert.Contains(t, out.OpponentEquityBreakdown, "Opponent 2 (loose)")
	assert.Contains(t, out.OpponentEquityBreakdown, "Opponent 3 (tight)")

	var credited float64
	for _, pct := range out.OpponentEquityBreakdown {
		credited += pct
	}
	assert.GreaterOrEqual(t, credited, out.OpponentWinPercentage-1e-9)
}

func TestCalculateDefaultsTrials(t *testing.T) {
	sim := newTestSimulator(t, Config{})
	out, err := Calculate(context.Background(), sim, Input{PlayerHand: "7h2c"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTrials, out.TrialsCompleted)
	assert.Equal(t, 100.0, out.PlayerWinPercentage)
}

func TestCalculateUsesConfiguredDefaultTrials(t *testing.T) {
	sim := newTestSimulator(t, Config{DefaultTrials: 300})
	out, err := Calculate(context.Background(), sim, Input{PlayerHand: "7h2c"})
	require.NoError(t, err)
	assert.Equal(t, 300, out.TrialsCompleted)
}

func TestCalculateInputErrors(t *testing.T) {
	sim := newTestSimulator(t, Config{})

	tests := []struct {
		name   string
		input  Input
		target any
	}{
		{"hand too short", Input{PlayerHand: "Ah"}, new(*deck.ParseError)},
		{"hand too long", Input{PlayerHand: "AhKhQh"}, new(*deck.ParseError)},
		{"bad suit", Input{PlayerHand: "AhKx"}, new(*deck.ParseError)},
		{"board of two", Input{PlayerHand: "AhKh", BoardCards: "2c3c"}, new(*deck.ParseError)},
		{"board of six", Input{PlayerHand: "AhKh", BoardCards: "2c3c4c5c6c7c"}, new(*deck.ParseError)},
		{"bad board rank", Input{PlayerHand: "AhKh", BoardCards: "Xc3c4c"}, new(*deck.ParseError)},
		{"duplicate", Input{PlayerHand: "AsAs"}, new(*deck.DuplicateCardError)},
		{"unknown range", Input{PlayerHand: "AsKs", OpponentTypes: []string{"nit"}}, new(*ranges.UnknownRangeError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Calculate(context.Background(), sim, tt.input)
			assert.Nil(t, out)
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.target), "unexpected error type %T: %v", err, err)
		})
	}
}

func TestOutputAllZero(t *testing.T) {
	out := NewOutput(&Result{
		Opponents:   []string{"tight", "loose"},
		Trials:      10,
		Discarded:   10,
		PerOpponent: make([]int, 2),
	})

	assert.Zero(t, out.PlayerWinPercentage)
	assert.Zero(t, out.TiePercentage)
	assert.Zero(t, out.OpponentWinPercentage)
	assert.Len(t, out.PlayerSpecificHandOdds, evaluator.NumCategories)
	for name, pct := range out.PlayerSpecificHandOdds {
		assert.Zero(t, pct, name)
	}
	assert.Equal(t, map[string]float64{
		"Opponent 1 (tight)": 0,
		"Opponent 2 (loose)": 0,
	}, out.OpponentEquityBreakdown)
}

func TestOutputJSON(t *testing.T) {
	out := NewOutput(&Result{
		Opponents:    []string{"tight"},
		Completed:    4,
		Wins:         2,
		Ties:         1,
		OpponentWins: 1,
		PerOpponent:  []int{1},
	})

	data, err := json.Marshal(out)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 50.0, decoded["player_win_percentage"])
	assert.Equal(t, 25.0, decoded["tie_percentage"])
	assert.Equal(t, 25.0, decoded["opponent_win_percentage"])
	assert.Equal(t, 62.5, decoded["equity"])
	assert.Contains(t, decoded, "player_specific_hand_odds")
	assert.NotContains(t, decoded, "opponent_equity_breakdown")
}

func TestInputJSONFieldNames(t *testing.T) {
	var in Input
	err := json.Unmarshal([]byte(`{
		"player_hand": "AhAd",
		"board_cards": "2c3c4c",
		"opponent_types": ["tight", "loose"],
		"num_simulations": 500
	}`), &in)
	require.NoError(t, err)

	req, err := in.Request()
	require.NoError(t, err)
	assert.Equal(t, deck.MustParseCards("AhAd"), req.Player)
	assert.Equal(t, deck.MustParseCards("2c3c4c"), req.Board)
	assert.Equal(t, []string{"tight", "loose"}, req.Opponents)
	assert.Equal(t, 500, req.Trials)
}

func TestRankHand(t *testing.T) {
	out, err := RankHand("AsKsQsJsTs9h2c")
	require.NoError(t, err)
	assert.Equal(t, "Straight Flush", out.Category)
	assert.Equal(t, "AsKsQsJsTs", out.Best)
	assert.Equal(t, "AsKsQsJsTs9h2c", out.Cards)

	_, err = RankHand("AsKs")
	var insufficient *deck.InsufficientCardsError
	assert.True(t, errors.As(err, &insufficient))

	_, err = RankHand("AsAsKsQsJs")
	var dup *deck.DuplicateCardError
	assert.True(t, errors.As(err, &dup))

	_, err = RankHand("AsK")
	var parseErr *deck.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

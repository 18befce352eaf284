package ranges

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-equity/internal/deck"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		token    string
		wantSize int
		wantErr  bool
	}{
		{token: "AA", wantSize: 6},
		{token: "22", wantSize: 6},
		{token: "AKs", wantSize: 4},
		{token: "AKo", wantSize: 12},
		{token: "AK", wantSize: 12},
		{token: "KA", wantSize: 12},
		{token: "akS", wantSize: 4},
		{token: "t9O", wantSize: 12},
		{token: "QQs", wantErr: true},
		{token: "QQo", wantErr: true},
		{token: "XX", wantErr: true},
		{token: "AKx", wantErr: true},
		{token: "A", wantErr: true},
		{token: "AKso", wantErr: true},
		{token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			combos, err := Expand(tt.token)
			if tt.wantErr {
				var parseErr *deck.ParseError
				require.True(t, errors.As(err, &parseErr), "expected *deck.ParseError, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, combos, tt.wantSize)
			assertDistinctCombos(t, combos)
		})
	}
}

func TestExpandShapes(t *testing.T) {
	suited, err := Expand("AKs")
	require.NoError(t, err)
	for _, c := range suited {
		assert.Equal(t, c.A.Suit, c.B.Suit)
		assert.Equal(t, "AKs", c.Class())
	}

	offsuit, err := Expand("AKo")
	require.NoError(t, err)
	for _, c := range offsuit {
		assert.NotEqual(t, c.A.Suit, c.B.Suit)
		assert.Equal(t, deck.Ace, c.A.Rank)
		assert.Equal(t, deck.King, c.B.Rank)
		assert.Equal(t, "AKo", c.Class())
	}

	pairs, err := Expand("77")
	require.NoError(t, err)
	for _, c := range pairs {
		assert.Equal(t, deck.Seven, c.A.Rank)
		assert.Equal(t, deck.Seven, c.B.Rank)
		assert.NotEqual(t, c.A, c.B)
		assert.Equal(t, "77", c.Class())
	}
}

func TestExpandNotation(t *testing.T) {
	tests := []struct {
		name     string
		notation string
		wantSize int
		wantErr  bool
	}{
		{name: "multiple hands", notation: "AA,KK,AKs", wantSize: 16},
		{name: "pocket pairs plus", notation: "TT+", wantSize: 30},
		{name: "suited plus", notation: "ATs+", wantSize: 16},
		{name: "offsuit plus", notation: "KJo+", wantSize: 24},
		{name: "bare plus is offsuit", notation: "KJ+", wantSize: 24},
		{name: "dash pairs", notation: "22-55", wantSize: 24},
		{name: "dash pairs reversed", notation: "55-22", wantSize: 24},
		{name: "dash suited", notation: "A5s-A2s", wantSize: 16},
		{name: "complex", notation: "TT+,AJs+,KQs", wantSize: 46},
		{name: "duplicates collapse", notation: "AA,AA,QQ+", wantSize: 18},
		{name: "spaces", notation: " AA , KK ", wantSize: 12},
		{name: "everything", notation: "top100%", wantSize: 1326},
		{name: "bare percentage", notation: "100%", wantSize: 1326},
		{name: "dash mixed modifiers", notation: "A5s-A2o", wantErr: true},
		{name: "dash different top card", notation: "A5s-K2s", wantErr: true},
		{name: "bad percentage", notation: "top0%", wantErr: true},
		{name: "too much", notation: "top101%", wantErr: true},
		{name: "empty", notation: " , ", wantErr: true},
		{name: "invalid token", notation: "AA,XX", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combos, err := ExpandNotation(tt.notation)
			if tt.wantErr {
				var parseErr *deck.ParseError
				require.True(t, errors.As(err, &parseErr), "expected *deck.ParseError, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, combos, tt.wantSize)
			assertDistinctCombos(t, combos)
		})
	}
}

func TestComboString(t *testing.T) {
	combos, err := Expand("AKs")
	require.NoError(t, err)
	assert.Equal(t, "AsKs", combos[0].String())
	assert.Equal(t, deck.NewCardSet(combos[0].A, combos[0].B), combos[0].Set())
	assert.Equal(t, []deck.Card{combos[0].A, combos[0].B}, combos[0].Cards())
}

func assertDistinctCombos(t *testing.T, combos []Combo) {
	t.Helper()
	var seen comboSet
	for _, c := range combos {
		require.NotEqual(t, c.A, c.B)
		require.True(t, seen.add(c), "combo %s listed twice", c)
	}
}

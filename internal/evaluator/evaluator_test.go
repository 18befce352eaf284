package evaluator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/randutil"
)

func five(s string) [5]deck.Card {
	cards := deck.MustParseCards(s)
	if len(cards) != 5 {
		panic("five: need exactly 5 cards: " + s)
	}
	return [5]deck.Card(cards)
}

func ranks(rs ...deck.Rank) []deck.Rank { return rs }

func TestEvaluate5Categories(t *testing.T) {
	tests := []struct {
		cards     string
		category  Category
		primary   []deck.Rank
		secondary []deck.Rank
	}{
		{"AsKsQsJsTs", StraightFlush, ranks(deck.Ace), ranks()},
		{"5h4h3h2hAh", StraightFlush, ranks(deck.Five), ranks()},
		{"9c9d9h9s2c", FourOfAKind, ranks(deck.Nine), ranks(deck.Two)},
		{"KsKhKd2c2d", FullHouse, ranks(deck.King, deck.Two), ranks()},
		{"2s2h2dKcKd", FullHouse, ranks(deck.Two, deck.King), ranks()},
		{"As9s7s4s2s", Flush, ranks(deck.Ace, deck.Nine, deck.Seven, deck.Four, deck.Two), ranks()},
		{"Ts9h8d7c6s", Straight, ranks(deck.Ten), ranks()},
		{"Ad5s4h3c2d", Straight, ranks(deck.Five), ranks()},
		{"7s7h7dAcKd", ThreeOfAKind, ranks(deck.Seven), ranks(deck.Ace, deck.King)},
		{"JsJh4d4cAd", TwoPair, ranks(deck.Jack, deck.Four), ranks(deck.Ace)},
		{"QsQh9d5c2d", Pair, ranks(deck.Queen), ranks(deck.Nine, deck.Five, deck.Two)},
		{"AsJh9d5c2d", HighCard, ranks(deck.Ace, deck.Jack, deck.Nine, deck.Five, deck.Two), ranks()},
		{"KsQhJdTc8d", HighCard, ranks(deck.King, deck.Queen, deck.Jack, deck.Ten, deck.Eight), ranks()},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			got := Evaluate5(five(tt.cards))
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.primary, got.Primary())
			assert.Equal(t, tt.secondary, got.Secondary())
		})
	}
}

func TestCategoryOrdering(t *testing.T) {
	// Strongest first.
	ladder := []string{
		"9h8h7h6h5h", // straight flush
		"5d4d3d2dAd", // wheel straight flush
		"2c2d2h2sKc", // quads
		"3c3d3hAsAd", // full house
		"Kh9h7h4h2h", // flush
		"7s6h5d4c3s", // seven high straight
		"6s5h4d3c2s", // six high straight
		"As5h4d3c2s", // wheel
		"AsAhAdKcQd", // trips
		"AsAhKdKcQd", // two pair
		"AsAhKdQcJd", // pair
		"AsKhQdJc9d", // high card
	}

	for i := 0; i+1 < len(ladder); i++ {
		stronger := Evaluate5(five(ladder[i]))
		weaker := Evaluate5(five(ladder[i+1]))
		assert.Equal(t, 1, stronger.Compare(weaker), "%s should beat %s", ladder[i], ladder[i+1])
		assert.Equal(t, -1, weaker.Compare(stronger), "%s should lose to %s", ladder[i+1], ladder[i])
	}
}

func TestStraightFlushNotScoredAsFlush(t *testing.T) {
	rank := Evaluate5(five("Th9h8h7h6h"))
	assert.Equal(t, StraightFlush, rank.Category)
}

func TestKickerTieBreaks(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"quads kicker", "9c9d9h9sAc", "9c9d9h9sKc", 1},
		{"full house trips first", "3c3d3h2s2d", "2c2d2hAsAd", 1},
		{"full house pair second", "KcKdKh3s3d", "KcKdKh2s2d", 1},
		{"flush second card", "AhQh7h4h2h", "AsJs9s8s6s", 1},
		{"two pair bottom pair", "AsAhQdQc2d", "AsAhJdJcKd", 1},
		{"two pair kicker", "AsAhQdQc3d", "AdAcQhQs2d", 1},
		{"pair third kicker", "8s8hAdKc5d", "8d8cAhKs4d", 1},
		{"high card last card", "AsJh9d5c3d", "AdJc9h5s2d", 1},
		{"split pot", "AsKhQdJc9d", "AdKcQhJs9s", 0},
		{"straight split", "Ts9h8d7c6s", "Th9d8c7s6h", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Evaluate5(five(tt.a))
			b := Evaluate5(five(tt.b))
			assert.Equal(t, tt.expected, a.Compare(b))
			assert.Equal(t, -tt.expected, b.Compare(a))
			if tt.expected == 0 {
				assert.Equal(t, a, b)
			}
		})
	}
}

func TestSuitIndependence(t *testing.T) {
	rng := randutil.New(11)
	full := deck.FullDeck()

	for range 2000 {
		var hand [5]deck.Card
		perm := rng.Perm(52)
		for i := range 5 {
			hand[i] = full[perm[i]]
		}

		// Reassign suits at random while keeping the cards distinct.
		reassigned := hand
		for {
			var used deck.CardSet
			ok := true
			for i := range reassigned {
				reassigned[i].Suit = deck.Suits[rng.IntN(4)]
				if used.Has(reassigned[i]) {
					ok = false
					break
				}
				used.Add(reassigned[i])
			}
			if ok {
				break
			}
		}

		a := Evaluate5(hand)
		b := Evaluate5(reassigned)
		if isFlush(hand) || isFlush(reassigned) {
			continue
		}
		require.Equal(t, 0, a.Compare(b), "%v vs %v", hand, reassigned)
	}
}

func isFlush(cards [5]deck.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

func TestBestHand(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		category Category
		primary  []deck.Rank
	}{
		{"seven card royal", "AsKsQsJsTs9h8h", StraightFlush, ranks(deck.Ace)},
		{"straight flush beats flush in seven", "9s8s7s6s5s4h3h", StraightFlush, ranks(deck.Nine)},
		{"quads over full house", "AsAhAdAcKsKh3h", FourOfAKind, ranks(deck.Ace)},
		{"two trips make a full house", "AsAhAdKsKhKd2c", FullHouse, ranks(deck.Ace, deck.King)},
		{"flush over straight", "AsKs9s7s2sQhJd", Flush, ranks(deck.Ace, deck.King, deck.Nine, deck.Seven, deck.Two)},
		{"six card straight uses top", "9h8d7c6s5h4d2c", Straight, ranks(deck.Nine)},
		{"wheel with extra low cards", "Ah2d3c4s5h9dKc", Straight, ranks(deck.Five)},
		{"six high straight over wheel", "Ah2d3c4s5h6d", Straight, ranks(deck.Six)},
		{"three pairs keep best two", "AsAhKdKcQsQh2c", TwoPair, ranks(deck.Ace, deck.King)},
		{"six cards pair", "7h7d2c9sJhKd", Pair, ranks(deck.Seven)},
		{"exactly five", "AsJh9d5c2d", HighCard, ranks(deck.Ace, deck.Jack, deck.Nine, deck.Five, deck.Two)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BestHand(deck.MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.primary, got.Primary())
		})
	}
}

func TestBestHandTwoPairKicker(t *testing.T) {
	// With three pairs the third pair's rank competes as the kicker.
	got, err := BestHand(deck.MustParseCards("AsAhKdKcQsQh2c"))
	require.NoError(t, err)
	assert.Equal(t, ranks(deck.Queen), got.Secondary())
}

func TestBestHandCardCount(t *testing.T) {
	_, err := BestHand(deck.MustParseCards("AsKsQsJs"))
	var insufficient *deck.InsufficientCardsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 4, insufficient.Remaining)

	_, err = BestHand(deck.MustParseCards("AsKsQsJsTs9s8s7s"))
	assert.ErrorIs(t, err, ErrTooManyCards)
}

func TestBestHandIsMaximumOverSubsets(t *testing.T) {
	rng := randutil.New(5)
	for range 500 {
		d := deck.NewDeck(rng)
		cards, err := d.Deal(7)
		require.NoError(t, err)

		best, err := BestHand(cards)
		require.NoError(t, err)

		// No five card subset may beat the reported best hand, and one must equal it.
		found := false
		for a := range 7 {
			for b := a + 1; b < 7; b++ {
				rank := Evaluate5(pick(cards, a, b))
				require.LessOrEqual(t, rank.Compare(best), 0)
				if rank == best {
					found = true
				}
			}
		}
		require.True(t, found)
	}
}

func TestCategoryNames(t *testing.T) {
	names := make([]string, 0, NumCategories)
	for _, c := range Categories() {
		names = append(names, c.String())
	}
	assert.Equal(t, []string{
		"Straight Flush", "Four of a Kind", "Full House", "Flush", "Straight",
		"Three of a Kind", "Two Pair", "Pair", "High Card",
	}, names)
	assert.Equal(t, "Unknown", Category(0).String())
}

package evaluator

import (
	"cmp"
	"testing"

	"github.com/paulhankin/poker"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/randutil"
)

// toReference converts a card to the reference evaluator's representation.
// Its ranks run 1..13 with the ace low at 1.
func toReference(t testing.TB, c deck.Card) poker.Card {
	t.Helper()

	var s poker.Suit
	switch c.Suit {
	case deck.Clubs:
		s = poker.Club
	case deck.Diamonds:
		s = poker.Diamond
	case deck.Hearts:
		s = poker.Heart
	default:
		s = poker.Spade
	}

	r := poker.Rank(c.Rank)
	if c.Rank == deck.Ace {
		r = poker.Rank(1)
	}

	card, err := poker.MakeCard(s, r)
	require.NoError(t, err)
	return card
}

func referenceScore(t testing.TB, cards []deck.Card) int16 {
	t.Helper()
	var hand [7]poker.Card
	for i, c := range cards {
		hand[i] = toReference(t, c)
	}
	return poker.Eval7(&hand)
}

// TestAgreesWithReferenceEvaluator deals two seven card hands sharing a board
// and checks that both evaluators order them the same way.
func TestAgreesWithReferenceEvaluator(t *testing.T) {
	rng := randutil.New(2024)

	for i := range 20000 {
		d := deck.NewDeck(rng)
		cards, err := d.Deal(9)
		require.NoError(t, err)

		board := cards[4:9]
		a := append([]deck.Card{cards[0], cards[1]}, board...)
		b := append([]deck.Card{cards[2], cards[3]}, board...)

		ours := MustBestHand(a).Compare(MustBestHand(b))
		ref := cmp.Compare(referenceScore(t, a), referenceScore(t, b))

		require.Equal(t, ref, ours, "trial %d: %s vs %s", i, deck.FormatCards(a), deck.FormatCards(b))
	}
}

func TestCategoriesAgreeWithReferenceOrdering(t *testing.T) {
	// One seven card hand per category, weakest first.
	hands := []string{
		"AsJh9d5c3d2h7c",
		"QsQh9d5c2d3h7c",
		"JsJh4d4cAd2h7c",
		"7s7h7dAcKd2h4c",
		"Ts9h8d7c6s2h2c",
		"As9s7s4s2sKhQd",
		"KsKhKd2c2dJh9s",
		"9c9d9h9s2c3h5d",
		"9h8h7h6h5h2c2d",
	}

	for i := 0; i+1 < len(hands); i++ {
		weak := deck.MustParseCards(hands[i])
		strong := deck.MustParseCards(hands[i+1])
		require.Less(t, referenceScore(t, weak), referenceScore(t, strong))
		require.Equal(t, -1, MustBestHand(weak).Compare(MustBestHand(strong)))
	}
}

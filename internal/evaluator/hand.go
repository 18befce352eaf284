package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-equity/internal/deck"
)

// Hand is a ranked hand together with the five cards that make it up
type Hand struct {
	Rank  HandRank
	Cards [5]deck.Card
}

// Describe finds the best five card hand among 5 to 7 cards
func Describe(cards []deck.Card) (Hand, error) {
	rank, best, err := bestOf(cards)
	if err != nil {
		return Hand{}, err
	}
	return Hand{Rank: rank, Cards: best}, nil
}

// String returns a string representation of the hand
func (h Hand) String() string {
	cardStrs := make([]string, 0, len(h.Cards))
	for _, card := range h.Cards {
		cardStrs = append(cardStrs, card.String())
	}
	return fmt.Sprintf("%s [%s]", h.Rank.Category, strings.Join(cardStrs, " "))
}

// Explain compares two ranks and returns the result with a short reason
func Explain(a, b HandRank) (int, string) {
	result := a.Compare(b)
	if result == 0 {
		return 0, fmt.Sprintf("%s ties %s", a, b)
	}

	winner, loser := a, b
	if result < 0 {
		winner, loser = b, a
	}

	explanation := fmt.Sprintf("%s beats %s", winner.Category, loser.Category)
	if winner.Category != loser.Category {
		return result, explanation
	}

	wp, lp := winner.Primary(), loser.Primary()
	for i := range wp {
		if wp[i] != lp[i] {
			return result, explanation + " with " + primaryReason(winner.Category, i, wp[i], lp[i])
		}
	}
	ws, ls := winner.Secondary(), loser.Secondary()
	for i := range ws {
		if ws[i] != ls[i] {
			return result, explanation + fmt.Sprintf(" with higher kicker (%s vs %s)", ws[i], ls[i])
		}
	}
	return result, explanation
}

func primaryReason(cat Category, slot int, w, l deck.Rank) string {
	switch cat {
	case Straight, StraightFlush:
		return fmt.Sprintf("higher straight (%s-high vs %s-high)", w, l)
	case Flush:
		return fmt.Sprintf("higher flush card (%s vs %s)", w, l)
	case FourOfAKind:
		return fmt.Sprintf("higher quads (%s vs %s)", w, l)
	case FullHouse:
		if slot == 0 {
			return fmt.Sprintf("higher trips (%s vs %s)", w, l)
		}
		return fmt.Sprintf("higher pair (%s vs %s)", w, l)
	case ThreeOfAKind:
		return fmt.Sprintf("higher trips (%s vs %s)", w, l)
	case TwoPair:
		if slot == 0 {
			return fmt.Sprintf("higher top pair (%s vs %s)", w, l)
		}
		return fmt.Sprintf("higher bottom pair (%s vs %s)", w, l)
	case Pair:
		return fmt.Sprintf("higher pair (%s vs %s)", w, l)
	default:
		return fmt.Sprintf("higher card (%s vs %s)", w, l)
	}
}

// Package evaluator ranks Texas Hold'em hands. Any 5, 6 or 7 cards are
// ranked by the best five card hand they contain.
package evaluator

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-equity/internal/deck"
)

// ErrTooManyCards is returned when more than seven cards are ranked.
var ErrTooManyCards = errors.New("too many cards: at most 7 can be ranked")

type rankGroup struct {
	rank  deck.Rank
	count int
}

// Evaluate5 ranks exactly five cards
func Evaluate5(cards [5]deck.Card) HandRank {
	var counts [deck.Ace + 1]int
	flush := true
	for i, c := range cards {
		counts[c.Rank]++
		if i > 0 && c.Suit != cards[0].Suit {
			flush = false
		}
	}

	// Groups ordered by count, then rank, both descending.
	var groups [5]rankGroup
	n := 0
	for r := deck.Ace; r >= deck.Two; r-- {
		if counts[r] > 0 {
			groups[n] = rankGroup{rank: r, count: counts[r]}
			n++
		}
	}
	for i := 1; i < n; i++ {
		for j := i; j > 0 && groups[j].count > groups[j-1].count; j-- {
			groups[j], groups[j-1] = groups[j-1], groups[j]
		}
	}

	var straightTop deck.Rank
	if n == 5 {
		switch {
		case groups[0].rank-groups[4].rank == 4:
			straightTop = groups[0].rank
		case groups[0].rank == deck.Ace && groups[1].rank == deck.Five:
			// A-5-4-3-2 plays as a five high straight.
			straightTop = deck.Five
		}
	}

	ranks := func(from, to int) []deck.Rank {
		out := make([]deck.Rank, 0, to-from)
		for i := from; i < to; i++ {
			out = append(out, groups[i].rank)
		}
		return out
	}

	switch {
	case straightTop != 0 && flush:
		return newHandRank(StraightFlush, []deck.Rank{straightTop}, nil)
	case groups[0].count == 4:
		return newHandRank(FourOfAKind, ranks(0, 1), ranks(1, 2))
	case groups[0].count == 3 && groups[1].count == 2:
		return newHandRank(FullHouse, ranks(0, 2), nil)
	case flush:
		return newHandRank(Flush, ranks(0, 5), nil)
	case straightTop != 0:
		return newHandRank(Straight, []deck.Rank{straightTop}, nil)
	case groups[0].count == 3:
		return newHandRank(ThreeOfAKind, ranks(0, 1), ranks(1, 3))
	case groups[0].count == 2 && groups[1].count == 2:
		return newHandRank(TwoPair, ranks(0, 2), ranks(2, 3))
	case groups[0].count == 2:
		return newHandRank(Pair, ranks(0, 1), ranks(1, 4))
	default:
		return newHandRank(HighCard, ranks(0, 5), nil)
	}
}

// BestHand returns the rank of the best five card hand among 5 to 7 cards.
// Every five card subset is ranked; this is exhaustive, not a heuristic.
func BestHand(cards []deck.Card) (HandRank, error) {
	rank, _, err := bestOf(cards)
	return rank, err
}

// MustBestHand is BestHand for callers that have already checked the card
// count. It panics on error.
func MustBestHand(cards []deck.Card) HandRank {
	rank, err := BestHand(cards)
	if err != nil {
		panic(fmt.Sprintf("evaluator: %v", err))
	}
	return rank
}

func bestOf(cards []deck.Card) (HandRank, [5]deck.Card, error) {
	n := len(cards)
	if n < 5 {
		return HandRank{}, [5]deck.Card{}, &deck.InsufficientCardsError{Requested: 5, Remaining: n}
	}
	if n > 7 {
		return HandRank{}, [5]deck.Card{}, fmt.Errorf("%w: got %d", ErrTooManyCards, n)
	}

	var best HandRank
	var bestCards [5]deck.Card
	consider := func(skipA, skipB int) {
		hand := pick(cards, skipA, skipB)
		rank := Evaluate5(hand)
		if best.Category == 0 || rank.Compare(best) > 0 {
			best = rank
			bestCards = hand
		}
	}

	switch n {
	case 5:
		consider(-1, -1)
	case 6:
		for a := range 6 {
			consider(a, -1)
		}
	case 7:
		for a := range 7 {
			for b := a + 1; b < 7; b++ {
				consider(a, b)
			}
		}
	}

	return best, bestCards, nil
}

// pick copies cards into a five card hand, leaving out up to two indexes.
func pick(cards []deck.Card, skipA, skipB int) [5]deck.Card {
	var hand [5]deck.Card
	k := 0
	for i, c := range cards {
		if i == skipA || i == skipB {
			continue
		}
		hand[k] = c
		k++
	}
	return hand
}

package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-equity/internal/deck"
)

// Category is the class of a five card hand, higher is stronger.
type Category int

const (
	HighCard Category = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// NumCategories is the number of hand categories
const NumCategories = 9

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Categories returns all categories, strongest first
func Categories() []Category {
	return []Category{
		StraightFlush, FourOfAKind, FullHouse, Flush, Straight,
		ThreeOfAKind, TwoPair, Pair, HighCard,
	}
}

// HandRank describes the strength of a five card hand as
// (category, primary kickers, secondary kickers). Unused kicker slots are
// zero, so two ranks of the same category always compare slot by slot and
// HandRank values can be compared with ==.
type HandRank struct {
	Category  Category
	primary   [5]deck.Rank
	secondary [3]deck.Rank
}

func newHandRank(cat Category, primary []deck.Rank, secondary []deck.Rank) HandRank {
	h := HandRank{Category: cat}
	copy(h.primary[:], primary)
	copy(h.secondary[:], secondary)
	return h
}

// Primary returns the primary kicker tuple
func (h HandRank) Primary() []deck.Rank {
	return trim(h.primary[:])
}

// Secondary returns the secondary kicker tuple
func (h HandRank) Secondary() []deck.Rank {
	return trim(h.secondary[:])
}

func trim(ranks []deck.Rank) []deck.Rank {
	n := 0
	for n < len(ranks) && ranks[n] != 0 {
		n++
	}
	out := make([]deck.Rank, n)
	copy(out, ranks[:n])
	return out
}

// Compare returns -1 if h is weaker than other, 0 if they split and 1 if h
// is stronger.
func (h HandRank) Compare(other HandRank) int {
	if h.Category != other.Category {
		if h.Category < other.Category {
			return -1
		}
		return 1
	}
	for i := range h.primary {
		if c := compareRank(h.primary[i], other.primary[i]); c != 0 {
			return c
		}
	}
	for i := range h.secondary {
		if c := compareRank(h.secondary[i], other.secondary[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareRank(a, b deck.Rank) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Beats reports whether h is strictly stronger than other
func (h HandRank) Beats(other HandRank) bool {
	return h.Compare(other) > 0
}

// String returns a compact form such as "Full House [K 2]"
func (h HandRank) String() string {
	parts := make([]string, 0, 8)
	for _, r := range h.Primary() {
		parts = append(parts, r.String())
	}
	if sec := h.Secondary(); len(sec) > 0 {
		parts = append(parts, "|")
		for _, r := range sec {
			parts = append(parts, r.String())
		}
	}
	return fmt.Sprintf("%s [%s]", h.Category, strings.Join(parts, " "))
}

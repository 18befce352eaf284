// Package ranges expands starting hand notation into concrete two card
// combinations and holds the named opponent archetypes built from them.
package ranges

import "github.com/lox/holdem-equity/internal/deck"

// Combo is one concrete pair of hole cards. A is never lower than B.
type Combo struct {
	A, B deck.Card
}

// NewCombo orders two hole cards into a Combo
func NewCombo(a, b deck.Card) Combo {
	if b.Index() > a.Index() {
		a, b = b, a
	}
	return Combo{A: a, B: b}
}

// Cards returns the combo as a two card slice
func (c Combo) Cards() []deck.Card {
	return []deck.Card{c.A, c.B}
}

// Set returns both cards as a CardSet
func (c Combo) Set() deck.CardSet {
	return deck.NewCardSet(c.A, c.B)
}

// String returns the compact form, e.g. "AsKh"
func (c Combo) String() string {
	return c.A.Code() + c.B.Code()
}

// Class returns the starting hand class, e.g. "AKs", "AKo" or "QQ"
func (c Combo) Class() string {
	hi, lo := c.A.Rank, c.B.Rank
	if lo > hi {
		hi, lo = lo, hi
	}
	switch {
	case hi == lo:
		return hi.String() + lo.String()
	case c.A.Suit == c.B.Suit:
		return hi.String() + lo.String() + "s"
	default:
		return hi.String() + lo.String() + "o"
	}
}

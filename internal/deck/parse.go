package deck

import (
	"fmt"
)

// ParseCards parses a string of card notation into a slice of cards.
// Format: "AsKsQsJsTs" where each card is [Rank][Suit]
// Ranks: A, K, Q, J, T, 9, 8, 7, 6, 5, 4, 3, 2
// Suits: s (spades), h (hearts), d (diamonds), c (clubs)
// Both are case-insensitive and spaces are ignored. ParseError.Pos is a
// byte offset into s as given.
func ParseCards(s string) ([]Card, error) {
	// Offsets of the non-space bytes
	pos := make([]int, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			pos = append(pos, i)
		}
	}
	if len(pos)%2 != 0 {
		return nil, &ParseError{Input: s, Pos: -1, Reason: fmt.Sprintf("invalid length %d (must be even)", len(pos))}
	}

	cards := make([]Card, 0, len(pos)/2)
	for i := 0; i < len(pos); i += 2 {
		r, u := pos[i], pos[i+1]
		rank, ok := ParseRank(s[r])
		if !ok {
			return nil, &ParseError{Input: s, Pos: r, Reason: fmt.Sprintf("invalid rank '%c'", s[r])}
		}
		suit, ok := ParseSuit(s[u])
		if !ok {
			return nil, &ParseError{Input: s, Pos: u, Reason: fmt.Sprintf("invalid suit '%c'", s[u])}
		}
		cards = append(cards, Card{Rank: rank, Suit: suit})
	}

	return cards, nil
}

// ParseCard parses exactly one card such as "Td"
func ParseCard(s string) (Card, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Card{}, err
	}
	if len(cards) != 1 {
		return Card{}, &ParseError{Input: s, Pos: -1, Reason: "expected exactly one card"}
	}
	return cards[0], nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// ParseRank converts a rank character to a Rank
func ParseRank(c byte) (Rank, bool) {
	switch c {
	case 'A', 'a':
		return Ace, true
	case 'K', 'k':
		return King, true
	case 'Q', 'q':
		return Queen, true
	case 'J', 'j':
		return Jack, true
	case 'T', 't':
		return Ten, true
	case '9':
		return Nine, true
	case '8':
		return Eight, true
	case '7':
		return Seven, true
	case '6':
		return Six, true
	case '5':
		return Five, true
	case '4':
		return Four, true
	case '3':
		return Three, true
	case '2':
		return Two, true
	default:
		return 0, false
	}
}

// ParseSuit converts a suit letter to a Suit
func ParseSuit(c byte) (Suit, bool) {
	switch c {
	case 's', 'S':
		return Spades, true
	case 'h', 'H':
		return Hearts, true
	case 'd', 'D':
		return Diamonds, true
	case 'c', 'C':
		return Clubs, true
	default:
		return 0, false
	}
}

// CheckDistinct returns a DuplicateCardError for the first repeated card
func CheckDistinct(cards ...Card) error {
	var seen CardSet
	for _, c := range cards {
		if seen.Has(c) {
			return &DuplicateCardError{Card: c}
		}
		seen.Add(c)
	}
	return nil
}

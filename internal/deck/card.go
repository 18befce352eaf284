package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists every suit in index order.
var Suits = [4]Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the symbol for a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Letter returns the lowercase notation letter for a suit (s, h, d, c)
func (s Suit) Letter() byte {
	switch s {
	case Spades:
		return 's'
	case Hearts:
		return 'h'
	case Diamonds:
		return 'd'
	case Clubs:
		return 'c'
	default:
		return '?'
	}
}

// Rank represents a card rank. The numeric value backs all comparisons,
// with Ace high at 14.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the notation character for a rank
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Valid reports whether r is one of the thirteen ranks
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card represents a playing card. Two cards are equal iff rank and suit match.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the display form of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Code returns the two character notation of a card (e.g., "As")
func (c Card) Code() string {
	return c.Rank.String() + string(c.Suit.Letter())
}

// Index maps a card to 0..51
func (c Card) Index() int {
	return int(c.Rank-Two)*4 + int(c.Suit)
}

// IsRed returns true if the card is a heart or diamond
func (c Card) IsRed() bool {
	return c.Suit == Hearts || c.Suit == Diamonds
}

// Valid reports whether the card belongs to a standard deck
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit >= Spades && c.Suit <= Clubs
}

// CardFromIndex is the inverse of Card.Index
func CardFromIndex(i int) Card {
	return Card{Rank: Rank(i/4) + Two, Suit: Suit(i % 4)}
}

// FullDeck returns the 52 cards in index order
func FullDeck() []Card {
	cards := make([]Card, 52)
	for i := range cards {
		cards[i] = CardFromIndex(i)
	}
	return cards
}

// FormatCards joins the codes of cards with no separator ("AsKd")
func FormatCards(cards []Card) string {
	b := make([]byte, 0, len(cards)*2)
	for _, c := range cards {
		b = append(b, c.Code()...)
	}
	return string(b)
}

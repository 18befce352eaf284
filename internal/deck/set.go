package deck

import "math/bits"

// CardSet represents a set of cards using a bitset for fast operations.
// Each card maps to bit Card.Index().
type CardSet uint64

// NewCardSet creates a CardSet from a slice of cards
func NewCardSet(cards ...Card) CardSet {
	var cs CardSet
	for _, card := range cards {
		cs.Add(card)
	}
	return cs
}

// Add adds a card to the set
func (cs *CardSet) Add(card Card) {
	*cs |= 1 << card.Index()
}

// Delete removes a card from the set
func (cs *CardSet) Delete(card Card) {
	*cs &^= 1 << card.Index()
}

// Has checks if a card is in the set
func (cs CardSet) Has(card Card) bool {
	return cs&(1<<card.Index()) != 0
}

// Len returns the number of cards in the set
func (cs CardSet) Len() int {
	return bits.OnesCount64(uint64(cs))
}

// Union returns the cards present in either set
func (cs CardSet) Union(other CardSet) CardSet {
	return cs | other
}

package deck

import rand "math/rand/v2"

// Deck represents a shuffled deck of playing cards. Membership is tracked
// alongside the order so removal and lookup never scan for duplicates.
type Deck struct {
	cards   []Card
	present CardSet
	rng     *rand.Rand
}

// NewDeck creates a standard 52-card deck shuffled with rng
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: FullDeck(),
		rng:   rng,
	}
	d.present = NewCardSet(d.cards...)
	d.Shuffle()
	return d
}

// Shuffle randomizes the order of the remaining cards
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the first n cards. It never returns fewer than
// requested: if n exceeds the remaining count the deck is left unchanged and
// an *InsufficientCardsError is returned.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, &InsufficientCardsError{Requested: n, Remaining: len(d.cards)}
	}

	dealt := make([]Card, n)
	copy(dealt, d.cards[:n])
	d.cards = d.cards[n:]
	for _, c := range dealt {
		d.present.Delete(c)
	}
	return dealt, nil
}

// Remove takes each listed card out of the deck. Cards that are not present
// are ignored, so removing the same card twice is harmless.
func (d *Deck) Remove(cards ...Card) {
	var drop CardSet
	for _, c := range cards {
		if d.present.Has(c) {
			drop.Add(c)
		}
	}
	if drop == 0 {
		return
	}

	kept := d.cards[:0]
	for _, c := range d.cards {
		if !drop.Has(c) {
			kept = append(kept, c)
		}
	}
	d.cards = kept
	d.present &^= drop
}

// Contains reports whether card is still in the deck
func (d *Deck) Contains(card Card) bool {
	return d.present.Has(card)
}

// ContainsAll reports whether every card in set is still in the deck
func (d *Deck) ContainsAll(set CardSet) bool {
	return d.present&set == set
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards in deal order
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

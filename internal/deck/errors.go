package deck

import "fmt"

// InsufficientCardsError reports a request for more cards than are available.
type InsufficientCardsError struct {
	Requested int
	Remaining int
}

func (e *InsufficientCardsError) Error() string {
	return fmt.Sprintf("insufficient cards: requested %d, %d remaining", e.Requested, e.Remaining)
}

// ParseError reports malformed card or range notation.
type ParseError struct {
	Input  string
	Pos    int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("parse %q at position %d: %s", e.Input, e.Pos, e.Reason)
}

// DuplicateCardError reports the same card appearing twice among known cards.
type DuplicateCardError struct {
	Card Card
}

func (e *DuplicateCardError) Error() string {
	return fmt.Sprintf("duplicate card: %s", e.Card.Code())
}

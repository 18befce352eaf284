package ranges

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/holdem-equity/internal/deck"
)

type shape int

const (
	shapeOffsuit shape = iota
	shapeSuited
)

// Expand turns a single starting hand token into its concrete combos.
// A pair such as "QQ" gives 6 combos, a suited token "AKs" gives 4 and an
// offsuit token "AKo" gives 12. A token without a modifier ("AK") is read as
// offsuit. Ranks and modifiers are case-insensitive.
func Expand(token string) ([]Combo, error) {
	hi, lo, sh, err := parseToken(token)
	if err != nil {
		return nil, err
	}
	return expandClass(hi, lo, sh), nil
}

// ExpandNotation expands a comma separated list of tokens. Besides plain
// tokens it accepts "TT+" (the pair and every pair above it), "ATs+" (the
// kicker climbs to one below the top card), "A5s-A2s" and "22-66" (inclusive
// ranges) and "top15%" (the strongest 15% of starting hands). Combos appearing
// more than once are kept once, in first seen order.
func ExpandNotation(notation string) ([]Combo, error) {
	var out []Combo
	var seen comboSet

	for part := range strings.SplitSeq(notation, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		combos, err := expandPart(part)
		if err != nil {
			return nil, fmt.Errorf("invalid range part %q: %w", part, err)
		}
		for _, c := range combos {
			if seen.add(c) {
				out = append(out, c)
			}
		}
	}

	if len(out) == 0 {
		return nil, &deck.ParseError{Input: notation, Pos: -1, Reason: "empty range"}
	}
	return out, nil
}

func expandPart(part string) ([]Combo, error) {
	switch {
	case strings.HasSuffix(part, "%"):
		return expandTop(part)
	case strings.HasSuffix(part, "+"):
		return expandPlus(part)
	case strings.Contains(part, "-"):
		return expandDash(part)
	default:
		return Expand(part)
	}
}

// expandTop handles "top15%" and "15%"
func expandTop(part string) ([]Combo, error) {
	num := strings.TrimSuffix(part, "%")
	num = strings.TrimPrefix(strings.ToLower(num), "top")
	pct, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil || pct <= 0 || pct > 100 {
		return nil, &deck.ParseError{Input: part, Pos: -1, Reason: "percentage must be in (0, 100]"}
	}
	return Top(pct), nil
}

func expandPlus(part string) ([]Combo, error) {
	base := strings.TrimSuffix(part, "+")
	hi, lo, sh, err := parseToken(base)
	if err != nil {
		return nil, err
	}

	var out []Combo
	if hi == lo {
		for r := lo; r <= deck.Ace; r++ {
			out = append(out, expandClass(r, r, sh)...)
		}
		return out, nil
	}
	for r := lo; r < hi; r++ {
		out = append(out, expandClass(hi, r, sh)...)
	}
	return out, nil
}

func expandDash(part string) ([]Combo, error) {
	start, end, ok := strings.Cut(part, "-")
	if !ok || strings.Contains(end, "-") {
		return nil, &deck.ParseError{Input: part, Pos: -1, Reason: "invalid dash range"}
	}

	hi1, lo1, sh1, err := parseToken(strings.TrimSpace(start))
	if err != nil {
		return nil, err
	}
	hi2, lo2, sh2, err := parseToken(strings.TrimSpace(end))
	if err != nil {
		return nil, err
	}

	var out []Combo
	switch {
	case hi1 == lo1 && hi2 == lo2:
		for r := min(hi1, hi2); r <= max(hi1, hi2); r++ {
			out = append(out, expandClass(r, r, sh1)...)
		}
	case hi1 == hi2 && hi1 != lo1 && hi2 != lo2:
		if sh1 != sh2 {
			return nil, &deck.ParseError{Input: part, Pos: -1, Reason: "range ends must share a modifier"}
		}
		for r := min(lo1, lo2); r <= max(lo1, lo2); r++ {
			out = append(out, expandClass(hi1, r, sh1)...)
		}
	default:
		return nil, &deck.ParseError{Input: part, Pos: -1, Reason: "unsupported range format"}
	}
	return out, nil
}

// parseToken reads "QQ", "AKs", "AKo" or "AK". The higher rank is returned
// first whatever order the token used.
func parseToken(token string) (hi, lo deck.Rank, sh shape, err error) {
	if len(token) < 2 || len(token) > 3 {
		return 0, 0, 0, &deck.ParseError{Input: token, Pos: -1, Reason: fmt.Sprintf("invalid token length %d", len(token))}
	}

	r1, ok := deck.ParseRank(token[0])
	if !ok {
		return 0, 0, 0, &deck.ParseError{Input: token, Pos: 0, Reason: fmt.Sprintf("invalid rank '%c'", token[0])}
	}
	r2, ok := deck.ParseRank(token[1])
	if !ok {
		return 0, 0, 0, &deck.ParseError{Input: token, Pos: 1, Reason: fmt.Sprintf("invalid rank '%c'", token[1])}
	}

	hi, lo = max(r1, r2), min(r1, r2)
	sh = shapeOffsuit

	if len(token) == 3 {
		if hi == lo {
			return 0, 0, 0, &deck.ParseError{Input: token, Pos: 2, Reason: "pairs cannot have a suited/offsuit modifier"}
		}
		switch token[2] {
		case 's', 'S':
			sh = shapeSuited
		case 'o', 'O':
			sh = shapeOffsuit
		default:
			return 0, 0, 0, &deck.ParseError{Input: token, Pos: 2, Reason: fmt.Sprintf("invalid modifier '%c'", token[2])}
		}
	}

	return hi, lo, sh, nil
}

// expandClass lists every combo of one starting hand class
func expandClass(hi, lo deck.Rank, sh shape) []Combo {
	switch {
	case hi == lo:
		out := make([]Combo, 0, 6)
		for i, s1 := range deck.Suits {
			for _, s2 := range deck.Suits[i+1:] {
				out = append(out, NewCombo(deck.NewCard(s1, hi), deck.NewCard(s2, lo)))
			}
		}
		return out
	case sh == shapeSuited:
		out := make([]Combo, 0, 4)
		for _, s := range deck.Suits {
			out = append(out, NewCombo(deck.NewCard(s, hi), deck.NewCard(s, lo)))
		}
		return out
	default:
		out := make([]Combo, 0, 12)
		for _, s1 := range deck.Suits {
			for _, s2 := range deck.Suits {
				if s1 != s2 {
					out = append(out, NewCombo(deck.NewCard(s1, hi), deck.NewCard(s2, lo)))
				}
			}
		}
		return out
	}
}

// comboSet tracks combos already seen, keyed by the pair's card indexes.
type comboSet map[[2]int]struct{}

func (s *comboSet) add(c Combo) bool {
	if *s == nil {
		*s = make(comboSet)
	}
	key := [2]int{c.A.Index(), c.B.Index()}
	if _, ok := (*s)[key]; ok {
		return false
	}
	(*s)[key] = struct{}{}
	return true
}

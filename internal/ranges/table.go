package ranges

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// UnknownRangeError reports an archetype name missing from a Table.
type UnknownRangeError struct {
	Name  string
	Known []string
}

func (e *UnknownRangeError) Error() string {
	return fmt.Sprintf("unknown range %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Table maps archetype names to their expanded combos. It is built once and
// never modified afterwards, so a *Table can be shared between goroutines.
type Table struct {
	ranges map[string][]Combo
	hands  map[string][]string
}

// NewTable expands every archetype definition. Names are case-insensitive.
// Each combo appears at most once per archetype.
func NewTable(defs map[string][]string) (*Table, error) {
	t := &Table{
		ranges: make(map[string][]Combo, len(defs)),
		hands:  make(map[string][]string, len(defs)),
	}

	for _, name := range slices.Sorted(maps.Keys(defs)) {
		key := normalize(name)
		if key == "" {
			return nil, fmt.Errorf("range name must not be empty")
		}
		if _, dup := t.ranges[key]; dup {
			return nil, fmt.Errorf("range %q defined more than once", name)
		}

		combos, err := ExpandNotation(strings.Join(defs[name], ","))
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", name, err)
		}
		t.ranges[key] = combos
		t.hands[key] = slices.Clone(defs[name])
	}

	return t, nil
}

// Merge returns a new table holding t's archetypes overridden and extended
// by defs. t itself is left unchanged.
func (t *Table) Merge(defs map[string][]string) (*Table, error) {
	merged := make(map[string][]string, len(t.hands)+len(defs))
	maps.Copy(merged, t.hands)
	for name, hands := range defs {
		merged[normalize(name)] = hands
	}
	return NewTable(merged)
}

// Combos returns a copy of the combos for an archetype.
func (t *Table) Combos(name string) ([]Combo, error) {
	combos, ok := t.ranges[normalize(name)]
	if !ok {
		return nil, &UnknownRangeError{Name: name, Known: t.Names()}
	}
	return slices.Clone(combos), nil
}

// Hands returns the notation an archetype was defined with.
func (t *Table) Hands(name string) ([]string, error) {
	hands, ok := t.hands[normalize(name)]
	if !ok {
		return nil, &UnknownRangeError{Name: name, Known: t.Names()}
	}
	return slices.Clone(hands), nil
}

// Has reports whether the archetype exists
func (t *Table) Has(name string) bool {
	_, ok := t.ranges[normalize(name)]
	return ok
}

// Size returns the number of combos in an archetype, or 0 if it is unknown
func (t *Table) Size(name string) int {
	return len(t.ranges[normalize(name)])
}

// Names returns the archetype names in sorted order
func (t *Table) Names() []string {
	return slices.Sorted(maps.Keys(t.ranges))
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Archetype names available in every default table.
const (
	Tight    = "tight"
	Standard = "standard"
	Loose    = "loose"
	Random   = "random"
)

// DefaultRanges returns the built in archetype definitions.
func DefaultRanges() map[string][]string {
	return map[string][]string{
		Tight: {"AA", "KK", "QQ", "JJ", "AKs", "AKo", "AQs", "AQo"},
		Standard: {
			"AA", "KK", "QQ", "JJ", "TT", "99", "88",
			"AKs", "AQs", "AJs", "ATs", "KQs", "KJs", "QTs",
			"AKo", "AQo", "KQo", "KJo",
		},
		Loose: {
			"22+",
			"A2s+", "K2s+", "Q7s+", "J8s+", "T8s+", "97s+", "86s+", "75s+", "64s+", "54s",
			"ATo+", "KJo+", "QJo", "JTo", "T9o", "98o", "87o", "76o", "65o", "54o",
		},
		Random: {"100%"},
	}
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := NewTable(DefaultRanges())
	if err != nil {
		panic(fmt.Sprintf("ranges: default table: %v", err))
	}
	return t
})

// DefaultTable returns the shared table of built in archetypes.
func DefaultTable() *Table {
	return defaultTable()
}

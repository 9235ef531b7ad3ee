package mana

import (
	"fmt"
	"strings"
)

// CanonicalOrder lists every nonempty color combination in its display order.
// Groups follow the distance between colors on the color wheel D-A-O-P-L,
// which is why the strings are curated by hand rather than sorted.
var CanonicalOrder = []string{
	// Mono
	"D", "A", "O", "P", "L",
	// Dual - Ally
	"DA", "AO", "OP", "PL", "LD",
	// Dual - Enemy
	"DO", "AP", "OL", "PD", "LA",
	// Triple - Arc
	"DAO", "AOP", "OPL", "PLD", "LDA",
	// Triple - Wedge
	"DAP", "AOL", "OPD", "PLA", "LDO",
	// Quadruple
	"DAOP", "AOPL", "OPLD", "PLDA", "LDAO",
	// Five
	"DAOPL",
}

// OrderEntry is the canonical presentation of one color set
type OrderEntry struct {
	Colors []Color
	Code   string
	Names  []string
}

// OrderTable maps every valid ColorSet to its canonical presentation.
// Entries are indexed by the bitmask value, so lookups are a single array read.
type OrderTable struct {
	entries [int(AllColors) + 1]*OrderEntry
	order   []ColorSet
}

// DefaultOrder is built from CanonicalOrder when the package is loaded
var DefaultOrder = MustOrderTable(CanonicalOrder)

// NewOrderTable builds a table from canonical strings. Every nonempty subset
// of the alphabet must appear exactly once.
func NewOrderTable(order []string) (*OrderTable, error) {
	t := &OrderTable{}
	for _, code := range order {
		set, err := ParseColorSet(code)
		if err != nil {
			return nil, fmt.Errorf("invalid canonical color string %q: %w", code, err)
		}
		if t.entries[set] != nil {
			return nil, fmt.Errorf("color set %q already listed as %q", code, t.entries[set].Code)
		}

		entry := &OrderEntry{Code: code}
		for i := 0; i < len(code); i++ {
			c, _ := ColorFromLetter(code[i])
			entry.Colors = append(entry.Colors, c)
			entry.Names = append(entry.Names, c.Name())
		}
		t.entries[set] = entry
		t.order = append(t.order, set)
	}

	// Every one of the 31 subsets needs an entry
	var missing []string
	for set := ColorSet(1); set <= AllColors; set++ {
		if t.entries[set] == nil {
			missing = append(missing, fmt.Sprintf("%#x", uint8(set)))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("canonical order is missing color sets: %s", strings.Join(missing, ", "))
	}

	return t, nil
}

// MustOrderTable is like NewOrderTable but panics on error
func MustOrderTable(order []string) *OrderTable {
	t, err := NewOrderTable(order)
	if err != nil {
		panic(fmt.Sprintf("mana: %v", err))
	}
	return t
}

// Lookup returns the canonical entry for a set. The returned slices are
// copies and may be modified by the caller.
func (t *OrderTable) Lookup(set ColorSet) (OrderEntry, bool) {
	if !set.Valid() {
		return OrderEntry{}, false
	}
	e := t.entries[set]
	if e == nil {
		return OrderEntry{}, false
	}
	return OrderEntry{
		Colors: append([]Color(nil), e.Colors...),
		Code:   e.Code,
		Names:  append([]string(nil), e.Names...),
	}, true
}

// Entries returns all entries in the order the table was built from
func (t *OrderTable) Entries() []OrderEntry {
	out := make([]OrderEntry, 0, len(t.order))
	for _, set := range t.order {
		e, _ := t.Lookup(set)
		out = append(out, e)
	}
	return out
}

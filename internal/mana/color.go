package mana

import (
	"fmt"
	"math/bits"
	"strings"
)

// Color is one of the five mana colors
type Color uint8

const (
	Divine Color = 1 << iota
	Arcane
	Occult
	Primal
	Alchemy
)

// AllColors is the set containing every color
const AllColors = ColorSet(Divine | Arcane | Occult | Primal | Alchemy)

// Colors lists the alphabet in declaration order
var Colors = []Color{Divine, Arcane, Occult, Primal, Alchemy}

var colorLetters = map[Color]byte{
	Divine:  'D',
	Arcane:  'A',
	Occult:  'O',
	Primal:  'P',
	Alchemy: 'L',
}

var colorNames = map[Color]string{
	Divine:  "divine",
	Arcane:  "arcane",
	Occult:  "occult",
	Primal:  "primal",
	Alchemy: "alchemy",
}

// ColorFromLetter returns the color for a single-letter code
func ColorFromLetter(letter byte) (Color, bool) {
	for c, l := range colorLetters {
		if l == letter {
			return c, true
		}
	}
	return 0, false
}

// ColorFromName returns the color for a lowercase name such as "divine"
func ColorFromName(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range colorNames {
		if n == name {
			return c, true
		}
	}
	return 0, false
}

// Letter returns the single-letter code of the color
func (c Color) Letter() byte {
	return colorLetters[c]
}

// Name returns the human-readable name of the color
func (c Color) Name() string {
	return colorNames[c]
}

func (c Color) String() string {
	if n, ok := colorNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// ColorSet is an order-independent combination of colors stored as a bitmask.
// The zero value is the empty set, which is not a valid cost color.
type ColorSet uint8

// ParseColorSet builds a set from color letters, e.g. "AD".
// Letters may come in any order but must be distinct.
func ParseColorSet(letters string) (ColorSet, error) {
	if letters == "" {
		return 0, fmt.Errorf("empty color set")
	}
	var set ColorSet
	for i := 0; i < len(letters); i++ {
		c, ok := ColorFromLetter(letters[i])
		if !ok {
			return 0, fmt.Errorf("unknown color letter %q", letters[i])
		}
		if set.Has(c) {
			return 0, fmt.Errorf("duplicate color letter %q", letters[i])
		}
		set |= ColorSet(c)
	}
	return set, nil
}

// MustColorSet is like ParseColorSet but panics on error
func MustColorSet(letters string) ColorSet {
	set, err := ParseColorSet(letters)
	if err != nil {
		panic(err)
	}
	return set
}

// Has reports whether c is part of the set
func (s ColorSet) Has(c Color) bool {
	return s&ColorSet(c) != 0
}

// Len returns the number of colors in the set
func (s ColorSet) Len() int {
	return bits.OnesCount8(uint8(s))
}

// Valid reports whether the set is one of the 31 nonempty subsets
func (s ColorSet) Valid() bool {
	return s != 0 && s&^AllColors == 0
}

// Colors returns the colors in canonical order
func (s ColorSet) Colors() []Color {
	e, ok := DefaultOrder.Lookup(s)
	if !ok {
		return nil
	}
	return e.Colors
}

// Names returns the color names in canonical order
func (s ColorSet) Names() []string {
	e, ok := DefaultOrder.Lookup(s)
	if !ok {
		return nil
	}
	return e.Names
}

// String returns the canonical letter string, e.g. "DA"
func (s ColorSet) String() string {
	e, ok := DefaultOrder.Lookup(s)
	if !ok {
		return fmt.Sprintf("ColorSet(%#x)", uint8(s))
	}
	return e.Code
}

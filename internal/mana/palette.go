package mana

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette maps each color to a CSS hex code
type Palette map[Color]string

// DefaultPalette holds the stock card colors
var DefaultPalette = Palette{
	Divine:  "#f5de0c",
	Arcane:  "#3232e4",
	Occult:  "#2e2e2e",
	Primal:  "#f56600",
	Alchemy: "#9e2e9e",
}

// NewPalette starts from DefaultPalette and applies overrides keyed by color
// name (e.g. "divine" -> "#ffee00"). Hex codes are validated and normalized.
func NewPalette(overrides map[string]string) (Palette, error) {
	p := make(Palette, len(DefaultPalette))
	for c, hex := range DefaultPalette {
		p[c] = hex
	}

	for name, hex := range overrides {
		c, ok := ColorFromName(name)
		if !ok {
			return nil, fmt.Errorf("unknown palette color %q", name)
		}
		parsed, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("invalid hex code for %s: %w", name, err)
		}
		p[c] = parsed.Hex()
	}

	return p, nil
}

// Hex returns the hex code for a color
func (p Palette) Hex(c Color) string {
	if hex, ok := p[c]; ok {
		return hex
	}
	return DefaultPalette[c]
}

// RGB returns the color as a go-colorful value, falling back to black when the
// stored code does not parse
func (p Palette) RGB(c Color) colorful.Color {
	parsed, err := colorful.Hex(p.Hex(c))
	if err != nil {
		return colorful.Color{}
	}
	return parsed
}

package mana

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/net/html"

	"github.com/arcanaland/manaforge/internal/fragment"
)

// DefaultBleed is the width, in percentage points, of each hard color edge
const DefaultBleed = 2.0

// ChannelValue is the value shown on every channel cost badge
const ChannelValue = "1"

// Stop is a single color stop of a gradient
type Stop struct {
	Hex     string
	Percent float64
}

func (s Stop) String() string {
	return s.Hex + " " + strconv.FormatFloat(s.Percent, 'f', -1, 64) + "%"
}

// Painter turns color sets into CSS backgrounds and cost badges
type Painter struct {
	Palette Palette
	Bleed   float64
}

// NewPainter returns a painter using the given palette and bleed width.
// A nil palette uses DefaultPalette.
func NewPainter(palette Palette, bleed float64) (*Painter, error) {
	if bleed < 0 || bleed >= 100 {
		return nil, fmt.Errorf("bleed must be in [0, 100), got %v", bleed)
	}
	if palette == nil {
		palette = DefaultPalette
	}
	return &Painter{Palette: palette, Bleed: bleed}, nil
}

// DefaultPainter uses the stock palette and bleed
func DefaultPainter() *Painter {
	return &Painter{Palette: DefaultPalette, Bleed: DefaultBleed}
}

// BreakPercents returns the stop positions for n colors: 0, then a pair of
// stops straddling each of the n-1 boundaries by bleed/2, then 100.
func BreakPercents(n int, bleed float64) []float64 {
	if n < 1 {
		return nil
	}
	percents := []float64{0}
	for k := 1; k < n; k++ {
		fraction := float64(k) / float64(n)
		percents = append(percents, 100*fraction-bleed/2, 100*fraction+bleed/2)
	}
	return append(percents, 100)
}

// Stops returns the gradient stops for a set in canonical color order. Each
// hex code appears twice in a row so adjacent bands meet at a hard edge.
func (p *Painter) Stops(set ColorSet) []Stop {
	colors := set.Colors()
	percents := BreakPercents(len(colors), p.Bleed)
	stops := make([]Stop, 0, len(percents))
	for i, percent := range percents {
		stops = append(stops, Stop{Hex: p.Palette.Hex(colors[i/2]), Percent: percent})
	}
	return stops
}

// Gradient returns the CSS linear-gradient for a set
func (p *Painter) Gradient(set ColorSet) string {
	stops := p.Stops(set)
	parts := make([]string, len(stops))
	for i, s := range stops {
		parts[i] = s.String()
	}
	return "linear-gradient(to right, " + strings.Join(parts, ", ") + ")"
}

// Background returns a flat color for single-color sets and a gradient otherwise
func (p *Painter) Background(set ColorSet) string {
	if set.Len() == 1 {
		return p.FirstColor(set)
	}
	return p.Gradient(set)
}

// FirstColor returns the hex code of the first color in canonical order
func (p *Painter) FirstColor(set ColorSet) string {
	colors := set.Colors()
	if len(colors) == 0 {
		return ""
	}
	return p.Palette.Hex(colors[0])
}

// Style returns the inline style declaration for a badge background
func (p *Painter) Style(set ColorSet) string {
	decl := &css.Declaration{Property: "background", Value: p.Background(set)}
	return decl.StringWithImportant(false)
}

// Badge renders a cost as a colored badge element
func (p *Painter) Badge(cost Cost) *html.Node {
	return p.badge(cost.Colors, cost.Value)
}

// ChannelBadge renders the channel cost: same colors, value fixed to 1
func (p *Painter) ChannelBadge(cost Cost) *html.Node {
	return p.badge(cost.Colors, ChannelValue)
}

// BadgeHTML is Badge serialized to a string
func (p *Painter) BadgeHTML(cost Cost) (string, error) {
	return fragment.Render(p.Badge(cost))
}

// ChannelBadgeHTML is ChannelBadge serialized to a string
func (p *Painter) ChannelBadgeHTML(cost Cost) (string, error) {
	return fragment.Render(p.ChannelBadge(cost))
}

func (p *Painter) badge(set ColorSet, value string) *html.Node {
	class := strings.Join(append([]string{"mana"}, set.Names()...), " ")
	n := fragment.Span(class, fragment.Span("mana-value", fragment.Text(value)))
	return fragment.SetAttr(n, "style", p.Style(set))
}

// Sample evaluates the gradient of a set at n evenly spaced points, blending
// between stops in Lab space. It approximates the badge background on
// terminals.
func (p *Painter) Sample(set ColorSet, n int) []colorful.Color {
	stops := p.Stops(set)
	if n < 1 || len(stops) == 0 {
		return nil
	}

	colors := make([]colorful.Color, len(stops))
	for i, s := range stops {
		c, err := colorful.Hex(s.Hex)
		if err != nil {
			c = colorful.Color{}
		}
		colors[i] = c
	}

	out := make([]colorful.Color, n)
	for i := range out {
		pos := (float64(i) + 0.5) / float64(n) * 100
		j := 0
		for j < len(stops)-2 && stops[j+1].Percent < pos {
			j++
		}
		if len(stops) == 1 {
			out[i] = colors[0]
			continue
		}
		a, b := stops[j].Percent, stops[j+1].Percent
		t := 0.0
		if b > a {
			t = (pos - a) / (b - a)
		}
		t = math.Max(0, math.Min(1, t))
		out[i] = colors[j].BlendLab(colors[j+1], t).Clamped()
	}
	return out
}

package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arcanaland/manaforge/internal/card"
	"github.com/arcanaland/manaforge/internal/mana"
	"github.com/arcanaland/manaforge/internal/markup"
)

// ChannelReminder is prepended to the text of multi-color cards
const ChannelReminder = "This channels tapped."

// TypeDisplay maps typeline entries to their display names
var TypeDisplay = map[string]string{
	"quick":      "⚡Quick",
	"leader":     "👑Leader",
	"creature":   "Creature",
	"magic":      "Magic",
	"item":       "Item",
	"attachment": "Attachment",
}

func namespaceStage(r card.Record) error {
	raw := make(card.Record, len(r))
	for k, v := range r {
		raw[k] = v
		delete(r, k)
	}
	for k, v := range raw.Prefixed(card.Prefix) {
		r[k] = v
	}
	return nil
}

func (p *Pipeline) manaStage(r card.Record) error {
	cost, err := mana.ParseCost(r.String(card.Cost))
	if err != nil {
		return err
	}

	badge, err := p.Painter.BadgeHTML(cost)
	if err != nil {
		return err
	}
	channel, err := p.Painter.ChannelBadgeHTML(cost)
	if err != nil {
		return err
	}

	r[card.CostInfo] = cost
	r[card.CostValue] = cost.Value
	r[card.CostOrder] = cost.Colors.String()
	r[card.CostColors] = cost.Colors.Names()
	r[card.CostNames] = strings.Join(cost.Colors.Names(), " ")
	r[card.CostFirstColor] = p.Painter.FirstColor(cost.Colors)
	r[card.CostGradient] = p.Painter.Gradient(cost.Colors)
	r[card.Cost] = card.HTML(badge)
	r[card.ChannelCost] = card.HTML(channel)
	return nil
}

func typelineStage(r card.Record) error {
	var typelist []string
	if r.Bool(card.Quick) {
		typelist = append(typelist, "quick")
	}
	if r.Bool(card.Leader) {
		typelist = append(typelist, "leader")
	}
	if t := strings.ToLower(strings.TrimSpace(r.String(card.Type))); t != "" {
		typelist = append(typelist, t)
	}

	display := make([]string, len(typelist))
	for i, t := range typelist {
		display[i] = TypeName(t)
	}

	r[card.Typelist] = typelist
	r[card.Typenames] = strings.Join(typelist, " ")
	r[card.Typeline] = strings.Join(display, " ")
	return nil
}

// TypeName returns the display name of a typeline entry. Casers keep state
// between calls, so each call builds its own.
func TypeName(t string) string {
	if name, ok := TypeDisplay[t]; ok {
		return name
	}
	return cases.Title(language.English).String(t)
}

func (p *Pipeline) keywordStage(r card.Record) error {
	source := r.String(card.Text)
	nodes, err := p.Grammar.Parse(source)
	if err != nil {
		return err
	}

	expanded, err := p.Renderer.Expander.Expand(nodes, r)
	if err != nil {
		return err
	}

	cost, ok := r[card.CostInfo].(mana.Cost)
	if !ok {
		return fmt.Errorf("%s missing before keyword expansion", card.CostInfo)
	}
	if cost.Colors.Len() > 1 {
		reminder := markup.Reminder{Body: markup.Nodes{markup.Literal{Text: ChannelReminder}}}
		expanded = append(markup.Nodes{reminder, markup.LineBreak{}}, expanded...)
	}

	r[card.MarkupSource] = source
	r[card.MarkupNodes] = expanded
	r[card.MarkupUnknown] = markup.UnknownKeywords(expanded)
	return nil
}

func (p *Pipeline) renderStage(r card.Record) error {
	nodes, ok := r[card.MarkupNodes].(markup.Nodes)
	if !ok {
		return fmt.Errorf("%s missing before render", card.MarkupNodes)
	}

	out, err := p.Renderer.RenderExpanded(nodes)
	if err != nil {
		return err
	}
	text, err := r.Format(out)
	if err != nil {
		return err
	}

	r[card.Text] = card.HTML(text)
	return nil
}

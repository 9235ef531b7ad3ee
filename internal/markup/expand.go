package markup

import (
	"fmt"
	"sort"

	"github.com/arcanaland/manaforge/internal/keyword"
)

// UnknownPrefix is prepended to the name of a keyword missing from the catalog
const UnknownPrefix = "UNKNOWN_KEYWORD_"

// Expander replaces keyword calls with their catalog definitions
type Expander struct {
	Catalog *keyword.Catalog
	Grammar Grammar
}

// NewExpander creates an expander. Expanded templates are parsed with
// g.Template(), so they may contain costs, abilities and lists but never
// further keyword calls.
func NewExpander(catalog *keyword.Catalog, g Grammar) *Expander {
	return &Expander{Catalog: catalog, Grammar: g}
}

// Expand returns a copy of nodes with every KeywordCall replaced by a Keyword.
// Named template fields are resolved through fields; unresolved ones are
// left as {name} for the final record formatting pass.
func (e *Expander) Expand(nodes Nodes, fields keyword.Fields) (Nodes, error) {
	if nodes == nil {
		return nil, nil
	}

	out := make(Nodes, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case KeywordCall:
			k, err := e.expandCall(n, fields)
			if err != nil {
				return nil, err
			}
			out = append(out, k)
		case AbilityBlock:
			body, err := e.Expand(n.Body, fields)
			if err != nil {
				return nil, err
			}
			out = append(out, AbilityBlock{Kind: n.Kind, Body: body})
		case BulletList:
			list := BulletList{Items: make([]Nodes, 0, len(n.Items))}
			for _, item := range n.Items {
				expanded, err := e.Expand(item, fields)
				if err != nil {
					return nil, err
				}
				list.Items = append(list.Items, expanded)
			}
			out = append(out, list)
		default:
			out = append(out, n)
		}
	}
	return out, nil
}

func (e *Expander) expandCall(call KeywordCall, fields keyword.Fields) (Keyword, error) {
	var def keyword.Definition
	ok := false
	if e.Catalog != nil {
		def, ok = e.Catalog.Lookup(call.Name)
	}
	if !ok {
		return Keyword{
			Call:    call,
			Display: Nodes{Literal{Text: UnknownPrefix + call.Name}},
			Unknown: true,
		}, nil
	}

	display, reminder, err := def.Expand(call.Args, fields, call.Reminder)
	if err != nil {
		return Keyword{}, err
	}

	g := e.Grammar.Template()
	k := Keyword{Call: call}
	if k.Display, err = g.Parse(display); err != nil {
		return Keyword{}, fmt.Errorf("keyword %q display: %w", call.Name, err)
	}
	if call.Reminder {
		if k.Reminder, err = g.Parse(reminder); err != nil {
			return Keyword{}, fmt.Errorf("keyword %q reminder: %w", call.Name, err)
		}
	}
	return k, nil
}

// UnknownKeywords lists the distinct names of keywords that were not found
// in the catalog, sorted
func UnknownKeywords(nodes Nodes) []string {
	seen := make(map[string]bool)
	Walk(nodes, func(n Node) bool {
		if k, ok := n.(Keyword); ok && k.Unknown {
			seen[k.Call.Name] = true
		}
		return true
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Costs collects every inline mana cost in document order
func Costs(nodes Nodes) []ManaCostRef {
	var costs []ManaCostRef
	Walk(nodes, func(n Node) bool {
		if c, ok := n.(ManaCostRef); ok {
			costs = append(costs, c)
		}
		return true
	})
	return costs
}

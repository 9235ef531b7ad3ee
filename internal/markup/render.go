package markup

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/arcanaland/manaforge/internal/fragment"
	"github.com/arcanaland/manaforge/internal/keyword"
	"github.com/arcanaland/manaforge/internal/mana"
)

// CSS classes emitted by the renderer
const (
	ClassKeywordDisplay  = "keyword-display"
	ClassKeywordUnknown  = "keyword-unknown"
	ClassKeywordReminder = "keyword-reminder"
	ClassActivation      = "ability-activation-cost"
	ClassTrigger         = "ability-trigger"
	ClassList            = "list"
)

// DefaultNameRef is the record placeholder a ~ renders to
const DefaultNameRef = "{card__name}"

// Renderer turns parsed card text into HTML
type Renderer struct {
	Expander *Expander
	Painter  *mana.Painter
	NameRef  string
}

// NewRenderer creates a renderer. A nil painter uses the default palette.
func NewRenderer(expander *Expander, painter *mana.Painter) *Renderer {
	if painter == nil {
		painter = mana.DefaultPainter()
	}
	return &Renderer{Expander: expander, Painter: painter, NameRef: DefaultNameRef}
}

// Render expands keyword calls and serializes the result
func (r *Renderer) Render(nodes Nodes, fields keyword.Fields) (string, error) {
	expanded, err := r.Expander.Expand(nodes, fields)
	if err != nil {
		return "", err
	}
	return r.RenderExpanded(expanded)
}

// RenderExpanded serializes nodes that have already been expanded
func (r *Renderer) RenderExpanded(nodes Nodes) (string, error) {
	out, err := r.HTML(nodes)
	if err != nil {
		return "", err
	}
	return fragment.Render(out...)
}

// HTML builds the element tree for expanded nodes
func (r *Renderer) HTML(nodes Nodes) ([]*html.Node, error) {
	out := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		h, err := r.node(n)
		if err != nil {
			return nil, err
		}
		out = append(out, h...)
	}
	return out, nil
}

func (r *Renderer) node(n Node) ([]*html.Node, error) {
	switch n := n.(type) {
	case Literal:
		return []*html.Node{fragment.Text(n.Text)}, nil
	case ManaCostRef:
		return []*html.Node{r.Painter.Badge(n.Cost)}, nil
	case CardNameRef:
		return []*html.Node{fragment.Text(r.NameRef)}, nil
	case LineBreak:
		return []*html.Node{fragment.Break()}, nil
	case AbilityBlock:
		class := ClassActivation
		if n.Kind == Triggered {
			class = ClassTrigger
		}
		body, err := r.HTML(n.Body)
		if err != nil {
			return nil, err
		}
		return []*html.Node{fragment.Span(class, body...)}, nil
	case BulletList:
		ul := fragment.Element("ul", ClassList)
		for _, item := range n.Items {
			body, err := r.HTML(item)
			if err != nil {
				return nil, err
			}
			ul.AppendChild(fragment.Element("li", "", body...))
		}
		return []*html.Node{ul}, nil
	case Keyword:
		return r.keyword(n)
	case Reminder:
		span, err := r.reminder(n.Body)
		if err != nil {
			return nil, err
		}
		return []*html.Node{span}, nil
	case KeywordCall:
		return nil, fmt.Errorf("keyword call %s was not expanded", n)
	}
	return nil, fmt.Errorf("unsupported node %T", n)
}

func (r *Renderer) keyword(k Keyword) ([]*html.Node, error) {
	class := ClassKeywordDisplay
	if k.Unknown {
		class += " " + ClassKeywordUnknown
	}
	display, err := r.HTML(k.Display)
	if err != nil {
		return nil, err
	}
	out := []*html.Node{fragment.Span(class, display...)}

	if k.Call.Reminder && !k.Unknown {
		span, err := r.reminder(k.Reminder)
		if err != nil {
			return nil, err
		}
		out = append(out, fragment.Text(" "), span)
	}
	return out, nil
}

func (r *Renderer) reminder(body Nodes) (*html.Node, error) {
	inner, err := r.HTML(body)
	if err != nil {
		return nil, err
	}
	children := append([]*html.Node{fragment.Text("(")}, inner...)
	children = append(children, fragment.Text(")"))
	return fragment.Span(ClassKeywordReminder, children...), nil
}

package markup

import (
	"strings"

	"github.com/arcanaland/manaforge/internal/mana"
)

// Node is one element of parsed card text. Nodes are values and are never
// modified after parsing; expansion builds new sequences.
type Node interface {
	node()
	String() string
}

// Nodes is an ordered node sequence
type Nodes []Node

// AbilityKind distinguishes the two ability bracket pairs
type AbilityKind int

const (
	Activated AbilityKind = iota // <<...>>
	Triggered                    // [[...]]
)

// Literal is a run of ordinary text
type Literal struct {
	Text string
}

// ManaCostRef is an inline cost token such as (2DA)
type ManaCostRef struct {
	Cost mana.Cost
}

// KeywordCall is an unexpanded k.name(args) or kr.name(args) macro
type KeywordCall struct {
	Name     string
	Reminder bool
	Args     []string
}

// AbilityBlock is the body of an ability bracket pair
type AbilityBlock struct {
	Kind AbilityKind
	Body Nodes
}

// BulletList is an l(...)l block; each item is parsed on its own
type BulletList struct {
	Items []Nodes
}

// CardNameRef is the ~ placeholder
type CardNameRef struct{}

// LineBreak is the | separator
type LineBreak struct{}

// Keyword is an expanded keyword call. Reminder is only rendered when the
// call asked for it.
type Keyword struct {
	Call     KeywordCall
	Display  Nodes
	Reminder Nodes
	Unknown  bool
}

// Reminder is a standalone reminder line added by the pipeline
type Reminder struct {
	Body Nodes
}

func (Literal) node()      {}
func (ManaCostRef) node()  {}
func (KeywordCall) node()  {}
func (AbilityBlock) node() {}
func (BulletList) node()   {}
func (CardNameRef) node()  {}
func (LineBreak) node()    {}
func (Keyword) node()      {}
func (Reminder) node()     {}

func (n Literal) String() string     { return n.Text }
func (n ManaCostRef) String() string { return n.Cost.String() }
func (CardNameRef) String() string   { return "~" }
func (LineBreak) String() string     { return "|" }

func (n KeywordCall) String() string {
	prefix := "k."
	if n.Reminder {
		prefix = "kr."
	}
	return prefix + n.Name + "(" + strings.Join(n.Args, ", ") + ")"
}

func (n AbilityBlock) String() string {
	if n.Kind == Triggered {
		return "[[" + n.Body.String() + "]]"
	}
	return "<<" + n.Body.String() + ">>"
}

func (n BulletList) String() string {
	items := make([]string, len(n.Items))
	for i, item := range n.Items {
		items[i] = item.String()
	}
	return "l(" + strings.Join(items, ", ") + ")l"
}

// String returns the call the keyword was expanded from
func (n Keyword) String() string { return n.Call.String() }

func (n Reminder) String() string { return "(" + n.Body.String() + ")" }

// String re-encodes the sequence as markup source
func (ns Nodes) String() string {
	var b strings.Builder
	for _, n := range ns {
		b.WriteString(n.String())
	}
	return b.String()
}

func (k AbilityKind) String() string {
	if k == Triggered {
		return "triggered"
	}
	return "activated"
}

// Walk visits nodes depth-first. Returning false from fn skips the children
// of that node.
func Walk(nodes Nodes, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		switch n := n.(type) {
		case AbilityBlock:
			Walk(n.Body, fn)
		case BulletList:
			for _, item := range n.Items {
				Walk(item, fn)
			}
		case Keyword:
			Walk(n.Display, fn)
			Walk(n.Reminder, fn)
		case Reminder:
			Walk(n.Body, fn)
		}
	}
}

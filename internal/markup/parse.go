package markup

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arcanaland/manaforge/internal/keyword"
	"github.com/arcanaland/manaforge/internal/mana"
)

// ErrUnmatchedBracket is returned for an opening bracket without its closing
// counterpart, or a closing bracket without an opener
var ErrUnmatchedBracket = errors.New("unmatched bracket")

// SyntaxError locates a markup error within the parsed text
type SyntaxError struct {
	Offset int    // byte offset into the text
	Token  string // the offending bracket
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v %q at offset %d", e.Err, e.Token, e.Offset)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Grammar configures the token set recognized by Parse
type Grammar struct {
	ArgDelimiter  string // separates keyword arguments
	ItemDelimiter string // separates bullet list items
	Macros        bool   // recognize k.name(...) calls
	Lists         bool   // recognize l(...)l blocks
}

// DefaultGrammar recognizes the full token set
func DefaultGrammar() Grammar {
	return Grammar{
		ArgDelimiter:  ", ",
		ItemDelimiter: ",",
		Macros:        true,
		Lists:         true,
	}
}

// Template returns the grammar used for expanded keyword templates: the same
// tokens minus macro calls, so expansion never recurses.
func (g Grammar) Template() Grammar {
	g.Macros = false
	return g
}

// Parse parses text with the default grammar
func Parse(text string) (Nodes, error) {
	return DefaultGrammar().Parse(text)
}

// Parse turns text into a node sequence. At each position the first matching
// token wins, in this order: bullet list, keyword macro, mana cost, activated
// ability, triggered ability, card name, line break. Everything else is
// literal text.
func (g Grammar) Parse(text string) (Nodes, error) {
	p := &parser{g: g, src: text}
	return p.sequence("", "", 0)
}

var macroPattern = regexp.MustCompile(`^k(r?)\.(` + keyword.NamePattern + `)\(`)

type parser struct {
	g    Grammar
	src  string
	pos  int
	base int // offset of src within the text handed to Parse
}

func (p *parser) errorf(offset int, token string) error {
	return &SyntaxError{Offset: p.base + offset, Token: token, Err: ErrUnmatchedBracket}
}

// sequence reads nodes until closer (or the end of input when closer is empty)
func (p *parser) sequence(closer, opener string, openedAt int) (Nodes, error) {
	var out Nodes
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, Literal{Text: lit.String()})
			lit.Reset()
		}
	}

	for p.pos < len(p.src) {
		rest := p.src[p.pos:]
		if closer != "" && strings.HasPrefix(rest, closer) {
			flush()
			p.pos += len(closer)
			return out, nil
		}

		n, err := p.token()
		if err != nil {
			return nil, err
		}
		if n != nil {
			flush()
			out = append(out, n)
			continue
		}

		for _, stray := range []string{">>", "]]"} {
			if strings.HasPrefix(rest, stray) {
				return nil, p.errorf(p.pos, stray)
			}
		}

		_, size := utf8.DecodeRuneInString(rest)
		lit.WriteString(rest[:size])
		p.pos += size
	}

	if closer != "" {
		return nil, p.errorf(openedAt, opener)
	}
	flush()
	return out, nil
}

// token reads one non-literal token, or returns nil if none starts here
func (p *parser) token() (Node, error) {
	rest := p.src[p.pos:]

	if p.g.Lists && p.atWordStart() && strings.HasPrefix(rest, "l(") {
		return p.list()
	}

	if p.g.Macros && p.atWordStart() {
		if m := macroPattern.FindStringSubmatch(rest); m != nil {
			return p.macro(m)
		}
	}

	if cost, n, ok := mana.ScanCost(p.src, p.pos); ok {
		p.pos += n
		return ManaCostRef{Cost: cost}, nil
	}

	switch {
	case strings.HasPrefix(rest, "<<"):
		return p.ability(Activated, "<<", ">>")
	case strings.HasPrefix(rest, "[["):
		return p.ability(Triggered, "[[", "]]")
	case rest[0] == '~':
		p.pos++
		return CardNameRef{}, nil
	case rest[0] == '|':
		p.pos++
		return LineBreak{}, nil
	}

	return nil, nil
}

func (p *parser) ability(kind AbilityKind, opener, closer string) (Node, error) {
	openedAt := p.pos
	p.pos += len(opener)
	body, err := p.sequence(closer, opener, openedAt)
	if err != nil {
		return nil, err
	}
	return AbilityBlock{Kind: kind, Body: body}, nil
}

func (p *parser) macro(m []string) (Node, error) {
	openedAt := p.pos
	argsStart := p.pos + len(m[0])
	end := closingParen(p.src, argsStart)
	if end < 0 {
		return nil, p.errorf(openedAt, m[0])
	}

	var args []string
	for _, s := range splitTopLevel(p.src[argsStart:end], p.g.ArgDelimiter) {
		args = append(args, p.src[argsStart+s.start:argsStart+s.end])
	}

	p.pos = end + 1
	return KeywordCall{Name: m[2], Reminder: m[1] == "r", Args: args}, nil
}

func (p *parser) list() (Node, error) {
	openedAt := p.pos
	bodyStart := p.pos + len("l(")
	end := listEnd(p.src, bodyStart)
	if end < 0 {
		return nil, p.errorf(openedAt, "l(")
	}

	var list BulletList
	for _, s := range splitTopLevel(p.src[bodyStart:end], p.g.ItemDelimiter) {
		raw := p.src[bodyStart+s.start : bodyStart+s.end]
		item := strings.TrimSpace(raw)
		lead := strings.Index(raw, item)

		sub := &parser{g: p.g, src: item, base: p.base + bodyStart + s.start + lead}
		nodes, err := sub.sequence("", "", 0)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, nodes)
	}

	p.pos = end + len(")l")
	return list, nil
}

// atWordStart reports whether the previous rune ends a word, so that text
// like "until(" is not mistaken for a list opener
func (p *parser) atWordStart() bool {
	if p.pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(p.src[:p.pos])
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}

// closingParen returns the index of the ')' balancing an already consumed
// '(' , or -1
func closingParen(src string, from int) int {
	depth := 0
	for i := from; i < len(src); i++ {
		switch src[i] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// listEnd returns the index of the ')' in the ")l" that closes a list body
func listEnd(src string, from int) int {
	depth := 0
	for i := from; i < len(src); i++ {
		switch src[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
				continue
			}
			if i+1 < len(src) && src[i+1] == 'l' {
				return i
			}
		}
	}
	return -1
}

type span struct{ start, end int }

// splitTopLevel splits s on delim outside of parentheses. An empty or blank
// string has no parts.
func splitTopLevel(s, delim string) []span {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if delim == "" {
		return []span{{0, len(s)}}
	}

	var parts []span
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && strings.HasPrefix(s[i:], delim) {
			parts = append(parts, span{start, i})
			start = i + len(delim)
			i += len(delim) - 1
		}
	}
	return append(parts, span{start, len(s)})
}

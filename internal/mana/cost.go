package mana

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Wildcard is the variable cost value
const Wildcard = "X"

// ErrMalformedCost is returned when a cost token does not match the grammar
var ErrMalformedCost = errors.New("malformed mana cost")

// Cost is a decoded mana cost such as (2DA)
type Cost struct {
	Value  string   // decimal digits or Wildcard
	Colors ColorSet // 1-5 distinct colors
}

// ParseCost decodes a bracketed cost token. Surrounding whitespace is ignored,
// anything else outside the token is an error.
func ParseCost(s string) (Cost, error) {
	token := strings.TrimSpace(s)
	if len(token) < 2 || token[0] != '(' || token[len(token)-1] != ')' {
		return Cost{}, fmt.Errorf("%w: %q is not bracketed", ErrMalformedCost, s)
	}
	body := token[1 : len(token)-1]

	valueLen := scanValue(body)
	if valueLen == 0 {
		return Cost{}, fmt.Errorf("%w: %q has no value", ErrMalformedCost, s)
	}

	letters := body[valueLen:]
	if len(letters) > len(Colors) {
		return Cost{}, fmt.Errorf("%w: %q has more than %d colors", ErrMalformedCost, s, len(Colors))
	}
	colors, err := ParseColorSet(letters)
	if err != nil {
		return Cost{}, fmt.Errorf("%w: %q: %v", ErrMalformedCost, s, err)
	}

	return Cost{Value: body[:valueLen], Colors: colors}, nil
}

// ScanCost tries to read a cost token starting at src[offset]. It returns the
// cost and the token length, or ok=false when no well-formed token starts there.
func ScanCost(src string, offset int) (cost Cost, n int, ok bool) {
	if offset >= len(src) || src[offset] != '(' {
		return Cost{}, 0, false
	}
	end := strings.IndexByte(src[offset:], ')')
	if end < 0 {
		return Cost{}, 0, false
	}
	// A nested bracket means this is an ordinary parenthesis, not a cost
	token := src[offset : offset+end+1]
	if strings.IndexByte(token[1:], '(') >= 0 {
		return Cost{}, 0, false
	}
	cost, err := ParseCost(token)
	if err != nil {
		return Cost{}, 0, false
	}
	return cost, len(token), true
}

// scanValue returns the length of the value prefix of a cost body
func scanValue(body string) int {
	if strings.HasPrefix(body, Wildcard) {
		return len(Wildcard)
	}
	n := 0
	for n < len(body) && body[n] >= '0' && body[n] <= '9' {
		n++
	}
	return n
}

// IsWildcard reports whether the value is X
func (c Cost) IsWildcard() bool {
	return c.Value == Wildcard
}

// Int returns the numeric value, or ok=false for a wildcard
func (c Cost) Int() (int, bool) {
	if c.IsWildcard() {
		return 0, false
	}
	v, err := strconv.Atoi(c.Value)
	if err != nil {
		return 0, false
	}
	return v, true
}

// String re-encodes the cost with its colors in canonical order
func (c Cost) String() string {
	return "(" + c.Value + c.Colors.String() + ")"
}

package mana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCost(t *testing.T) {
	tests := []struct {
		input     string
		value     string
		canonical string
	}{
		{input: "(2DA)", value: "2", canonical: "(2DA)"},
		{input: "(2AD)", value: "2", canonical: "(2DA)"},
		{input: "(21DAO)", value: "21", canonical: "(21DAO)"},
		{input: "(0PDA)", value: "0", canonical: "(0DAP)"},
		{input: "(XDLA)", value: "X", canonical: "(XLDA)"},
		{input: "  (3L) ", value: "3", canonical: "(3L)"},
		{input: "(1LPODA)", value: "1", canonical: "(1DAOPL)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cost, err := ParseCost(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.value, cost.Value)
			assert.Equal(t, tt.canonical, cost.String())
		})
	}
}

func TestParseCostCanonicalRoundTrip(t *testing.T) {
	cost, err := ParseCost("(4OAD)")
	require.NoError(t, err)

	again, err := ParseCost(cost.String())
	require.NoError(t, err)
	assert.Equal(t, cost.Colors, again.Colors)
	assert.Equal(t, cost, again)
}

func TestParseCostErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "no_brackets", input: "2DA"},
		{name: "no_value", input: "(DA)"},
		{name: "no_colors", input: "(2)"},
		{name: "unknown_color", input: "(2DZ)"},
		{name: "duplicate_color", input: "(2DD)"},
		{name: "lowercase", input: "(2da)"},
		{name: "trailing_text", input: "(2DA) extra"},
		{name: "inner_space", input: "( 2DA)"},
		{name: "double_wildcard", input: "(XXD)"},
		{name: "too_many", input: "(1DAOPLD)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCost(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedCost)
		})
	}
}

func TestScanCost(t *testing.T) {
	src := "pay (2DA) now"
	cost, n, ok := ScanCost(src, 4)
	require.True(t, ok)
	assert.Equal(t, 5, n)
	assert.Equal(t, "2", cost.Value)
	assert.Equal(t, "DA", cost.Colors.String())

	_, _, ok = ScanCost(src, 0)
	assert.False(t, ok, "no bracket at offset")

	_, _, ok = ScanCost("(see above)", 0)
	assert.False(t, ok, "plain parenthetical")

	_, _, ok = ScanCost("((2DA))", 0)
	assert.False(t, ok, "outer bracket is not a cost")

	cost, n, ok = ScanCost("((2DA))", 1)
	require.True(t, ok)
	assert.Equal(t, 5, n)
	assert.Equal(t, "(2DA)", cost.String())

	_, _, ok = ScanCost("(2DA", 0)
	assert.False(t, ok, "unterminated")
}

func TestCostInt(t *testing.T) {
	v, ok := Cost{Value: "12", Colors: MustColorSet("D")}.Int()
	assert.True(t, ok)
	assert.Equal(t, 12, v)

	wild := Cost{Value: Wildcard, Colors: MustColorSet("D")}
	assert.True(t, wild.IsWildcard())
	_, ok = wild.Int()
	assert.False(t, ok)
}

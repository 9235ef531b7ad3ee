package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/manaforge/internal/keyword"
)

func TestTree(t *testing.T) {
	nodes, err := Parse("kr.blocker() ~|l(one (2AD))l [[x]] k.nosuch()")
	require.NoError(t, err)
	expanded, err := NewExpander(keyword.Default(), DefaultGrammar()).Expand(nodes, nil)
	require.NoError(t, err)

	out := Tree(expanded).String()
	for _, want := range []string{
		"markup",
		"keyword blocker",
		"display",
		"reminder",
		"activated",
		`literal "tap"`,
		"card name",
		"line break",
		"list",
		"item 1",
		"cost (2DA) value=2 colors=divine,arcane",
		"triggered",
		"keyword nosuch (unknown)",
	} {
		assert.Contains(t, out, want)
	}

	raw := Tree(nodes).String()
	assert.Contains(t, raw, "call kr.blocker()")
}

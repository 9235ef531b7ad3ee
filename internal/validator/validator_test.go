package validator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/manaforge/internal/card"
	"github.com/arcanaland/manaforge/internal/deck"
)

func containsMessage(messages []string, parts ...string) bool {
	for _, m := range messages {
		ok := true
		for _, p := range parts {
			if !strings.Contains(m, p) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func TestValidateCleanDeck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[deck]
name = "Clean"

[[card]]
name = "Goblin"
text = "k.blocker()"
cost = "(2DA)"
type = "creature"
`), 0644))

	d, err := deck.LoadDeck(path)
	require.NoError(t, err)

	results, err := NewValidator(d, nil).Validate()
	require.NoError(t, err)
	assert.True(t, results.Valid(), "errors: %v", results.Errors)
	assert.Empty(t, results.Warnings)
}

func TestValidateReportsProblems(t *testing.T) {
	d := &deck.Deck{
		Name: "memory",
		Cards: []card.Record{
			{"name": "Goblin", "text": "k.nosuch()", "cost": "(1D)", "type": "creature"},
			{"name": "goblin", "text": "ok", "cost": "(1D)", "type": "creature"},
			{"name": "Broken", "text": "<<tap", "cost": "(1D)", "type": "magic"},
			{"name": "Costless", "text": "ok", "type": "item"},
			{"name": "Untyped", "text": "ok", "cost": "(1A)"},
		},
	}

	results, err := NewValidator(d, nil).Validate()
	require.NoError(t, err)
	assert.False(t, results.Valid())

	assert.True(t, containsMessage(results.Errors, "card 3 (Broken)", "UNMATCHED_BRACKET"))
	assert.True(t, containsMessage(results.Errors, "card 4 (Costless)", "cost is required"))
	assert.True(t, containsMessage(results.Errors, "card 4 (Costless)", "MALFORMED_COST"))

	assert.True(t, containsMessage(results.Warnings, "deck.name is not set"))
	assert.True(t, containsMessage(results.Warnings, "card 1 (Goblin)", `unknown keyword "nosuch"`))
	assert.True(t, containsMessage(results.Warnings, "card 2 (goblin)", "duplicate name", "card 1"))
	assert.True(t, containsMessage(results.Warnings, "card 5 (Untyped)", "type is not set"))
}

func TestValidateEmptyDeck(t *testing.T) {
	results, err := NewValidator(&deck.Deck{Name: "empty"}, nil).Validate()
	require.NoError(t, err)
	assert.Contains(t, results.Errors, "deck has no cards")

	_, err = NewValidator(nil, nil).Validate()
	assert.Error(t, err)
}

package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/manaforge/internal/card"
)

const tomlDeck = `
[deck]
name = "Starter"
author = "Arcanaland"
keywords = "keywords.toml"

[[card]]
name = "Goblin"
text = "k.blocker()"
cost = "(2DA)"
type = "creature"
power = 3

[[card]]
name = "Bolt"
text = "Deal 3."
cost = "(1P)"
type = "magic"
quick = true
`

const yamlDeck = `
deck:
  name: Starter
cards:
  - name: Goblin
    text: k.blocker()
    cost: (2DA)
    type: creature
    power: 3
  - name: Bolt
    text: Deal 3.
    cost: (1P)
    quick: true
    tags: [fire, fast]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDeckTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "starter.toml", tomlDeck)

	d, err := LoadDeck(path)
	require.NoError(t, err)
	assert.Equal(t, "Starter", d.Name)
	assert.Equal(t, "Arcanaland", d.Author)
	require.Len(t, d.Cards, 2)

	assert.Equal(t, "Goblin", d.Cards[0].String(card.RawName))
	assert.Equal(t, "3", d.Cards[0].String("power"))
	assert.True(t, d.Cards[1].Bool(card.RawQuick))
	assert.Equal(t, filepath.Join(dir, "keywords.toml"), d.KeywordLibrary())
}

func TestLoadDeckYAMLDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "deck.yaml", yamlDeck)

	d, err := LoadDeck(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "deck.yaml"), d.Path)
	require.Len(t, d.Cards, 2)
	assert.Equal(t, "(2DA)", d.Cards[0].String(card.RawCost))
	assert.Equal(t, "3", d.Cards[0].String("power"))
	assert.Equal(t, []string{"fire", "fast"}, d.Cards[1].Strings("tags"))
	assert.Empty(t, d.KeywordLibrary())

	c, err := d.GetCard("bolt")
	require.NoError(t, err)
	assert.Equal(t, "Deal 3.", c.String(card.RawText))
	_, err = d.GetCard("nope")
	assert.Error(t, err)
}

func TestLoadDeckNameFallsBackToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "spells.yml", "cards:\n  - name: Bolt\n")

	d, err := LoadDeck(path)
	require.NoError(t, err)
	assert.Equal(t, "spells", d.Name)
}

func TestLoadDeckErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadDeck(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	_, err = LoadDeck(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no deck file")

	_, err = LoadDeck(writeFile(t, dir, "deck.json", "{}"))
	assert.Error(t, err)

	_, err = LoadDeck(writeFile(t, dir, "bad.toml", "[[card]\nname ="))
	assert.Error(t, err)
}

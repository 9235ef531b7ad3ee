package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/manaforge/internal/keyword"
	"github.com/arcanaland/manaforge/internal/mana"
)

type mapFields map[string]string

func (m mapFields) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

const badge2DA = `<span class="mana divine arcane" style="background: linear-gradient(to right, #f5de0c 0%, #f5de0c 49%, #3232e4 51%, #3232e4 100%);">` +
	`<span class="mana-value">2</span></span>`

func newRenderer() *Renderer {
	return NewRenderer(NewExpander(keyword.Default(), DefaultGrammar()), nil)
}

func render(t *testing.T, text string, fields keyword.Fields) string {
	t.Helper()
	nodes, err := Parse(text)
	require.NoError(t, err)
	out, err := newRenderer().Render(nodes, fields)
	require.NoError(t, err)
	return out
}

func TestRenderKeywordAndBreak(t *testing.T) {
	out := render(t, "k.blocker()|Another line", nil)
	assert.Equal(t, `<span class="keyword-display">🛡️ Blocker</span><br/>Another line`, out)
}

func TestRenderReminderKeyword(t *testing.T) {
	out := render(t, "kr.blocker()", nil)
	assert.Equal(t,
		`<span class="keyword-display">🛡️ Blocker</span> `+
			`<span class="keyword-reminder">(<span class="ability-activation-cost">tap</span>`+
			` Change the target of an enemy attack from an adjacent creature or you to this creature.)</span>`,
		out)
}

func TestRenderTemplateCostAndFields(t *testing.T) {
	out := render(t, "kr.complicated((2DA))", mapFields{"cost__names": "divine arcane"})
	assert.Equal(t,
		`<span class="keyword-display">Complicated `+badge2DA+`</span> `+
			`<span class="keyword-reminder">(divine arcane {card__name})</span>`,
		out)
}

func TestRenderUnresolvedFieldIsKept(t *testing.T) {
	out := render(t, "kr.complicated(x)", nil)
	assert.Contains(t, out, "{cost__names} {card__name}")
}

func TestRenderUnknownKeyword(t *testing.T) {
	nodes, err := Parse("k.nosuch() and kr.other(1)")
	require.NoError(t, err)

	r := newRenderer()
	expanded, err := r.Expander.Expand(nodes, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"nosuch", "other"}, UnknownKeywords(expanded))

	out, err := r.RenderExpanded(expanded)
	require.NoError(t, err)
	assert.Equal(t,
		`<span class="keyword-display keyword-unknown">UNKNOWN_KEYWORD_nosuch</span> and `+
			`<span class="keyword-display keyword-unknown">UNKNOWN_KEYWORD_other</span>`,
		out)
}

func TestRenderMissingArgument(t *testing.T) {
	nodes, err := Parse("k.tribute()")
	require.NoError(t, err)
	_, err = newRenderer().Render(nodes, nil)
	assert.ErrorIs(t, err, keyword.ErrArgumentCount)
}

func TestRenderAbilitiesAndList(t *testing.T) {
	out := render(t, "<<pay (2DA)>> [[When ~ enters]] Choose: l(one, two (2AD))l", nil)
	assert.Equal(t,
		`<span class="ability-activation-cost">pay `+badge2DA+`</span> `+
			`<span class="ability-trigger">When {card__name} enters</span> Choose: `+
			`<ul class="list"><li>one</li><li>two `+badge2DA+`</li></ul>`,
		out)
}

func TestRenderNestedList(t *testing.T) {
	out := render(t, "l(a, l(b (1O))l)l", nil)
	assert.Equal(t,
		`<ul class="list"><li>a</li><li><ul class="list"><li>b `+
			`<span class="mana occult" style="background: #2e2e2e;"><span class="mana-value">1</span></span>`+
			`</li></ul></li></ul>`,
		out)
}

func TestRenderEscapesText(t *testing.T) {
	out := render(t, "a < b & c", nil)
	assert.Equal(t, "a &lt; b &amp; c", out)
}

func TestRenderReminderNode(t *testing.T) {
	out, err := newRenderer().RenderExpanded(Nodes{
		Reminder{Body: Nodes{Literal{Text: "This channels tapped."}}},
		LineBreak{},
		Literal{Text: "text"},
	})
	require.NoError(t, err)
	assert.Equal(t, `<span class="keyword-reminder">(This channels tapped.)</span><br/>text`, out)
}

func TestRenderExpandedRejectsCalls(t *testing.T) {
	_, err := newRenderer().RenderExpanded(Nodes{KeywordCall{Name: "blocker"}})
	assert.Error(t, err)
}

func TestRendererCustomPainter(t *testing.T) {
	palette, err := mana.NewPalette(map[string]string{"occult": "#000000"})
	require.NoError(t, err)
	painter, err := mana.NewPainter(palette, mana.DefaultBleed)
	require.NoError(t, err)

	r := NewRenderer(NewExpander(nil, DefaultGrammar()), painter)
	nodes, err := Parse("(3O)")
	require.NoError(t, err)
	out, err := r.Render(nodes, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "background: #000000;")
}

func TestExpandWithoutCatalog(t *testing.T) {
	nodes, err := Parse("<<k.blocker()>>")
	require.NoError(t, err)
	expanded, err := NewExpander(nil, DefaultGrammar()).Expand(nodes, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"blocker"}, UnknownKeywords(expanded))
	assert.Equal(t, "<<k.blocker()>>", expanded.String())
}

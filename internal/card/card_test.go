package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMap(t *testing.T) {
	r := FromMap(map[string]any{
		"name":    "Goblin",
		"quick":   true,
		"power":   int64(3),
		"ratio":   1.5,
		"tags":    []any{"a", 2, nil},
		"missing": nil,
	})

	assert.Equal(t, Record{
		"name":  "Goblin",
		"quick": true,
		"power": "3",
		"ratio": "1.5",
		"tags":  []string{"a", "2"},
	}, r)
}

func TestPrefixedAndClone(t *testing.T) {
	r := Record{"name": "Goblin", "tags": []string{"a"}}
	p := r.Prefixed(Prefix)
	assert.Equal(t, Record{Name: "Goblin", "card__tags": []string{"a"}}, p)

	c := p.Clone()
	c.Strings("card__tags")[0] = "changed"
	c[Name] = "Other"
	assert.Equal(t, "a", p.Strings("card__tags")[0])
	assert.Equal(t, "Goblin", p.String(Name))
	assert.Equal(t, []string{Name, "card__tags"}, p.Keys())
}

func TestAccessors(t *testing.T) {
	r := Record{
		"s":     "text",
		"h":     HTML("<b>x</b>"),
		"b":     true,
		"bs":    "TRUE",
		"no":    "nope",
		"list":  []string{"divine", "arcane"},
		"other": 3,
	}

	assert.Equal(t, "text", r.String("s"))
	assert.Equal(t, "<b>x</b>", r.String("h"))
	assert.Equal(t, "", r.String("missing"))

	assert.True(t, r.Bool("b"))
	assert.True(t, r.Bool("bs"))
	assert.False(t, r.Bool("no"))
	assert.False(t, r.Bool("missing"))

	assert.Equal(t, []string{"divine", "arcane"}, r.Strings("list"))
	assert.Equal(t, []string{"text"}, r.Strings("s"))
	assert.Nil(t, r.Strings("missing"))
	assert.True(t, r.Has("other"))

	v, ok := r.Lookup("list")
	assert.True(t, ok)
	assert.Equal(t, "divine arcane", v)
	_, ok = r.Lookup("h")
	assert.False(t, ok, "HTML fields wait for Format")
	_, ok = r.Lookup("other")
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	r := Record{
		Name:       "Tom & Jerry",
		Cost:       HTML(`<span class="mana">2</span>`),
		CostColors: []string{"divine", "arcane"},
		Quick:      false,
	}

	out, err := r.Format(`{card__name} pays {card__cost} ({cost__colors}, {card__quick}) { not } {}`)
	require.NoError(t, err)
	assert.Equal(t, `Tom &amp; Jerry pays <span class="mana">2</span> (divine arcane, false) { not } {}`, out)

	_, err = r.Format("{card__missing}")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedField)
	assert.Contains(t, err.Error(), "{card__missing}")
}

func TestExport(t *testing.T) {
	type internal struct{ n int }
	r := Record{
		Name:       "Goblin",
		Cost:       HTML("<b>2</b>"),
		Quick:      true,
		CostColors: []string{"divine"},
		CostInfo:   internal{n: 1},
	}
	assert.Equal(t, map[string]any{
		Name:       "Goblin",
		Cost:       "<b>2</b>",
		Quick:      true,
		CostColors: []string{"divine"},
	}, r.Export())
}

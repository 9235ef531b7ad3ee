package mana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// permutations returns every ordering of the letters in s
func permutations(s string) []string {
	if len(s) <= 1 {
		return []string{s}
	}
	var out []string
	for i := 0; i < len(s); i++ {
		rest := s[:i] + s[i+1:]
		for _, p := range permutations(rest) {
			out = append(out, string(s[i])+p)
		}
	}
	return out
}

func TestCanonicalOrderIsPermutationInvariant(t *testing.T) {
	require.Len(t, CanonicalOrder, 31)

	for _, code := range CanonicalOrder {
		code := code
		t.Run(code, func(t *testing.T) {
			want := MustColorSet(code)
			for _, perm := range permutations(code) {
				set, err := ParseColorSet(perm)
				require.NoError(t, err)
				assert.Equal(t, want, set, "permutation %s", perm)
				assert.Equal(t, code, set.String(), "permutation %s", perm)
				assert.Equal(t, want.Names(), set.Names(), "permutation %s", perm)
			}
		})
	}
}

func TestColorSetRoundTrip(t *testing.T) {
	for set := ColorSet(1); set <= AllColors; set++ {
		parsed, err := ParseColorSet(set.String())
		require.NoError(t, err)
		assert.Equal(t, set, parsed)
		assert.Len(t, set.Colors(), set.Len())
	}
}

func TestColorSetPresentation(t *testing.T) {
	set := MustColorSet("AD")
	assert.Equal(t, "DA", set.String())
	assert.Equal(t, []Color{Divine, Arcane}, set.Colors())
	assert.Equal(t, []string{"divine", "arcane"}, set.Names())

	wedge := MustColorSet("PDO")
	assert.Equal(t, "OPD", wedge.String())
	assert.Equal(t, []string{"occult", "primal", "divine"}, wedge.Names())

	all := MustColorSet("LPODA")
	assert.Equal(t, "DAOPL", all.String())
	assert.Equal(t, 5, all.Len())
}

func TestParseColorSetErrors(t *testing.T) {
	tests := []struct {
		name    string
		letters string
	}{
		{name: "empty", letters: ""},
		{name: "unknown_letter", letters: "DX"},
		{name: "lowercase", letters: "da"},
		{name: "duplicate", letters: "DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseColorSet(tt.letters)
			assert.Error(t, err)
		})
	}
}

func TestInvalidColorSetHasNoPresentation(t *testing.T) {
	var empty ColorSet
	assert.False(t, empty.Valid())
	assert.Nil(t, empty.Colors())
	assert.Nil(t, empty.Names())

	outside := ColorSet(1 << 6)
	assert.False(t, outside.Valid())
	_, ok := DefaultOrder.Lookup(outside)
	assert.False(t, ok)
}

func TestNewOrderTableRejectsBadTables(t *testing.T) {
	t.Run("missing_subset", func(t *testing.T) {
		_, err := NewOrderTable(CanonicalOrder[:30])
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("duplicate_subset", func(t *testing.T) {
		order := append([]string{"AD"}, CanonicalOrder...)
		_, err := NewOrderTable(order)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already listed")
	})

	t.Run("invalid_letter", func(t *testing.T) {
		order := append([]string{"DQ"}, CanonicalOrder...)
		_, err := NewOrderTable(order)
		assert.Error(t, err)
	})

	t.Run("must_panics", func(t *testing.T) {
		assert.Panics(t, func() { MustOrderTable(nil) })
	})
}

func TestOrderTableEntries(t *testing.T) {
	entries := DefaultOrder.Entries()
	require.Len(t, entries, 31)
	assert.Equal(t, "D", entries[0].Code)
	assert.Equal(t, "DAOPL", entries[30].Code)

	// Mutating a returned entry must not leak into the table
	entries[0].Names[0] = "changed"
	assert.Equal(t, []string{"divine"}, MustColorSet("D").Names())
}

func TestColorLookups(t *testing.T) {
	c, ok := ColorFromLetter('O')
	require.True(t, ok)
	assert.Equal(t, Occult, c)
	assert.Equal(t, byte('O'), c.Letter())
	assert.Equal(t, "occult", c.String())

	c, ok = ColorFromName(" Alchemy ")
	require.True(t, ok)
	assert.Equal(t, Alchemy, c)

	_, ok = ColorFromName("chaos")
	assert.False(t, ok)
}

package grammar

import (
	"testing"

	"github.com/dekarrin/lingot/internal/ling/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(typeCode string) lexicon.Node {
	return lexicon.New(lexicon.LexicalData{
		ID:     typeCode,
		Locale: "fr",
		Symbol: typeCode,
		Flags:  lexicon.NewFlagMap(lexicon.Flag{ConceptID: "1", TypeCode: typeCode}),
	})
}

func Test_matchScore(t *testing.T) {
	assert.Equal(t, 1.0, matchScore("Nc", "Nc"))
	assert.Greater(t, matchScore("Nc", "N"), 0.0)
	assert.Equal(t, 0.0, matchScore("Nc", "V"))
	assert.Equal(t, 0.0, matchScore("Nc", ""))
}

func Test_Rule_AppliesFor(t *testing.T) {
	r := newRule("fr", "N", nil)
	assert.Greater(t, r.AppliesFor(node("Nc")), 0.0)
	assert.Equal(t, 0.0, r.AppliesFor(node("Vt")))
}

func Test_Binding_CanBind_With(t *testing.T) {
	r := newRule("fr", "V", []Attrs{
		{"with": "N"},
	})
	b := r.Bindings[0]

	score := b.CanBind(node("Vt"), node("Nc"))
	assert.Greater(t, score, 0.0)

	score = b.CanBind(node("Vt"), node("Ad"))
	assert.Equal(t, 0.0, score)
}

func Test_Binding_Bind_LinkActions(t *testing.T) {
	r := newRule("fr", "V", []Attrs{
		{"with": "N", "linkAction": "thistype"},
	})
	b := r.Bindings[0]

	link, ok := b.Bind(node("Vt"), node("Nc"))
	require.True(t, ok)
	assert.Equal(t, "V", link.Type)
	assert.Equal(t, "Vt", link.Source.FirstTypeCode())
	assert.Equal(t, "Nc", link.Destination.FirstTypeCode())
}

func Test_Binding_Bind_Reverse(t *testing.T) {
	r := newRule("fr", "V", []Attrs{
		{"with": "N", "linkAction": "reverse"},
	})
	b := r.Bindings[0]

	link, ok := b.Bind(node("Vt"), node("Nc"))
	require.True(t, ok)
	assert.Equal(t, "N", link.Type)
	assert.Equal(t, "Nc", link.Source.FirstTypeCode())
	assert.Equal(t, "Vt", link.Destination.FirstTypeCode())
}

func Test_Rule_GetBindingFor_PicksHighestScore(t *testing.T) {
	r := newRule("fr", "V", []Attrs{
		{"with": "N"},
		{"with": "Nc"},
	})

	best, score, ok := r.GetBindingFor(node("Vt"), node("Nc"))
	require.True(t, ok)
	assert.Same(t, r.Bindings[1], best)
	assert.Greater(t, score, 0.0)
}

func Test_Rule_GetBindingFor_NoneApplies(t *testing.T) {
	r := newRule("fr", "V", []Attrs{
		{"with": "Ad"},
	})

	_, _, ok := r.GetBindingFor(node("Vt"), node("Nc"))
	assert.False(t, ok)
}

func Test_Attrs_List_And_Contains(t *testing.T) {
	a := Attrs{"with": "N,,V,"}
	assert.Equal(t, []string{"N", "V"}, a.List("with"))
	assert.True(t, a.Contains("with", "V"))
	assert.False(t, a.Contains("with", "Ad"))
}

func Test_Registry_GetCachesAcrossCalls(t *testing.T) {
	calls := 0
	src := sourceFunc(func(locale string) (RuleSet, error) {
		calls++
		return RuleSet{{Type: "V", Bindings: []Attrs{{"with": "N"}}}}, nil
	})
	reg := NewRegistry(src)

	r1, err := reg.Get("fr", "V")
	require.NoError(t, err)
	r2, err := reg.Get("fr", "V")
	require.NoError(t, err)

	assert.Same(t, r1, r2)
	assert.Equal(t, 1, calls)
}

func Test_Registry_Reload(t *testing.T) {
	calls := 0
	src := sourceFunc(func(locale string) (RuleSet, error) {
		calls++
		return RuleSet{{Type: "V", Bindings: nil}}, nil
	})
	reg := NewRegistry(src)

	_, err := reg.Get("fr", "V")
	require.NoError(t, err)
	reg.Reload("fr")
	_, err = reg.Get("fr", "V")
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

type sourceFunc func(locale string) (RuleSet, error)

func (f sourceFunc) Load(locale string) (RuleSet, error) { return f(locale) }

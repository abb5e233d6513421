package ling

import (
	"testing"

	"github.com/dekarrin/lingot/internal/ling/event"
	"github.com/dekarrin/lingot/internal/ling/grammar"
	"github.com/dekarrin/lingot/internal/ling/lexicon"
	"github.com/dekarrin/lingot/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource struct {
	sets map[string]grammar.RuleSet
}

func (s fixedSource) Load(locale string) (grammar.RuleSet, error) {
	return s.sets[locale], nil
}

func seedWord(store *memory.Store, locale, symbol, conceptID, typeCode string) {
	store.Seed(lexicon.LexicalData{
		ID:     lexicon.HashID(symbol),
		Locale: locale,
		Symbol: symbol,
		Flags:  lexicon.NewFlagMap(lexicon.Flag{ConceptID: conceptID, TypeCode: typeCode}),
	})
}

// seedWordFlags seeds symbol with one flag per (conceptID, typeCode) pair,
// for scenarios that need a node with more than one sense to expand.
func seedWordFlags(store *memory.Store, locale, symbol string, flags ...lexicon.Flag) {
	store.Seed(lexicon.LexicalData{
		ID:     lexicon.HashID(symbol),
		Locale: locale,
		Symbol: symbol,
		Flags:  lexicon.NewFlagMap(flags...),
	})
}

func flagsOfType(typeCode string, conceptIDs ...string) []lexicon.Flag {
	out := make([]lexicon.Flag, len(conceptIDs))
	for i, id := range conceptIDs {
		out[i] = lexicon.Flag{ConceptID: id, TypeCode: typeCode}
	}
	return out
}

func Test_Parser_Parse_ProducesLinkedMeaning(t *testing.T) {
	store := memory.New()
	seedWord(store, "fr", "chat", "1", "Nc")
	seedWord(store, "fr", "noir", "2", "Ad")

	source := fixedSource{sets: map[string]grammar.RuleSet{
		"fr": {
			{Type: "N", Bindings: []grammar.Attrs{{"with": "Ad", "linkAction": "thistype"}}},
		},
	}}
	registry := grammar.NewRegistry(source)

	parser := New("fr", store, registry, nil, 0, 0)
	result, err := parser.Parse("chat noir.")
	require.NoError(t, err)
	require.Len(t, result.Sentences, 1)

	sr := result.Sentences[0]
	require.NotEmpty(t, sr.Meanings)
	m := sr.Meanings[0]
	require.Len(t, m.Links, 1)
	assert.Equal(t, "N", m.Links[0].Type)
	assert.Equal(t, "chat", m.Links[0].Source.Data.Symbol)
	assert.Equal(t, "noir", m.Links[0].Destination.Data.Symbol)

	assert.Empty(t, result.Diagnostics.PseudoNodeIDs)
}

func Test_Parser_Parse_UnknownWordIsPseudoNodeAndReported(t *testing.T) {
	store := memory.New()
	seedWord(store, "fr", "chat", "1", "Nc")

	registry := grammar.NewRegistry(fixedSource{sets: map[string]grammar.RuleSet{}})

	var seen []lexicon.Node
	sink := sinkFunc{onPseudo: func(n lexicon.Node) { seen = append(seen, n) }}

	parser := New("fr", store, registry, sink, 0, 0)
	result, err := parser.Parse("zorblax.")
	require.NoError(t, err)
	require.Len(t, result.Sentences, 1)

	assert.Len(t, result.Diagnostics.PseudoNodeIDs, 1)
	require.Len(t, seen, 1)
	assert.Equal(t, "zorblax", seen[0].OriginalToken)
}

type sinkFunc struct {
	event.NopSink
	onPseudo func(lexicon.Node)
}

func (s sinkFunc) OnPseudoNode(n lexicon.Node) {
	if s.onPseudo != nil {
		s.onPseudo(n)
	}
}

// countingSink counts every event delivered to it, for asserting that a
// Parse call fired none (S4).
type countingSink struct {
	calls int
}

func (c *countingSink) OnPseudoNode(lexicon.Node) { c.calls++ }
func (c *countingSink) OnBindingSucceeded(*grammar.Binding, lexicon.Node, lexicon.Node) {
	c.calls++
}
func (c *countingSink) OnBindingFailed(*grammar.Binding, lexicon.Node, lexicon.Node) {
	c.calls++
}
func (c *countingSink) OnExpansionProgress(float64) { c.calls++ }
func (c *countingSink) OnExpansionFinished()        { c.calls++ }
func (c *countingSink) OnTier(int, int, int)        { c.calls++ }
func (c *countingSink) OnReductionFinished()        { c.calls++ }

// Test_Parser_Parse_EightPathExpansion is spec.md §8 S1: "We are boys."
// with |We.flags|=4, |are.flags|=2, |boys.flags|=1 expands to 8 paths and
// reduction produces at least one Meaning whose base link's source is
// "We" or "are" (depending on the rule's linkAction).
func Test_Parser_Parse_EightPathExpansion(t *testing.T) {
	store := memory.New()
	seedWordFlags(store, "en", "We", flagsOfType("Pn", "1", "2", "3", "4")...)
	seedWordFlags(store, "en", "are", flagsOfType("Vc", "5", "6")...)
	seedWordFlags(store, "en", "boys", flagsOfType("Nc", "7")...)

	source := fixedSource{sets: map[string]grammar.RuleSet{
		"en": {
			{Type: "Pn", Bindings: []grammar.Attrs{{"with": "Vc", "linkAction": "thistype"}}},
		},
	}}
	registry := grammar.NewRegistry(source)

	var produced []int
	notifier := &tierSink{onTier: func(_, p, _ int) { produced = append(produced, p) }}

	parser := New("en", store, registry, notifier, 0, 0)
	result, err := parser.Parse("We are boys.")
	require.NoError(t, err)
	require.Len(t, result.Sentences, 1)

	require.NotEmpty(t, produced)
	assert.Equal(t, 8, produced[len(produced)-1])

	sr := result.Sentences[0]
	require.NotEmpty(t, sr.Meanings)
	base := sr.Meanings[0].Base()
	assert.Contains(t, []string{"We", "are"}, base.Source.Data.Symbol)
}

// tierSink layers an OnTier observer on top of another Sink, for S1's
// assertion on the expansion's expected path count.
type tierSink struct {
	sinkFunc
	onTier func(position, produced, expected int)
}

func (t *tierSink) OnTier(position, produced, expected int) {
	if t.onTier != nil {
		t.onTier(position, produced, expected)
	}
	t.sinkFunc.OnTier(position, produced, expected)
}

// Test_Parser_Parse_ContractionBindsLevelOne is spec.md §8 S2: "My name's
// Tom." tokenizes to [My, name, 's, Tom] via the registered full-suffix
// expansion, and reduction yields a Meaning whose level-1 links include a
// bind between "name" and "'s".
func Test_Parser_Parse_ContractionBindsLevelOne(t *testing.T) {
	store := memory.New()
	store.SetFullSuffix("en", "'s", "'s")
	seedWord(store, "en", "name", "1", "Nc")
	seedWord(store, "en", "'s", "2", "Vc")

	source := fixedSource{sets: map[string]grammar.RuleSet{
		"en": {
			{Type: "Nc", Bindings: []grammar.Attrs{{"with": "Vc", "linkAction": "thistype"}}},
		},
	}}
	registry := grammar.NewRegistry(source)

	parser := New("en", store, registry, nil, 0, 0)
	result, err := parser.Parse("My name's Tom.")
	require.NoError(t, err)
	require.Len(t, result.Sentences, 1)

	sr := result.Sentences[0]
	require.NotEmpty(t, sr.Meanings)

	var found bool
	for _, m := range sr.Meanings {
		links, err := m.LinksAt(1)
		if err != nil {
			continue
		}
		for _, l := range links {
			if l.Source.Data.Symbol == "name" && l.Destination.Data.Symbol == "'s" {
				found = true
			}
		}
	}
	assert.True(t, found, "expected a level-1 bind between %q and %q", "name", "'s")
}

// Test_Parser_Parse_EmptyInput is spec.md §8 S4: empty input returns an
// empty meaning list and emits no events.
func Test_Parser_Parse_EmptyInput(t *testing.T) {
	store := memory.New()
	registry := grammar.NewRegistry(fixedSource{sets: map[string]grammar.RuleSet{}})
	sink := &countingSink{}

	parser := New("en", store, registry, sink, 0, 0)
	result, err := parser.Parse("")
	require.NoError(t, err)

	assert.Empty(t, result.Sentences)
	assert.Empty(t, result.Diagnostics.PseudoNodeIDs)
	assert.Equal(t, 0, result.Diagnostics.FailedBindCount)
	assert.Equal(t, 0, sink.calls)
}

// Test_Parser_Parse_MultiSentenceIndependence is spec.md §8 S5:
// "Hi. Bye." splits into two sentences, each parsed independently into its
// own SentenceResult.
func Test_Parser_Parse_MultiSentenceIndependence(t *testing.T) {
	store := memory.New()
	registry := grammar.NewRegistry(fixedSource{sets: map[string]grammar.RuleSet{}})

	parser := New("en", store, registry, nil, 0, 0)
	result, err := parser.Parse("Hi. Bye.")
	require.NoError(t, err)

	require.Len(t, result.Sentences, 2)
	assert.Equal(t, "Hi", result.Sentences[0].Sentence)
	assert.Equal(t, "Bye.", result.Sentences[1].Sentence)
}

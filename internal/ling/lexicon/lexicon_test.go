package lexicon

import (
	"testing"

	"github.com/dekarrin/lingot/internal/ling/lex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	data      map[string]LexicalData // "locale/id"
	pseudoLog []Node
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string]LexicalData)}
}

func (s *stubStore) key(locale, id string) string { return locale + "/" + id }

func (s *stubStore) seed(data LexicalData) {
	s.data[s.key(data.Locale, data.ID)] = data
}

func (s *stubStore) Exists(locale, id string) (bool, error) {
	_, ok := s.data[s.key(locale, id)]
	return ok, nil
}

func (s *stubStore) Read(locale, id string) (LexicalData, bool, error) {
	d, ok := s.data[s.key(locale, id)]
	return d, ok, nil
}

func (s *stubStore) Write(data LexicalData) (LexicalData, error) {
	s.seed(data)
	return data, nil
}

func (s *stubStore) Pseudo(locale, symbol string) (LexicalData, error) {
	return Pseudo(locale, symbol), nil
}

func (s *stubStore) IsPseudo(data LexicalData) bool {
	return IsPseudo(data)
}

func (s *stubStore) ObtainFullSuffix(locale, suffix string) (string, bool, error) {
	return "", false, nil
}

func Test_FlagMap_OrderAndOverwrite(t *testing.T) {
	fm := NewFlagMap(
		Flag{ConceptID: "1", TypeCode: "Nc"},
		Flag{ConceptID: "2", TypeCode: "Vt"},
		Flag{ConceptID: "1", TypeCode: "Np"},
	)

	assert.Equal(t, 2, fm.Len())
	first, ok := fm.First()
	require.True(t, ok)
	assert.Equal(t, Flag{ConceptID: "1", TypeCode: "Np"}, first)
	assert.Equal(t, "Np", fm.FirstTypeCode())
}

func Test_HashID_CaseInsensitive(t *testing.T) {
	assert.Equal(t, HashID("Chat"), HashID("chat"))
	assert.NotEqual(t, HashID("chat"), HashID("chien"))
}

func Test_IsPseudo(t *testing.T) {
	p := Pseudo("fr", "zorblax")
	assert.True(t, IsPseudo(p))

	real := LexicalData{
		ID:     HashID("chat"),
		Locale: "fr",
		Symbol: "chat",
		Flags:  NewFlagMap(Flag{ConceptID: "42", TypeCode: "Nc"}),
	}
	assert.False(t, IsPseudo(real))
}

func Test_Node_Expand(t *testing.T) {
	data := LexicalData{
		ID:     HashID("vole"),
		Locale: "fr",
		Symbol: "vole",
		Flags: NewFlagMap(
			Flag{ConceptID: "10", TypeCode: "Vi"},
			Flag{ConceptID: "20", TypeCode: "Nc"},
		),
	}
	n := New(data)
	flat := n.Expand()
	require.Len(t, flat, 2)
	assert.Equal(t, "Vi", flat[0].FirstTypeCode())
	assert.Equal(t, "Nc", flat[1].FirstTypeCode())
	assert.True(t, flat[0].IsFlat())
}

func Test_Node_Equal_IgnoresSymbolCasingAndFlags(t *testing.T) {
	a := New(LexicalData{ID: "x", Locale: "fr", Symbol: "Chat", Flags: NewFlagMap(Flag{ConceptID: "1", TypeCode: "Nc"})})
	b := New(LexicalData{ID: "y", Locale: "fr", Symbol: "chat", Flags: NewFlagMap(Flag{ConceptID: "2", TypeCode: "Np"})})
	assert.True(t, a.Equal(b))
}

func Test_Resolve_KnownAndUnknown(t *testing.T) {
	store := newStubStore()
	store.seed(LexicalData{
		ID:     HashID("chat"),
		Locale: "fr",
		Symbol: "chat",
		Flags:  NewFlagMap(Flag{ConceptID: "1", TypeCode: "Nc"}),
	})

	tokens := []lex.Token{{Core: "chat"}, {Core: "zorblax"}}

	var seenPseudo []Node
	notifier := notifierFunc(func(n Node) { seenPseudo = append(seenPseudo, n) })

	nodes, err := Resolve("fr", tokens, store, notifier)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	assert.False(t, IsPseudo(nodes[0].Data))
	assert.True(t, IsPseudo(nodes[1].Data))
	require.Len(t, seenPseudo, 1)
	assert.Equal(t, "zorblax", seenPseudo[0].OriginalToken)
}

type notifierFunc func(Node)

func (f notifierFunc) OnPseudoNode(n Node) { f(n) }

package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SplitSentences(t *testing.T) {
	sentences, err := SplitSentences("Le chat dort. Le chien aboie!")
	require.NoError(t, err)
	assert.Equal(t, []string{"Le chat dort", "Le chien aboie!"}, sentences)
}

func Test_SplitSentences_Empty(t *testing.T) {
	sentences, err := SplitSentences("   ")
	require.NoError(t, err)
	assert.Nil(t, sentences)
}

func Test_SplitSentences_InvalidUTF8(t *testing.T) {
	_, err := SplitSentences(string([]byte{0xff, 0xfe}))
	assert.Error(t, err)
}

func Test_Tokenize_SplitsAffixes(t *testing.T) {
	tokens, err := Tokenize("fr", `"chat,`, nil)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, `"`, tokens[0].Prefix)
	assert.Equal(t, "chat", tokens[0].Core)
	assert.Equal(t, ",", tokens[0].Suffix)
}

type stubExpander struct {
	expansions map[string]string
}

func (s stubExpander) ObtainFullSuffix(locale, suffix string) (string, bool, error) {
	exp, ok := s.expansions[suffix]
	return exp, ok, nil
}

func Test_Tokenize_ExpandsKnownSuffix(t *testing.T) {
	exp := stubExpander{expansions: map[string]string{"'appelle": "' appelle"}}

	tokens, err := Tokenize("fr", "m'appelle", exp)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "m", tokens[0].Core)
	assert.Equal(t, "'", tokens[1].Core)
	assert.Equal(t, "appelle", tokens[2].Core)
}

func Test_Token_String_Reconstructs(t *testing.T) {
	tok := Token{Prefix: `"`, Core: "chat", Suffix: ","}
	assert.Equal(t, `"chat,`, tok.String())
}

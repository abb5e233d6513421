package toml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGrammar = `
[[rule]]
type = "Verb"

  [[rule.binding]]
  with = "Noun"
  hasAll = "subject"
  linkAction = "thistype"

  [[rule.binding]]
  with = "Adverb"
  hide = "yes"
`

func writeLocale(t *testing.T, dir, locale, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, locale+".toml"), []byte(content), 0o644))
}

func Test_Source_Load(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "en", sampleGrammar)

	src := New(dir)
	set, err := src.Load("en")
	require.NoError(t, err)
	require.Len(t, set, 1)

	assert.Equal(t, "Verb", set[0].Type)
	require.Len(t, set[0].Bindings, 2)
	assert.Equal(t, "Noun", set[0].Bindings[0]["with"])
	assert.Equal(t, "subject", set[0].Bindings[0]["hasAll"])
	assert.Equal(t, "yes", set[0].Bindings[1]["hide"])
}

func Test_Source_Load_MissingLocale(t *testing.T) {
	dir := t.TempDir()
	src := New(dir)

	_, err := src.Load("fr")
	assert.Error(t, err)
}

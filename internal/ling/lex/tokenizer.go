package lex

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dekarrin/lingot/internal/ling/lingerrors"
)

// sentenceBoundary splits a multi-sentence input on the boundary described
// in §4.1: a terminal punctuation mark immediately followed by whitespace.
// The separator (punctuation and the one whitespace rune) is dropped along
// with the split. A mark at the very end of the text has no whitespace after
// it, so it stays on the last sentence, where Tokenize keeps it as a suffix.
var sentenceBoundary = regexp.MustCompile(`[.!?;]\s`)

// SuffixExpander resolves a tokenizer suffix to its full-form expansion, the
// tokenizer-facing slice of lexicon.Store.ObtainFullSuffix. Keeping it as a
// local, minimal interface (rather than importing the lexicon package) lets
// lex stay a leaf package.
type SuffixExpander interface {
	ObtainFullSuffix(locale, suffix string) (expansion string, ok bool, err error)
}

// SplitSentences splits text into independently-parsed sentences on the
// §4.1 boundary regex, skipping empty results. It is the first step of
// Parser.Parse (§4.6).
func SplitSentences(text string) ([]string, error) {
	if !utf8.ValidString(text) {
		return nil, lingerrors.Tokenize("input is not valid UTF-8")
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	raw := sentenceBoundary.Split(text, -1)
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences, nil
}

// Tokenize splits one sentence into an ordered token stream (§4.1). Each
// whitespace-separated word is decomposed into (prefix, core, suffix); if
// the suffix has a known full-suffix expansion in exp, the expansion is
// tokenized in turn and its pieces are emitted as additional tokens
// immediately following the word they were attached to (this is how
// "m'appelle" decomposes into "m", "'", "appelle").
func Tokenize(locale, sentence string, exp SuffixExpander) ([]Token, error) {
	if !utf8.ValidString(sentence) {
		return nil, lingerrors.Tokenize("input is not valid UTF-8")
	}

	words := strings.Fields(sentence)
	tokens := make([]Token, 0, len(words))

	for _, word := range words {
		prefix, core, suffix := splitAffixes(word)
		tok := Token{Prefix: prefix, Core: core}

		if suffix == "" {
			tokens = append(tokens, tok)
			continue
		}

		if exp != nil {
			expansion, ok, err := exp.ObtainFullSuffix(locale, suffix)
			if err != nil {
				return nil, err
			}
			if ok {
				tokens = append(tokens, tok)
				for _, piece := range strings.Fields(expansion) {
					tokens = append(tokens, Token{Core: piece})
				}
				continue
			}
		}

		tok.Suffix = suffix
		tokens = append(tokens, tok)
	}

	return tokens, nil
}

// splitAffixes breaks one whitespace-delimited word into its leading
// non-alphanumeric run (prefix), maximal alphanumeric run (core), and
// everything that follows (suffix).
func splitAffixes(word string) (prefix, core, suffix string) {
	runes := []rune(word)
	i := 0
	for i < len(runes) && !isAlnum(runes[i]) {
		i++
	}
	prefix = string(runes[:i])

	j := i
	for j < len(runes) && isAlnum(runes[j]) {
		j++
	}
	core = string(runes[i:j])
	suffix = string(runes[j:])
	return
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Package lexicon defines the lexical node model: LexicalData, Node, and
// FlatNode, plus the NodeResolver that turns tokens into nodes by consulting
// an external LexicalStore.
package lexicon

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// LexicalData is one entry of the lexicon: an id derived from its symbol, a
// locale, a display symbol, and an ordered mapping of senses. It is
// immutable once obtained; callers that need a modified copy should build a
// new LexicalData.
type LexicalData struct {
	ID     string
	Locale string
	Symbol string
	Flags  FlagMap
}

// HashID computes the stable, non-cryptographic content hash used as a
// LexicalData's id. The reference implementation uses MD5 over the
// case-folded symbol; MD5 is kept here for bit-for-bit compatibility with
// lexicon data produced by that reference, not for any security property.
func HashID(symbol string) string {
	sum := md5.Sum([]byte(strings.ToLower(symbol)))
	return hex.EncodeToString(sum[:])
}

// IsPseudo reports whether data was synthesized by NodeResolver for an
// unrecognized symbol rather than read from a LexicalStore.
func IsPseudo(data LexicalData) bool {
	if data.Flags.Len() != 1 {
		return false
	}
	f, _ := data.Flags.First()
	return f.ConceptID == UnknownConceptID && f.TypeCode == UnknownTypeCode
}

// Pseudo builds the LexicalData for an unrecognized symbol: a single flag
// mapping the distinguished unknown concept to the distinguished unknown
// type code (§4.2 step 4).
func Pseudo(locale, symbol string) LexicalData {
	return LexicalData{
		ID:     HashID(symbol),
		Locale: locale,
		Symbol: symbol,
		Flags:  NewFlagMap(Flag{ConceptID: UnknownConceptID, TypeCode: UnknownTypeCode}),
	}
}

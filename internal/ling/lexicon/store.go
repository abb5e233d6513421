package lexicon

// Store is the external collaborator (§6 LexicalStore) the core consults
// for flag-mapping lookups and existence checks keyed by (locale, id). The
// core never mutates a Store directly except through Write, which is only
// invoked by a PseudoNotifier's handler in response to a pseudo-node event.
//
// Implementations live outside this package (internal/store/...); this
// package only depends on the interface.
type Store interface {
	// Exists reports whether a lexical entry is present for (locale, id).
	Exists(locale, id string) (bool, error)

	// Read loads the LexicalData for (locale, id). ok is false if no entry
	// exists.
	Read(locale, id string) (data LexicalData, ok bool, err error)

	// Write stores data and returns its canonicalized form.
	Write(data LexicalData) (LexicalData, error)

	// Pseudo assigns an id and default flags for symbol and returns the
	// resulting LexicalData without storing it.
	Pseudo(locale, symbol string) (LexicalData, error)

	// ObtainFullSuffix resolves a tokenizer suffix (e.g. "'appelle") to its
	// full-form expansion (e.g. "' appelle"), used for contraction/elision
	// handling. ok is false if the suffix has no known expansion.
	ObtainFullSuffix(locale, suffix string) (expansion string, ok bool, err error)

	// IsPseudo reports whether data was synthesized for an unknown symbol
	// rather than read from storage.
	IsPseudo(data LexicalData) bool
}

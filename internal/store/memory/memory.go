// Package memory implements lexicon.Store entirely in process memory. It is
// the reference LexicalStore collaborator for tests and for cmd/lingcli's
// default, no-persistence mode.
package memory

import (
	"sync"

	"github.com/dekarrin/lingot/internal/ling/lexicon"
)

type localeData struct {
	entries map[string]lexicon.LexicalData // id -> data
	suffix  map[string]string              // suffix -> expansion
}

// Store is a lexicon.Store backed by an in-process map, keyed by locale.
// Reads take a read lock; writes (including the pseudo-node write-back path
// described in §5) take a write lock scoped to the whole store, which is
// stricter than the §5 "serialized per (locale, id)" minimum but keeps the
// implementation a handful of lines.
type Store struct {
	mu      sync.RWMutex
	locales map[string]*localeData
}

// New returns an empty Store.
func New() *Store {
	return &Store{locales: make(map[string]*localeData)}
}

func (s *Store) localeFor(locale string) *localeData {
	ld, ok := s.locales[locale]
	if !ok {
		ld = &localeData{
			entries: make(map[string]lexicon.LexicalData),
			suffix:  make(map[string]string),
		}
		s.locales[locale] = ld
	}
	return ld
}

// Exists reports whether (locale, id) has an entry.
func (s *Store) Exists(locale, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ld, ok := s.locales[locale]
	if !ok {
		return false, nil
	}
	_, ok = ld.entries[id]
	return ok, nil
}

// Read loads the LexicalData for (locale, id).
func (s *Store) Read(locale, id string) (lexicon.LexicalData, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ld, ok := s.locales[locale]
	if !ok {
		return lexicon.LexicalData{}, false, nil
	}
	data, ok := ld.entries[id]
	return data, ok, nil
}

// Write stores data under (data.Locale, data.ID) and returns it unchanged;
// there is nothing to canonicalize for an in-memory store.
func (s *Store) Write(data lexicon.LexicalData) (lexicon.LexicalData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ld := s.localeFor(data.Locale)
	ld.entries[data.ID] = data
	return data, nil
}

// Pseudo builds the LexicalData for an unrecognized symbol without storing
// it (§4.2 step 4).
func (s *Store) Pseudo(locale, symbol string) (lexicon.LexicalData, error) {
	return lexicon.Pseudo(locale, symbol), nil
}

// IsPseudo reports whether data looks like one Pseudo built.
func (s *Store) IsPseudo(data lexicon.LexicalData) bool {
	return lexicon.IsPseudo(data)
}

// ObtainFullSuffix looks up a registered contraction/elision expansion for
// suffix.
func (s *Store) ObtainFullSuffix(locale, suffix string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ld, ok := s.locales[locale]
	if !ok {
		return "", false, nil
	}
	expansion, ok := ld.suffix[suffix]
	return expansion, ok, nil
}

// SetFullSuffix registers a contraction/elision expansion for suffix in
// locale (e.g. "'appelle" -> "' appelle"). This is test/seeding surface,
// not part of lexicon.Store.
func (s *Store) SetFullSuffix(locale, suffix, expansion string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ld := s.localeFor(locale)
	ld.suffix[suffix] = expansion
}

// Seed writes data directly, bypassing the pseudo-node discovery path. Test
// and driver setup surface, not part of lexicon.Store.
func (s *Store) Seed(data lexicon.LexicalData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ld := s.localeFor(data.Locale)
	ld.entries[data.ID] = data
}

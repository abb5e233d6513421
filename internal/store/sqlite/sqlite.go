// Package sqlite implements lexicon.Store on top of a pure-Go sqlite
// database (modernc.org/sqlite), the persistent "cache to disk" collaborator
// named out-of-scope for the core in §1 but given a concrete home here,
// following the schema-per-file and wrapDBError conventions of
// server/dao/sqlite.
package sqlite

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dekarrin/lingot/internal/ling/lexicon"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
	"modernc.org/sqlite"
)

// Store is a lexicon.Store backed by a sqlite database file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the sqlite database at file and ensures
// its schema exists.
func Open(file string) (*Store, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS lexicon_entries (
		row_id   TEXT NOT NULL PRIMARY KEY,
		locale   TEXT NOT NULL,
		id       TEXT NOT NULL,
		symbol   TEXT NOT NULL,
		flags    TEXT NOT NULL,
		UNIQUE(locale, id)
	);`)
	if err != nil {
		return wrapDBError(err)
	}

	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS suffix_expansions (
		locale    TEXT NOT NULL,
		suffix    TEXT NOT NULL,
		expansion TEXT NOT NULL,
		PRIMARY KEY (locale, suffix)
	);`)
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

// flagEntry is the rezi-encodable DTO for one lexicon.Flag.
type flagEntry struct {
	ConceptID string
	TypeCode  string
}

// flagList is the rezi-encodable DTO for a lexicon.FlagMap, preserving
// insertion order.
type flagList struct {
	Flags []flagEntry
}

func encodeFlags(fm lexicon.FlagMap) string {
	dto := flagList{}
	for _, f := range fm.All() {
		dto.Flags = append(dto.Flags, flagEntry{ConceptID: f.ConceptID, TypeCode: f.TypeCode})
	}
	blob := rezi.EncBinary(dto)
	return base64.StdEncoding.EncodeToString(blob)
}

func decodeFlags(encoded string) (lexicon.FlagMap, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return lexicon.FlagMap{}, fmt.Errorf("lexicon: decode flags: %w", err)
	}

	var dto flagList
	n, err := rezi.DecBinary(blob, &dto)
	if err != nil {
		return lexicon.FlagMap{}, fmt.Errorf("lexicon: decode flags: %w", err)
	}
	if n != len(blob) {
		return lexicon.FlagMap{}, fmt.Errorf("lexicon: decode flags: consumed %d/%d bytes", n, len(blob))
	}

	flags := make([]lexicon.Flag, len(dto.Flags))
	for i, f := range dto.Flags {
		flags[i] = lexicon.Flag{ConceptID: f.ConceptID, TypeCode: f.TypeCode}
	}
	return lexicon.NewFlagMap(flags...), nil
}

// Exists reports whether (locale, id) has an entry.
func (s *Store) Exists(locale, id string) (bool, error) {
	var count int
	row := s.db.QueryRow(`SELECT COUNT(*) FROM lexicon_entries WHERE locale = ? AND id = ?`, locale, id)
	if err := row.Scan(&count); err != nil {
		return false, wrapDBError(err)
	}
	return count > 0, nil
}

// Read loads the LexicalData for (locale, id).
func (s *Store) Read(locale, id string) (lexicon.LexicalData, bool, error) {
	row := s.db.QueryRow(`SELECT symbol, flags FROM lexicon_entries WHERE locale = ? AND id = ?`, locale, id)

	var symbol, encodedFlags string
	if err := row.Scan(&symbol, &encodedFlags); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lexicon.LexicalData{}, false, nil
		}
		return lexicon.LexicalData{}, false, wrapDBError(err)
	}

	flags, err := decodeFlags(encodedFlags)
	if err != nil {
		return lexicon.LexicalData{}, false, err
	}

	return lexicon.LexicalData{ID: id, Locale: locale, Symbol: symbol, Flags: flags}, true, nil
}

// Write upserts data, keyed by (Locale, ID), and returns it unchanged.
func (s *Store) Write(data lexicon.LexicalData) (lexicon.LexicalData, error) {
	rowID, err := uuid.NewRandom()
	if err != nil {
		return lexicon.LexicalData{}, fmt.Errorf("lexicon: generate row id: %w", err)
	}

	encodedFlags := encodeFlags(data.Flags)

	_, err = s.db.Exec(`
		INSERT INTO lexicon_entries (row_id, locale, id, symbol, flags)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(locale, id) DO UPDATE SET symbol = excluded.symbol, flags = excluded.flags
	`, rowID.String(), data.Locale, data.ID, data.Symbol, encodedFlags)
	if err != nil {
		return lexicon.LexicalData{}, wrapDBError(err)
	}

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
	row := s.db.QueryRow(`SELECT expansion FROM suffix_expansions WHERE locale = ? AND suffix = ?`, locale, suffix)
	var expansion string
	if err := row.Scan(&expansion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, wrapDBError(err)
	}
	return expansion, true, nil
}

// SetFullSuffix registers a contraction/elision expansion for suffix in
// locale. Driver/seeding surface, not part of lexicon.Store.
func (s *Store) SetFullSuffix(locale, suffix, expansion string) error {
	_, err := s.db.Exec(`
		INSERT INTO suffix_expansions (locale, suffix, expansion)
		VALUES (?, ?, ?)
		ON CONFLICT(locale, suffix) DO UPDATE SET expansion = excluded.expansion
	`, locale, suffix, expansion)
	return wrapDBError(err)
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return fmt.Errorf("lexicon store: %s", sqlite.ErrorCodeString[sqliteErr.Code()])
	}
	return fmt.Errorf("lexicon store: %w", err)
}

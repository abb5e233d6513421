package lexicon

import "strings"

// Flag is a single (ontology-concept-id, type-code) pair attached to a
// lexical entry. The type code's first character is the coarse
// part-of-speech class; following characters refine it.
type Flag struct {
	ConceptID string
	TypeCode  string
}

// FlagMap is an ordered mapping from ontology-concept-id to type-code. Order
// matters: the first entry inserted is the primary sense used by the rule
// and binding engine (grammar.Rule.AppliesFor, Binding.CanBind).
//
// The zero value is an empty, ready-to-use map.
type FlagMap struct {
	order []Flag
	index map[string]int
}

// NewFlagMap builds a FlagMap from an ordered list of flags. Later entries
// with a ConceptID already present overwrite the type code in place without
// disturbing insertion order.
func NewFlagMap(flags ...Flag) FlagMap {
	fm := FlagMap{}
	for _, f := range flags {
		fm.Set(f.ConceptID, f.TypeCode)
	}
	return fm
}

// Set inserts or updates the type code for conceptID. Inserting a new
// conceptID appends it to the end of iteration order.
func (fm *FlagMap) Set(conceptID, typeCode string) {
	if fm.index == nil {
		fm.index = make(map[string]int)
	}
	if i, ok := fm.index[conceptID]; ok {
		fm.order[i].TypeCode = typeCode
		return
	}
	fm.index[conceptID] = len(fm.order)
	fm.order = append(fm.order, Flag{ConceptID: conceptID, TypeCode: typeCode})
}

// Len returns the number of flags.
func (fm FlagMap) Len() int {
	return len(fm.order)
}

// First returns the first-inserted flag, which is the primary sense for
// scoring purposes. Ok is false for an empty map.
func (fm FlagMap) First() (Flag, bool) {
	if len(fm.order) == 0 {
		return Flag{}, false
	}
	return fm.order[0], true
}

// FirstTypeCode is a convenience wrapper around First that returns just the
// type code, or the empty string if the map has no flags.
func (fm FlagMap) FirstTypeCode() string {
	f, ok := fm.First()
	if !ok {
		return ""
	}
	return f.TypeCode
}

// At returns the i'th flag in insertion order.
func (fm FlagMap) At(i int) Flag {
	return fm.order[i]
}

// All returns the flags in insertion order. The returned slice must not be
// mutated by the caller.
func (fm FlagMap) All() []Flag {
	return fm.order
}

// Clone returns a deep copy of fm.
func (fm FlagMap) Clone() FlagMap {
	cp := FlagMap{
		order: make([]Flag, len(fm.order)),
		index: make(map[string]int, len(fm.index)),
	}
	copy(cp.order, fm.order)
	for k, v := range fm.index {
		cp.index[k] = v
	}
	return cp
}

func (fm FlagMap) String() string {
	var sb strings.Builder
	for i, f := range fm.order {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(f.ConceptID)
		sb.WriteByte(':')
		sb.WriteString(f.TypeCode)
	}
	return sb.String()
}

// UnknownTypeCode is the distinguished type code assigned to a pseudo-node's
// single flag (§4.2) when NodeResolver cannot find a lexical entry for a
// symbol.
const UnknownTypeCode = "Bz"

// UnknownConceptID is the distinguished ontology-concept-id used for the
// single flag of a pseudo-node.
const UnknownConceptID = "-1"

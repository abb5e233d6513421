package lexicon

import "fmt"

// Verbosity selects how much detail Node.String renders, mirroring the
// reference implementation's Node::MINIMAL / Node::EXTRA verbosity levels.
type Verbosity int

const (
	// Minimal renders just the node's primary (first-flag) type code. This
	// is the form the rule and binding engine scores against.
	Minimal Verbosity = iota

	// Extra renders id, locale, symbol and the full flag mapping. This is
	// the form used for hideFilter substring tests (§4.5b) and debug
	// output.
	Extra
)

// Node wraps one LexicalData in the context of a single parse. It may carry
// the original input token it was resolved from. A Node is immutable for
// the lifetime of the parse that created it.
//
// Equality of nodes is (id, locale): two Nodes with the same ID() (the hash
// of the case-folded symbol, not Data.ID) and locale are considered the same
// node regardless of symbol casing or flag identity.
type Node struct {
	Data          LexicalData
	OriginalToken string
}

// New wraps data into a Node with no original-token annotation.
func New(data LexicalData) Node {
	return Node{Data: data}
}

// WithOriginalToken returns a copy of n annotated with the raw input token
// it was resolved from (§4.2 step 5).
func (n Node) WithOriginalToken(tok string) Node {
	n.OriginalToken = tok
	return n
}

// ID is a pure function of the node's symbol (case-folded): HashID of
// Data.Symbol. It does not depend on Data.ID so that a Node built from a
// mutated or re-keyed LexicalData still compares by symbol identity.
func (n Node) ID() string {
	return HashID(n.Data.Symbol)
}

// Locale is the node's locale tag.
func (n Node) Locale() string {
	return n.Data.Locale
}

// Equal implements the (id, locale) equality invariant from §3.
func (n Node) Equal(o Node) bool {
	return n.ID() == o.ID() && n.Locale() == o.Locale()
}

// IsFlat reports whether the node's flag mapping contains exactly one
// entry, i.e. whether it is a FlatNode produced by Expand.
func (n Node) IsFlat() bool {
	return n.Data.Flags.Len() == 1
}

// FirstTypeCode returns the type code of the node's primary (first-inserted)
// flag, or the empty string if it has none.
func (n Node) FirstTypeCode() string {
	return n.Data.Flags.FirstTypeCode()
}

// Expand produces one FlatNode per flag entry in n's flag mapping,
// preserving their insertion order (§4.4 step 1). Expanding a node with no
// flags is a bug condition: the caller (PathExpander) must assert this
// never happens rather than silently absorb it.
func (n Node) Expand() []FlatNode {
	flags := n.Data.Flags.All()
	out := make([]FlatNode, len(flags))
	for i, f := range flags {
		single := NewFlagMap(f)
		out[i] = FlatNode{Node{
			Data: LexicalData{
				ID:     n.Data.ID,
				Locale: n.Data.Locale,
				Symbol: n.Data.Symbol,
				Flags:  single,
			},
			OriginalToken: n.OriginalToken,
		}}
	}
	return out
}

// String renders n at Minimal verbosity.
func (n Node) String() string {
	return n.StringVerbose(Minimal)
}

// StringVerbose renders n at the given Verbosity. Extra form is what the
// reducer's hideFilter substring tests (§4.5b) operate over.
func (n Node) StringVerbose(v Verbosity) string {
	switch v {
	case Extra:
		return fmt.Sprintf("%s/%s[%s]@%s", n.Data.Symbol, n.Data.ID, n.Data.Flags.String(), n.Data.Locale)
	default:
		return n.FirstTypeCode()
	}
}

// FlatNode is a Node whose flag mapping is guaranteed to contain exactly one
// entry. It is produced exclusively by Node.Expand; there is no exported
// constructor that skips the invariant check.
type FlatNode struct {
	Node
}

// NewFlat wraps n as a FlatNode, panicking if n is not in fact flat. This is
// for use only by code (tests, alternate resolvers) that already knows a
// Node satisfies the invariant; normal code gets FlatNodes from Expand.
func NewFlat(n Node) FlatNode {
	if !n.IsFlat() {
		panic("lexicon: NewFlat called on a node without exactly one flag")
	}
	return FlatNode{n}
}

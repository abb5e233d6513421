// Package meaning implements the Meaning type and the multi-pass recursive
// MeaningReducer (§4.5): the reducer that turns one sense-assigned path
// into a link graph.
package meaning

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/lingot/internal/ling/grammar"
	"github.com/dekarrin/lingot/internal/ling/lexicon"
)

// debugLineWidth is the column a Meaning's printed form is wrapped to,
// matching the fixed width the teacher's own debug dumps use.
const debugLineWidth = 80

// Meaning is the ordered list of Links produced by a complete reduction of
// one expansion path.
type Meaning struct {
	Links []grammar.Link
}

// Base is the last link appended: the root of the reduction.
func (m Meaning) Base() grammar.Link {
	return m.Links[len(m.Links)-1]
}

// Siblings returns every link in insertion order.
func (m Meaning) Siblings() []grammar.Link {
	return m.Links
}

// Levels returns the maximum level across all links.
func (m Meaning) Levels() int {
	max := 0
	for _, l := range m.Links {
		if l.Level > max {
			max = l.Level
		}
	}
	return max
}

// LinksAt returns the links whose Level matches level exactly. It errors if
// level is outside [1, m.Levels()].
func (m Meaning) LinksAt(level int) ([]grammar.Link, error) {
	if level < 1 || level > m.Levels() {
		return nil, fmt.Errorf("meaning: level %d out of range [1,%d]", level, m.Levels())
	}
	var out []grammar.Link
	for _, l := range m.Links {
		if l.Level == level {
			out = append(out, l)
		}
	}
	return out, nil
}

// LinkedTo returns every link whose source is n.
func (m Meaning) LinkedTo(n lexicon.Node) []grammar.Link {
	var out []grammar.Link
	for _, l := range m.Links {
		if l.Source.Equal(n) {
			out = append(out, l)
		}
	}
	return out
}

// LinkedBy returns every link whose destination is n.
func (m Meaning) LinkedBy(n lexicon.Node) []grammar.Link {
	var out []grammar.Link
	for _, l := range m.Links {
		if l.Destination.Equal(n) {
			out = append(out, l)
		}
	}
	return out
}

// String renders m as one line per Link, ordered by Level, wrapped to
// debugLineWidth with rosed so a long node's StringVerbose rendering
// doesn't blow out a terminal line the way an unwrapped Fprintf would.
func (m Meaning) String() string {
	var sb strings.Builder
	for i, l := range m.Links {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.String())
	}
	return rosed.Edit(sb.String()).Wrap(debugLineWidth).String()
}

// Signature is a compact dedup key for m, built the way the reference
// implementation's Parser::formShorthand builds a node-list signature
// (SPEC_FULL §E.4.3): concatenating each link's level, type, and each
// endpoint's id and minimal string form instead of comparing the full Link
// slice element-by-element.
func (m Meaning) Signature() string {
	var sb strings.Builder
	for _, l := range m.Links {
		fmt.Fprintf(&sb, "%d:%s/%s-%s-%s/%s;",
			l.Level,
			l.Source.ID(), l.Source.StringVerbose(lexicon.Minimal),
			l.Type,
			l.Destination.ID(), l.Destination.StringVerbose(lexicon.Minimal),
		)
	}
	return sb.String()
}

// Dedup removes Meanings with a duplicate Signature, keeping the
// first-seen occurrence of each, regardless of where in the slice the
// duplicates appear (§8 property 7: full dedup, not just consecutive-run
// removal).
func Dedup(meanings []Meaning) []Meaning {
	seen := make(map[string]struct{}, len(meanings))
	out := make([]Meaning, 0, len(meanings))
	for _, m := range meanings {
		sig := m.Signature()
		if _, ok := seen[sig]; ok {
			continue
		}
		seen[sig] = struct{}{}
		out = append(out, m)
	}
	return out
}

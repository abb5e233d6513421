// Package expand implements PathExpander (§4.4): it unfolds each node's
// multi-flag entry into flat nodes and produces the cartesian product of
// sense assignments across a sentence's positions.
package expand

import (
	"github.com/dekarrin/lingot/internal/ling/lexicon"
	"github.com/dekarrin/lingot/internal/ling/lingerrors"
)

// ProgressNotifier observes expansion progress (§6, §9.4): the expected
// fraction complete, a per-tier branch count, and completion. A nil
// notifier is equivalent to one whose methods all no-op.
type ProgressNotifier interface {
	OnExpansionProgress(fraction float64)
	OnExpansionFinished()

	// OnTier reports, after each position finishes expanding, how many
	// branches have been produced so far versus how many are ultimately
	// expected, useful for a host enforcing max_expected_paths.
	OnTier(position, produced, expected int)
}

type noopNotifier struct{}

func (noopNotifier) OnExpansionProgress(float64)    {}
func (noopNotifier) OnExpansionFinished()            {}
func (noopNotifier) OnTier(int, int, int)            {}

// Expand produces the cartesian product of sense assignments for nodes
// (§4.4). Each returned path has length len(nodes), preserves per-position
// order, and is emitted in lexicographic order over positions.
//
// If maxExpected is > 0 and the product of per-node flag counts exceeds it,
// Expand fails fast with an ExpansionTooLarge error before doing any
// combinatorial work (§5).
//
// A node with zero flags is an internal bug condition (§4.4 invariants) and
// is reported by panicking with a *lingerrors.Error of kind KindInternal;
// callers at the parse boundary are expected to recover and convert it, not
// let it escape as a bare panic.
func Expand(nodes []lexicon.Node, maxExpected int, notifier ProgressNotifier) ([][]lexicon.FlatNode, error) {
	if notifier == nil {
		notifier = noopNotifier{}
	}

	if len(nodes) == 0 {
		notifier.OnExpansionProgress(0.0)
		notifier.OnExpansionProgress(1.0)
		notifier.OnExpansionFinished()
		return nil, nil
	}

	tiers := make([][]lexicon.FlatNode, len(nodes))
	expected := 1
	for i, n := range nodes {
		flat := n.Expand()
		if len(flat) == 0 {
			panic(lingerrors.Internal("path expansion: node %d (%q) produced zero flags", i, n.Data.Symbol))
		}
		tiers[i] = flat
		expected *= len(flat)
	}

	if maxExpected > 0 && expected > maxExpected {
		return nil, lingerrors.ExpansionTooLarge(expected, maxExpected)
	}

	notifier.OnExpansionProgress(0.0)

	paths := make([][]lexicon.FlatNode, 0, expected)
	current := make([]lexicon.FlatNode, len(tiers))

	var recurse func(pos int)
	recurse = func(pos int) {
		if pos == len(tiers) {
			row := make([]lexicon.FlatNode, len(current))
			copy(row, current)
			paths = append(paths, row)
			return
		}
		for _, f := range tiers[pos] {
			current[pos] = f
			recurse(pos + 1)
		}
		notifier.OnTier(pos, len(paths), expected)
	}
	recurse(0)

	notifier.OnExpansionProgress(1.0)
	notifier.OnExpansionFinished()

	return paths, nil
}

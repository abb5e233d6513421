// Package event defines the observable event surface (§6): a host-supplied
// sink that receives pseudo-node discoveries, binding outcomes, and
// expansion/reduction progress. None of it is part of the reduction
// contract — a Sink observes, it never changes what a parse returns.
//
// Sink is a superset of the small local notifier interfaces each of
// lexicon, grammar, expand, and meaning define for themselves; it satisfies
// all of them structurally, so passing one concrete Sink implementation
// through the whole pipeline requires no adapters.
package event

import (
	"github.com/dekarrin/lingot/internal/ling/grammar"
	"github.com/dekarrin/lingot/internal/ling/lexicon"
)

// Sink receives every event the core pipeline can emit during a parse.
type Sink interface {
	// OnPseudoNode fires when NodeResolver can't find a symbol in the
	// LexicalStore and builds a pseudo-node for it (§4.2 step 4). A
	// handler may synchronously write a real entry to the store before
	// the parse continues.
	OnPseudoNode(n lexicon.Node)

	// OnBindingSucceeded and OnBindingFailed report the outcome of a
	// Binding.Bind call.
	OnBindingSucceeded(b *grammar.Binding, src, dst lexicon.Node)
	OnBindingFailed(b *grammar.Binding, src, dst lexicon.Node)

	// OnExpansionProgress reports 0.0 on entry to PathExpander and 1.0
	// once expansion completes; OnExpansionFinished fires once,
	// afterward.
	OnExpansionProgress(fraction float64)
	OnExpansionFinished()

	// OnTier reports per-tier branch counts during expansion (SPEC_FULL
	// §E.4.4), useful for a host watching for max_expected_paths.
	OnTier(position, produced, expected int)

	// OnReductionFinished fires once a path's MeaningReducer terminates
	// with a non-empty Meaning.
	OnReductionFinished()
}

// NopSink implements Sink with no-ops. Embed it to implement only the
// events a caller cares about.
type NopSink struct{}

func (NopSink) OnPseudoNode(lexicon.Node)                               {}
func (NopSink) OnBindingSucceeded(*grammar.Binding, lexicon.Node, lexicon.Node) {}
func (NopSink) OnBindingFailed(*grammar.Binding, lexicon.Node, lexicon.Node)    {}
func (NopSink) OnExpansionProgress(float64)                             {}
func (NopSink) OnExpansionFinished()                                    {}
func (NopSink) OnTier(int, int, int)                                    {}
func (NopSink) OnReductionFinished()                                    {}

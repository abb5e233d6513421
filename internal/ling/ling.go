// Package ling is the core facade (§2): it wires the Tokenizer,
// NodeResolver, PathExpander, MeaningReducer, and RuleRegistry together
// into Parser.Parse, the single entry point described in §4.6.
package ling

import (
	"github.com/dekarrin/lingot/internal/ling/event"
	"github.com/dekarrin/lingot/internal/ling/expand"
	"github.com/dekarrin/lingot/internal/ling/grammar"
	"github.com/dekarrin/lingot/internal/ling/lex"
	"github.com/dekarrin/lingot/internal/ling/lexicon"
	"github.com/dekarrin/lingot/internal/ling/lingerrors"
	"github.com/dekarrin/lingot/internal/ling/meaning"
)

// Diagnostics carries the soft, non-fatal observations from one Parse call
// (§7: "pseudo-node IDs discovered, bindings that failed"). They never
// cause Parse to fail.
type Diagnostics struct {
	PseudoNodeIDs   []string
	FailedBindCount int
}

// SentenceResult is the meaning set for one sentence of a Parse call, along
// with the sentence text it was parsed from.
type SentenceResult struct {
	Sentence string
	Meanings []meaning.Meaning
}

// Result is everything Parser.Parse returns for one call: the ordered
// per-sentence meaning sets (§4.6) plus accumulated diagnostics (§7).
type Result struct {
	Sentences   []SentenceResult
	Diagnostics Diagnostics
}

// Parser is the top-level entry point (§4.6). It is safe for concurrent use
// across independent Parse calls provided the Store and Registry it was
// built with meet the race-free/coalescing guarantees of §5.
type Parser struct {
	Locale            string
	Store             lexicon.Store
	Registry          *grammar.Registry
	Sink              event.Sink
	MaxReductionDepth int
	MaxExpectedPaths  int
}

// New builds a Parser. sink may be nil, in which case events are simply not
// observed. maxReductionDepth <= 0 selects meaning.DefaultMaxLevel;
// maxExpectedPaths <= 0 disables the expansion-size cap.
func New(locale string, store lexicon.Store, registry *grammar.Registry, sink event.Sink, maxReductionDepth, maxExpectedPaths int) *Parser {
	return &Parser{
		Locale:            locale,
		Store:             store,
		Registry:          registry,
		Sink:              sink,
		MaxReductionDepth: maxReductionDepth,
		MaxExpectedPaths:  maxExpectedPaths,
	}
}

// Parse splits text into sentences and reduces each one independently
// (§4.6); context is not carried across sentences. Fatal errors (rule
// source failures, oversized expansions, internal invariant violations) are
// returned as a typed error and abort the whole call; recoverable
// conditions (lexical misses, binding misses, a path with no links) are
// folded into Diagnostics and the result set.
func (p *Parser) Parse(text string) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if le, ok := r.(error); ok {
				err = le
				return
			}
			err = lingerrors.Internal("parse: unrecovered panic: %v", r)
		}
	}()

	sentences, err := lex.SplitSentences(text)
	if err != nil {
		return Result{}, err
	}

	diag := &collectingSink{inner: p.Sink}

	for _, sentence := range sentences {
		meanings, err := p.process(sentence, diag)
		if err != nil {
			return Result{}, err
		}
		result.Sentences = append(result.Sentences, SentenceResult{
			Sentence: sentence,
			Meanings: meanings,
		})
	}

	result.Diagnostics = diag.diagnostics()
	return result, nil
}

// process implements §4.6 process(s): tokenize, resolve, expand, reduce
// every path, and dedup.
func (p *Parser) process(sentence string, sink *collectingSink) ([]meaning.Meaning, error) {
	tokens, err := lex.Tokenize(p.Locale, sentence, storeSuffixAdapter{p.Store})
	if err != nil {
		return nil, err
	}

	nodes, err := lexicon.Resolve(p.Locale, tokens, p.Store, sink)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}

	paths, err := expand.Expand(nodes, p.MaxExpectedPaths, sink)
	if err != nil {
		return nil, err
	}

	var meanings []meaning.Meaning
	for _, path := range paths {
		m := meaning.Reduce(path, p.Registry, p.MaxReductionDepth, sink)
		if m != nil {
			meanings = append(meanings, *m)
		}
	}

	return meaning.Dedup(meanings), nil
}

// storeSuffixAdapter narrows a lexicon.Store down to lex.SuffixExpander so
// the tokenizer doesn't need to know about the rest of the Store interface.
type storeSuffixAdapter struct {
	store lexicon.Store
}

func (a storeSuffixAdapter) ObtainFullSuffix(locale, suffix string) (string, bool, error) {
	if a.store == nil {
		return "", false, nil
	}
	return a.store.ObtainFullSuffix(locale, suffix)
}

// collectingSink fans each event out to the caller-supplied sink (if any)
// while also accumulating the §7 soft diagnostics.
type collectingSink struct {
	inner       event.Sink
	pseudoIDs   []string
	failedBinds int
}

func (c *collectingSink) OnPseudoNode(n lexicon.Node) {
	c.pseudoIDs = append(c.pseudoIDs, n.Data.ID)
	if c.inner != nil {
		c.inner.OnPseudoNode(n)
	}
}

func (c *collectingSink) OnBindingSucceeded(b *grammar.Binding, src, dst lexicon.Node) {
	if c.inner != nil {
		c.inner.OnBindingSucceeded(b, src, dst)
	}
}

func (c *collectingSink) OnBindingFailed(b *grammar.Binding, src, dst lexicon.Node) {
	c.failedBinds++
	if c.inner != nil {
		c.inner.OnBindingFailed(b, src, dst)
	}
}

func (c *collectingSink) OnExpansionProgress(fraction float64) {
	if c.inner != nil {
		c.inner.OnExpansionProgress(fraction)
	}
}

func (c *collectingSink) OnExpansionFinished() {
	if c.inner != nil {
		c.inner.OnExpansionFinished()
	}
}

func (c *collectingSink) OnTier(position, produced, expected int) {
	if c.inner != nil {
		c.inner.OnTier(position, produced, expected)
	}
}

func (c *collectingSink) OnReductionFinished() {
	if c.inner != nil {
		c.inner.OnReductionFinished()
	}
}

func (c *collectingSink) diagnostics() Diagnostics {
	return Diagnostics{
		PseudoNodeIDs:   c.pseudoIDs,
		FailedBindCount: c.failedBinds,
	}
}

// Package grammar implements the locale-scoped rule and binding engine:
// Rule, Binding, the match-score family, and the RuleRegistry that caches
// rule chains keyed by (locale, primary type) (§4.3).
package grammar

import (
	"strings"
	"unicode/utf8"

	"github.com/dekarrin/lingot/internal/ling/lexicon"
)

// Rule belongs to exactly one locale and matches at most one primary type.
// It holds an ordered list of Bindings loaded once from a RuleSource and
// never mutated afterward.
type Rule struct {
	Locale   string
	Type     string
	Bindings []*Binding
}

// Binding is an attributed predicate over a pair of adjacent nodes: both a
// test (CanBind) and a constructor of links (Bind). It belongs to exactly
// one parent Rule.
type Binding struct {
	rule  *Rule
	Attrs Attrs
}

func newRule(locale, primaryType string, defs []Attrs) *Rule {
	r := &Rule{Locale: locale, Type: primaryType}
	r.Bindings = make([]*Binding, len(defs))
	for i, a := range defs {
		r.Bindings[i] = &Binding{rule: r, Attrs: a}
	}
	return r
}

// Rule returns the Binding's parent rule.
func (b *Binding) Rule() *Rule {
	return b.rule
}

// AppliesFor returns the match score (§4.3 Rule.applies_for) between the
// rule's primary type and n's primary flag type code. The rule is
// considered applicable whenever the returned score is > 0.
func (r *Rule) AppliesFor(n lexicon.Node) float64 {
	return matchScore(n.FirstTypeCode(), r.Type)
}

// CanBind scores whether b can bind src to dst (§4.3 Binding.can_bind).
// A score of 0 means the binding is not applicable; any applicable score is
// positive, and the hasAll/has bonuses can carry it above 1.
func (b *Binding) CanBind(src, dst lexicon.Node) float64 {
	if b.rule.AppliesFor(src) == 0 {
		return 0
	}

	srcType := src.FirstTypeCode()
	dstType := dst.FirstTypeCode()

	for _, w := range b.Attrs.List("with") {
		s := matchScore(dstType, w) - 1/float64(runeLen(w))
		if s <= 0 {
			continue
		}

		if hasAll := b.Attrs.Get("hasAll", ""); hasAll != "" {
			if !strings.Contains(dstType, hasAll) {
				continue
			}
			s += float64(runeLen(hasAll)) / float64(runeLen(dstType))
		} else if has := b.Attrs.Get("has", ""); has != "" {
			wh := firstRune(w) + has
			val := matchScore(dstType, wh) - 1/float64(runeLen(wh))
			if val <= 0 {
				continue
			}
			s += val / float64(runeLen(dstType))
		}

		if typeHas := b.Attrs.Get("typeHas", ""); typeHas != "" {
			bt := firstRune(srcType) + typeHas
			if matchScore(srcType, bt)-1/float64(runeLen(bt)) < 1/float64(runeLen(bt)) {
				continue
			}
		}

		return s
	}

	return 0
}

// Link actions recognized by Binding.Bind (§4.3 Binding.bind).
const (
	actionReverse   = "reverse"
	actionOtherType = "othertype"
	actionThisType  = "thistype"
)

// Bind constructs the Link for a binding already known to apply (CanBind >
// 0). It inspects linkAction to decide the link's direction, type, and
// locale; reverse beats othertype/thistype, and othertype beats thistype.
func (b *Binding) Bind(src, dst lexicon.Node) (Link, bool) {
	if b.CanBind(src, dst) <= 0 {
		return Link{}, false
	}

	linkType := b.rule.Type
	locale := b.rule.Locale
	from, to := src, dst

	switch {
	case b.Attrs.Contains("linkAction", actionReverse):
		linkType = firstRune(dst.FirstTypeCode())
		locale = dst.Locale()
		from, to = dst, src
	case b.Attrs.Contains("linkAction", actionOtherType):
		linkType = firstRune(dst.FirstTypeCode())
	case b.Attrs.Contains("linkAction", actionThisType):
		linkType = firstRune(src.FirstTypeCode())
	}

	return Link{
		Source:      from,
		Destination: to,
		Type:        linkType,
		Locale:      locale,
	}, true
}

// BindNotifier observes the outcome of a Bind call (§6: on_binding_succeeded
// / on_binding_failed). It is a small, local interface; event.Sink
// satisfies it structurally.
type BindNotifier interface {
	OnBindingSucceeded(b *Binding, src, dst lexicon.Node)
	OnBindingFailed(b *Binding, src, dst lexicon.Node)
}

// BindNotify is Bind plus the §6 event emission the reference
// implementation performs from inside bind(): Bound on success,
// BindFailed when the precondition (CanBind > 0) isn't met.
func (b *Binding) BindNotify(src, dst lexicon.Node, notifier BindNotifier) (Link, bool) {
	link, ok := b.Bind(src, dst)
	if notifier == nil {
		return link, ok
	}
	if ok {
		notifier.OnBindingSucceeded(b, src, dst)
	} else {
		notifier.OnBindingFailed(b, src, dst)
	}
	return link, ok
}

// GetBindingFor scores every binding in r against (src, dst) and returns the
// one with the highest score, breaking ties in favor of the
// later-registered binding (§4.3 Rule.get_binding_for). ok is false if
// every binding scored 0.
func (r *Rule) GetBindingFor(src, dst lexicon.Node) (b *Binding, score float64, ok bool) {
	var best *Binding
	var bestScore float64

	for _, cand := range r.Bindings {
		s := cand.CanBind(src, dst)
		if s > 0 && s >= bestScore {
			best = cand
			bestScore = s
		}
	}

	if best == nil {
		return nil, 0, false
	}
	return best, bestScore, true
}

func firstRune(s string) string {
	if s == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s)
	return string(r)
}


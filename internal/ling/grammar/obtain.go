package grammar

import (
	"unicode/utf8"

	"github.com/dekarrin/lingot/internal/ling/lexicon"
)

// Obtain walks the registry to find the best binding for (src, dst)
// (§4.5c, "Binding.obtain"): it looks up the Rule keyed by src's locale and
// full primary type code, then by each shorter prefix of that code in turn
// (so a rule for "N" serves a node typed "Nc"), and returns the best-scoring
// Binding of the first, most specific, Rule that has one. Rules whose type
// occurs inside src's type code other than as a prefix are not consulted.
//
// A missing rule for a key is not an error here: it means src simply has no
// rule under that key, which the reducer treats the same as "no binding
// found" (§4.5c: don't emit a link, advance the cursor).
func Obtain(reg *Registry, src, dst lexicon.Node) (*Binding, bool) {
	for t := src.FirstTypeCode(); t != ""; {
		if rule, err := reg.Get(src.Locale(), t); err == nil {
			if b, _, ok := rule.GetBindingFor(src, dst); ok {
				return b, true
			}
		}
		_, size := utf8.DecodeLastRuneInString(t)
		t = t[:len(t)-size]
	}
	return nil, false
}

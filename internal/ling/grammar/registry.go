package grammar

import (
	"fmt"
	"sync"
)

// RuleDef is one rule definition as returned by a RuleSource: a primary
// type and an ordered list of binding attribute bags. The on-disk format
// backing a RuleSource is opaque to this package (§6).
type RuleDef struct {
	Type     string
	Bindings []Attrs
}

// RuleSet is every RuleDef a RuleSource has for one locale.
type RuleSet []RuleDef

// Source loads the RuleSet for a locale. Implementations live outside this
// package (internal/rules/...).
type Source interface {
	Load(locale string) (RuleSet, error)
}

// Registry is a locale-keyed cache of Rule chains (§5): lookup is atomic
// and load is at-most-once per (locale, type) pair, with concurrent misses
// coalescing onto a single Source.Load call so all observers see the same
// *Rule instance.
type Registry struct {
	source Source

	mu      sync.Mutex
	rules   map[string]map[string]*Rule // locale -> type -> Rule
	loading map[string]*loadState       // locale -> in-flight load, if any
}

type loadState struct {
	done chan struct{}
	err  error
}

// NewRegistry builds a Registry backed by source. Testing can construct as
// many isolated registries as needed; there is no process-global state.
func NewRegistry(source Source) *Registry {
	return &Registry{
		source:  source,
		rules:   make(map[string]map[string]*Rule),
		loading: make(map[string]*loadState),
	}
}

// Get returns the cached Rule for (locale, primaryType), loading and
// caching the locale's full RuleSet on first reference. Concurrent callers
// racing on the same locale's first load coalesce onto one Source.Load
// call.
func (reg *Registry) Get(locale, primaryType string) (*Rule, error) {
	if err := reg.ensureLoaded(locale); err != nil {
		return nil, err
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	r, ok := reg.rules[locale][primaryType]
	if !ok {
		return nil, fmt.Errorf("grammar: no rule for locale %q type %q", locale, primaryType)
	}
	return r, nil
}

// Reload clears the cached rules for locale so the next Get re-invokes
// Source.Load (§6/§7: recovery from a RuleSourceError without restarting
// the process).
func (reg *Registry) Reload(locale string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rules, locale)
	delete(reg.loading, locale)
}

func (reg *Registry) ensureLoaded(locale string) error {
	reg.mu.Lock()
	if _, ok := reg.rules[locale]; ok {
		reg.mu.Unlock()
		return nil
	}
	if st, ok := reg.loading[locale]; ok {
		reg.mu.Unlock()
		<-st.done
		return st.err
	}

	st := &loadState{done: make(chan struct{})}
	reg.loading[locale] = st
	reg.mu.Unlock()

	set, err := reg.source.Load(locale)

	reg.mu.Lock()
	if err == nil {
		byType := make(map[string]*Rule, len(set))
		for _, def := range set {
			byType[def.Type] = newRule(locale, def.Type, def.Bindings)
		}
		reg.rules[locale] = byType
	}
	st.err = err
	delete(reg.loading, locale)
	reg.mu.Unlock()

	close(st.done)
	return err
}

package grammar

import "strings"

// Attrs is an attribute bag keyed by short names (with, has, hasAll,
// typeHas, hide, hideNext, skipWord, hideFilter, linkAction). Unknown keys
// are ignored by the reducer; typos in rule definitions therefore degrade
// silently and should be caught by a separate lint pass over a RuleSource,
// not by this package.
type Attrs map[string]string

// Get returns the value for key, or def if key is absent or empty.
func (a Attrs) Get(key, def string) string {
	v, ok := a[key]
	if !ok || v == "" {
		return def
	}
	return v
}

// Has reports whether key is present with a non-empty value.
func (a Attrs) Has(key string) bool {
	v, ok := a[key]
	return ok && v != ""
}

// List splits a comma-separated attribute value into its options, dropping
// empty entries (so a trailing or doubled comma never produces a spurious
// empty option).
func (a Attrs) List(key string) []string {
	raw := a.Get(key, "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Contains reports whether the comma-separated value of key includes opt as
// one of its options. Used for linkAction ("reverse", "othertype",
// "thistype") checks.
func (a Attrs) Contains(key, opt string) bool {
	for _, o := range a.List(key) {
		if o == opt {
			return true
		}
	}
	return false
}

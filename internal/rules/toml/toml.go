// Package toml implements grammar.Source by loading one TOML file per
// locale, a one-locale-one-resource-file layout for grammar rule chains.
package toml

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/lingot/internal/ling/grammar"
)

// Source loads grammar.RuleSet values from "<Dir>/<locale>.toml" files.
type Source struct {
	// Dir is the directory holding one TOML file per locale.
	Dir string
}

// New returns a Source rooted at dir.
func New(dir string) *Source {
	return &Source{Dir: dir}
}

// topLevelRuleFile is the top-level structure of one locale's grammar file.
type topLevelRuleFile struct {
	Rules []ruleEntry `toml:"rule"`
}

type ruleEntry struct {
	Type     string              `toml:"type"`
	Bindings []map[string]string `toml:"binding"`
}

// Load reads "<Dir>/<locale>.toml" and converts it to a grammar.RuleSet. A
// missing file is reported as an error wrapping the os.Stat error; this
// package does no caching of its own, leaving that to grammar.Registry (§5).
func (s *Source) Load(locale string) (grammar.RuleSet, error) {
	path := filepath.Join(s.Dir, locale+".toml")

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("rules/toml: locale %q: %w", locale, err)
	}

	var top topLevelRuleFile
	if _, err := toml.DecodeFile(path, &top); err != nil {
		return nil, fmt.Errorf("rules/toml: locale %q: decode %s: %w", locale, path, err)
	}

	set := make(grammar.RuleSet, len(top.Rules))
	for i, re := range top.Rules {
		bindings := make([]grammar.Attrs, len(re.Bindings))
		for j, b := range re.Bindings {
			bindings[j] = grammar.Attrs(b)
		}
		set[i] = grammar.RuleDef{Type: re.Type, Bindings: bindings}
	}

	return set, nil
}

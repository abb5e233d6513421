/*
Lingcli starts an interactive lingot parsing session.

It reads a configuration file describing which LexicalStore and RuleSource
to use, then repeatedly reads a line of free text from the console, parses
it, and prints the resulting relationship graph.

Usage:

	lingcli [flags]

The flags are:

	-v, --version
		Give the current version of lingot and then exit.

	-c, --config FILE
		Load the given TOML configuration file. Defaults to built-in
		defaults (in-memory store, English locale) if omitted.

	-l, --locale TAG
		Override the configured default locale for this session.

	-d, --direct
		Force reading directly from the console instead of using GNU
		readline based routines, even when attached to a tty.

Once a session has started, each line entered is parsed as one piece of
text and its meanings are printed. Type "QUIT" to exit.
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/lingot/internal/config"
	"github.com/dekarrin/lingot/internal/ling"
	"github.com/dekarrin/lingot/internal/ling/event"
	"github.com/dekarrin/lingot/internal/ling/grammar"
	"github.com/dekarrin/lingot/internal/ling/lexicon"
	"github.com/dekarrin/lingot/internal/repl"
	rulestoml "github.com/dekarrin/lingot/internal/rules/toml"
	"github.com/dekarrin/lingot/internal/store/memory"
	"github.com/dekarrin/lingot/internal/store/sqlite"
	"github.com/dekarrin/lingot/internal/version"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitParseError
	ExitInitError
)

var (
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	configFile  *string = pflag.StringP("config", "c", "", "TOML configuration file to load")
	localeFlag  *string = pflag.StringP("locale", "l", "", "Override the configured default locale")
	forceDirect *bool   = pflag.BoolP("direct", "d", false, "Force direct stdin reads instead of GNU readline")
)

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return ExitSuccess
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			return ExitInitError
		}
	}
	if *localeFlag != "" {
		cfg.DefaultLocale = *localeFlag
	}

	store, err := buildStore(cfg.Store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitInitError
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	var source grammar.Source
	if cfg.RuleSource.Dir != "" {
		source = rulestoml.New(cfg.RuleSource.Dir)
	} else {
		source = emptySource{}
	}
	registry := grammar.NewRegistry(source)

	useReadline := !*forceDirect && isatty.IsTerminal(os.Stdin.Fd())
	var in repl.Reader
	if useReadline {
		in, err = repl.NewInteractive("lingot> ")
	} else {
		in = repl.NewDirect(os.Stdin, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitInitError
	}
	defer in.Close()

	sink := &cliSink{out: os.Stdout, in: bufio.NewReader(os.Stdin), store: store, locale: cfg.DefaultLocale}
	parser := ling.New(cfg.DefaultLocale, store, registry, sink, cfg.MaxReductionDepth, cfg.MaxExpectedPaths)

	fmt.Printf("lingot %s -- locale %q\n", version.Current, cfg.DefaultLocale)
	fmt.Println("Type a sentence to parse it, or QUIT to exit.")

	for {
		line, err := in.ReadLine()
		if err != nil {
			if err == io.EOF {
				break
			}
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			return ExitParseError
		}
		if line == "QUIT" || line == "quit" {
			break
		}

		result, err := parser.Parse(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse error: %s\n", err)
			continue
		}
		printResult(os.Stdout, result)
	}

	fmt.Println("Goodbye")
	return ExitSuccess
}

func buildStore(sc config.StoreConfig) (lexicon.Store, error) {
	switch sc.Kind {
	case "", "memory":
		return memory.New(), nil
	case "sqlite":
		return sqlite.Open(sc.Path)
	default:
		return nil, fmt.Errorf("unknown store kind %q", sc.Kind)
	}
}

func printResult(w io.Writer, result ling.Result) {
	for _, sr := range result.Sentences {
		fmt.Fprintf(w, "%q\n", sr.Sentence)
		if len(sr.Meanings) == 0 {
			fmt.Fprintln(w, "  (no meaning)")
			continue
		}
		for i, m := range sr.Meanings {
			fmt.Fprintf(w, "  meaning %d (%d levels):\n", i+1, m.Levels())
			for _, line := range strings.Split(m.String(), "\n") {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}
	if len(result.Diagnostics.PseudoNodeIDs) > 0 {
		fmt.Fprintf(w, "  (%d pseudo-node(s) discovered)\n", len(result.Diagnostics.PseudoNodeIDs))
	}
}

// emptySource is the grammar.Source used when no rule_source.dir is
// configured: every locale resolves to an empty rule set, so every
// reduction pass simply terminates with no links.
type emptySource struct{}

func (emptySource) Load(locale string) (grammar.RuleSet, error) { return nil, nil }

// cliSink prints pseudo-node discoveries as they happen and offers the
// operator a chance to classify and persist one immediately, the
// interactive analog of §4.2 step 4's "pseudo-node with unknown flag"
// behavior.
type cliSink struct {
	event.NopSink
	out    io.Writer
	in     *bufio.Reader
	store  lexicon.Store
	locale string
}

func (s *cliSink) OnPseudoNode(n lexicon.Node) {
	fmt.Fprintf(s.out, "  (unrecognized word %q -- enter a type code to learn it, or press enter to skip) ", n.OriginalToken)

	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return
	}
	typeCode := strings.TrimSpace(line)
	if typeCode == "" {
		return
	}

	data := lexicon.LexicalData{
		Locale: s.locale,
		Symbol: n.Data.Symbol,
		Flags:  lexicon.NewFlagMap(lexicon.Flag{ConceptID: lexicon.UnknownConceptID, TypeCode: typeCode}),
	}
	data.ID = lexicon.HashID(data.Symbol)

	if _, err := s.store.Write(data); err != nil {
		fmt.Fprintf(s.out, "  (could not save %q: %s)\n", n.Data.Symbol, err)
	}
}

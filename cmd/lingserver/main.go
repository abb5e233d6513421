/*
Lingserver starts a lingot server and begins listening for new connections.

Usage:

	lingserver [flags]

Once started, the lingserver will listen for HTTP requests and respond to
them using REST protocol, serving parse and lexicon endpoints under
/v1. By default, it listens on localhost:8080.

The flags are:

	-v, --version
		Give the current version of lingot and then exit.

	-c, --config FILE
		Load the given TOML configuration file. Required; a bare server has
		no durable write-credential to default to.

	-l, --listen LISTEN_ADDRESS
		Override the configured server.listen_addr.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/dekarrin/lingot/internal/config"
	"github.com/dekarrin/lingot/internal/ling/grammar"
	"github.com/dekarrin/lingot/internal/ling/lexicon"
	rulestoml "github.com/dekarrin/lingot/internal/rules/toml"
	"github.com/dekarrin/lingot/internal/store/memory"
	"github.com/dekarrin/lingot/internal/store/sqlite"
	"github.com/dekarrin/lingot/internal/version"
	"github.com/dekarrin/lingot/server"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

const (
	ExitSuccess = iota
	ExitParseError
	ExitInitError
)

var (
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	configFile  *string = pflag.StringP("config", "c", "", "TOML configuration file to load")
	listenFlag  *string = pflag.StringP("listen", "l", "", "Override the configured listen address")
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

	if *configFile == "" {
		fmt.Fprintf(os.Stderr, "ERROR: --config is required\n")
		return ExitInitError
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitInitError
	}
	if *listenFlag != "" {
		cfg.Server.ListenAddr = *listenFlag
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = "localhost:8080"
	}
	if cfg.Server.WriteCredential == "" {
		fmt.Fprintf(os.Stderr, "ERROR: server.write_credential must be set\n")
		return ExitInitError
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

	secret := []byte(cfg.Server.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: could not generate JWT secret: %s\n", err)
			return ExitInitError
		}
		log.Printf("WARN  using generated JWT secret; tokens issued will become invalid at shutdown")
	}

	tokenHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Server.WriteCredential), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not hash write credential: %s\n", err)
		return ExitInitError
	}

	unauthDelay := time.Duration(cfg.Server.UnauthDelaySeconds) * time.Second

	handler := server.New(server.Options{
		Store:             store,
		Registry:          registry,
		MaxReductionDepth: cfg.MaxReductionDepth,
		MaxExpectedPaths:  cfg.MaxExpectedPaths,
		Secret:            secret,
		TokenHash:         tokenHash,
		UnauthDelay:       unauthDelay,
	})

	log.Printf("INFO  Starting lingserver %s on %s...", version.Current, cfg.Server.ListenAddr)
	if err := http.ListenAndServe(cfg.Server.ListenAddr, handler); err != nil {
		log.Printf("FATAL server exited: %s", err)
		return ExitParseError
	}

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

// emptySource is the grammar.Source used when no rule_source.dir is
// configured: every locale resolves to an empty rule set.
type emptySource struct{}

func (emptySource) Load(locale string) (grammar.RuleSet, error) { return nil, nil }

// Package config loads the Configuration external interface (§6) from a
// TOML file using github.com/BurntSushi/toml.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the Configuration external interface from §6.
type Config struct {
	// DefaultLocale is the locale tag used when a caller omits one.
	DefaultLocale string `toml:"default_locale"`

	// MaxReductionDepth bounds the MeaningReducer's pass count (§4.5
	// MAX_LEVEL). Must be >= 1.
	MaxReductionDepth int `toml:"max_reduction_depth"`

	// MaxExpectedPaths optionally caps the expansion product computed
	// before PathExpander runs (§5). Zero means unlimited.
	MaxExpectedPaths int `toml:"max_expected_paths"`

	// Store configures the LexicalStore external collaborator a driver
	// should construct.
	Store StoreConfig `toml:"store"`

	// RuleSource configures the RuleSource external collaborator a driver
	// should construct.
	RuleSource RuleSourceConfig `toml:"rule_source"`

	// Server configures lingserver's HTTP listener and write-auth. Unused
	// by lingcli.
	Server ServerConfig `toml:"server"`
}

// ServerConfig parameterizes lingserver's HTTP listener and the bearer-JWT
// write gate (server/middle.RequireBearerToken, server/api's token
// endpoint).
type ServerConfig struct {
	// ListenAddr is the address lingserver binds, e.g. ":8080".
	ListenAddr string `toml:"listen_addr"`

	// JWTSecret signs and verifies issued bearer tokens. If empty,
	// lingserver generates a random secret at startup, and tokens issued
	// with it stop validating once the server exits.
	JWTSecret string `toml:"jwt_secret"`

	// WriteCredential is the plaintext of the single shared credential
	// clients exchange for a write-scoped bearer token. It is hashed with
	// bcrypt at startup and never stored in plaintext past that point.
	WriteCredential string `toml:"write_credential"`

	// UnauthDelaySeconds pads every failed-auth response by this many
	// seconds, to deprioritize credential-guessing traffic.
	UnauthDelaySeconds int `toml:"unauth_delay_seconds"`
}

// StoreConfig selects and parameterizes a LexicalStore implementation.
type StoreConfig struct {
	// Kind is "memory" or "sqlite".
	Kind string `toml:"kind"`

	// Path is the sqlite database file path; unused for "memory".
	Path string `toml:"path"`
}

// RuleSourceConfig selects and parameterizes a RuleSource implementation.
type RuleSourceConfig struct {
	// Dir is the root directory holding one TOML grammar file per locale
	// (internal/rules/toml), the analog of the reference's
	// <config-dir>/<locale>/grammar.xml layout.
	Dir string `toml:"dir"`
}

// Default returns the configuration a driver falls back to when no config
// file is given.
func Default() Config {
	return Config{
		DefaultLocale:     "en",
		MaxReductionDepth: 5,
		MaxExpectedPaths:  0,
		Store:             StoreConfig{Kind: "memory"},
	}
}

// Load decodes a TOML config file at path, filling in Default() for any
// field left unset.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the invariants §6 requires of a Configuration.
func (c Config) Validate() error {
	if c.MaxReductionDepth < 1 {
		return fmt.Errorf("config: max_reduction_depth must be >= 1, got %d", c.MaxReductionDepth)
	}
	if c.DefaultLocale == "" {
		return fmt.Errorf("config: default_locale must not be empty")
	}
	return nil
}

// Package server wires lingserver's HTTP API together: routing, middleware,
// and the shared collaborators every endpoint needs.
package server

import (
	"net/http"
	"time"

	"github.com/dekarrin/lingot/internal/ling/grammar"
	"github.com/dekarrin/lingot/internal/ling/lexicon"
	"github.com/dekarrin/lingot/server/api"
	"github.com/dekarrin/lingot/server/middle"
	"github.com/go-chi/chi/v5"
)

// Options configures New.
type Options struct {
	Store    lexicon.Store
	Registry *grammar.Registry

	MaxReductionDepth int
	MaxExpectedPaths  int

	Secret    []byte
	TokenHash []byte

	UnauthDelay time.Duration
}

// New builds the lingserver HTTP handler: public read endpoints alongside
// a bearer-JWT-gated write endpoint, mounted under api.PathPrefix.
func New(opts Options) http.Handler {
	a := api.API{
		Store:             opts.Store,
		Registry:          opts.Registry,
		MaxReductionDepth: opts.MaxReductionDepth,
		MaxExpectedPaths:  opts.MaxExpectedPaths,
		Secret:            opts.Secret,
		TokenHash:         opts.TokenHash,
		UnauthDelay:       opts.UnauthDelay,
	}

	r := chi.NewRouter()
	r.Use(middle.RequestID())
	r.Use(middle.DontPanic())

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.Get("/info", a.HTTPGetInfo())
		r.Post("/token", a.HTTPCreateToken())

		r.Post("/locales/{locale}/parse", a.HTTPParse())
		r.Get("/locales/{locale}/lexicon/{id}", a.HTTPGetLexicalEntry())

		r.Group(func(r chi.Router) {
			r.Use(middle.RequireBearerToken(opts.Secret, opts.UnauthDelay))
			r.Post("/lexicon", a.HTTPWriteLexicalEntry())
		})
	})

	return r
}

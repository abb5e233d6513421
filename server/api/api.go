// Package api provides HTTP API endpoints for lingserver.
package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dekarrin/lingot/internal/ling/grammar"
	"github.com/dekarrin/lingot/internal/ling/lexicon"
	"github.com/dekarrin/lingot/server/result"
	"github.com/dekarrin/lingot/server/serr"
	"github.com/go-chi/chi/v5"
)

// PathPrefix is the prefix of all paths in the API. Routers should mount a
// sub-router that routes all requests to the API at this path.
const PathPrefix = "/v1"

// API holds the backing collaborators every lingserver endpoint needs: a
// LexicalStore, a RuleRegistry, and the reduction limits a Parser is built
// with per request.
type API struct {
	Store    lexicon.Store
	Registry *grammar.Registry

	MaxReductionDepth int
	MaxExpectedPaths  int

	// UnauthDelay is how long a request pauses before an HTTP-401 response,
	// to deprioritize credential-guessing traffic.
	UnauthDelay time.Duration

	// Secret signs and verifies the JWTs HTTPCreateToken issues.
	Secret []byte

	// TokenHash is the bcrypt hash of the single shared write-credential
	// HTTPCreateToken checks incoming requests against.
	TokenHash []byte
}

func urlParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// parseJSON decodes req's JSON body into v, which must be a pointer. Errors
// are serr.Error values wrapping serr.ErrBadArgument or serr.ErrBodyUnmarshal
// so callers can branch on cause with errors.Is instead of string matching.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(contentType), "application/json") {
		return serr.New("request content-type is not application/json", serr.ErrBadArgument)
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return serr.New("could not read request body", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	if err := json.Unmarshal(bodyData, v); err != nil {
		return serr.New("malformed JSON in request", err, serr.ErrBodyUnmarshal)
	}
	return nil
}

// EndpointFunc computes the Result for one API call.
type EndpointFunc func(req *http.Request) result.Result

// Endpoint adapts an EndpointFunc to an http.HandlerFunc, guarding against
// an endpoint that forgot to populate its Result.
func Endpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r := ep(req)
		if r.Status == 0 {
			result.InternalServerError("endpoint result was never populated").WriteResponse(w, req)
			return
		}
		r.WriteResponse(w, req)
	}
}

// Package middle contains middleware for use with lingserver, adapted from
// the TunaQuest server's auth and panic-recovery middleware for a
// bearer-JWT write-gate instead of a full user/session system.
package middle

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/dekarrin/lingot/server/result"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Middleware is a function that takes a handler and returns a new handler
// which wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

type mwFunc http.HandlerFunc

func (sf mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	sf(w, req)
}

// ctxKey is an unexported type for context keys defined by this package, so
// they can never collide with keys set by other packages.
type ctxKey int

// RequestIDKey retrieves the request ID RequestID stamped onto a request's
// context.
const RequestIDKey ctxKey = iota

// RequestID assigns a uuid to every request, stamping it onto the response
// as X-Request-Id and onto the request context for handlers to correlate
// their own log lines with.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, req *http.Request) {
			id := uuid.New().String()
			w.Header().Set("X-Request-Id", id)
			ctx := context.WithValue(req.Context(), RequestIDKey, id)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// RequireBearerToken is middleware that gates the wrapped handler on a
// valid JWT issued by server/api's token endpoint, signed with secret.
// Requests without a valid token receive an HTTP-401 after unauthDelay, to
// deprioritize credential-guessing traffic.
func RequireBearerToken(secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, req *http.Request) {
			tokStr, err := bearerToken(req)
			if err == nil {
				_, err = jwt.Parse(tokStr, func(t *jwt.Token) (interface{}, error) {
					return secret, nil
				}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer("lingserver"), jwt.WithLeeway(time.Minute))
			}
			if err != nil {
				r := result.Unauthorized("", err.Error())
				time.Sleep(unauthDelay)
				r.WriteResponse(w, req)
				return
			}

			next.ServeHTTP(w, req)
		})
	}
}

func bearerToken(req *http.Request) (string, error) {
	h := req.Header.Get("Authorization")
	if h == "" {
		return "", fmt.Errorf("no Authorization header")
	}
	const prefix = "Bearer "
	if len(h) <= len(prefix) || h[:len(prefix)] != prefix {
		return "", fmt.Errorf("Authorization header is not a bearer token")
	}
	return h[len(prefix):], nil
}

// DontPanic returns a Middleware that performs a panic check as it exits. If
// the function is panicking, it will write out an HTTP response with a generic
// message to the client and add it to the log.
func DontPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			defer panicTo500(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.InternalServerError(fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())))
		r.WriteResponse(w, req)
		return true
	}
	return false
}

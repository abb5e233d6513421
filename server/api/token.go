package api

import (
	"net/http"
	"time"

	"github.com/dekarrin/lingot/server/result"
	"github.com/dekarrin/lingot/server/serr"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// tokenRequest is the body HTTPCreateToken expects: the single shared
// write-credential, not a per-user login.
type tokenRequest struct {
	Credential string `json:"credential"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// HTTPCreateToken returns a HandlerFunc that mints a bearer JWT for a client
// holding the shared write-credential.
func (api API) HTTPCreateToken() http.HandlerFunc {
	return Endpoint(api.epCreateToken)
}

func (api API) epCreateToken(req *http.Request) result.Result {
	var body tokenRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest("Could not parse request", "%s", err)
	}

	if body.Credential == "" {
		time.Sleep(api.UnauthDelay)
		return result.Unauthorized("", "%s", serr.New("no credential given", serr.ErrBadCredentials))
	}

	if err := bcrypt.CompareHashAndPassword(api.TokenHash, []byte(body.Credential)); err != nil {
		time.Sleep(api.UnauthDelay)
		return result.Unauthorized("", "%s", serr.New("credential check failed", err, serr.ErrBadCredentials))
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "lingserver",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(api.Secret)
	if err != nil {
		return result.InternalServerError("could not sign token: %s", err)
	}

	return result.Created(tokenResponse{Token: signed}, "new write token issued")
}

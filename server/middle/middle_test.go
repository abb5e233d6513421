package middle

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func signToken(t *testing.T, secret []byte, issuer string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func Test_RequireBearerToken_AcceptsValidToken(t *testing.T) {
	secret := []byte("test-secret")
	tok := signToken(t, secret, "lingserver", time.Hour)

	h := RequireBearerToken(secret, 0)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/lexicon", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func Test_RequireBearerToken_RejectsMissingHeader(t *testing.T) {
	secret := []byte("test-secret")
	h := RequireBearerToken(secret, 0)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/lexicon", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func Test_RequireBearerToken_RejectsWrongIssuer(t *testing.T) {
	secret := []byte("test-secret")
	tok := signToken(t, secret, "someone-else", time.Hour)
	h := RequireBearerToken(secret, 0)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/lexicon", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func Test_RequireBearerToken_RejectsExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	tok := signToken(t, secret, "lingserver", -time.Hour)
	h := RequireBearerToken(secret, 0)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/lexicon", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func Test_RequireBearerToken_RejectsWrongSecret(t *testing.T) {
	tok := signToken(t, []byte("right-secret"), "lingserver", time.Hour)
	h := RequireBearerToken([]byte("wrong-secret"), 0)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/lexicon", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func Test_RequestID_StampsHeaderAndContext(t *testing.T) {
	var gotID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = r.Context().Value(RequestIDKey).(string)
		w.WriteHeader(http.StatusOK)
	})
	h := RequestID()(inner)

	req := httptest.NewRequest(http.MethodGet, "/v1/info", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t, w.Header().Get("X-Request-Id"), gotID)
}

func Test_DontPanic_RecoversAndReturns500(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	h := DontPanic()(inner)

	req := httptest.NewRequest(http.MethodGet, "/v1/info", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

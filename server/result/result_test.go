package result

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_OK_WriteResponse(t *testing.T) {
	r := OK(map[string]string{"hello": "world"}, "fetched %d item(s)", 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/info", nil)
	r.WriteResponse(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "world", body["hello"])
}

func Test_NotFound_IsJSONErrorShape(t *testing.T) {
	r := NotFound("no entry for %q", "chat")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/lexicon/chat", nil)
	r.WriteResponse(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.NotEmpty(t, body.Error)
}

func Test_Unauthorized_SetsBearerChallenge(t *testing.T) {
	r := Unauthorized("", "bad token")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/lexicon", nil)
	r.WriteResponse(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")
}

func Test_NoContent_WritesNoBody(t *testing.T) {
	r := NoContent()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/lexicon/chat", nil)
	r.WriteResponse(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

package search

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHandler_Search(t *testing.T) {
	h := NewHandler(NewService(&stubProvider{}, 2), NewMemoryRecentStore(5))

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?q=heat&page=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	var res Result
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "heat", res.Query)
	require.Len(t, res.Standalone, 1)
	assert.Equal(t, "heat", res.Standalone[0].Title)
}

func TestHandler_SearchTooShort(t *testing.T) {
	h := NewHandler(NewService(&stubProvider{}, 2), NewMemoryRecentStore(5))

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?q=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "QUERY_TOO_SHORT", decode(t, rec).Error.Code)
}

func TestHandler_SearchFailureHidesDetail(t *testing.T) {
	p := &stubProvider{err: errors.New("tmdb: /search/movie returned 503")}
	h := NewHandler(NewService(p, 2), NewMemoryRecentStore(5))

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?q=matrix", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "SEARCH_FAILED", env.Error.Code)
	assert.Equal(t, FailureMessage, env.Error.Message)
	assert.NotContains(t, rec.Body.String(), "503")
}

func TestHandler_Recent(t *testing.T) {
	h := NewHandler(NewService(&stubProvider{}, 2), NewMemoryRecentStore(5))
	router := h.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recent",
		strings.NewReader(`{"id":603,"title":"The Matrix","poster_path":"/m.jpg"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recent", nil))
	assert.JSONEq(t, `{"status":"ok","data":[{"id":603,"title":"The Matrix","poster_path":"/m.jpg"}]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recent", strings.NewReader(`{"id":0}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

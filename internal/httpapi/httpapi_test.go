package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestIDPropagates(t *testing.T) {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteAPISuccess(w, r, map[string]string{"hello": "world"})
	})
	handler = RequestID(handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get("X-Request-ID")
	require.NotEmpty(t, id)
	require.Contains(t, rec.Body.String(), id)
}

func TestWriteAPIError(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteAPIError(rec, r, http.StatusBadRequest, "invalid_request", "Bad input", "details here")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), `"code":"invalid_request"`)
}

func TestParseJSONRequest(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Chai"}`))
	r.Header.Set("Content-Type", "application/json")
	require.NoError(t, ParseJSONRequest(r, &v))
	require.Equal(t, "Chai", v.Name)

	// Wrong content type is rejected.
	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	require.Error(t, ParseJSONRequest(r, &v))

	// Unknown fields are rejected.
	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"bogus":1}`))
	r.Header.Set("Content-Type", "application/json")
	require.Error(t, ParseJSONRequest(r, &v))
}

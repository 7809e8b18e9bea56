package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRoutes(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "OK", res.Body["status"])
	assert.Equal(t, "3001", res.Body["port"])
	assert.NotEmpty(t, res.Body["timestamp"])

	res = env.do(t, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, ServiceName, res.Body["service"])
	assert.Equal(t, "test", res.Body["version"])
	assert.Equal(t, "operational", res.Body["status"])
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/nope"},
		{http.MethodGet, "/api/google/sheets/read"},
		{http.MethodGet, "/api/reports/abc"},
		{http.MethodPost, "/health"},
	}
	for _, tc := range tests {
		res := env.do(t, tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, res.Code, tc.path)
		assert.Equal(t, false, res.Body["success"], tc.path)
		assert.Equal(t, tc.path, res.Body["path"], tc.path)
	}
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	res := env.do(t, http.MethodOptions, "/api/google/sheets/read", "", "Origin", "http://localhost:3000")
	assert.Equal(t, http.StatusNoContent, res.Code)
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))

	res = env.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.workspace.AddSpreadsheet("s", "S")

	env.do(t, http.MethodPost, "/api/google/sheets/read", `{"spreadsheetId":"s","range":"A1"}`)
	env.do(t, http.MethodPost, "/api/google/sheets/read", `{}`)

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `gproxy_http_requests_total{method="POST",route="/api/google/sheets/read",status="200"} 1`)
	assert.Contains(t, text, `gproxy_http_requests_total{method="POST",route="/api/google/sheets/read",status="400"} 1`)
	assert.Contains(t, text, `gproxy_upstream_calls_total{op="read_range",outcome="success",surface="sheets"} 1`)
	assert.Contains(t, text, `gproxy_client_initialisations_total{outcome="success",surface="sheets"} 1`)
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, rec.Body.String())
}

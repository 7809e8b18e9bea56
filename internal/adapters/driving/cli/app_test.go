package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, h http.Handler, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestApp_DegradedRouter(t *testing.T) {
	a := useTestApp(t)
	h := a.Router(a.Settings.Get())

	code, body := postJSON(t, h, "/api/google/sheets/read", `{"spreadsheetId":"s","range":"A1:D5"}`)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestApp_MockFallbackToggle(t *testing.T) {
	a := useTestApp(t)
	h := a.Router(a.Settings.Get())

	require.NoError(t, a.ConfigStore.Set("proxy.mock_fallback", true))
	a.Reload()

	code, body := postJSON(t, h, "/api/google/sheets/read", `{"spreadsheetId":"s","range":"A1:D5"}`)
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]any)
	rows := data["values"].([]any)
	assert.Len(t, rows, 5)

	// Writes still need a real credential.
	code, _ = postJSON(t, h, "/api/google/sheets/write", `{"spreadsheetId":"s","range":"A1","values":[["x"]]}`)
	assert.Equal(t, http.StatusServiceUnavailable, code)

	require.NoError(t, a.ConfigStore.Set("proxy.mock_fallback", false))
	a.Reload()

	code, _ = postJSON(t, h, "/api/google/sheets/read", `{"spreadsheetId":"s","range":"A1:D5"}`)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoRoutes(t *testing.T) {
	env := newTestEnv(t)

	t.Run("report index", func(t *testing.T) {
		res := env.do(t, http.MethodGet, "/api/reports?timeframe=30d", "")
		require.Equal(t, http.StatusOK, res.Code)
		data := res.Body["data"].(map[string]any)
		assert.Equal(t, "30d", data["timeframe"])
		assert.Equal(t, "all", data["type"])
		assert.InDelta(t, 4, data["total_reports"], 0)
	})

	t.Run("report detail", func(t *testing.T) {
		res := env.do(t, http.MethodGet, "/api/reports/7", "")
		require.Equal(t, http.StatusOK, res.Code)
		data := res.Body["data"].(map[string]any)
		assert.InDelta(t, 7, data["id"], 0)
		assert.Equal(t, "Detailed Report #7", data["title"])
	})

	t.Run("generate", func(t *testing.T) {
		res := env.do(t, http.MethodPost, "/api/reports/generate", `{"reportType":"sales"}`)
		require.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "Báo cáo đang được tạo", res.Body["message"])
		data := res.Body["data"].(map[string]any)
		assert.Equal(t, "processing", data["status"])
		assert.Equal(t, "sales", data["reportType"])
		assert.Equal(t, "7d", data["timeframe"])
	})

	t.Run("status", func(t *testing.T) {
		res := env.do(t, http.MethodGet, "/api/reports/status/1700000000000", "")
		require.Equal(t, http.StatusOK, res.Code)
		data := res.Body["data"].(map[string]any)
		assert.Equal(t, "completed", data["status"])
		assert.Equal(t, "/api/reports/download/1700000000000", data["downloadUrl"])
	})

	t.Run("retail views", func(t *testing.T) {
		for _, view := range []string{"dashboard", "sales", "inventory", "customers", "products", "stores"} {
			res := env.do(t, http.MethodGet, "/api/retail/"+view, "")
			assert.Equal(t, http.StatusOK, res.Code, view)
			assert.Equal(t, true, res.Body["success"], view)
		}
	})

	t.Run("unknown retail view", func(t *testing.T) {
		res := env.do(t, http.MethodGet, "/api/retail/warehouse", "")
		assert.Equal(t, http.StatusNotFound, res.Code)
		assert.Equal(t, "API endpoint not found", res.Body["error"])
	})
}

package httpapi

import (
	"net/http"
	"time"
)

type statusRoutes struct {
	version string
	port    string
	started time.Time
	now     func() time.Time
}

func (s *statusRoutes) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"message":   "Backend server is running",
		"timestamp": s.now().UTC().Format(time.RFC3339),
		"port":      s.port,
	})
}

func (s *statusRoutes) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": ServiceName,
		"version": s.version,
		"status":  "operational",
		"uptime":  s.now().Sub(s.started).Seconds(),
	})
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
)

// ServiceName is reported by /api/status.
const ServiceName = "gproxy"

// Services are the driving ports the router serves.
type Services struct {
	Sheets      driving.SheetsService
	Drive       driving.DriveService
	Credentials driving.CredentialService
	Auth        driving.AuthService
	Demo        driving.DemoService
}

// Options tune the router. The zero value serves every route without
// metrics or rate limiting.
type Options struct {
	Version string
	// Port is echoed by /health.
	Port string
	// Metrics, when set, instruments every matched route.
	Metrics RequestMetrics
	// MetricsHandler, when set, is mounted at /metrics.
	MetricsHandler http.Handler
	// Limiter, when set, limits /api requests per client.
	Limiter *ClientLimiter
	// Started is the process start time used for uptime. Defaults to now.
	Started time.Time
}

// NewRouter builds the full handler chain.
func NewRouter(svc Services, opts Options) http.Handler {
	if opts.Started.IsZero() {
		opts.Started = time.Now()
	}

	r := mux.NewRouter()
	if opts.Metrics != nil {
		r.Use(Instrument(opts.Metrics))
	}

	st := &statusRoutes{version: opts.Version, port: opts.Port, started: opts.Started, now: time.Now}
	r.HandleFunc("/health", st.health).Methods(http.MethodGet)
	if opts.MetricsHandler != nil {
		r.Handle("/metrics", opts.MetricsHandler).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	if opts.Limiter != nil && opts.Limiter.Enabled() {
		api.Use(opts.Limiter.Middleware)
	}
	api.HandleFunc("/status", st.status).Methods(http.MethodGet)

	g := &googleRoutes{sheets: svc.Sheets, drive: svc.Drive, creds: svc.Credentials}
	g.register(api.PathPrefix("/google").Subrouter())

	a := &authRoutes{auth: svc.Auth}
	a.register(api.PathPrefix("/auth").Subrouter())

	d := &demoRoutes{demo: svc.Demo}
	d.register(api)

	api.PathPrefix("/").HandlerFunc(notFound)
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(notFound)

	return Recover(AccessLog(CORS(r)))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"success": false,
		"error":   domain.MsgEndpointNotFound,
		"path":    r.URL.Path,
	})
}

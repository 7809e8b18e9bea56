package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/custodia-labs/gproxy/internal/adapters/driven/auth"
	"github.com/custodia-labs/gproxy/internal/adapters/driven/fixtures"
	"github.com/custodia-labs/gproxy/internal/adapters/driven/metrics"
	"github.com/custodia-labs/gproxy/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
	"github.com/custodia-labs/gproxy/internal/core/services"
)

// staticCreds implements driving.CredentialService with a fixed answer.
type staticCreds bool

func (s staticCreds) Resolve() (domain.Credential, bool) {
	if !s {
		return domain.Credential{}, false
	}
	return domain.Credential{Path: "/keys/sa.json"}, true
}

func (s staticCreds) ResolvePath() string {
	cred, _ := s.Resolve()
	return cred.Path
}

func (s staticCreds) Candidates() []driving.Candidate { return nil }

// quotaSheets fails every read the way an exhausted project does.
type quotaSheets struct {
	*memory.Spreadsheets
}

func (quotaSheets) GetValues(context.Context, string, string) (*domain.ValueRange, error) {
	return nil, errors.New("quota exceeded")
}

type factoryFunc struct {
	sheets driven.SheetsClient
	drive  driven.DriveClient
}

func (f factoryFunc) NewSheetsClient(context.Context, domain.Credential) (driven.SheetsClient, error) {
	return f.sheets, nil
}

func (f factoryFunc) NewDriveClient(context.Context, domain.Credential) (driven.DriveClient, error) {
	return f.drive, nil
}

type testEnv struct {
	handler   http.Handler
	workspace *memory.Workspace
	auth      *services.AuthService
	sessions  *memory.SessionStore
	metrics   *metrics.Metrics
}

type envOption func(*envConfig)

type envConfig struct {
	creds    driving.CredentialService
	factory  driven.ClientFactory
	fallback bool
	limiter  *ClientLimiter
}

func withCredentials(c driving.CredentialService) envOption {
	return func(cfg *envConfig) { cfg.creds = c }
}

func withFactory(f driven.ClientFactory) envOption {
	return func(cfg *envConfig) { cfg.factory = f }
}

func withFallback() envOption {
	return func(cfg *envConfig) { cfg.fallback = true }
}

func withLimiter(l *ClientLimiter) envOption {
	return func(cfg *envConfig) { cfg.limiter = l }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	ws := memory.NewWorkspace()
	cfg := envConfig{creds: staticCreds(true), factory: ws}
	for _, o := range opts {
		o(&cfg)
	}

	fx, err := fixtures.New()
	require.NoError(t, err)
	demo := services.NewDemoService(fx)

	m := metrics.New()
	cache := services.NewClientCache(cfg.creds, cfg.factory, m)
	var sheets driving.SheetsService = services.NewSheetsProxy(cache, m)
	var drive driving.DriveService = services.NewDriveProxy(cache, m)
	if cfg.fallback {
		on := func() bool { return true }
		sheets = services.NewFallbackSheets(sheets, demo, on)
		drive = services.NewFallbackDrive(drive, demo, on)
	}

	users := memory.NewUserStore()
	sessions := memory.NewSessionStore()
	authSvc := services.NewAuthService(users, sessions, auth.NewBcryptHasher(bcrypt.MinCost), auth.NewRandomTokens(), 0)

	h := NewRouter(Services{
		Sheets:      sheets,
		Drive:       drive,
		Credentials: cfg.creds,
		Auth:        authSvc,
		Demo:        demo,
	}, Options{
		Version:        "test",
		Port:           "3001",
		Metrics:        m,
		MetricsHandler: m.Handler(),
		Limiter:        cfg.limiter,
	})

	return &testEnv{handler: h, workspace: ws, auth: authSvc, sessions: sessions, metrics: m}
}

type response struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

func (e *testEnv) do(t *testing.T, method, path, body string, header ...string) response {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	res := response{Code: rec.Code, Header: rec.Header()}
	if rec.Body.Len() > 0 && rec.Code != http.StatusNoContent {
		_ = json.Unmarshal(rec.Body.Bytes(), &res.Body)
	}
	return res
}

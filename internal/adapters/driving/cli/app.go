package cli

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"

	"github.com/custodia-labs/gproxy/internal/adapters/driven/auth"
	"github.com/custodia-labs/gproxy/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gproxy/internal/adapters/driven/fixtures"
	"github.com/custodia-labs/gproxy/internal/adapters/driven/metrics"
	"github.com/custodia-labs/gproxy/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/gproxy/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/gproxy/internal/connectors/google"
	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
	"github.com/custodia-labs/gproxy/internal/core/services"
	"github.com/custodia-labs/gproxy/internal/logger"
)

// Environment variables read by the CLI.
const (
	EnvConfigDir = "GPROXY_CONFIG_DIR"
	EnvDataDir   = "GPROXY_DATA_DIR"
)

// AppOptions locates the configuration and data directories.
type AppOptions struct {
	// ConfigDir holds config.toml. Empty means ~/.gproxy.
	ConfigDir string
	// DataDir holds the SQLite database. Empty means <ConfigDir>/data.
	DataDir string
	// Factory builds Google clients. Nil means the Google API adapter.
	Factory driven.ClientFactory
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// App is the wired application shared by all commands.
type App struct {
	ConfigStore *file.ConfigStore
	Settings    *services.SettingsService
	Credentials driving.CredentialService
	Metrics     *metrics.Metrics
	Demo        *services.DemoService
	Sheets      driving.SheetsService
	Drive       driving.DriveService
	Auth        driving.AuthService
	Sweeper     *services.SessionSweeper

	store        *sqlite.Store
	mockFallback atomic.Bool
}

// NewApp builds every service from the configuration on disk.
func NewApp(opts AppOptions) (*App, error) {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	configDir := filepath.Dir(configStore.Path())

	settingsSvc := services.NewSettingsService(configStore)
	settings := settingsSvc.Get()

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	fx, err := fixtures.New()
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("loading fixtures: %w", err)
	}

	a := &App{
		ConfigStore: configStore,
		Settings:    settingsSvc,
		Credentials: services.NewCredentialResolver(services.ResolverOptions{
			ConfigPaths: settings.Google.CredentialPaths,
			ConfigDir:   configDir,
			Getenv:      opts.Getenv,
		}),
		Metrics: metrics.New(),
		Demo:    services.NewDemoService(fx),
		store:   store,
	}

	factory := opts.Factory
	if factory == nil {
		factory = google.NewFactory(settings.RateLimit)
	}
	cache := services.NewClientCache(a.Credentials, factory, a.Metrics)
	a.Sheets = services.NewFallbackSheets(services.NewSheetsProxy(cache, a.Metrics), a.Demo, a.mockFallback.Load)
	a.Drive = services.NewFallbackDrive(services.NewDriveProxy(cache, a.Metrics), a.Demo, a.mockFallback.Load)

	a.Auth = services.NewAuthService(
		store.UserStore(),
		store.SessionStore(),
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		auth.NewRandomTokens(),
		settings.Auth.SessionTTL,
	)
	a.Sweeper = services.NewSessionSweeper(store.SessionStore(), settings.Auth.SweepInterval)

	if err := a.Apply(settings); err != nil {
		logger.Warn("%v", err)
	}
	return a, nil
}

// Apply re-applies the settings that may change while running.
func (a *App) Apply(settings domain.Settings) error {
	a.mockFallback.Store(settings.Proxy.MockFallback)
	if err := logger.Configure(settings.Log.Level, logger.Format(settings.Log.Format)); err != nil {
		return fmt.Errorf("applying log settings: %w", err)
	}
	return nil
}

// Reload re-reads the configuration and applies it.
func (a *App) Reload() {
	settings, err := a.Settings.Reload()
	if err != nil {
		logger.Warn("settings reload failed: %v", err)
		return
	}
	if err := a.Apply(settings); err != nil {
		logger.Warn("%v", err)
	}
	logger.Debug("settings applied (mock fallback %t, log level %s)", settings.Proxy.MockFallback, settings.Log.Level)
}

// Router builds the HTTP handler for the given settings.
func (a *App) Router(settings domain.Settings) http.Handler {
	return httpapi.NewRouter(httpapi.Services{
		Sheets:      a.Sheets,
		Drive:       a.Drive,
		Credentials: a.Credentials,
		Auth:        a.Auth,
		Demo:        a.Demo,
	}, httpapi.Options{
		Version:        version,
		Port:           portOf(settings.Server.Addr),
		Metrics:        a.Metrics,
		MetricsHandler: a.Metrics.Handler(),
		Limiter:        httpapi.NewClientLimiter(settings.Server.RateLimitRPS, settings.Server.RateLimitBurst),
	})
}

// Close releases the database.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return port
}

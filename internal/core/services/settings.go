package services

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
	"github.com/custodia-labs/gproxy/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyServerAddr            = "server.addr"
	keyServerReadTimeout     = "server.read_timeout"
	keyServerWriteTimeout    = "server.write_timeout"
	keyServerShutdownTimeout = "server.shutdown_timeout"
	keyServerRateLimitRPS    = "server.rate_limit_rps"
	keyServerRateLimitBurst  = "server.rate_limit_burst"
	keyCredentialPaths       = "google.credential_paths"
	keySheetsRPS             = "ratelimit.sheets_rps"
	keySheetsBurst           = "ratelimit.sheets_burst"
	keyDriveRPS              = "ratelimit.drive_rps"
	keyDriveBurst            = "ratelimit.drive_burst"
	keyMockFallback          = "proxy.mock_fallback"
	keySessionTTL            = "auth.session_ttl"
	keySweepInterval         = "auth.sweep_interval"
	keyLogLevel              = "log.level"
	keyLogFormat             = "log.format"
)

// SettingsKeys lists every config key SettingsService reads, in display order.
func SettingsKeys() []string {
	return []string{
		keyServerAddr, keyServerReadTimeout, keyServerWriteTimeout, keyServerShutdownTimeout,
		keyServerRateLimitRPS, keyServerRateLimitBurst,
		keyCredentialPaths,
		keySheetsRPS, keySheetsBurst, keyDriveRPS, keyDriveBurst,
		keyMockFallback,
		keySessionTTL, keySweepInterval,
		keyLogLevel, keyLogFormat,
	}
}

// Environment overrides.
const (
	EnvPort = "PORT"
	EnvAddr = "GPROXY_ADDR"
)

// SettingsService resolves runtime settings from the config store and the environment.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string

	mu      sync.RWMutex
	current domain.Settings
}

// NewSettingsService creates a settings service and resolves the initial settings.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	s := &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
	s.current = s.resolve()
	return s
}

// Get returns the current settings.
func (s *SettingsService) Get() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload re-reads the config store and returns the new settings.
func (s *SettingsService) Reload() (domain.Settings, error) {
	if err := s.configStore.Load(); err != nil {
		return s.Get(), fmt.Errorf("load config: %w", err)
	}
	settings := s.resolve()

	s.mu.Lock()
	s.current = settings
	s.mu.Unlock()

	return settings, nil
}

func (s *SettingsService) resolve() domain.Settings {
	d := domain.DefaultSettings()

	settings := domain.Settings{
		Server: domain.ServerSettings{
			Addr:            s.getString(keyServerAddr, d.Server.Addr),
			ReadTimeout:     s.getDuration(keyServerReadTimeout, d.Server.ReadTimeout),
			WriteTimeout:    s.getDuration(keyServerWriteTimeout, d.Server.WriteTimeout),
			ShutdownTimeout: s.getDuration(keyServerShutdownTimeout, d.Server.ShutdownTimeout),
			RateLimitRPS:    s.getFloat(keyServerRateLimitRPS, d.Server.RateLimitRPS),
			RateLimitBurst:  s.getInt(keyServerRateLimitBurst, d.Server.RateLimitBurst),
		},
		Google: domain.GoogleSettings{
			CredentialPaths: s.configStore.GetStringSlice(keyCredentialPaths),
		},
		RateLimit: domain.RateLimitSettings{
			SheetsRPS:   s.getFloat(keySheetsRPS, d.RateLimit.SheetsRPS),
			SheetsBurst: s.getInt(keySheetsBurst, d.RateLimit.SheetsBurst),
			DriveRPS:    s.getFloat(keyDriveRPS, d.RateLimit.DriveRPS),
			DriveBurst:  s.getInt(keyDriveBurst, d.RateLimit.DriveBurst),
		},
		Proxy: domain.ProxySettings{
			MockFallback: s.getBool(keyMockFallback, d.Proxy.MockFallback),
		},
		Auth: domain.AuthSettings{
			SessionTTL:    s.getDuration(keySessionTTL, d.Auth.SessionTTL),
			SweepInterval: s.getDuration(keySweepInterval, d.Auth.SweepInterval),
		},
		Log: domain.LogSettings{
			Level:  strings.ToLower(s.getString(keyLogLevel, d.Log.Level)),
			Format: s.getLogFormat(d.Log.Format),
		},
	}

	if addr := s.getenv(EnvAddr); addr != "" {
		settings.Server.Addr = addr
	} else if port := s.getenv(EnvPort); port != "" {
		settings.Server.Addr = ":" + port
	}

	return settings
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if val := s.configStore.GetFloat(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	str := s.configStore.GetString(key)
	if str == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(str)
	if err != nil || d <= 0 {
		logger.Warn("invalid duration %q for %s, using %s", str, key, defaultVal)
		return defaultVal
	}
	return d
}

func (s *SettingsService) getLogFormat(defaultVal domain.LogFormat) domain.LogFormat {
	switch f := domain.LogFormat(strings.ToLower(s.configStore.GetString(keyLogFormat))); f {
	case domain.LogFormatJSON, domain.LogFormatConsole:
		return f
	default:
		return defaultVal
	}
}

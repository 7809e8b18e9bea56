package domain

import "time"

// Settings is the resolved runtime configuration.
type Settings struct {
	Server    ServerSettings
	Google    GoogleSettings
	RateLimit RateLimitSettings
	Proxy     ProxySettings
	Auth      AuthSettings
	Log       LogSettings
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// RateLimitRPS and RateLimitBurst bound inbound requests per client.
	RateLimitRPS   float64
	RateLimitBurst int
}

// GoogleSettings configures credential discovery.
type GoogleSettings struct {
	// CredentialPaths are checked after the environment variables
	// and before the built-in default locations.
	CredentialPaths []string
}

// RateLimitSettings bounds outbound calls per surface.
type RateLimitSettings struct {
	SheetsRPS   float64
	SheetsBurst int
	DriveRPS    float64
	DriveBurst  int
}

// ProxySettings controls degraded-mode behaviour.
type ProxySettings struct {
	// MockFallback serves demo data on read routes when no credential is configured.
	MockFallback bool
}

// AuthSettings configures login sessions.
type AuthSettings struct {
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

// LogFormat selects the log encoder.
type LogFormat string

const (
	LogFormatJSON    LogFormat = "json"
	LogFormatConsole LogFormat = "console"
)

// LogSettings configures logging.
type LogSettings struct {
	Level  string
	Format LogFormat
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Addr:            ":3001",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimitRPS:    20,
			RateLimitBurst:  40,
		},
		RateLimit: RateLimitSettings{
			SheetsRPS:   5,
			SheetsBurst: 10,
			DriveRPS:    8,
			DriveBurst:  10,
		},
		Auth: AuthSettings{
			SessionTTL:    DefaultSessionTTL,
			SweepInterval: 10 * time.Minute,
		},
		Log: LogSettings{
			Level:  "info",
			Format: LogFormatJSON,
		},
	}
}

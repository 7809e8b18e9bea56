package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, ":3001", s.Server.Addr)
	assert.Equal(t, 15*time.Second, s.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, s.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, s.Server.ShutdownTimeout)
	assert.Equal(t, 20.0, s.Server.RateLimitRPS)
	assert.Equal(t, 40, s.Server.RateLimitBurst)

	assert.Equal(t, 5.0, s.RateLimit.SheetsRPS)
	assert.Equal(t, 10, s.RateLimit.SheetsBurst)
	assert.Equal(t, 8.0, s.RateLimit.DriveRPS)
	assert.Equal(t, 10, s.RateLimit.DriveBurst)

	assert.False(t, s.Proxy.MockFallback)
	assert.Empty(t, s.Google.CredentialPaths)
	assert.Equal(t, 24*time.Hour, s.Auth.SessionTTL)
	assert.Equal(t, 10*time.Minute, s.Auth.SweepInterval)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, LogFormatJSON, s.Log.Format)
}

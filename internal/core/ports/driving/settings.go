package driving

import "github.com/custodia-labs/gproxy/internal/core/domain"

// SettingsService resolves runtime settings from configuration.
type SettingsService interface {
	// Get returns settings merged over the defaults.
	Get() domain.Settings

	// Reload re-reads the configuration source and returns the new settings.
	Reload() (domain.Settings, error)
}

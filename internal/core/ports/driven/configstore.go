package driven

// ConfigStore holds flattened dot-separated settings keys such as
// "server.addr" or "proxy.mock_fallback".
//
// Typed getters return the zero value for missing keys and for values of
// another type.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	// GetFloat accepts integers too.
	GetFloat(key string) float64
	GetBool(key string) bool
	// GetStringSlice drops non-string elements.
	GetStringSlice(key string) []string

	// Set stores and persists one value.
	Set(key string, value any) error
	Save() error
	// Load re-reads the backing file, replacing every value held.
	Load() error
	// Path is the backing file, used by the config watcher.
	Path() string
}

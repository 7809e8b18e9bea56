package driven

import "encoding/json"

// FixtureStore serves canned demo payloads by name.
type FixtureStore interface {
	// Get returns the raw JSON fixture. Returns domain.ErrNotFound for unknown names.
	Get(name string) (json.RawMessage, error)

	// Names lists the available fixtures.
	Names() []string
}

// Package fixtures serves the embedded demo payloads used by the report and
// retail routes and by degraded-mode Sheets/Drive reads.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.FixtureStore = (*Store)(nil)

//go:embed data/*.json
var embedded embed.FS

// Store is a read-only fixture set keyed by file name without extension.
type Store struct {
	byName map[string]json.RawMessage
}

// New loads the embedded fixtures.
func New() (*Store, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded fixtures: %w", err)
	}
	return Load(sub)
}

// Load reads every *.json file at the root of fsys.
// Files that are not valid JSON fail the whole load.
func Load(fsys fs.FS) (*Store, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	s := &Store{byName: make(map[string]json.RawMessage, len(entries))}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		raw, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("read fixture %s: %w", e.Name(), err)
		}
		if !json.Valid(raw) {
			return nil, fmt.Errorf("fixture %s: invalid JSON", e.Name())
		}
		s.byName[strings.TrimSuffix(e.Name(), ".json")] = raw
	}
	return s, nil
}

// Get returns a copy of the named fixture.
func (s *Store) Get(name string) (json.RawMessage, error) {
	raw, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("fixture %q: %w", name, domain.ErrNotFound)
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out, nil
}

// Names lists the fixtures in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.byName))
	for n := range s.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

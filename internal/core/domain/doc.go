// Package domain defines the core business entities for gproxy.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Credential: A resolved service-account key and the API surface it serves
//   - ValueRange: A block of cell values addressed by an A1 range
//   - File: Drive file metadata
//   - User, Session: Dashboard login state
//   - Error: Classified failure carried from adapters to the route layer
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

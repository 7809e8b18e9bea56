// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ClientFactory: Builds authorised Sheets and Drive clients from a credential
//   - SheetsClient: One method per Sheets API call the proxy forwards
//   - DriveClient: One method per Drive API call the proxy forwards
//   - UserStore: Dashboard account persistence
//   - SessionStore: Login session persistence
//   - PasswordHasher: One-way password hashing
//   - TokenGenerator: Opaque identifiers for users and sessions
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ProxyObserver: Records upstream call outcomes (metrics).
//   - FixtureStore: Demo payloads. Without it, degraded-mode fallback is disabled.
package driven

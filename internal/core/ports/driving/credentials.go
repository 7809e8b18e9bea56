package driving

import "github.com/custodia-labs/gproxy/internal/core/domain"

// Candidate is one location the resolver checks for a service-account key.
type Candidate struct {
	// Origin names the environment variable or "config" / "default".
	Origin string
	Source domain.CredentialSource
	Path   string
	Exists bool
}

// CredentialService locates the service-account credential.
type CredentialService interface {
	// Resolve returns the first usable credential. ok is false in degraded mode.
	Resolve() (cred domain.Credential, ok bool)

	// ResolvePath returns the resolved key file path, or "" when none exists
	// or the credential is inline.
	ResolvePath() string

	// Candidates lists every file location in check order with its existence.
	Candidates() []Candidate
}

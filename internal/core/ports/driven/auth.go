package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/gproxy/internal/core/domain"
)

// UserStore persists dashboard accounts.
type UserStore interface {
	// Save creates or replaces a user. Email is stored normalised.
	Save(ctx context.Context, user domain.User) error

	// GetByEmail finds a user by normalised email.
	// Returns domain.ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Get finds a user by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.User, error)

	// Delete removes a user by email. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, email string) error

	// List returns all users ordered by email.
	List(ctx context.Context) ([]domain.User, error)
}

// SessionStore persists login sessions.
type SessionStore interface {
	// Save stores a session.
	Save(ctx context.Context, session domain.Session) error

	// GetByToken finds a session by bearer token. Returns domain.ErrNotFound if absent.
	GetByToken(ctx context.Context, token string) (*domain.Session, error)

	// DeleteByToken removes a session. Deleting an unknown token is not an error.
	DeleteByToken(ctx context.Context, token string) error

	// DeleteExpired removes sessions that expired at or before now
	// and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	// Hash returns a salted one-way hash of password.
	Hash(password string) (string, error)

	// Compare returns nil if password matches hash.
	Compare(hash, password string) error
}

// TokenGenerator produces unguessable identifiers.
type TokenGenerator interface {
	// NewID returns a new unique identifier.
	NewID() string

	// NewToken returns a new bearer token.
	NewToken() string
}

package driving

import (
	"context"

	"github.com/custodia-labs/gproxy/internal/core/domain"
)

// NewUser is the input for creating an account.
type NewUser struct {
	Email       string
	Password    string
	FullName    string
	Role        string
	Permissions []string
}

// AuthService manages dashboard logins.
type AuthService interface {
	// Login checks credentials and opens a session.
	// Returns domain.ErrValidation for empty input and domain.ErrUnauthorized
	// for an unknown email or wrong password.
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)

	// Verify returns the user owning a live session token.
	// Returns domain.ErrUnauthorized for unknown or expired tokens.
	Verify(ctx context.Context, token string) (*domain.User, error)

	// Logout ends the session for token. Unknown tokens are ignored.
	Logout(ctx context.Context, token string) error

	// AddUser creates an account with a hashed password.
	AddUser(ctx context.Context, input NewUser) (*domain.User, error)

	// ListUsers returns all accounts.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// RemoveUser deletes an account by email.
	RemoveUser(ctx context.Context, email string) error
}

package domain

import (
	"strings"
	"time"
)

// DefaultSessionTTL is how long a login session stays valid.
const DefaultSessionTTL = 24 * time.Hour

// User is a dashboard account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Role         string    `json:"role"`
	Permissions  []string  `json:"permissions"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// NormaliseEmail returns the lookup form of an email address.
func NormaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasPermission reports whether the user holds perm or the "*" wildcard.
func (u *User) HasPermission(perm string) bool {
	for _, p := range u.Permissions {
		if p == "*" || p == perm {
			return true
		}
	}
	return false
}

// Session is an authenticated login identified by an opaque bearer token.
type Session struct {
	ID        string    `json:"session_id"`
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has expired at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User    User
	Session Session
	Token   string
}

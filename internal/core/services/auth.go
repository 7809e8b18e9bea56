package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
	"github.com/custodia-labs/gproxy/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// Defaults applied to new accounts.
const (
	DefaultUserRole       = "user"
	DefaultUserPermission = "read"
)

// AuthService checks passwords and manages login sessions.
type AuthService struct {
	users    driven.UserStore
	sessions driven.SessionStore
	hasher   driven.PasswordHasher
	tokens   driven.TokenGenerator
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService creates an auth service. A non-positive ttl uses domain.DefaultSessionTTL.
func NewAuthService(
	users driven.UserStore,
	sessions driven.SessionStore,
	hasher driven.PasswordHasher,
	tokens driven.TokenGenerator,
	ttl time.Duration,
) *AuthService {
	if ttl <= 0 {
		ttl = domain.DefaultSessionTTL
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Login checks the password and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, domain.Validation(domain.MsgLoginMissingFields)
	}

	user, err := s.users.GetByEmail(ctx, domain.NormaliseEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewError(domain.KindUnauthorized, domain.MsgLoginInvalid, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.NewError(domain.KindUnauthorized, domain.MsgLoginInvalid, err)
	}

	now := s.now().UTC()
	session := domain.Session{
		ID:        s.tokens.NewID(),
		Token:     s.tokens.NewToken(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	logger.Info("User logged in: %s", user.Email)
	return &domain.LoginResult{User: *user, Session: session, Token: session.Token}, nil
}

// Verify returns the user owning a live session.
// Expired sessions are deleted on sight.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.NewError(domain.KindUnauthorized, domain.MsgTokenMissing, nil)
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewError(domain.KindUnauthorized, domain.MsgTokenInvalid, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}

	if session.IsExpired(s.now()) {
		if err := s.sessions.DeleteByToken(ctx, token); err != nil {
			logger.Warn("failed to delete expired session %s: %v", session.ID, err)
		}
		return nil, domain.NewError(domain.KindUnauthorized, domain.MsgTokenInvalid, nil)
	}

	user, err := s.users.Get(ctx, session.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewError(domain.KindUnauthorized, domain.MsgTokenInvalid, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Logout deletes the session for token, if any.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// AddUser creates an account. Role and permissions default to user/read.
func (s *AuthService) AddUser(ctx context.Context, input driving.NewUser) (*domain.User, error) {
	email := domain.NormaliseEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.Validation("email and password are required")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("user %s: %w", email, domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           s.tokens.NewID(),
		Email:        email,
		FullName:     input.FullName,
		Role:         input.Role,
		Permissions:  input.Permissions,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if user.Role == "" {
		user.Role = DefaultUserRole
	}
	if len(user.Permissions) == 0 {
		user.Permissions = []string{DefaultUserPermission}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return &user, nil
}

// ListUsers returns all accounts.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// RemoveUser deletes an account.
func (s *AuthService) RemoveUser(ctx context.Context, email string) error {
	return s.users.Delete(ctx, domain.NormaliseEmail(email))
}

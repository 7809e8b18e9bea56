package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
)

func newTestAuth(t *testing.T) (*AuthService, *mockUserStore, *mockSessionStore) {
	t.Helper()
	users := newMockUserStore()
	sessions := newMockSessionStore()
	svc := NewAuthService(users, sessions, plainHasher{}, &sequenceTokens{}, time.Hour)

	_, err := svc.AddUser(context.Background(), driving.NewUser{
		Email:       "Admin@MIA.vn",
		Password:    "admin123",
		FullName:    "Admin User",
		Role:        "admin",
		Permissions: []string{"*"},
	})
	require.NoError(t, err)
	return svc, users, sessions
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions := newTestAuth(t)

	t.Run("success is case insensitive", func(t *testing.T) {
		res, err := svc.Login(ctx, "ADMIN@mia.vn", "admin123")
		require.NoError(t, err)
		assert.Equal(t, "admin@mia.vn", res.User.Email)
		assert.Equal(t, "Admin User", res.User.FullName)
		assert.Equal(t, res.Session.Token, res.Token)
		assert.Equal(t, res.User.ID, res.Session.UserID)
		assert.Equal(t, time.Hour, res.Session.ExpiresAt.Sub(res.Session.CreatedAt))
		assert.Equal(t, 1, sessions.count())
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "x")
		require.Error(t, err)
		assert.Equal(t, domain.MsgLoginMissingFields, err.Error())
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@mia.vn", "x")
		require.Error(t, err)
		assert.Equal(t, domain.MsgLoginInvalid, err.Error())
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "admin@mia.vn", "wrong")
		require.Error(t, err)
		assert.Equal(t, domain.MsgLoginInvalid, err.Error())
	})
}

func TestAuthService_VerifyAndLogout(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions := newTestAuth(t)

	res, err := svc.Login(ctx, "admin@mia.vn", "admin123")
	require.NoError(t, err)

	user, err := svc.Verify(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@mia.vn", user.Email)

	_, err = svc.Verify(ctx, "")
	assert.Equal(t, domain.MsgTokenMissing, err.Error())

	_, err = svc.Verify(ctx, "bogus")
	assert.Equal(t, domain.MsgTokenInvalid, err.Error())

	require.NoError(t, svc.Logout(ctx, res.Token))
	assert.Equal(t, 0, sessions.count())
	_, err = svc.Verify(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.NoError(t, svc.Logout(ctx, ""))
	assert.NoError(t, svc.Logout(ctx, "unknown"))
}

func TestAuthService_VerifyExpired(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions := newTestAuth(t)

	res, err := svc.Login(ctx, "admin@mia.vn", "admin123")
	require.NoError(t, err)

	svc.now = func() time.Time { return res.Session.ExpiresAt.Add(time.Second) }
	_, err = svc.Verify(ctx, res.Token)
	require.Error(t, err)
	assert.Equal(t, domain.MsgTokenInvalid, err.Error())
	assert.Equal(t, 0, sessions.count(), "expired session is removed")
}

func TestAuthService_AddUser(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestAuth(t)

	u, err := svc.AddUser(ctx, driving.NewUser{Email: "user@mia.vn", Password: "user123"})
	require.NoError(t, err)
	assert.Equal(t, DefaultUserRole, u.Role)
	assert.Equal(t, []string{DefaultUserPermission}, u.Permissions)
	assert.Equal(t, "hashed:user123", u.PasswordHash)

	_, err = svc.AddUser(ctx, driving.NewUser{Email: "USER@mia.vn", Password: "other"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = svc.AddUser(ctx, driving.NewUser{Email: "x@mia.vn"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "admin@mia.vn", list[0].Email)

	require.NoError(t, svc.RemoveUser(ctx, "User@Mia.vn"))
	assert.ErrorIs(t, svc.RemoveUser(ctx, "user@mia.vn"), domain.ErrNotFound)

	users.err = errors.New("db locked")
	_, err = svc.Login(ctx, "admin@mia.vn", "admin123")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnknown, domain.KindOf(err))
}

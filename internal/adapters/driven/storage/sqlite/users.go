package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
)

// userStore implements driven.UserStore.
type userStore struct {
	store *Store
}

var _ driven.UserStore = (*userStore)(nil)

const userColumns = "id, email, full_name, role, permissions, password_hash, created_at"

// Save stores or replaces a user keyed by ID.
func (s *userStore) Save(ctx context.Context, user domain.User) error {
	perms := user.Permissions
	if perms == nil {
		perms = []string{}
	}
	permsJSON, err := json.Marshal(perms)
	if err != nil {
		return fmt.Errorf("marshalling permissions: %w", err)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO users (id, email, full_name, role, permissions, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			full_name = excluded.full_name,
			role = excluded.role,
			permissions = excluded.permissions,
			password_hash = excluded.password_hash
	`, user.ID, domain.NormaliseEmail(user.Email), user.FullName, user.Role, string(permsJSON),
		user.PasswordHash, user.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

// GetByEmail finds a user by email, ignoring case.
func (s *userStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", domain.NormaliseEmail(email))
	return scanUser(row)
}

// Get finds a user by ID.
func (s *userStore) Get(ctx context.Context, id string) (*domain.User, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

// Delete removes a user and, through the foreign key, their sessions.
func (s *userStore) Delete(ctx context.Context, email string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM users WHERE email = ?", domain.NormaliseEmail(email))
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all users ordered by email.
func (s *userStore) List(ctx context.Context) ([]domain.User, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY email")
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*domain.User, error) {
	var user domain.User
	var permsJSON string
	var createdAt sql.NullTime
	if err := row.Scan(&user.ID, &user.Email, &user.FullName, &user.Role, &permsJSON,
		&user.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	if err := json.Unmarshal([]byte(permsJSON), &user.Permissions); err != nil {
		return nil, fmt.Errorf("unmarshaling permissions: %w", err)
	}
	if createdAt.Valid {
		user.CreatedAt = createdAt.Time
	}
	return &user, nil
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
)

// Ensure UserStore implements the interface.
var _ driven.UserStore = (*UserStore)(nil)

// UserStore is an in-memory implementation of driven.UserStore.
type UserStore struct {
	mu      sync.RWMutex
	byEmail map[string]domain.User
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		byEmail: make(map[string]domain.User),
	}
}

// Save stores or replaces a user keyed by normalised email.
func (s *UserStore) Save(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.Email = domain.NormaliseEmail(user.Email)
	user.Permissions = append([]string(nil), user.Permissions...)
	s.byEmail[user.Email] = user
	return nil
}

// GetByEmail finds a user by email, ignoring case.
func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byEmail[domain.NormaliseEmail(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

// Get finds a user by ID.
func (s *UserStore) Get(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.byEmail {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete removes a user by email.
func (s *UserStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := domain.NormaliseEmail(email)
	if _, ok := s.byEmail[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.byEmail, key)
	return nil
}

// List returns all users ordered by email.
func (s *UserStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.User, 0, len(s.byEmail))
	for _, user := range s.byEmail {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return result, nil
}

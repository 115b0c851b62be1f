package testutil

import (
	"context"
	"sync"

	"github.com/emeraldmart/storefront/internal/domain/user"
	ierr "github.com/emeraldmart/storefront/internal/errors"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users: make(map[string]*user.User),
	}
}

func (s *InMemoryUserStore) Create(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.users[u.Username]; taken {
		return ierr.NewError("username already registered").
			WithHintf("Username %s is already taken", u.Username).
			Mark(ierr.ErrAlreadyExists)
	}

	s.users[u.Username] = u
	return nil
}

func (s *InMemoryUserStore) Get(_ context.Context, username string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, ierr.NewError("user not found").
			WithHintf("No account found for username %s", username).
			Mark(ierr.ErrNotFound)
	}

	return u, nil
}

// InMemorySessionStore implements user.SessionRepository
type InMemorySessionStore struct {
	mu       sync.RWMutex
	username string
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{}
}

func (s *InMemorySessionStore) SetLoggedIn(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	return nil
}

func (s *InMemorySessionStore) GetLoggedIn(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username, nil
}

func (s *InMemorySessionStore) ClearLoggedIn(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = ""
	return nil
}

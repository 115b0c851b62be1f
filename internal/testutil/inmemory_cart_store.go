package testutil

import (
	"context"
	"sync"

	"github.com/emeraldmart/storefront/internal/domain/cart"
	ierr "github.com/emeraldmart/storefront/internal/errors"
)

// InMemoryCartStore implements cart.Repository
type InMemoryCartStore struct {
	mu    sync.RWMutex
	saved cart.Cart

	// FailLoad makes Load return a storage error, simulating a corrupt blob
	FailLoad bool
	// FailSave makes Save return a storage error
	FailSave bool

	// SaveCount tracks how many times Save was called, to assert the
	// persist-after-every-mutation contract
	SaveCount int
}

func NewInMemoryCartStore() *InMemoryCartStore {
	return &InMemoryCartStore{
		saved: cart.New(),
	}
}

func (s *InMemoryCartStore) Load(_ context.Context) (cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.FailLoad {
		return nil, ierr.NewError("corrupt cart blob").
			WithHint("Stored cart could not be decoded").
			Mark(ierr.ErrStorage)
	}

	return s.saved.Clone(), nil
}

func (s *InMemoryCartStore) Save(_ context.Context, c cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.SaveCount++
	if s.FailSave {
		return ierr.NewError("cart save failed").
			WithHint("Simulated storage failure").
			Mark(ierr.ErrStorage)
	}

	s.saved = c.Clone()
	return nil
}

// Saved returns a copy of the last saved cart
func (s *InMemoryCartStore) Saved() cart.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved.Clone()
}

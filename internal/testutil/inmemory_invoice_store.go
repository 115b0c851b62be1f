package testutil

import (
	"context"
	"sync"

	"github.com/emeraldmart/storefront/internal/domain/invoice"
	ierr "github.com/emeraldmart/storefront/internal/errors"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	mu   sync.RWMutex
	last *invoice.Invoice

	// FailSave makes SaveLast return a storage error
	FailSave bool
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{}
}

func (s *InMemoryInvoiceStore) SaveLast(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSave {
		return ierr.NewError("invoice save failed").
			WithHint("Simulated storage failure").
			Mark(ierr.ErrStorage)
	}

	s.last = inv
	return nil
}

func (s *InMemoryInvoiceStore) GetLast(_ context.Context) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.last == nil {
		return nil, ierr.NewError("no invoice found").
			WithHint("No invoice has been generated yet").
			Mark(ierr.ErrNotFound)
	}

	return s.last, nil
}

// HasInvoice reports whether an invoice has been persisted
func (s *InMemoryInvoiceStore) HasInvoice() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last != nil
}

package repository

import (
	"context"

	"github.com/emeraldmart/storefront/internal/domain/invoice"
	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/emeraldmart/storefront/internal/kv"
	"github.com/emeraldmart/storefront/internal/logger"
)

type invoiceRepository struct {
	store kv.Store
	log   *logger.Logger
}

// NewInvoiceRepository creates a kv-backed invoice repository under the
// `lastInvoice` key
func NewInvoiceRepository(store kv.Store, log *logger.Logger) invoice.Repository {
	return &invoiceRepository{store: store, log: log}
}

func (r *invoiceRepository) SaveLast(ctx context.Context, inv *invoice.Invoice) error {
	raw, err := json.Marshal(inv)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Invoice could not be encoded").
			Mark(ierr.ErrStorage)
	}

	return r.store.Set(ctx, kv.KeyLastInvoice, raw)
}

func (r *invoiceRepository) GetLast(ctx context.Context) (*invoice.Invoice, error) {
	raw, ok, err := r.store.Get(ctx, kv.KeyLastInvoice)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ierr.NewError("no invoice found").
			WithHint("No invoice has been generated yet").
			Mark(ierr.ErrNotFound)
	}

	var inv invoice.Invoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Stored invoice could not be decoded").
			Mark(ierr.ErrStorage)
	}

	return &inv, nil
}

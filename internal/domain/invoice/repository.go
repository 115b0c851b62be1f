package invoice

import "context"

// Repository defines the interface for invoice persistence. Only the single
// most recent invoice is kept; each checkout overwrites the previous one.
type Repository interface {
	// SaveLast persists the invoice as the last invoice
	SaveLast(ctx context.Context, inv *Invoice) error

	// GetLast returns the last persisted invoice or a not found error
	GetLast(ctx context.Context) (*Invoice, error)
}

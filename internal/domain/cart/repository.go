package cart

import "context"

// Repository defines the interface for cart persistence
type Repository interface {
	// Load returns the persisted cart. A missing blob yields an empty cart,
	// not an error; a corrupt blob yields an error the caller may recover
	// from by keeping its current state.
	Load(ctx context.Context) (Cart, error)

	// Save persists the entire cart, replacing the previous blob
	Save(ctx context.Context, c Cart) error
}

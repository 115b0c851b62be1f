package service

import (
	"context"
	"sync"

	"github.com/emeraldmart/storefront/internal/api/dto"
	"github.com/emeraldmart/storefront/internal/domain/cart"
)

// CartService owns the live cart. Every mutating operation persists the
// whole cart afterwards and returns the recomputed view payload so
// dependent views (counter, table, totals) stay synchronized. Persistence
// failures are logged, not surfaced: the in-memory cart stays the source of
// truth for the session.
type CartService interface {
	// AddItem inserts a new line or increments an existing one. Price and
	// title of an existing line are never overwritten by a later add. A
	// quantity <= 0 defaults to 1.
	AddItem(ctx context.Context, req dto.AddItemRequest) (*dto.CartResponse, error)

	// SetQuantity sets the quantity of a line; <= 0 removes it. An unknown
	// product id is a no-op.
	SetQuantity(ctx context.Context, productID string, quantity int) (*dto.CartResponse, error)

	// Clear removes all lines
	Clear(ctx context.Context) (*dto.CartResponse, error)

	// GetCart returns the current cart with derived totals
	GetCart(ctx context.Context) (*dto.CartResponse, error)

	// ItemCount returns the summed quantity across lines
	ItemCount(ctx context.Context) int

	// Load merges persisted state into the in-memory cart. A missing or
	// corrupt blob leaves the cart unchanged.
	Load(ctx context.Context) error

	// Flush persists the current cart once more; called on teardown so an
	// unexpected exit still preserves the latest state
	Flush(ctx context.Context) error

	// Snapshot returns a deep copy of the live cart and its totals,
	// computed at call time
	Snapshot(ctx context.Context) (cart.Cart, cart.Totals)

	// ReplaceAll swaps the cart contents and persists; used when checkout
	// clears the cart atomically with invoice creation
	ReplaceAll(ctx context.Context, c cart.Cart) (*dto.CartResponse, error)
}

type cartService struct {
	ServiceParams

	mu    sync.Mutex
	items cart.Cart
}

// NewCartService creates a new cart service with an empty cart; callers are
// expected to Load persisted state during startup
func NewCartService(params ServiceParams) CartService {
	return &cartService{
		ServiceParams: params,
		items:         cart.New(),
	}
}

func (s *cartService) AddItem(ctx context.Context, req dto.AddItemRequest) (*dto.CartResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	qty := req.Quantity
	if qty <= 0 {
		// Explicit fallback for non-positive or unparsed quantities
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.items[req.ID]; ok {
		existing.Quantity += qty
	} else {
		s.items[req.ID] = &cart.LineItem{
			ID:       req.ID,
			Title:    req.Title,
			Price:    req.Price,
			Quantity: qty,
		}
	}

	s.persistLocked(ctx)
	return s.responseLocked(), nil
}

func (s *cartService) SetQuantity(ctx context.Context, productID string, quantity int) (*dto.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[productID]
	if !ok {
		// Quantity change for a deleted line is a no-op, not an error
		s.Logger.Debugw("quantity change for unknown product ignored", "product_id", productID)
		return s.responseLocked(), nil
	}

	if quantity <= 0 {
		delete(s.items, productID)
	} else {
		item.Quantity = quantity
	}

	s.persistLocked(ctx)
	return s.responseLocked(), nil
}

func (s *cartService) Clear(ctx context.Context) (*dto.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = cart.New()
	s.persistLocked(ctx)
	return s.responseLocked(), nil
}

func (s *cartService) GetCart(_ context.Context) (*dto.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.responseLocked(), nil
}

func (s *cartService) ItemCount(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.TotalQuantity()
}

func (s *cartService) Load(ctx context.Context) error {
	persisted, err := s.CartRepo.Load(ctx)
	if err != nil {
		// Recoverable: keep the current in-memory cart
		s.Logger.Errorw("failed to load persisted cart, keeping current state", "error", err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Persisted entries override or augment the in-memory map by id
	for id, item := range persisted {
		s.items[id] = item
	}

	return nil
}

func (s *cartService) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.CartRepo.Save(ctx, s.items)
}

func (s *cartService) Snapshot(_ context.Context) (cart.Cart, cart.Totals) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.items.Clone()
	return snapshot, cart.ComputeTotals(snapshot)
}

func (s *cartService) ReplaceAll(ctx context.Context, c cart.Cart) (*dto.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c == nil {
		c = cart.New()
	}
	s.items = c
	s.persistLocked(ctx)
	return s.responseLocked(), nil
}

// persistLocked saves the cart after a mutation. Failures are logged and
// swallowed; the in-memory cart stays authoritative for the session.
func (s *cartService) persistLocked(ctx context.Context) {
	if err := s.CartRepo.Save(ctx, s.items); err != nil {
		s.Logger.Errorw("failed to persist cart", "error", err)
	}
}

func (s *cartService) responseLocked() *dto.CartResponse {
	return dto.NewCartResponse(s.items, cart.ComputeTotals(s.items))
}

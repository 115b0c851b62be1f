package service

import (
	"context"
	"sync"
	"time"

	"github.com/emeraldmart/storefront/internal/api/dto"
	"github.com/emeraldmart/storefront/internal/domain/cart"
	"github.com/emeraldmart/storefront/internal/domain/invoice"
	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/emeraldmart/storefront/internal/types"
)

// CheckoutService drives the checkout state machine:
// Browsing -> Reviewing -> ConfirmingPayment -> Paid.
type CheckoutService interface {
	// ReviewCart enters the cart page; always allowed
	ReviewCart(ctx context.Context) (*dto.CheckoutReviewResponse, error)

	// BeginPayment moves from the cart page to the checkout form; blocked
	// when the cart is empty
	BeginPayment(ctx context.Context) (*dto.CheckoutReviewResponse, error)

	// ConfirmPayment applies the ordered guards and, on success, snapshots
	// the cart into an invoice, persists it, clears the cart and
	// transitions to Paid
	ConfirmPayment(ctx context.Context, req dto.ConfirmPaymentRequest) (*dto.InvoiceResponse, error)

	// GetLastInvoice returns the most recently generated invoice
	GetLastInvoice(ctx context.Context) (*dto.InvoiceResponse, error)

	// State returns the current checkout state
	State() types.CheckoutState
}

type checkoutService struct {
	ServiceParams
	cartService CartService

	mu    sync.Mutex
	state types.CheckoutState
}

// NewCheckoutService creates a new checkout service starting in Browsing
func NewCheckoutService(params ServiceParams, cartService CartService) CheckoutService {
	return &checkoutService{
		ServiceParams: params,
		cartService:   cartService,
		state:         types.CheckoutStateBrowsing,
	}
}

func (s *checkoutService) ReviewCart(ctx context.Context) (*dto.CheckoutReviewResponse, error) {
	snapshot, totals := s.cartService.Snapshot(ctx)

	s.mu.Lock()
	s.state = types.CheckoutStateReviewing
	s.mu.Unlock()

	return &dto.CheckoutReviewResponse{
		State: types.CheckoutStateReviewing,
		Cart:  dto.NewCartResponse(snapshot, totals),
	}, nil
}

func (s *checkoutService) BeginPayment(ctx context.Context) (*dto.CheckoutReviewResponse, error) {
	snapshot, totals := s.cartService.Snapshot(ctx)

	if snapshot.IsEmpty() {
		return nil, ierr.NewError("cart is empty").
			WithHint("Your cart is empty!").
			Mark(ierr.ErrInvalidOperation)
	}

	s.mu.Lock()
	s.state = types.CheckoutStateConfirmingPayment
	s.mu.Unlock()

	return &dto.CheckoutReviewResponse{
		State: types.CheckoutStateConfirmingPayment,
		Cart:  dto.NewCartResponse(snapshot, totals),
	}, nil
}

func (s *checkoutService) ConfirmPayment(ctx context.Context, req dto.ConfirmPaymentRequest) (*dto.InvoiceResponse, error) {
	// Shipping name, address and amount format, in order, first failure wins
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Totals come from the live cart at the moment of confirmation, never
	// from a snapshot taken when the checkout view was rendered
	snapshot, totals := s.cartService.Snapshot(ctx)

	if snapshot.IsEmpty() {
		return nil, ierr.NewError("cart is empty").
			WithHint("Your cart is empty!").
			Mark(ierr.ErrInvalidOperation)
	}

	// Strict equality on the rounded total; a one-cent difference rejects
	if !req.Amount.Equal(totals.Total) {
		return nil, ierr.NewError("payment amount mismatch").
			WithHintf("Payment amount must exactly match the total: %s (you entered: %s)",
				types.FormatMoney(totals.Total), types.FormatMoney(req.Amount)).
			WithReportableDetails(map[string]any{
				"expected": types.FormatMoney(totals.Total),
				"entered":  types.FormatMoney(req.Amount),
			}).
			Mark(ierr.ErrValidation)
	}

	inv := invoice.NewFromCart(req.Name, req.Address, snapshot, totals, time.Now().UTC())
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	// Persist the invoice before touching the cart; if this fails the cart
	// is left untouched and the checkout can be retried
	if err := s.InvoiceRepo.SaveLast(ctx, inv); err != nil {
		return nil, err
	}

	if _, err := s.cartService.ReplaceAll(ctx, cart.New()); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.state = types.CheckoutStatePaid
	s.mu.Unlock()

	s.Logger.Infow("checkout confirmed",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"total", types.FormatMoney(totals.Total))

	return dto.NewInvoiceResponse(inv), nil
}

func (s *checkoutService) GetLastInvoice(ctx context.Context) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.GetLast(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *checkoutService) State() types.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

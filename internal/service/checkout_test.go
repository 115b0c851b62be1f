package service

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/emeraldmart/storefront/internal/api/dto"
	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/emeraldmart/storefront/internal/testutil"
	"github.com/emeraldmart/storefront/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CheckoutServiceSuite struct {
	suite.Suite
	ctx             context.Context
	cartService     CartService
	checkoutService CheckoutService
	cartRepo        *testutil.InMemoryCartStore
	invoiceRepo     *testutil.InMemoryInvoiceStore
}

func TestCheckoutService(t *testing.T) {
	suite.Run(t, new(CheckoutServiceSuite))
}

func (s *CheckoutServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.cartRepo = testutil.NewInMemoryCartStore()
	s.invoiceRepo = testutil.NewInMemoryInvoiceStore()

	params := newTestParams(s.T(), s.cartRepo)
	params.InvoiceRepo = s.invoiceRepo

	s.cartService = NewCartService(params)
	s.checkoutService = NewCheckoutService(params, s.cartService)
}

// fillCart seeds the standard scenario: {A: 50 x1, B: 60 x1} -> total 113.85
func (s *CheckoutServiceSuite) fillCart() {
	_, err := s.cartService.AddItem(s.ctx, addRequest("a", 50, 1))
	s.Require().NoError(err)
	_, err = s.cartService.AddItem(s.ctx, addRequest("b", 60, 1))
	s.Require().NoError(err)
}

func confirmRequest(amount string) dto.ConfirmPaymentRequest {
	return dto.ConfirmPaymentRequest{
		Name:    "Jane Doe",
		Address: "1 Main Street",
		Amount:  decimal.RequireFromString(amount),
	}
}

func (s *CheckoutServiceSuite) TestReviewCartAlwaysAllowed() {
	resp, err := s.checkoutService.ReviewCart(s.ctx)
	s.NoError(err)
	s.Equal(types.CheckoutStateReviewing, resp.State)
	s.Empty(resp.Cart.Items)
}

func (s *CheckoutServiceSuite) TestBeginPaymentBlockedOnEmptyCart() {
	_, err := s.checkoutService.BeginPayment(s.ctx)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *CheckoutServiceSuite) TestBeginPaymentEntersConfirmingState() {
	s.fillCart()

	resp, err := s.checkoutService.BeginPayment(s.ctx)
	s.NoError(err)
	s.Equal(types.CheckoutStateConfirmingPayment, resp.State)
	s.Equal(types.CheckoutStateConfirmingPayment, s.checkoutService.State())
	s.Equal("113.85", resp.Cart.Totals.Total.StringFixed(2))
}

func (s *CheckoutServiceSuite) TestConfirmPaymentGuardOrder() {
	s.fillCart()

	testCases := []struct {
		name string
		req  dto.ConfirmPaymentRequest
		hint string
	}{
		{
			name: "empty_name_fails_first",
			req:  dto.ConfirmPaymentRequest{Name: "", Address: "", Amount: decimal.Zero},
			hint: "Name must contain letters only",
		},
		{
			name: "digits_in_name_rejected",
			req:  dto.ConfirmPaymentRequest{Name: "Jane 2nd", Address: "1 Main Street", Amount: decimal.NewFromInt(1)},
			hint: "Name must contain letters only",
		},
		{
			name: "empty_address_fails_second",
			req:  dto.ConfirmPaymentRequest{Name: "Jane Doe", Address: "", Amount: decimal.Zero},
			hint: "Please enter a shipping address",
		},
		{
			name: "non_positive_amount_fails_third",
			req:  dto.ConfirmPaymentRequest{Name: "Jane Doe", Address: "1 Main Street", Amount: decimal.Zero},
			hint: "Please enter a valid payment amount",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.checkoutService.ConfirmPayment(s.ctx, tc.req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
			s.Contains(errors.GetAllHints(err), tc.hint)
			s.False(s.invoiceRepo.HasInvoice(), "no invoice on validation failure")
		})
	}
}

func (s *CheckoutServiceSuite) TestConfirmPaymentRejectsOffByOneCent() {
	s.fillCart()

	for _, amount := range []string{"113.84", "113.86"} {
		_, err := s.checkoutService.ConfirmPayment(s.ctx, confirmRequest(amount))
		s.Error(err, "amount %s must be rejected", amount)
		s.True(ierr.IsValidation(err))
	}

	// Cart unchanged, no invoice created
	resp, err := s.cartService.GetCart(s.ctx)
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.False(s.invoiceRepo.HasInvoice())
}

func (s *CheckoutServiceSuite) TestConfirmPaymentSuccess() {
	s.fillCart()

	resp, err := s.checkoutService.ConfirmPayment(s.ctx, confirmRequest("113.85"))
	s.NoError(err)

	s.NotEmpty(resp.ID)
	s.NotEmpty(resp.InvoiceNumber)
	s.Equal("Jane Doe", resp.CustomerName)
	s.Len(resp.Items, 2)
	s.Equal("113.85", resp.Totals.Total.StringFixed(2))

	// Cart cleared atomically with invoice creation
	cartResp, err := s.cartService.GetCart(s.ctx)
	s.NoError(err)
	s.Empty(cartResp.Items)

	s.Equal(types.CheckoutStatePaid, s.checkoutService.State())
	s.True(s.invoiceRepo.HasInvoice())
}

func (s *CheckoutServiceSuite) TestInvoiceSnapshotSurvivesLaterCartMutations() {
	s.fillCart()

	_, err := s.checkoutService.ConfirmPayment(s.ctx, confirmRequest("113.85"))
	s.Require().NoError(err)

	// A fresh cycle starts; mutate the new cart
	_, err = s.cartService.AddItem(s.ctx, addRequest("c", 5, 10))
	s.Require().NoError(err)

	inv, err := s.checkoutService.GetLastInvoice(s.ctx)
	s.NoError(err)
	s.Len(inv.Items, 2, "invoice snapshot is disconnected from the live cart")
	s.Equal("113.85", inv.Totals.Total.StringFixed(2))
}

// The total is recomputed from the live cart at confirmation; an amount
// matching a stale total from when the checkout page rendered is rejected.
func (s *CheckoutServiceSuite) TestConfirmPaymentUsesLiveCartNotStaleSnapshot() {
	s.fillCart()

	begin, err := s.checkoutService.BeginPayment(s.ctx)
	s.Require().NoError(err)
	staleTotal := begin.Cart.Totals.Total

	// Cart changes behind the checkout page
	_, err = s.cartService.AddItem(s.ctx, addRequest("c", 10, 1))
	s.Require().NoError(err)

	_, err = s.checkoutService.ConfirmPayment(s.ctx, dto.ConfirmPaymentRequest{
		Name:    "Jane Doe",
		Address: "1 Main Street",
		Amount:  staleTotal,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
	s.False(s.invoiceRepo.HasInvoice())
}

func (s *CheckoutServiceSuite) TestConfirmPaymentInvoicePersistFailureKeepsCart() {
	s.fillCart()
	s.invoiceRepo.FailSave = true

	_, err := s.checkoutService.ConfirmPayment(s.ctx, confirmRequest("113.85"))
	s.Error(err)

	resp, err := s.cartService.GetCart(s.ctx)
	s.NoError(err)
	s.Len(resp.Items, 2, "cart untouched when the invoice cannot be persisted")
}

func (s *CheckoutServiceSuite) TestGetLastInvoiceNotFound() {
	_, err := s.checkoutService.GetLastInvoice(s.ctx)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CheckoutServiceSuite) TestConfirmPaymentOnEmptiedCartRejected() {
	s.fillCart()

	_, err := s.checkoutService.BeginPayment(s.ctx)
	s.Require().NoError(err)

	_, err = s.cartService.Clear(s.ctx)
	s.Require().NoError(err)

	_, err = s.checkoutService.ConfirmPayment(s.ctx, confirmRequest("113.85"))
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

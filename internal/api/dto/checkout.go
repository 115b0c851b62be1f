package dto

import (
	"regexp"
	"sort"
	"time"

	"github.com/emeraldmart/storefront/internal/domain/invoice"
	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/emeraldmart/storefront/internal/types"
	"github.com/shopspring/decimal"
)

var nameLettersOnly = regexp.MustCompile(`^[A-Za-z\s]+$`)

// ConfirmPaymentRequest carries the checkout form fields. Guards run in
// order with first failure winning: name, then address, then amount.
type ConfirmPaymentRequest struct {
	Name    string          `json:"name"`
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
}

// Validate applies the shipping guards in their contractual order. The
// exact-total check on the amount runs in the checkout service against the
// live cart.
func (r *ConfirmPaymentRequest) Validate() error {
	if r.Name == "" || !nameLettersOnly.MatchString(r.Name) {
		return ierr.NewError("invalid shipping name").
			WithHint("Name must contain letters only").
			Mark(ierr.ErrValidation)
	}

	if r.Address == "" {
		return ierr.NewError("missing shipping address").
			WithHint("Please enter a shipping address").
			Mark(ierr.ErrValidation)
	}

	if !r.Amount.IsPositive() {
		return ierr.NewError("invalid payment amount").
			WithHint("Please enter a valid payment amount").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// CheckoutReviewResponse reports the state transition into the checkout
// form together with the cart it was entered with
type CheckoutReviewResponse struct {
	State types.CheckoutState `json:"state"`
	Cart  *CartResponse       `json:"cart"`
}

// InvoiceResponse is the persisted invoice snapshot
type InvoiceResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	CustomerName  string             `json:"name"`
	Address       string             `json:"address"`
	Items         []CartLineResponse `json:"items"`
	Totals        TotalsResponse     `json:"totals"`
	Date          time.Time          `json:"date"`
}

// NewInvoiceResponse converts a domain invoice into its response form
func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	items := make([]CartLineResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, CartLineResponse{
			ID:        item.ID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			LineTotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return &InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerName:  inv.CustomerName,
		Address:       inv.Address,
		Items:         items,
		Totals: TotalsResponse{
			Subtotal: inv.Totals.Subtotal,
			Discount: inv.Totals.Discount,
			Tax:      inv.Totals.Tax,
			Total:    inv.Totals.Total,
		},
		Date: inv.Date,
	}
}

package invoice

import (
	"time"

	"github.com/emeraldmart/storefront/internal/domain/cart"
	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/emeraldmart/storefront/internal/types"
)

// Invoice is the snapshot taken at successful checkout: the customer's
// shipping details, a deep copy of the cart lines and the totals they
// computed to at the moment of confirmation. It is disconnected from the
// live cart; clearing or mutating the cart afterwards does not affect it.
type Invoice struct {
	ID            string           `json:"id"`
	InvoiceNumber string           `json:"invoice_number"`
	CustomerName  string           `json:"name"`
	Address       string           `json:"address"`
	Items         []*cart.LineItem `json:"items"`
	Totals        cart.Totals      `json:"totals"`
	Date          time.Time        `json:"date"`
}

// NewFromCart snapshots the given cart and totals into an invoice. The cart
// is deep-copied so the snapshot survives later cart mutations.
func NewFromCart(customerName, address string, c cart.Cart, totals cart.Totals, now time.Time) *Invoice {
	snapshot := c.Clone()
	items := make([]*cart.LineItem, 0, len(snapshot))
	for _, item := range snapshot {
		items = append(items, item)
	}

	return &Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		InvoiceNumber: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE),
		CustomerName:  customerName,
		Address:       address,
		Items:         items,
		Totals:        totals,
		Date:          now,
	}
}

// Validate validates the invoice snapshot
func (i *Invoice) Validate() error {
	if i.CustomerName == "" {
		return ierr.NewError("invoice validation failed").
			WithHint("Customer name is required").
			Mark(ierr.ErrValidation)
	}

	if i.Address == "" {
		return ierr.NewError("invoice validation failed").
			WithHint("Shipping address is required").
			Mark(ierr.ErrValidation)
	}

	if len(i.Items) == 0 {
		return ierr.NewError("invoice validation failed").
			WithHint("Invoice must contain at least one item").
			Mark(ierr.ErrValidation)
	}

	for _, item := range i.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	return nil
}

package cart

import (
	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/shopspring/decimal"
)

// LineItem represents a single product line in the cart. Identity is the
// product ID; price and title are fixed at first add and never overwritten
// by later adds of the same product.
type LineItem struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"qty"`
}

// Validate validates the line item
func (i *LineItem) Validate() error {
	if i.ID == "" {
		return ierr.NewError("line item validation failed").
			WithHint("Product id is required").
			Mark(ierr.ErrValidation)
	}

	if i.Price.IsNegative() {
		return ierr.NewError("line item validation failed").
			WithHint("Price must be non negative").
			Mark(ierr.ErrValidation)
	}

	if i.Quantity < 1 {
		return ierr.NewError("line item validation failed").
			WithHint("Quantity must be at least 1").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// Clone returns an independent copy of the line item
func (i *LineItem) Clone() *LineItem {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}

// Cart is the live mapping of product id to line item. Keys are unique;
// insertion order carries no meaning. A line with quantity <= 0 must never
// be stored, it is removed instead.
type Cart map[string]*LineItem

// New returns an empty cart
func New() Cart {
	return make(Cart)
}

// IsEmpty reports whether the cart holds no lines
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// TotalQuantity returns the summed quantity across all lines, the value the
// cart counter displays
func (c Cart) TotalQuantity() int {
	total := 0
	for _, item := range c {
		total += item.Quantity
	}
	return total
}

// Clone returns a deep copy of the cart. Invoices snapshot the cart through
// this so later mutations never leak into a generated invoice.
func (c Cart) Clone() Cart {
	clone := make(Cart, len(c))
	for id, item := range c {
		clone[id] = item.Clone()
	}
	return clone
}

package cart

import (
	"github.com/emeraldmart/storefront/internal/types"
	"github.com/shopspring/decimal"
)

var (
	// TaxRate is the fixed tax rate applied to the post-discount amount
	TaxRate = decimal.NewFromFloat(0.15)
	// DiscountRate is the tier discount applied at or above the threshold
	DiscountRate = decimal.NewFromFloat(0.10)
	// DiscountThreshold is inclusive: a subtotal of exactly 100.00 receives
	// the discount
	DiscountThreshold = decimal.NewFromInt(100)
)

// Totals holds the derived monetary summary of a cart. It is never stored
// independently of the cart it was computed from, except inside an invoice
// snapshot.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ZeroTotals returns an all-zero totals value, what an empty cart computes to
func ZeroTotals() Totals {
	return Totals{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}
}

// ComputeTotals derives the monetary summary from the cart contents. Pure:
// no side effects and no dependency on state beyond the input.
//
// Every field is rounded to 2 places independently at the point it is
// produced and each later field is derived from the already-rounded earlier
// ones. This per-field rounding can differ by a cent from a fused
// computation and is the behavior to preserve.
func ComputeTotals(c Cart) Totals {
	subtotal := decimal.Zero
	for _, item := range c {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	subtotal = types.RoundMoney(subtotal)

	discount := decimal.Zero
	if subtotal.GreaterThanOrEqual(DiscountThreshold) {
		discount = types.RoundMoney(subtotal.Mul(DiscountRate))
	}

	taxable := types.RoundMoney(subtotal.Sub(discount))
	tax := types.RoundMoney(taxable.Mul(TaxRate))
	total := types.RoundMoney(taxable.Add(tax))

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    total,
	}
}

package dto

import (
	"sort"

	"github.com/emeraldmart/storefront/internal/domain/cart"
	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/emeraldmart/storefront/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds a product to the cart or increments an existing line.
// A non-positive or omitted quantity defaults to 1 in the service,
// mirroring the storefront's parse-failure fallback.
type AddItemRequest struct {
	ID       string          `json:"id" validate:"required"`
	Title    string          `json:"title" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"qty"`
}

func (r *AddItemRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.Price.IsNegative() {
		return ierr.NewError("invalid price").
			WithHint("Price must be non negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// UpdateQuantityRequest sets the quantity of a cart line. A quantity of
// zero or less removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"qty"`
}

// CartLineResponse is a single cart row with its extended line total
type CartLineResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"qty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// TotalsResponse mirrors cart.Totals for display
type TotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// CartResponse is the full view-layer synchronization payload: the rows,
// the derived totals and the counter value, recomputed after every mutation
type CartResponse struct {
	Items     []CartLineResponse `json:"items"`
	Totals    TotalsResponse     `json:"totals"`
	ItemCount int                `json:"item_count"`
}

// NewCartResponse builds the response from a cart snapshot and its totals.
// Rows are sorted by product id for stable output.
func NewCartResponse(c cart.Cart, totals cart.Totals) *CartResponse {
	items := lo.Map(lo.Values(c), func(item *cart.LineItem, _ int) CartLineResponse {
		return CartLineResponse{
			ID:        item.ID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			LineTotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
	})
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return &CartResponse{
		Items: items,
		Totals: TotalsResponse{
			Subtotal: totals.Subtotal,
			Discount: totals.Discount,
			Tax:      totals.Tax,
			Total:    totals.Total,
		},
		ItemCount: c.TotalQuantity(),
	}
}

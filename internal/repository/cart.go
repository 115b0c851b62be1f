package repository

import (
	"context"

	"github.com/emeraldmart/storefront/internal/domain/cart"
	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/emeraldmart/storefront/internal/kv"
	"github.com/emeraldmart/storefront/internal/logger"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type cartRepository struct {
	store kv.Store
	log   *logger.Logger
}

// NewCartRepository creates a kv-backed cart repository under the `cart` key
func NewCartRepository(store kv.Store, log *logger.Logger) cart.Repository {
	return &cartRepository{store: store, log: log}
}

func (r *cartRepository) Load(ctx context.Context) (cart.Cart, error) {
	raw, ok, err := r.store.Get(ctx, kv.KeyCart)
	if err != nil {
		return nil, err
	}
	if !ok {
		return cart.New(), nil
	}

	c := cart.New()
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Stored cart could not be decoded").
			Mark(ierr.ErrStorage)
	}

	return c, nil
}

func (r *cartRepository) Save(ctx context.Context, c cart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Cart could not be encoded").
			Mark(ierr.ErrStorage)
	}

	return r.store.Set(ctx, kv.KeyCart, raw)
}

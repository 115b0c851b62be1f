package service

import (
	"github.com/emeraldmart/storefront/internal/cache"
	"github.com/emeraldmart/storefront/internal/config"
	"github.com/emeraldmart/storefront/internal/domain/cart"
	"github.com/emeraldmart/storefront/internal/domain/invoice"
	"github.com/emeraldmart/storefront/internal/domain/user"
	"github.com/emeraldmart/storefront/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	// Repositories
	CartRepo    cart.Repository
	InvoiceRepo invoice.Repository
	UserRepo    user.Repository
	SessionRepo user.SessionRepository
}

// NewServiceParams assembles the shared dependency set for all services
func NewServiceParams(
	log *logger.Logger,
	cfg *config.Configuration,
	cacheStore cache.Cache,
	cartRepo cart.Repository,
	invoiceRepo invoice.Repository,
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
) ServiceParams {
	return ServiceParams{
		Logger:      log,
		Config:      cfg,
		Cache:       cacheStore,
		CartRepo:    cartRepo,
		InvoiceRepo: invoiceRepo,
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
	}
}

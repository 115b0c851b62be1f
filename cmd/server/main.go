package main

import (
	"context"
	"time"

	"github.com/emeraldmart/storefront/internal/api"
	v1 "github.com/emeraldmart/storefront/internal/api/v1"
	"github.com/emeraldmart/storefront/internal/cache"
	"github.com/emeraldmart/storefront/internal/config"
	"github.com/emeraldmart/storefront/internal/kv"
	"github.com/emeraldmart/storefront/internal/logger"
	"github.com/emeraldmart/storefront/internal/repository"
	"github.com/emeraldmart/storefront/internal/service"
	"github.com/emeraldmart/storefront/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC

	// Load .env if present; real config still comes from viper
	_ = godotenv.Load()
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Storage
			provideStore,

			// Repositories
			repository.NewCartRepository,
			repository.NewInvoiceRepository,
			repository.NewUserRepository,
			repository.NewSessionRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewCartService,
			service.NewCheckoutService,
			service.NewAuthService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			v1.NewHealthHandler,
			v1.NewCartHandler,
			v1.NewCheckoutHandler,
			v1.NewAuthHandler,
			api.NewHandlers,
			provideRouter,
		),
		fx.Invoke(
			loadCart,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideStore(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) (kv.Store, error) {
	store, err := kv.NewFileStore(cfg, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})

	return store, nil
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

// loadCart merges previously saved state into the fresh in-memory cart
// before the server starts taking commands
func loadCart(lc fx.Lifecycle, cartService service.CartService, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return cartService.Load(ctx)
		},
		OnStop: func(ctx context.Context) error {
			// Flush-on-exit: one last save so teardown preserves the most
			// recent state even after a missed explicit save
			if err := cartService.Flush(ctx); err != nil {
				log.Errorw("failed to flush cart on shutdown", "error", err)
			}
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

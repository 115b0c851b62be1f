package api

import (
	v1 "github.com/emeraldmart/storefront/internal/api/v1"
	"github.com/emeraldmart/storefront/internal/rest/middleware"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Handlers groups the v1 handlers the router exposes
type Handlers struct {
	Health   *v1.HealthHandler
	Cart     *v1.CartHandler
	Checkout *v1.CheckoutHandler
	Auth     *v1.AuthHandler
}

func NewHandlers(
	health *v1.HealthHandler,
	cart *v1.CartHandler,
	checkout *v1.CheckoutHandler,
	auth *v1.AuthHandler,
) Handlers {
	return Handlers{
		Health:   health,
		Cart:     cart,
		Checkout: checkout,
		Auth:     auth,
	}
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.RateLimiter(rate.Limit(50), 100))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Cart routes
	cart := router.Group("/cart")
	{
		cart.GET("", handlers.Cart.GetCart)
		cart.POST("/items", handlers.Cart.AddItem)
		cart.PUT("/items/:id", handlers.Cart.UpdateQuantity)
		cart.DELETE("", handlers.Cart.ClearCart)
	}

	// Checkout routes
	checkout := router.Group("/checkout")
	{
		checkout.GET("/review", handlers.Checkout.ReviewCart)
		checkout.POST("/begin", handlers.Checkout.BeginPayment)
		checkout.POST("/confirm", handlers.Checkout.ConfirmPayment)
	}

	// Invoice routes
	invoices := router.Group("/invoices")
	{
		invoices.GET("/last", handlers.Checkout.GetLastInvoice)
	}

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/logout", handlers.Auth.Logout)
		auth.GET("/me", handlers.Auth.Me)
	}
}

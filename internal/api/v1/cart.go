package v1

import (
	"net/http"
	"strconv"

	"github.com/emeraldmart/storefront/internal/api/dto"
	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/emeraldmart/storefront/internal/logger"
	"github.com/emeraldmart/storefront/internal/service"
	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	service service.CartService
	log     *logger.Logger
}

func NewCartHandler(service service.CartService, log *logger.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log,
	}
}

// AddItem adds a product to the cart or increments its quantity
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AddItem(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateQuantity sets the quantity of a cart line; zero or less removes it
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Fall back to quantity 1 on an unparseable body, matching the
		// storefront's input defaulting
		if raw := c.Query("qty"); raw != "" {
			if parsed, perr := strconv.Atoi(raw); perr == nil {
				req.Quantity = parsed
			} else {
				req.Quantity = 1
			}
		} else {
			req.Quantity = 1
		}
	}

	resp, err := h.service.SetQuantity(c.Request.Context(), id, req.Quantity)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ClearCart removes all items from the cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	resp, err := h.service.Clear(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetCart returns the cart with derived totals and the counter value
func (h *CartHandler) GetCart(c *gin.Context) {
	resp, err := h.service.GetCart(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

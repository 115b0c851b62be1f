package v1

import (
	"net/http"

	"github.com/emeraldmart/storefront/internal/api/dto"
	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/emeraldmart/storefront/internal/logger"
	"github.com/emeraldmart/storefront/internal/service"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	service service.CheckoutService
	log     *logger.Logger
}

func NewCheckoutHandler(service service.CheckoutService, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		log:     log,
	}
}

// ReviewCart enters the cart review page
func (h *CheckoutHandler) ReviewCart(c *gin.Context) {
	resp, err := h.service.ReviewCart(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// BeginPayment enters the checkout form; rejected when the cart is empty
func (h *CheckoutHandler) BeginPayment(c *gin.Context) {
	resp, err := h.service.BeginPayment(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmPayment runs the checkout guards and generates the invoice
func (h *CheckoutHandler) ConfirmPayment(c *gin.Context) {
	var req dto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ConfirmPayment(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetLastInvoice returns the most recently generated invoice
func (h *CheckoutHandler) GetLastInvoice(c *gin.Context) {
	resp, err := h.service.GetLastInvoice(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
